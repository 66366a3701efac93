package auth

import (
	"context"
	"time"

	"campusgate/internal/domain"
)

// CredentialRepositoryInterface — only the record operations the protocol
// needs: equality lookups, whole-record writes, removal.
type CredentialRepositoryInterface interface {
	FindByCardnumPlatform(ctx context.Context, cardnum, platform string) (*domain.AuthRecord, error)
	FindByTokenHash(ctx context.Context, tokenHash string) (*domain.AuthRecord, error)
	Insert(ctx context.Context, rec *domain.AuthRecord) error
	UpdateSecrets(ctx context.Context, cardnum, platform string, patch map[string]any) error
	Remove(ctx context.Context, cardnum, platform string) error
	RemoveByTokenHash(ctx context.Context, tokenHash string) error
	TouchLastInvoked(ctx context.Context, tokenHash string, at time.Time) error
}

// GatewayInterface validates a credential set against the upstream identity
// provider(s) and returns the profile on success.
type GatewayInterface interface {
	Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Profile, error)
}
