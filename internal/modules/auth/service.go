package auth

import (
	"context"
	"errors"
	"time"

	"campusgate/internal/domain"
	"campusgate/internal/pkg/cryptoutil"
	"campusgate/internal/upstream"

	"go.uber.org/zap"
)

// Service implements the credential cache protocol: login with cardnum and
// password, refresh on password change, and per-request token resolution.
// No raw secret ever reaches the record store; see domain.AuthRecord.
type Service struct {
	records CredentialRepositoryInterface
	gateway GatewayInterface
	log     *zap.Logger
}

func NewService(records CredentialRepositoryInterface, gateway GatewayInterface, log *zap.Logger) *Service {
	return &Service{records: records, gateway: gateway, log: log}
}

// Login validates creds for the given platform and returns the session
// token. A cached record whose password still matches is trusted without an
// upstream round trip. The refresh path (same token, rewritten secrets) is
// taken when the presented password still unseals the stored token but the
// rest of the record disagrees — a rotated secondary password, or a stale
// hash field. A rotated primary password cannot unseal the token at all, so
// it is handled as a full re-issuance: upstream re-validates and a fresh
// token replaces the old one.
func (s *Service) Login(ctx context.Context, creds domain.Credentials, platform string) (string, error) {
	if platform == "" {
		return "", ErrPlatformRequired
	}
	if creds.GPassword == "" {
		creds.GPassword = creds.Password
	}

	rec, err := s.records.FindByCardnumPlatform(ctx, creds.Cardnum, platform)
	if err != nil {
		return "", err
	}

	if rec != nil {
		if token := cryptoutil.Decrypt(creds.Password, rec.TokenEncrypted); token != "" {
			match := rec.PasswordHash == cryptoutil.Hash(creds.Password)
			if match && domain.IsGraduate(creds.Cardnum) {
				match = cryptoutil.Decrypt(token, rec.GPasswordEncrypted) == creds.GPassword
			}
			if match {
				// Trusted session, re-validated locally. Staleness between
				// upstream revalidations is accepted as a bounded window.
				return token, nil
			}
			return s.refresh(ctx, creds, platform, token)
		}
		// Record exists but the token is not recoverable with the presented
		// password: different credential generation or corrupted row. Fall
		// through to full re-issuance.
	}

	return s.mint(ctx, creds, platform, rec != nil)
}

// refresh re-validates rotated credentials upstream and rewrites every
// secret-derived field around the unchanged token, so bearer holders of
// that token stay valid.
func (s *Service) refresh(ctx context.Context, creds domain.Credentials, platform, token string) (string, error) {
	profile, err := s.gateway.Authenticate(ctx, creds)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			// A cached credential that upstream now rejects must not
			// persist. Deletion is best-effort: an undeleted stale record
			// self-corrects on the next refresh attempt.
			if rmErr := s.records.Remove(ctx, creds.Cardnum, platform); rmErr != nil {
				s.log.Warn("stale record removal failed",
					zap.String("platform", platform), zap.Error(rmErr))
			}
		}
		return "", mapUpstreamErr(err)
	}

	patch := map[string]any{
		"token_encrypted":     cryptoutil.Encrypt(creds.Password, token),
		"password_encrypted":  cryptoutil.Encrypt(token, creds.Password),
		"password_hash":       cryptoutil.Hash(creds.Password),
		"gpassword_encrypted": "",
		"name":                profile.Name,
		"schoolnum":           profile.Schoolnum,
	}
	if domain.IsGraduate(creds.Cardnum) {
		patch["gpassword_encrypted"] = cryptoutil.Encrypt(token, creds.GPassword)
	}
	if err := s.records.UpdateSecrets(ctx, creds.Cardnum, platform, patch); err != nil {
		return "", err
	}
	return token, nil
}

// mint validates creds upstream and issues a brand-new token. When an
// undecryptable record already occupies the (cardnum, platform) slot it is
// replaced, keeping at most one record per pair.
func (s *Service) mint(ctx context.Context, creds domain.Credentials, platform string, replace bool) (string, error) {
	profile, err := s.gateway.Authenticate(ctx, creds)
	if err != nil {
		return "", mapUpstreamErr(err)
	}

	token, err := cryptoutil.NewToken()
	if err != nil {
		return "", err
	}

	if replace {
		if err := s.records.Remove(ctx, creds.Cardnum, platform); err != nil {
			return "", err
		}
	}

	now := time.Now().UTC()
	rec := &domain.AuthRecord{
		Cardnum:           creds.Cardnum,
		Platform:          platform,
		TokenHash:         cryptoutil.Hash(token),
		TokenEncrypted:    cryptoutil.Encrypt(creds.Password, token),
		PasswordEncrypted: cryptoutil.Encrypt(token, creds.Password),
		PasswordHash:      cryptoutil.Hash(creds.Password),
		Name:              profile.Name,
		Schoolnum:         profile.Schoolnum,
		Registered:        now,
		LastInvoked:       now,
	}
	if domain.IsGraduate(creds.Cardnum) {
		rec.GPasswordEncrypted = cryptoutil.Encrypt(token, creds.GPassword)
	}
	if err := s.records.Insert(ctx, rec); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve turns a bearer token into a request identity. An unknown,
// revoked, or undecryptable token is indistinguishable from no token at
// all: both yield the anonymous identity, never an error status.
func (s *Service) Resolve(ctx context.Context, rawToken string) (*Identity, error) {
	if rawToken == "" {
		return Anonymous(), nil
	}

	tokenHash := cryptoutil.Hash(rawToken)
	rec, err := s.records.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return Anonymous(), nil
	}

	if err := s.records.TouchLastInvoked(ctx, tokenHash, time.Now().UTC()); err != nil {
		s.log.Warn("last_invoked touch failed", zap.Error(err))
	}

	password := cryptoutil.Decrypt(rawToken, rec.PasswordEncrypted)
	if password == "" {
		// Record and token disagree; treat like a miss.
		return Anonymous(), nil
	}
	gpassword := ""
	if domain.IsGraduate(rec.Cardnum) {
		gpassword = cryptoutil.Decrypt(rawToken, rec.GPasswordEncrypted)
	}

	return newAuthenticated(s, rawToken, rec, password, gpassword), nil
}

// Reauthenticate re-runs the gateway with the exact credentials of an
// already-authenticated session. A rejection deletes the session's record:
// a live session whose credentials upstream no longer accepts is stale.
// Removal keys on the token digest so only the rejected session is dropped,
// not whatever record has since taken its (cardnum, platform) slot.
func (s *Service) Reauthenticate(ctx context.Context, creds domain.Credentials, tokenHash string) error {
	if _, err := s.gateway.Authenticate(ctx, creds); err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			if rmErr := s.records.RemoveByTokenHash(ctx, tokenHash); rmErr != nil {
				s.log.Warn("stale record removal failed", zap.Error(rmErr))
			}
		}
		return mapUpstreamErr(err)
	}
	return nil
}

func mapUpstreamErr(err error) error {
	switch {
	case errors.Is(err, upstream.ErrUnauthorized):
		return ErrUnauthorized
	case errors.Is(err, upstream.ErrUnavailable):
		return ErrUpstreamUnavailable
	default:
		return err
	}
}
