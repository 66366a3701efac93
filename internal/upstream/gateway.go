package upstream

import (
	"context"

	"campusgate/internal/domain"
)

// Gateway routes a credential set to the right provider(s). Graduate
// cardnums must clear the graduate system with their secondary password
// before the primary portal is consulted; everyone else goes straight to
// the portal. No partial success is observable by callers.
type Gateway struct {
	primary   Provider
	secondary Provider
}

func NewGateway(primary, secondary Provider) *Gateway {
	return &Gateway{primary: primary, secondary: secondary}
}

// Authenticate validates creds and returns the portal profile. Failures are
// exactly ErrUnauthorized or ErrUnavailable (possibly wrapped).
func (g *Gateway) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Profile, error) {
	if subID := domain.GraduateSubID(creds.Cardnum); subID != "" {
		if _, err := g.secondary.Authenticate(ctx, subID, creds.GPassword); err != nil {
			return nil, err
		}
	}
	return g.primary.Authenticate(ctx, creds.Cardnum, creds.Password)
}
