package upstream

import (
	"context"

	"campusgate/internal/domain"
)

// StaticProvider is the local-development strategy: a fixed user table in
// memory. Selected with AUTH_PROVIDER=static; refused in prod by config.
type StaticProvider struct {
	users map[string]StaticUser
}

type StaticUser struct {
	Password string
	Profile  domain.Profile
}

func NewStaticProvider(users map[string]StaticUser) *StaticProvider {
	return &StaticProvider{users: users}
}

func (p *StaticProvider) Authenticate(_ context.Context, user, password string) (*domain.Profile, error) {
	u, ok := p.users[user]
	if !ok || u.Password != password {
		return nil, ErrUnauthorized
	}
	profile := u.Profile
	return &profile, nil
}
