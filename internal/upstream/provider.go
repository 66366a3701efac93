package upstream

import (
	"context"
	"errors"
	"sync"

	"campusgate/internal/domain"
)

var (
	// ErrUnauthorized means the provider explicitly rejected the credential
	// pair.
	ErrUnauthorized = errors.New("upstream rejected credentials")

	// ErrUnavailable means the provider could not be reached or failed for a
	// reason unrelated to the credentials. Callers must not treat this as a
	// rejection: cached records stay untouched.
	ErrUnavailable = errors.New("upstream unavailable")
)

// Provider validates one user/password pair against a single identity
// system. Implementations are chosen at process start from configuration.
type Provider interface {
	Authenticate(ctx context.Context, user, password string) (*domain.Profile, error)
}

// SessionCookie captures the provider session cookie a successful
// authentication may set. Downstream routes that talk to the provider
// directly read it after the gateway call; the gateway itself never uses it.
type SessionCookie struct {
	mu    sync.Mutex
	value string
}

func (s *SessionCookie) set(v string) {
	s.mu.Lock()
	s.value = v
	s.mu.Unlock()
}

// Value returns the captured cookie header value, empty when the provider
// set none.
func (s *SessionCookie) Value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

type sessionCookieKey struct{}

// WithSessionCapture derives a context through which a provider can hand
// back its session cookie.
func WithSessionCapture(ctx context.Context) (context.Context, *SessionCookie) {
	sc := &SessionCookie{}
	return context.WithValue(ctx, sessionCookieKey{}, sc), sc
}

func sessionCaptureFrom(ctx context.Context) *SessionCookie {
	sc, _ := ctx.Value(sessionCookieKey{}).(*SessionCookie)
	return sc
}
