package auth

import (
	"context"

	"campusgate/internal/domain"
	"campusgate/internal/pkg/cryptoutil"

	"github.com/gin-gonic/gin"
)

// identityKey is the gin context key the passthrough middleware stores the
// request identity under.
const identityKey = "identity"

// Identity is the per-request identity context. Exactly two variants exist:
// authenticated (built by Service.Resolve on a token hit) and anonymous
// (everything else). IsLogin is always safe to call; every other accessor
// fails with ErrUnauthorized on the anonymous variant, so downstream code
// that forgets to branch on IsLogin enforces the login requirement by
// construction instead of proceeding with empty fields.
type Identity struct {
	svc      *Service
	loggedIn bool

	rawToken  string
	tokenHash string
	personID  string
	cardnum   string
	password  string
	gpassword string
	name      string
	schoolnum string
	platform  string
}

// Session is the concrete view of an authenticated identity, for handlers
// that have already passed the login gate.
type Session struct {
	Cardnum   string
	Name      string
	Schoolnum string
	Platform  string
	// TokenHash is the digest of the session token, usable as a stable
	// per-session key. The raw token is never exposed.
	TokenHash string
	// PersonID is a digest of cardnum+name: stable for one person across
	// platforms, unlike TokenHash.
	PersonID string
}

// Anonymous returns the identity of a request that carried no usable token.
func Anonymous() *Identity {
	return &Identity{}
}

func newAuthenticated(svc *Service, rawToken string, rec *domain.AuthRecord, password, gpassword string) *Identity {
	return &Identity{
		svc:       svc,
		loggedIn:  true,
		rawToken:  rawToken,
		tokenHash: rec.TokenHash,
		personID:  cryptoutil.Hash(rec.Cardnum + rec.Name),
		cardnum:   rec.Cardnum,
		password:  password,
		gpassword: gpassword,
		name:      rec.Name,
		schoolnum: rec.Schoolnum,
		platform:  rec.Platform,
	}
}

func (id *Identity) IsLogin() bool { return id.loggedIn }

func (id *Identity) guarded(v string) (string, error) {
	if !id.loggedIn {
		return "", ErrUnauthorized
	}
	return v, nil
}

func (id *Identity) Cardnum() (string, error)   { return id.guarded(id.cardnum) }
func (id *Identity) Password() (string, error)  { return id.guarded(id.password) }
func (id *Identity) Name() (string, error)      { return id.guarded(id.name) }
func (id *Identity) Schoolnum() (string, error) { return id.guarded(id.schoolnum) }
func (id *Identity) Platform() (string, error)  { return id.guarded(id.platform) }
func (id *Identity) Token() (string, error)     { return id.guarded(id.tokenHash) }
func (id *Identity) PersonID() (string, error)  { return id.guarded(id.personID) }

// Require converts to the concrete Session, failing fast for anonymous
// requests. Handlers behind a login gate call this once up front.
func (id *Identity) Require() (*Session, error) {
	if !id.loggedIn {
		return nil, ErrUnauthorized
	}
	return &Session{
		Cardnum:   id.cardnum,
		Name:      id.name,
		Schoolnum: id.schoolnum,
		Platform:  id.platform,
		TokenHash: id.tokenHash,
		PersonID:  id.personID,
	}, nil
}

// Encrypt seals value under this session's raw token, letting downstream
// code cache its own secrets under the same recover-one-from-the-other
// scheme as the credential records.
func (id *Identity) Encrypt(value string) (string, error) {
	if !id.loggedIn {
		return "", ErrUnauthorized
	}
	return cryptoutil.Encrypt(id.rawToken, value), nil
}

// Decrypt is the inverse of Encrypt. An empty result means the ciphertext
// was not produced under this session's token.
func (id *Identity) Decrypt(value string) (string, error) {
	if !id.loggedIn {
		return "", ErrUnauthorized
	}
	return cryptoutil.Decrypt(id.rawToken, value), nil
}

// Credentials returns the decrypted credential set bound to this session,
// for callers that must talk to the provider themselves.
func (id *Identity) Credentials() (domain.Credentials, error) {
	if !id.loggedIn {
		return domain.Credentials{}, ErrUnauthorized
	}
	return domain.Credentials{Cardnum: id.cardnum, Password: id.password, GPassword: id.gpassword}, nil
}

// Reauthenticate re-runs the upstream gateway with this session's exact
// credentials, typically to obtain a fresh provider session cookie via
// upstream.WithSessionCapture. An upstream rejection invalidates the cached
// record.
func (id *Identity) Reauthenticate(ctx context.Context) error {
	if !id.loggedIn {
		return ErrUnauthorized
	}
	creds, _ := id.Credentials()
	return id.svc.Reauthenticate(ctx, creds, id.tokenHash)
}

// IdentityFrom returns the identity the passthrough middleware attached to
// the request, or the anonymous identity when the middleware did not run.
func IdentityFrom(c *gin.Context) *Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(*Identity); ok {
			return id
		}
	}
	return Anonymous()
}

// SetIdentity attaches id to the request. Used by the passthrough
// middleware and by handler tests.
func SetIdentity(c *gin.Context, id *Identity) {
	c.Set(identityKey, id)
}
