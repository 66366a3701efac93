package auth

import "errors"

var (
	// ErrUnauthorized covers every credential failure visible to a client:
	// upstream rejection, an unrecoverable token, or touching a guarded
	// field on an anonymous identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPlatformRequired is a parameter error, not a credential one.
	ErrPlatformRequired = errors.New("platform is required")

	// ErrUpstreamUnavailable means the identity provider failed for reasons
	// unrelated to the credentials. Cached records survive it.
	ErrUpstreamUnavailable = errors.New("identity provider unavailable")
)
