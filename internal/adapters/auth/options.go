package auth

import (
	"time"

	"github.com/okian/halloffame/pkg/logger"
)

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithAudience requires tokens to carry aud.
func WithAudience(aud string) Option {
	return func(a *Authenticator) {
		a.audience = aud
	}
}

// WithIssuer sets the iss claim of issued tokens and requires it on
// verified ones.
func WithIssuer(iss string) Option {
	return func(a *Authenticator) {
		a.issuer = iss
	}
}

// WithClock sets the time source for expiry checks and issued tokens.
func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLeeway tolerates clock skew when checking exp and nbf.
func WithLeeway(d time.Duration) Option {
	return func(a *Authenticator) {
		if d >= 0 {
			a.leeway = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(a *Authenticator) {
		if l != nil {
			a.logger = l
		}
	}
}
