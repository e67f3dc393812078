// Package auth turns HS256 bearer tokens into service sessions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/okian/halloffame/internal/adapters/repository"
	service "github.com/okian/halloffame/internal/app"
	"github.com/okian/halloffame/internal/domain/model"
	"github.com/okian/halloffame/pkg/logger"
	"github.com/okian/halloffame/pkg/metrics"
)

const bearerPrefix = "bearer "

// ProfileSource looks up the stored profile of a user. It returns an error
// matching repository.ErrNotFound for users without one.
type ProfileSource interface {
	Profile(ctx context.Context, userID string) (model.Profile, error)
}

// Claims are the token claims the service reads.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator verifies bearer tokens.
type Authenticator struct {
	secret   []byte
	audience string
	issuer   string
	leeway   time.Duration
	now      func() time.Time
	profiles ProfileSource
	logger   logger.Logger
}

// New returns an Authenticator for tokens signed with secret.
func New(secret string, profiles ProfileSource, opts ...Option) (*Authenticator, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	a := &Authenticator{
		secret:   []byte(secret),
		now:      time.Now,
		profiles: profiles,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", ErrMissingToken
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// Authenticate resolves an Authorization header to a session.
func (a *Authenticator) Authenticate(ctx context.Context, header string) (service.Session, error) {
	token, err := BearerToken(header)
	if err != nil {
		metrics.RecordAuthFailure("missing_token")
		return service.Session{}, err
	}
	return a.Verify(ctx, token)
}

// Verify checks the token signature and claims, then attaches the role from
// the user's profile. Users without a profile are members.
func (a *Authenticator) Verify(ctx context.Context, token string) (service.Session, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
		jwt.WithLeeway(a.leeway),
		jwt.WithExpirationRequired(),
	}
	if a.audience != "" {
		opts = append(opts, jwt.WithAudience(a.audience))
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		metrics.RecordAuthFailure("invalid_token")
		a.logger.Debug(ctx, "token rejected", logger.Error(err))
		return service.Session{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		metrics.RecordAuthFailure("invalid_token")
		return service.Session{}, fmt.Errorf("%w: missing sub", ErrInvalidToken)
	}

	sess := service.Session{UserID: claims.Subject, Email: claims.Email, Role: model.RoleMember}
	if a.profiles == nil {
		return sess, nil
	}
	p, err := a.profiles.Profile(ctx, claims.Subject)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		metrics.RecordAuthFailure("profile_error")
		a.logger.Error(ctx, "profile lookup failed", logger.String("user_id", claims.Subject), logger.Error(err))
		return service.Session{}, err
	default:
		sess.Role = p.Role
		if sess.Email == "" {
			sess.Email = p.Email
		}
	}
	return sess, nil
}

// IssueToken signs a token for userID valid for ttl.
func (a *Authenticator) IssueToken(userID, email string, ttl time.Duration) (string, error) {
	return IssueToken(a.secret, userID, email, ttl,
		WithTokenTime(a.now()), WithTokenAudience(a.audience), WithTokenIssuer(a.issuer))
}

type tokenParams struct {
	now      time.Time
	audience string
	issuer   string
}

// TokenOption configures IssueToken.
type TokenOption func(*tokenParams)

// WithTokenTime sets the issue time of the token.
func WithTokenTime(t time.Time) TokenOption {
	return func(s *tokenParams) { s.now = t }
}

// WithTokenAudience sets aud when non-empty.
func WithTokenAudience(aud string) TokenOption {
	return func(s *tokenParams) { s.audience = aud }
}

// WithTokenIssuer sets iss.
func WithTokenIssuer(iss string) TokenOption {
	return func(s *tokenParams) { s.issuer = iss }
}

// IssueToken signs an HS256 token with the given secret. It is used by the
// seeding tool, which holds the secret but no store.
func IssueToken(secret []byte, userID, email string, ttl time.Duration, opts ...TokenOption) (string, error) {
	params := tokenParams{now: time.Now()}
	for _, opt := range opts {
		opt(&params)
	}
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    params.issuer,
			IssuedAt:  jwt.NewNumericDate(params.now),
			ExpiresAt: jwt.NewNumericDate(params.now.Add(ttl)),
		},
	}
	if params.audience != "" {
		claims.Audience = jwt.ClaimStrings{params.audience}
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
