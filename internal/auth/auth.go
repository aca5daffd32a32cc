package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrNotWhitelisted = errors.New("email is not allowed")
)

const issuer = "finanzas"

// Claims identifies the signed-in user by email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Verifier checks HS256 tokens and the email whitelist.
type Verifier struct {
	secret    []byte
	whitelist map[string]struct{}
	now       func() time.Time
}

func NewVerifier(secret string, whitelist []string) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}

	v := &Verifier{
		secret:    []byte(secret),
		whitelist: make(map[string]struct{}, len(whitelist)),
		now:       time.Now,
	}

	for _, email := range whitelist {
		if e := normalize(email); e != "" {
			v.whitelist[e] = struct{}{}
		}
	}

	if len(v.whitelist) == 0 {
		return nil, errors.New("whitelist is empty")
	}

	return v, nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Allowed reports whether the email may use the API.
func (v *Verifier) Allowed(email string) bool {
	_, ok := v.whitelist[normalize(email)]
	return ok
}

// Issue signs a token for a whitelisted email.
func (v *Verifier) Issue(email, name string, ttl time.Duration) (string, error) {
	if !v.Allowed(email) {
		return "", ErrNotWhitelisted
	}

	now := v.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   normalize(email),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		Email: normalize(email),
		Name:  name,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify parses the token and checks its email against the whitelist.
func (v *Verifier) Verify(token string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !v.Allowed(claims.Email) {
		return nil, ErrNotWhitelisted
	}

	return claims, nil
}

type contextKey struct{}

func ContextWithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(contextKey{}).(*Claims)
	return c, ok
}
