// Package auth issues and checks admin tokens and password hashes.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"feriwala/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs HS256 tokens carrying the admin id as subject.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// RandomSecret returns 32 random bytes, hex encoded, for when no secret is configured.
func RandomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("reading random bytes: %v", err))
	}
	return hex.EncodeToString(b)
}

func (i *Issuer) Issue(a *model.Admin) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: a.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ID.String(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, exp, nil
}

// Parse verifies the signature and expiry and returns the admin id the token was issued for.
func (i *Issuer) Parse(raw string) (uuid.UUID, *Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return id, claims, nil
}

type ctxKey struct{}

// WithAdmin stores the authenticated admin in ctx.
func WithAdmin(ctx context.Context, a *model.Admin) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// AdminFrom returns the admin stored by WithAdmin.
func AdminFrom(ctx context.Context) (*model.Admin, bool) {
	a, ok := ctx.Value(ctxKey{}).(*model.Admin)
	return a, ok && a != nil
}
