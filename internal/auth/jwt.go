// Package auth holds the two bearer-token trust domains of the wallet:
// end-user tokens and internal service tokens. Each is bound to its own
// secret and verifies only tokens signed with that exact secret.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	InternalSubject = "users-service"
	InternalEmail   = "internal@service.local"
	InternalType    = "internal"
	InternalTTL     = 5 * time.Minute
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNotInternal  = errors.New("not an internal service token")
)

// UserClaims is the users-service login payload; Subject is the user id.
type UserClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type InternalClaims struct {
	Email string `json:"email"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

// ---------- user context ----------

type UserTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewUserTokens(secret string, ttl time.Duration) *UserTokens {
	return &UserTokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a user token. The wallet never needs this in production (the
// users-service issues them); the CLI and tests do.
func (u *UserTokens) Issue(userID, email string) (string, error) {
	now := u.now()
	return sign(u.secret, UserClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.ttl)),
		},
	})
}

func (u *UserTokens) Verify(token string) (*UserClaims, error) {
	claims := &UserClaims{}
	if err := parse(u.secret, u.now, token, claims); err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}

// ---------- internal context ----------

type InternalTokens struct {
	secret []byte
	now    func() time.Time
}

func NewInternalTokens(secret string) *InternalTokens {
	return &InternalTokens{secret: []byte(secret), now: time.Now}
}

// Mint returns a fresh five-minute token for one service-to-service call.
func (i *InternalTokens) Mint() (string, error) {
	now := i.now()
	return sign(i.secret, InternalClaims{
		Email: InternalEmail,
		Type:  InternalType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   InternalSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(InternalTTL)),
		},
	})
}

func (i *InternalTokens) Verify(token string) (*InternalClaims, error) {
	claims := &InternalClaims{}
	if err := parse(i.secret, i.now, token, claims); err != nil {
		return nil, err
	}
	if claims.Type != InternalType {
		return nil, ErrNotInternal
	}
	return claims, nil
}

// ---------- helpers ----------

func sign(secret []byte, claims jwt.Claims) (string, error) {
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

func parse(secret []byte, now func() time.Time, token string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return nil
}
