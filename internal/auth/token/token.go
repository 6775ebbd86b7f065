// Package token issues the HS256 access tokens that httpkit.AuthRequired
// validates.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenType is the "type" claim every access token carries.
const AccessTokenType = "access"

// Subject is who a token is issued for.
type Subject struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// Issuer signs access tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an issuer whose tokens live for ttl.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs an access token for sub and returns it with its expiry.
func (i *Issuer) Issue(sub Subject) (string, time.Time, error) {
	if len(i.secret) == 0 {
		return "", time.Time{}, errors.New("token secret is empty")
	}

	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.ttl)
	claims := jwt.MapClaims{
		"sub":   sub.ID.String(),
		"name":  sub.Name,
		"email": sub.Email,
		"type":  AccessTokenType,
		"iat":   issuedAt.Unix(),
		"exp":   expiresAt.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
