package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSessionToken = errors.New("invalid session token")

// GenerateSessionToken creates the signed HMAC-SHA256 JWT carried by the
// session cookie.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the cookie
//   - Subject   (sub): the opaque session id
//   - IssuedAt  (iat): issuedAt
//   - ExpiresAt (exp): issuedAt plus lifetime
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Example usage:
//
//	cookie, err := utils.GenerateSessionToken("catalog", s.ID(), s.CreatedAt(), 12*time.Hour, "secret")
func GenerateSessionToken(issuer, sessionID string, issuedAt time.Time, lifetime time.Duration, signKey string) (string, error) {
	if issuer == "" || sessionID == "" || lifetime == 0 || signKey == "" {
		return "", errors.New("invalid params for generating session token")
	}

	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   sessionID,
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(lifetime)),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during singing session token: %w", err)
	}

	return tokenString, nil
}

// ParseSessionToken validates the session cookie value and returns the
// session id it carries.
//
// Validation includes:
//   - Signature verification using the provided sign key, HS256 only
//   - Issuer (iss) claim check against the provided issuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence
//
// Every failure wraps [ErrInvalidSessionToken].
func ParseSessionToken(tokenString, signKey, issuer string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSessionToken, err)
	}

	sessionID, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSessionToken, err)
	}
	if sessionID == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidSessionToken)
	}

	return sessionID, nil
}
