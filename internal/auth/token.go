package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var parser = jwt.NewParser()

// preParse reads the token claims without verifying the signature and
// rejects tokens that cannot be valid, so they never reach the provider.
// The provider remains the only authority on signatures and revocation.
func preParse(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	now := time.Now()

	// Validate token expiration (exp claim)
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return "", fmt.Errorf("%w: invalid exp claim: %v", ErrInvalidToken, err)
	}
	if exp != nil && exp.Before(now) {
		return "", fmt.Errorf("%w: token has expired", ErrInvalidToken)
	}

	// Validate not before (nbf claim) if present
	nbf, err := claims.GetNotBefore()
	if err != nil {
		return "", fmt.Errorf("%w: invalid nbf claim: %v", ErrInvalidToken, err)
	}
	if nbf != nil && nbf.After(now) {
		return "", fmt.Errorf("%w: token not yet valid", ErrInvalidToken)
	}

	// The provider issues UUID subjects; anything else was not minted by it.
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("%w: token missing sub claim", ErrInvalidToken)
	}
	if _, err := uuid.Parse(subject); err != nil {
		return "", fmt.Errorf("%w: sub claim is not a UUID", ErrInvalidToken)
	}
	return subject, nil
}
