// Package identity verifies the session tokens issued by the portal's
// external authentication provider. This service never performs login; it
// only checks the provider's signature and lifts the (actorId, actorRole,
// email) triple out of the claims.
package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lendfold/internal/access"
	dErrors "lendfold/pkg/domain-errors"
)

// Claims are the session provider's token claims.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 session tokens against the shared signing key.
type Verifier struct {
	signingKey []byte
}

func NewVerifier(signingKey string) *Verifier {
	return &Verifier{signingKey: []byte(signingKey)}
}

// Verify checks the token and returns the actor it identifies.
func (v *Verifier) Verify(tokenString string) (access.Actor, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return v.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return access.Actor{}, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return access.Actor{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return access.Actor{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	role, err := access.ParseRole(claims.Role)
	if err != nil {
		return access.Actor{}, err
	}
	if claims.Subject == "" {
		return access.Actor{}, dErrors.New(dErrors.CodeUnauthorized, "token missing subject")
	}
	return access.Actor{ID: claims.Subject, Role: role, Email: claims.Email}, nil
}

// Sign mints a session token. Production tokens come from the external
// provider; this exists for local development and tests.
func Sign(signingKey string, actor access.Actor, expiresIn time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:  string(actor.Role),
		Email: actor.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	return token.SignedString([]byte(signingKey))
}
