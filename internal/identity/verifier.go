package identity

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/kharidoapp/checkout-engine/internal/errors"
	"github.com/kharidoapp/checkout-engine/internal/models"
)

// Verifier checks bearer tokens issued by the external identity provider.
// The engine never issues tokens itself; it only shares the HMAC key.
type Verifier struct {
	jwtKey []byte
}

func NewVerifier(jwtKey []byte) *Verifier {
	return &Verifier{jwtKey: jwtKey}
}

func (v *Verifier) Verify(tokenString string) (*models.Claims, error) {

	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		// check the signing method
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.BadRequestError("unexpected signing method")
		}
		return v.jwtKey, nil
	})

	if err != nil {
		return nil, errors.UnauthorizedError("Invalid or expired token").WithError(err)
	}

	if !token.Valid {
		return nil, errors.UnauthorizedError("Invalid token")
	}

	return claims, nil
}
