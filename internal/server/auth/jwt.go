// Package auth mints and verifies the HS256 access tokens presented by API
// clients as bearer credentials.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bookworm/internal/common"
)

// Claims carries the registered claims plus the user identifier embedded into
// every access token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// ExpiredError reports a structurally valid token whose expiration has
// elapsed. It unwraps to common.ErrTokenExpired and keeps the token's exp
// claim so the API can surface it.
type ExpiredError struct {
	ExpiredAt time.Time
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("token expired at %s", e.ExpiredAt.Format(time.RFC3339))
}

func (e *ExpiredError) Unwrap() error { return common.ErrTokenExpired }

func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies signature and expiration and returns the
// embedded user identifier. Expired tokens yield an *ExpiredError; any other
// verification failure yields common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			// ParseWithClaims fills claims before rejecting the token,
			// so the exp claim is available here.
			expired := &ExpiredError{}
			if claims.ExpiresAt != nil {
				expired.ExpiredAt = claims.ExpiresAt.Time
			}
			return "", expired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
