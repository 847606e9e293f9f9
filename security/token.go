package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"interntrack.com/interntrack/core/model"
)

type Identity struct {
	UserID string         `json:"userId"`
	Email  string         `json:"email"`
	Role   model.UserRole `json:"role"`
}

// UserClaims is the token payload: the user identity plus standard claims.
type UserClaims struct {
	Identity
	jwt.RegisteredClaims
}

// CreateUserToken mints an HS256 token for a user.
func CreateUserToken(user *model.User, secret []byte, ttl time.Duration) (string, error) {
	claims := UserClaims{
		Identity: Identity{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "interntrack",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseUserToken validates the signature and expiry and returns the claims.
func ParseUserToken(tokenStr string, secret []byte) (*UserClaims, error) {
	claims := &UserClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
