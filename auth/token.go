package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// IssueToken signs an HS256 token carrying user_id, role and name.
func IssueToken(secret string, id Identity, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": id.UserID.String(),
		"role":    id.Role,
		"name":    id.Name,
		"exp":     time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates tokenString and returns the identity it carries.
func ParseToken(secret, tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	return IdentityFromClaims(claims)
}

// IdentityFromClaims reads the identity claims; user_id must be a UUID.
func IdentityFromClaims(claims jwt.MapClaims) (Identity, error) {
	raw, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(raw)
	if err != nil || userID == uuid.Nil {
		return Identity{}, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	name, _ := claims["name"].(string)
	return Identity{UserID: userID, Role: role, Name: name}, nil
}
