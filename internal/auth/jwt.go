package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskhive-dev/taskhive/internal/models"
)

var (
	jwtSecret string
	jwtTTL    = 30 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is what a verified credential resolves to.
type Claims struct {
	UserID uint
	Role   models.Role
}

func InitJWT(secret string, expireDays int) error {
	if secret == "" {
		return fmt.Errorf("JWT secret is not set")
	}
	jwtSecret = secret
	if expireDays > 0 {
		jwtTTL = time.Duration(expireDays) * 24 * time.Hour
	}
	return nil
}

func GenerateJWT(userID uint, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(jwtTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

func VerifyJWT(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	userIDFloat, ok := mapClaims["user_id"].(float64)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	role, _ := mapClaims["role"].(string)

	return Claims{UserID: uint(userIDFloat), Role: models.Role(role)}, nil
}
