package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWT issues and verifies principal tokens. The subject claim carries the
// principal's email, the external identity key; the internal user id is
// resolved per request against the database.
type JWT struct {
	Secret string
}

func (j *JWT) CreateToken(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(3 * time.Hour).Unix(),
	})

	return token.SignedString([]byte(j.Secret))
}

func (j *JWT) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(j.Secret), nil
	})

	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", errors.New("invalid access token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return "", errors.New("invalid token claims")
	}

	email, err := claims.GetSubject()

	if err != nil || email == "" {
		return "", errors.New("token missing subject")
	}

	return email, nil
}

func NewFromEnv() *JWT {
	return &JWT{Secret: os.Getenv("JWT_SECRET")}
}

func CreateTokenForEmail(email string) (string, error) {
	return NewFromEnv().CreateToken(email)
}

func VerifyToken(token string) (string, error) {
	return NewFromEnv().VerifyToken(token)
}
