package pkg

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func secret() ([]byte, error) {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s), nil
	}
	return nil, errors.New("missing JWT_SECRET")
}

// CreateToken mints a 24h HS256 session token carrying the session id.
func CreateToken(sessionID string) (string, error) {
	sec, err := secret()
	if err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(sec)
}

// ParseToken verifies a session token and returns the session id.
func ParseToken(tokenStr string) (string, error) {
	sec, err := secret()
	if err != nil {
		return "", err
	}
	parsed, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return sec, nil
	})
	if err != nil || !parsed.Valid {
		return "", errors.New("invalid session token")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("session id missing from token")
	}
	return sid, nil
}
