package utils

import (
	"time"

	"github.com/golang-jwt/jwt"
	"streamhaven/infrastructure/logger"
)

func GetCurrentTime() time.Time {
	return time.Now().UTC()
}

// GenerateToken mints an HS256 viewer token. Used by the identity
// collaborator's tooling and by tests; this engine itself only verifies.
func GenerateToken(payload map[string]interface{}, secretKey string) (string, error) {
	var claims jwt.MapClaims = payload
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while generate token")
		return "", err
	}
	return tokenString, nil
}
