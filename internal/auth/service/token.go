package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens carry the subject, purpose and a unique jti so that two logins by
// the same user never mint the same string. There is no exp claim: the
// allow-list is the single source of validity, so revocation is the only way
// a token dies.
func signToken(secret []byte, userID, purpose, jti string) (string, error) {
	claims := jwt.MapClaims{
		"sub":     userID,
		"purpose": purpose,
		"jti":     jti,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func parseToken(secret []byte, tokenString string) (userID, purpose string, err error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		if err == nil {
			err = errors.New("token is not valid")
		}
		return "", "", err
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid claims type")
	}

	sub, _ := mapClaims["sub"].(string)
	p, _ := mapClaims["purpose"].(string)
	if sub == "" || p == "" {
		return "", "", errors.New("missing sub or purpose claims")
	}

	return sub, p, nil
}
