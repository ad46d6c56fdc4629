package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued credential stays valid.
const TokenTTL = 7 * 24 * time.Hour

var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenInvalid   = errors.New("token is invalid")
)

// IssueToken mints an HS256 credential embedding the user id as subject,
// expiring TokenTTL from now. Pure computation over the secret and the clock.
func IssueToken(secret []byte, userID int64) (string, error) {
	now := time.Now()
	return signToken(secret, userID, now, now.Add(TokenTTL))
}

func signToken(secret []byte, userID int64, issuedAt, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"iat": issuedAt.Unix(),
		"exp": expiresAt.Unix(),
	})
	return token.SignedString(secret)
}

// ParseToken verifies a credential and returns the embedded user id. It does
// not check that the user still exists; that is the caller's concern, if it
// is one at all. Failure modes are distinguished so the middleware can report
// expired tokens differently from forged or garbled ones.
func ParseToken(secret []byte, tokenStr string) (int64, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return 0, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		default:
			return 0, ErrTokenInvalid
		}
	}
	if !token.Valid {
		return 0, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrTokenInvalid
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, ErrTokenInvalid
	}
	return int64(sub), nil
}
