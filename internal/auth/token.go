package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token validity errors. ErrTokenMissing is returned by callers that
// cannot even extract a bearer token from the request.
var (
	ErrTokenMissing = errors.New("authorization token missing")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// TokenTTL is how long an issued session token stays valid. There is no
// revocation list: a token is trusted until it expires.
const TokenTTL = 24 * time.Hour

// Claims binds a user identity to the standard expiry claim.
type Claims struct {
	jwt.RegisteredClaims
	UserID uint `json:"user_id"`
}

// TokenService issues and validates signed, time-limited session tokens.
// Validation is stateless: signature check plus expiry comparison, no
// server-side session table.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

func (s *TokenService) Issue(userID uint, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	})

	return token.SignedString(s.secret)
}

// ParseUserID validates the token and returns the user id it encodes.
func (s *TokenService) ParseUserID(tokenString string) (uint, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}

	if !token.Valid || claims.UserID == 0 {
		return 0, ErrTokenInvalid
	}

	return claims.UserID, nil
}
