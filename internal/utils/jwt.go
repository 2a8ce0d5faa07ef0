package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Typed validation outcomes. Handlers collapse all of them into a
// single 401; the distinction exists for logging.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("invalid token signature")
	ErrTokenMalformed = errors.New("malformed token")
)

// Claims carries the identity asserted by a validated token
type Claims struct {
	UserID   string
	Username string
}

// JWTManager issues and validates HMAC-signed bearer tokens. Tokens
// carry subject=username plus a userId claim.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTManager creates a new JWTManager
func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime
func (m *JWTManager) TTL() time.Duration {
	return m.ttl
}

// Issue produces a signed token for the given user
func (m *JWTManager) Issue(userID, username string) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":    username,
		"userId": userID,
		"iat":    now.Unix(),
		"exp":    now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate verifies the signature and expiry and returns the asserted
// identity. Failures map onto the typed outcome set above.
func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	username, _ := mapClaims["sub"].(string)
	userID, _ := mapClaims["userId"].(string)
	if username == "" || userID == "" {
		return nil, ErrTokenMalformed
	}

	return &Claims{UserID: userID, Username: username}, nil
}
