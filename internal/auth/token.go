package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// Token verification errors. The middleware logs which one occurred
// but clients receive a uniform 401 regardless.
var (
	// ErrTokenMalformed indicates the string is not a parseable JWT.
	ErrTokenMalformed = errors.New("malformed token")
	// ErrTokenExpired indicates the token's expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenSignature indicates the signature does not verify against
	// the server's signing secret.
	ErrTokenSignature = errors.New("invalid token signature")
	// ErrTokenInvalid covers any other verification failure.
	ErrTokenInvalid = errors.New("invalid token")
)

// claims carries the registered claim set plus the subject user ID.
type claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

// TokenCodec issues and verifies signed, time-bound bearer tokens.
// Tokens are stateless: validity is determined solely by signature and
// expiry, never by a server-side lookup, so a token cannot be revoked
// before its natural expiry.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a codec around the process-wide signing
// secret. An empty secret is a configuration error; the process must
// not start in an unsigned state.
func NewTokenCodec(secret []byte) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, errors.New("signing secret must not be empty")
	}
	return &TokenCodec{secret: secret}, nil
}

// Issue builds an HS256-signed token for userID valid for ttl. Each
// token carries a fresh issue timestamp and a ULID token ID.
func (c *TokenCodec) Issue(userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        ulid.Make().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of tokenString and returns
// the subject user ID. Expiry is a hard boundary: a token is rejected
// the moment now reaches expires_at.
func (c *TokenCodec) Verify(tokenString string) (int64, error) {
	parsed := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenMalformed):
		return 0, ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return 0, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return 0, ErrTokenSignature
	default:
		return 0, ErrTokenInvalid
	}

	if !token.Valid {
		return 0, ErrTokenInvalid
	}
	return parsed.UserID, nil
}
