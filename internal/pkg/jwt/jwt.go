package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ErrNoSecret is returned when verification is attempted without a secret.
var ErrNoSecret = errors.New("jwt secret is not configured")

// Claims is the payload of a backend access token.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwtlib.RegisteredClaims
}

// UserID returns the authenticated user id carried in "sub".
func (c *Claims) UserID() string { return c.Subject }

// Verifier checks HS256 access tokens issued by the auth backend.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Enabled reports whether a secret is configured.
func (v *Verifier) Enabled() bool { return v != nil && len(v.secret) > 0 }

// Sign creates a signed token for userID. Used by tooling and tests.
func (v *Verifier) Sign(userID, email string, ttl time.Duration) (string, error) {
	if !v.Enabled() {
		return "", ErrNoSecret
	}
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  "authenticated",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// Parse validates a token string and returns the claims.
func (v *Verifier) Parse(tokenStr string) (*Claims, error) {
	if !v.Enabled() {
		return nil, ErrNoSecret
	}
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return claims, nil
}
