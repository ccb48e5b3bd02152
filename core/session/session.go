package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Data is the full session state; the server keeps no session table.
type Data struct {
	AdminID uuid.UUID `json:"admin_id"`
	Email   string    `json:"email"`
}

// Authority issues and verifies signed admin session tokens. The signing
// secret is injected at construction so tests can use deterministic keys.
type Authority struct {
	secret []byte
	ttl    time.Duration
}

func NewAuthority(secret string, ttl time.Duration) *Authority {
	return &Authority{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (a *Authority) TTL() time.Duration {
	return a.ttl
}

func (a *Authority) Issue(adminID uuid.UUID, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": adminID.String(),
		"email":    email,
		"iat":      now.Unix(),
		"exp":      now.Add(a.ttl).Unix(),
	})
	return token.SignedString(a.secret)
}

// Verify checks signature and expiry. Every failure mode (bad signature,
// expired, malformed) yields the same (nil, false) so callers cannot tell
// which credential part failed.
func (a *Authority) Verify(tokenString string) (*Data, bool) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, false
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}

	adminIDRaw, ok := claims["admin_id"].(string)
	if !ok {
		return nil, false
	}
	adminID, err := uuid.Parse(adminIDRaw)
	if err != nil {
		return nil, false
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, false
	}

	return &Data{
		AdminID: adminID,
		Email:   email,
	}, true
}
