package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const sessionIssuer = "encoraja"

// JWTSessionStore issues HS256 signed tokens carrying the user id. Logout
// marks the token id as revoked until the token would have expired anyway.
type JWTSessionStore struct {
	secret  []byte
	ttl     time.Duration
	revoker TokenRevoker
}

// NewJWTSessionStore builds a session store from a shared secret.
func NewJWTSessionStore(secret string, ttl time.Duration, revoker TokenRevoker) (*JWTSessionStore, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if revoker == nil {
		revoker = NewMemoryTokenRevoker()
	}
	return &JWTSessionStore{secret: []byte(secret), ttl: ttl, revoker: revoker}, nil
}

// NewSession signs a token for the user.
func (s *JWTSessionStore) NewSession(userID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    sessionIssuer,
		Subject:   userID,
		ID:        NewID(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// GetUserIDByToken validates the token and returns the bound user id.
// Expired, malformed and revoked tokens all report (_, false, nil).
func (s *JWTSessionStore) GetUserIDByToken(token string) (string, bool, error) {
	claims, ok := s.parse(token)
	if !ok {
		return "", false, nil
	}
	revoked, err := s.revoker.IsRevoked(claims.ID)
	if err != nil {
		return "", false, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return "", false, nil
	}
	return claims.Subject, true, nil
}

// DeleteSession revokes the token until its natural expiry.
func (s *JWTSessionStore) DeleteSession(token string) error {
	claims, ok := s.parse(token)
	if !ok {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.revoker.Revoke(claims.ID, ttl)
}

func (s *JWTSessionStore) parse(token string) (*jwt.RegisteredClaims, bool) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, false
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, false
	}
	return claims, true
}
