package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// DefaultTokenTTL matches the long-lived credential the frontend
// expects. A revoked or disabled account keeps a working token until it
// expires; only login is gated on account state.
const DefaultTokenTTL = 365 * 24 * time.Hour

type accountClaims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager signs account descriptors into HS256 bearer tokens and
// verifies them against the shared secret.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl}
}

func (m *JWTManager) Issue(account domain.Account) (string, error) {
	now := time.Now()
	claims := accountClaims{
		ID:   account.ID,
		Role: string(account.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify checks signature and expiry and returns the embedded account.
// Claims are trusted verbatim; there is no store lookup.
func (m *JWTManager) Verify(tokenString string) (domain.Account, error) {
	var claims accountClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return domain.Account{}, ErrInvalidToken
	}
	if claims.ID == "" || claims.Role == "" {
		return domain.Account{}, ErrInvalidToken
	}

	return domain.Account{ID: claims.ID, Role: domain.Role(claims.Role)}, nil
}
