// Package auth issues and verifies the signed tokens of the API: short-lived
// access tokens carrying identity claims and long-lived refresh tokens that
// carry nothing but the subject.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Olprog59/go-realty/internal/config"
	"github.com/Olprog59/go-realty/internal/domain"
)

// Token type markers / Marqueurs de type de jeton
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrInvalidToken covers every verification failure. Callers never learn
// whether a token was expired, malformed, or forged.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload of both token kinds / Charge utile des deux types de jetons
type Claims struct {
	jwt.RegisteredClaims
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"type"`
}

// TokenPair is the wire shape of an issued pair / Forme réseau d'une paire émise
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"` // Access token lifetime in seconds / Durée de vie du jeton d'accès en secondes
}

// TokenManager signs and verifies token pairs / Signe et vérifie les paires de jetons
type TokenManager struct {
	secret     []byte
	issuer     string
	audience   string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager creates a token manager from configuration / Crée un gestionnaire de jetons depuis la configuration
func NewTokenManager(conf config.AuthConfig) *TokenManager {
	return &TokenManager{
		secret:     []byte(conf.JWTSecret),
		issuer:     conf.Issuer,
		audience:   conf.Audience,
		accessTTL:  conf.AccessTokenDuration,
		refreshTTL: conf.RefreshTokenDuration,
	}
}

// GeneratePair issues a fresh access/refresh pair for a user. Each token gets
// its own jti, so a rotated pair never collides with the one it replaces.
func (m *TokenManager) GeneratePair(u *domain.User) (*TokenPair, error) {
	now := time.Now()

	access, err := m.sign(Claims{
		RegisteredClaims: m.registered(u.ID.Hex(), now, m.accessTTL),
		Name:             u.Name,
		Email:            u.Email,
		Role:             string(u.Role),
		TokenType:        TokenTypeAccess,
	})
	if err != nil {
		return nil, err
	}

	refresh, err := m.sign(Claims{
		RegisteredClaims: m.registered(u.ID.Hex(), now, m.refreshTTL),
		TokenType:        TokenTypeRefresh,
	})
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(m.accessTTL.Seconds()),
	}, nil
}

// ValidateAccess verifies an access token and returns its claims / Vérifie un jeton d'accès et retourne ses claims
func (m *TokenManager) ValidateAccess(raw string) (*Claims, error) {
	return m.validate(raw, TokenTypeAccess)
}

// ValidateRefresh verifies a refresh token and returns its claims / Vérifie un jeton de rafraîchissement et retourne ses claims
func (m *TokenManager) ValidateRefresh(raw string) (*Claims, error) {
	return m.validate(raw, TokenTypeRefresh)
}

func (m *TokenManager) registered(subject string, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    m.issuer,
		Audience:  jwt.ClaimStrings{m.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}
}

func (m *TokenManager) sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// validate parses and verifies a token, failing closed: the signing method,
// issuer, audience, expiry, and type marker must all check out.
func (m *TokenManager) validate(raw, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.TokenType != wantType || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
