package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Olprog59/go-realty/internal/config"
	"github.com/Olprog59/go-realty/internal/dto"
	"github.com/Olprog59/go-realty/internal/ports"
	"github.com/Olprog59/go-realty/internal/repository"
	"github.com/Olprog59/go-realty/internal/service/auth"
)

// dummyHash is compared against when no account matches the email, so a
// failed login costs the same whether or not the account exists.
const dummyHash = "$2a$12$9yiKWAiW1VLs7obsMQy1Guq0j5eeBNmL0yLXDI1P0PnMPoWwDhFrq"

// AuthMetricsRecorder records authentication metrics / Enregistre les métriques d'authentification
type AuthMetricsRecorder interface {
	RecordLoginAttempt(success bool)
	RecordTokenRefresh()
	RecordInvalidToken()
}

// AuthService handles login, token rotation, and password changes / Gère la connexion, la rotation des jetons et les changements de mot de passe
type AuthService struct {
	users   ports.UserRepository
	tokens  *auth.TokenManager
	metrics AuthMetricsRecorder
	conf    *config.Config
}

// NewAuthService creates an authentication service instance / Crée une instance du service d'authentification
func NewAuthService(users ports.UserRepository, tokens *auth.TokenManager, metrics AuthMetricsRecorder, conf *config.Config) *AuthService {
	return &AuthService{users: users, tokens: tokens, metrics: metrics, conf: conf}
}

// Login verifies credentials and issues a token pair. Every failure path
// collapses into the same invalid-credentials outcome.
func (s *AuthService) Login(ctx context.Context, email, password string) (*auth.TokenPair, *dto.UserResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			s.metrics.RecordLoginAttempt(false)
			return nil, nil, ErrInvalidCredentials
		}
		slog.Error("failed to load user during login", "err", err)
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.metrics.RecordLoginAttempt(false)
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.GeneratePair(u)
	if err != nil {
		slog.Error("failed to issue token pair", "user_id", u.ID.Hex(), "err", err)
		return nil, nil, err
	}

	s.metrics.RecordLoginAttempt(true)
	return pair, dto.UserToDTO(u), nil
}

// Refresh rotates a token pair. The refresh token must verify with the
// refresh type marker, and the account must still exist; the returned pair
// carries fresh jtis and expiries.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		s.metrics.RecordInvalidToken()
		return nil, auth.ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			s.metrics.RecordInvalidToken()
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}

	pair, err := s.tokens.GeneratePair(u)
	if err != nil {
		slog.Error("failed to rotate token pair", "user_id", u.ID.Hex(), "err", err)
		return nil, err
	}

	s.metrics.RecordTokenRefresh()
	return pair, nil
}

// Validate verifies an access token and returns its claims / Vérifie un jeton d'accès et retourne ses claims
func (s *AuthService) Validate(token string) (*auth.Claims, error) {
	claims, err := s.tokens.ValidateAccess(token)
	if err != nil {
		s.metrics.RecordInvalidToken()
		return nil, auth.ErrInvalidToken
	}
	return claims, nil
}

// UpdatePassword changes the password of the authenticated account after
// re-checking the current one.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 || len(newPassword) > 72 {
		return &ValidationError{Fields: []string{"newPassword: must be between 8 and 72 characters"}}
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return mapStoreError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.conf.Security.BcryptCost)
	if err != nil {
		slog.Error("failed to hash new password", "user_id", userID, "err", err)
		return err
	}

	if err := s.users.UpdateFields(ctx, userID, map[string]any{"password": string(hashed)}); err != nil {
		return mapStoreError(err)
	}
	return nil
}
