package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/Olprog59/go-realty/internal/cache"
	"github.com/Olprog59/go-realty/internal/config"
	"github.com/Olprog59/go-realty/internal/domain"
	"github.com/Olprog59/go-realty/internal/dto"
	"github.com/Olprog59/go-realty/internal/ports"
	"github.com/Olprog59/go-realty/internal/repository"
	"github.com/Olprog59/go-realty/internal/validation"
)

// UserService handles account management / Gère la gestion des comptes
type UserService struct {
	users ports.UserRepository
	store ports.Cache
	conf  *config.Config
}

// NewUserService creates a user management service instance / Crée une instance de service de gestion utilisateur
func NewUserService(users ports.UserRepository, store ports.Cache, conf *config.Config) *UserService {
	return &UserService{users: users, store: store, conf: conf}
}

// Register creates a new account. The password is hashed with bcrypt before
// it ever reaches the store; the unique email index catches races with a
// concurrent registration.
func (s *UserService) Register(ctx context.Context, req *dto.UserRequest) (*dto.UserResponse, error) {
	u := dto.UserToModel(req)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if err := validationFailed(validation.User(u)); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.conf.Security.BcryptCost)
	if err != nil {
		slog.Error("failed to hash password during registration", "err", err)
		return nil, err
	}
	u.Password = string(hashed)

	id, err := s.users.Insert(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrDup) {
			return nil, ErrEmailTaken
		}
		slog.Error("failed to insert user", "err", err)
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// List returns one page of accounts / Retourne une page de comptes
func (s *UserService) List(ctx context.Context, page, limit int64, refresh bool) (*dto.Page[*dto.UserResponse], error) {
	page = clampPage(page)
	limit = clampLimit(limit)

	key := cache.PageKey{Entity: "users", Page: page, Limit: limit}.String()

	return loadPage(ctx, s.store, key, refresh, func(ctx context.Context) (*dto.Page[*dto.UserResponse], error) {
		var (
			total int64
			users []*domain.User
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			total, err = s.users.Count(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			users, err = s.users.List(gctx, skipFor(page, limit), limit)
			return err
		})
		if err := g.Wait(); err != nil {
			slog.Error("failed to list users", "err", err)
			return nil, err
		}

		data := make([]*dto.UserResponse, 0, len(users))
		for _, u := range users {
			data = append(data, dto.UserToDTO(u))
		}

		return &dto.Page[*dto.UserResponse]{
			Data: data,
			Meta: dto.PageMeta{
				Page:     page,
				Limit:    limit,
				Total:    total,
				LastPage: lastPage(total, limit),
			},
		}, nil
	})
}

// GetByID retrieves an account by id, through the entity cache / Récupère un compte par id, via le cache d'entités
func (s *UserService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	key := cache.EntityKey("users", "id", id)
	if cached, ok := s.store.Get(key); ok {
		if resp, ok := cached.(*dto.UserResponse); ok {
			return resp, nil
		}
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}

	resp := dto.UserToDTO(u)
	s.store.Set(key, resp)
	return resp, nil
}

// GetByEmail retrieves an account by email, through the entity cache / Récupère un compte par email, via le cache d'entités
func (s *UserService) GetByEmail(ctx context.Context, email string) (*dto.UserResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	key := cache.EntityKey("users", "email", email)
	if cached, ok := s.store.Get(key); ok {
		if resp, ok := cached.(*dto.UserResponse); ok {
			return resp, nil
		}
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, mapStoreError(err)
	}

	resp := dto.UserToDTO(u)
	s.store.Set(key, resp)
	return resp, nil
}

// Patch applies a sparse update to an account. A role change is reserved to
// administrators and rejects the whole patch before anything is written. An
// email change is re-checked for uniqueness, and a new password is hashed
// like at registration. Entity cache entries touched by the change are
// evicted before the fresh state is returned.
func (s *UserService) Patch(ctx context.Context, actorRole domain.UserRole, id string, input map[string]any) (*dto.UserResponse, error) {
	input = dropBlankPassword(input)

	if patchTouches(input, userPatchFields, "role") && actorRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	fields, err := reconcilePatch(input, userPatchFields)
	if err != nil {
		return nil, err
	}

	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}

	newEmail := ""
	if raw, ok := fields["email"]; ok {
		newEmail = strings.ToLower(strings.TrimSpace(raw.(string)))
		fields["email"] = newEmail
		if newEmail != current.Email {
			if _, err := s.users.GetByEmail(ctx, newEmail); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, repository.ErrNoRecord) {
				return nil, err
			}
		}
	}

	if raw, ok := fields["password"]; ok {
		hashed, err := bcrypt.GenerateFromPassword([]byte(raw.(string)), s.conf.Security.BcryptCost)
		if err != nil {
			slog.Error("failed to hash password during update", "user_id", id, "err", err)
			return nil, err
		}
		fields["password"] = string(hashed)
	}

	if err := s.users.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrDup) {
			return nil, ErrEmailTaken
		}
		return nil, mapStoreError(err)
	}

	s.evictUser(id, current.Email)
	if newEmail != "" {
		s.store.Delete(cache.EntityKey("users", "email", newEmail))
	}

	return s.GetByID(ctx, id)
}

// Delete permanently removes an account / Supprime définitivement un compte
func (s *UserService) Delete(ctx context.Context, id string) error {
	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return mapStoreError(err)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return mapStoreError(err)
	}

	s.evictUser(id, current.Email)
	return nil
}

// evictUser drops the entity cache entries of an account / Évince les entrées de cache d'entités d'un compte
func (s *UserService) evictUser(id, email string) {
	s.store.Delete(cache.EntityKey("users", "id", id))
	s.store.Delete(cache.EntityKey("users", "email", email))
}

// dropBlankPassword removes an empty password field so it reads as absent
// rather than invalid.
func dropBlankPassword(input map[string]any) map[string]any {
	out := make(map[string]any, len(input))
	for key, value := range input {
		if strings.EqualFold(key, "password") {
			if s, ok := value.(string); ok && s == "" {
				continue
			}
		}
		out[key] = value
	}
	return out
}
