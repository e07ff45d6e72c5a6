package mongo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Olprog59/go-realty/internal/domain"
	"github.com/Olprog59/go-realty/internal/ports"
)

var _ ports.UserRepository = (*UserRepository)(nil)

// UserRepository wraps the users collection / Encapsule la collection des utilisateurs
type UserRepository struct {
	repo[domain.User]
}

// NewUserRepository creates the users repository / Crée le repository des utilisateurs
func NewUserRepository(db *mongo.Database, collection string, timeout time.Duration) *UserRepository {
	return &UserRepository{repo[domain.User]{coll: db.Collection(collection), timeout: timeout}}
}

func (r *UserRepository) List(ctx context.Context, skip, limit int64) ([]*domain.User, error) {
	return r.find(ctx, bson.M{}, skip, limit)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{})
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getByID(ctx, id)
}

// GetByEmail looks up the unique account for an email / Recherche le compte unique pour un email
// Emails are stored lowercased; the lookup normalizes the same way.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *UserRepository) Insert(ctx context.Context, u *domain.User) (string, error) {
	u.Email = strings.ToLower(u.Email)
	return r.insert(ctx, u)
}

func (r *UserRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if email, ok := fields["email"].(string); ok {
		fields["email"] = strings.ToLower(email)
	}
	return r.updateFields(ctx, id, fields)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, id)
}
