// Package mongo implements the entity repositories on top of the MongoDB
// driver. Every operation is bounded by the configured per-operation timeout
// and translates driver errors into the typed repository sentinels.
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Olprog59/go-realty/internal/repository"
)

// Connect opens a client and verifies connectivity / Ouvre un client et vérifie la connectivité
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, translate(err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, translate(err)
	}
	return client, nil
}

// EnsureIndexes creates the indexes the query pipeline relies on / Crée les index nécessaires au pipeline de requêtes
// users.email is unique; image and trace lookups go through idProperty.
func EnsureIndexes(ctx context.Context, db *mongo.Database, users, images, traces string) error {
	_, err := db.Collection(users).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return translate(err)
	}

	byProperty := mongo.IndexModel{Keys: bson.D{{Key: "idProperty", Value: 1}}}
	for _, coll := range []string{images, traces} {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, byProperty); err != nil {
			return translate(err)
		}
	}
	return nil
}

// translate maps driver errors to repository sentinels / Traduit les erreurs du driver vers les sentinelles du repository
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNoRecord
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDup
	case mongo.IsTimeout(err), mongo.IsNetworkError(err),
		errors.Is(err, context.DeadlineExceeded):
		return errors.Join(repository.ErrUnavailable, err)
	default:
		return err
	}
}

// oid parses a hex document id / Analyse un id de document hexadécimal
// A malformed id can never match a stored document, so callers treat the
// failure as a missing record.
func oid(id string) (primitive.ObjectID, bool) {
	parsed, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return parsed, true
}
