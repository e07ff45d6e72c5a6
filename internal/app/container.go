// Package app wires the application together: store connection, index
// bootstrap, repositories, cache, and services.
package app

import (
	"context"
	"fmt"
	"log/slog"

	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/Olprog59/go-realty/internal/cache"
	"github.com/Olprog59/go-realty/internal/config"
	"github.com/Olprog59/go-realty/internal/metrics"
	"github.com/Olprog59/go-realty/internal/ports"
	"github.com/Olprog59/go-realty/internal/repository/mongo"
	"github.com/Olprog59/go-realty/internal/service"
	"github.com/Olprog59/go-realty/internal/service/auth"
)

// Container holds application dependencies / Contient les dépendances de l'application
type Container struct {
	Config  *config.Config
	Client  *mongodriver.Client
	Metrics *metrics.Metrics
	Cache   ports.Cache
	Tokens  *auth.TokenManager

	PropertyRepo ports.PropertyRepository
	OwnerRepo    ports.OwnerRepository
	ImageRepo    ports.ImageRepository
	TraceRepo    ports.TraceRepository
	UserRepo     ports.UserRepository

	PropertySvc *service.PropertyService
	OwnerSvc    *service.OwnerService
	ImageSvc    *service.ImageService
	TraceSvc    *service.TraceService
	UserSvc     *service.UserService
	AuthSvc     *service.AuthService
}

// NewContainer initializes application container / Initialise le conteneur de l'application
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	// Metrics first, nothing depends on them / Métriques d'abord, rien n'en dépend
	c.Metrics = metrics.NewMetrics(nil)

	if err := c.initStore(ctx); err != nil {
		return nil, fmt.Errorf("store init: %w", err)
	}

	c.initCache()
	c.initRepositories()
	c.initServices()

	c.Metrics.SetStoreUp(true)
	return c, nil
}

// initStore connects to the document store and bootstraps indexes / Se connecte au store de documents et amorce les index
func (c *Container) initStore(ctx context.Context) error {
	client, err := mongo.Connect(ctx, c.Config.Mongo.URI, c.Config.Mongo.OpTimeout)
	if err != nil {
		return err
	}
	c.Client = client

	db := client.Database(c.Config.Mongo.Database)
	cols := c.Config.Mongo.Collections
	if err := mongo.EnsureIndexes(ctx, db, cols.Users, cols.Images, cols.Traces); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("index bootstrap: %w", err)
	}

	slog.Info("connected to document store", "database", c.Config.Mongo.Database)
	return nil
}

// initCache builds the TTL result cache with hit/miss counters / Construit le cache TTL avec compteurs de succès/échecs
func (c *Container) initCache() {
	store := cache.New(
		c.Config.Cache.Capacity,
		c.Config.Cache.Shards,
		c.Config.Cache.TTL,
		c.Config.Cache.EvictionPercentage,
	)
	c.Cache = metrics.InstrumentCache(store, c.Metrics)
}

// initRepositories initializes repositories / Initialise les repositories
func (c *Container) initRepositories() {
	db := c.Client.Database(c.Config.Mongo.Database)
	cols := c.Config.Mongo.Collections
	timeout := c.Config.Mongo.OpTimeout

	c.PropertyRepo = mongo.NewPropertyRepository(db, cols.Properties, timeout)
	c.OwnerRepo = mongo.NewOwnerRepository(db, cols.Owners, timeout)
	c.ImageRepo = mongo.NewImageRepository(db, cols.Images, timeout)
	c.TraceRepo = mongo.NewTraceRepository(db, cols.Traces, timeout)
	c.UserRepo = mongo.NewUserRepository(db, cols.Users, timeout)
}

// initServices initializes application services / Initialise les services applicatifs
func (c *Container) initServices() {
	c.Tokens = auth.NewTokenManager(c.Config.Auth)

	c.PropertySvc = service.NewPropertyService(c.PropertyRepo, c.OwnerRepo, c.ImageRepo, c.TraceRepo, c.Cache)
	c.OwnerSvc = service.NewOwnerService(c.OwnerRepo, c.Cache)
	c.ImageSvc = service.NewImageService(c.ImageRepo, c.PropertyRepo, c.Cache)
	c.TraceSvc = service.NewTraceService(c.TraceRepo, c.PropertyRepo, c.Cache)
	c.UserSvc = service.NewUserService(c.UserRepo, c.Cache, c.Config)
	c.AuthSvc = service.NewAuthService(c.UserRepo, c.Tokens, c.Metrics, c.Config)
}

// Ping checks store connectivity / Vérifie la connectivité du store
func (c *Container) Ping(ctx context.Context) error {
	err := c.Client.Ping(ctx, nil)
	c.Metrics.SetStoreUp(err == nil)
	return err
}

// Close performs graceful shutdown / Effectue un arrêt gracieux
func (c *Container) Close(ctx context.Context) error {
	if c.Client != nil {
		slog.Info("disconnecting from document store")
		return c.Client.Disconnect(ctx)
	}
	return nil
}
