package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mycontacts-api/config"
	"github.com/oksasatya/mycontacts-api/internal/application"
	"github.com/oksasatya/mycontacts-api/internal/domain/repository"
	"github.com/oksasatya/mycontacts-api/internal/infrastructure/cache"
	esinfra "github.com/oksasatya/mycontacts-api/internal/infrastructure/elasticsearch"
	gcsinfra "github.com/oksasatya/mycontacts-api/internal/infrastructure/gcs"
	pginfra "github.com/oksasatya/mycontacts-api/internal/infrastructure/postgres"
	"github.com/oksasatya/mycontacts-api/pkg/helpers"
)

// Container holds the components constructed at startup. It is built once in main
// and passed to the router; optional clients are nil when not configured.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Pool      *pgxpool.Pool
	Redis     *redis.Client
	ES        *elasticsearch.Client
	GCS       *storage.Client
	Publisher *helpers.RabbitPublisher
	Metrics   *prometheus.Registry

	JWT    *helpers.JWTManager
	Hasher *helpers.PasswordHasher

	// Users and Contacts override the Postgres repositories when set.
	Users    repository.UserRepository
	Contacts repository.ContactRepository
}

func New(cfg *config.Config, logger *logrus.Logger) *Container {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: reg,
		JWT:     helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
		Hasher:  helpers.NewPasswordHasher(cfg.BcryptCost),
	}
}

func (c *Container) UserRepository() repository.UserRepository {
	if c.Users != nil {
		return c.Users
	}
	return pginfra.NewUserRepository(c.Pool)
}

func (c *Container) ContactRepository() repository.ContactRepository {
	if c.Contacts != nil {
		return c.Contacts
	}
	return pginfra.NewContactRepository(c.Pool)
}

// ContactIndex returns nil when Elasticsearch is not configured.
func (c *Container) ContactIndex() *esinfra.ContactIndex {
	if c.ES == nil {
		return nil
	}
	return esinfra.NewContactIndex(c.ES, c.Config.ESContactsIndex)
}

func (c *Container) AuthService() *application.AuthService {
	svc := application.NewAuthService(c.UserRepository(), c.Hasher, c.JWT, nil, c.Config.AppName, c.Logger)
	if c.Publisher != nil {
		svc.Jobs = c.Publisher
	}
	return svc
}

func (c *Container) ContactService() *application.ContactService {
	svc := application.NewContactService(c.ContactRepository(), c.Logger)
	if c.Redis != nil {
		svc.Cache = cache.NewContactCache(c.Redis, c.Config.ContactsCacheTTL)
	}
	if idx := c.ContactIndex(); idx != nil {
		svc.Index = idx
	}
	if c.GCS != nil && c.Config.GCSBucket != "" {
		svc.Photos = gcsinfra.NewPhotoStore(c.GCS, c.Config.GCSBucket)
	}
	return svc
}

// Close releases every client that was opened.
func (c *Container) Close() {
	if c.Publisher != nil {
		c.Publisher.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}
