package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mycontacts-api/config"
	"github.com/oksasatya/mycontacts-api/internal/container"
	pginfra "github.com/oksasatya/mycontacts-api/internal/infrastructure/postgres"
	"github.com/oksasatya/mycontacts-api/internal/router"
	"github.com/oksasatya/mycontacts-api/pkg/helpers"
	"github.com/oksasatya/mycontacts-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()
	c := container.New(cfg, logger)
	defer c.Close()

	// Postgres
	c.Pool, err = pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
		MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns, MaxConnLife: cfg.DBMaxConnLife, AppName: cfg.AppName,
	})
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	connectOptional(ctx, c)

	r := router.NewEngine(c)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

// connectOptional opens the clients whose features degrade gracefully when absent.
func connectOptional(ctx context.Context, c *container.Container) {
	cfg, logger := c.Config, c.Logger

	if cfg.RedisAddr != "" {
		rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			helpers.LogError(logger, "redis unavailable, contact cache disabled", err, logrus.Fields{"addr": cfg.RedisAddr})
		} else {
			c.Redis = rdb
		}
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		ectx, cancel := context.WithTimeout(ctx, 10*time.Second)
		es, err := helpers.NewESClient(ectx, addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			helpers.LogError(logger, "elasticsearch unavailable, using SQL search", err, nil)
		} else {
			c.ES = es
			if err := c.ContactIndex().EnsureIndex(ectx); err != nil {
				helpers.LogError(logger, "elasticsearch index setup failed, using SQL search", err, logrus.Fields{"index": cfg.ESContactsIndex})
				c.ES = nil
			}
		}
		cancel()
	}

	if cfg.GCSBucket != "" {
		gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			helpers.LogError(logger, "gcs client failed, photo upload disabled", err, logrus.Fields{"bucket": cfg.GCSBucket})
		} else {
			c.GCS = gcs
		}
	}

	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			helpers.LogError(logger, "rabbitmq unavailable, welcome emails disabled", err, nil)
		} else {
			c.Publisher = pub
		}
	}
}
