package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mycontacts-api/config"
	"github.com/oksasatya/mycontacts-api/internal/application"
	"github.com/oksasatya/mycontacts-api/internal/container"
	pginfra "github.com/oksasatya/mycontacts-api/internal/infrastructure/postgres"
	"github.com/oksasatya/mycontacts-api/pkg/helpers"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "password123"
)

var demoContacts = []application.CreateContactInput{
	{FirstName: "Ada", LastName: "Lovelace", Phone: "+441234567890"},
	{FirstName: "Alan", LastName: "Turing", Phone: "+441098765432"},
	{FirstName: "Grace", LastName: "Hopper", Phone: "+12025550143"},
}

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	c := container.New(cfg, logger)
	defer c.Close()
	c.Pool, err = pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2, AppName: cfg.AppName + "-seed"})
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	auth := c.AuthService()
	if _, err := auth.Register(ctx, demoEmail, demoPassword); err != nil {
		if !errors.Is(err, application.ErrDuplicateIdentity) {
			logger.Fatalf("failed to seed user: %v", err)
		}
		logger.WithField("email", demoEmail).Info("demo user already exists, skipping")
		return
	}

	contacts := c.ContactService()
	for _, in := range demoContacts {
		ct, err := contacts.Create(ctx, demoEmail, in)
		if err != nil {
			logger.Fatalf("failed to seed contact: %v", err)
		}
		logger.WithFields(logrus.Fields{"id": ct.ID, "name": ct.FirstName + " " + ct.LastName}).Info("seeded contact")
	}
	logger.WithField("email", demoEmail).Info("seeded demo user")
}
