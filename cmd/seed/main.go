package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"trtlmarket/internal/config"
	"trtlmarket/internal/db"
	"trtlmarket/internal/logging"
	"trtlmarket/internal/model"
	"trtlmarket/internal/repository"
	"trtlmarket/internal/validation"
)

const bcryptCost = 10

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	log.Info("Starting seed script...")

	if cfg.SeedAdminUsername == "" || cfg.SeedAdminPassword == "" {
		log.Fatal("SEED_ADMIN_USERNAME and SEED_ADMIN_PASSWORD are required")
	}

	// Connect to database
	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Info("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Info("Database migrations completed")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := seedAdmin(ctx, repository.NewUserRepository(gormDB), cfg.SeedAdminUsername, cfg.SeedAdminPassword)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	log.WithFields(logrus.Fields{
		"username": cfg.SeedAdminUsername,
		"created":  created,
	}).Info("Seed completed successfully")
}

// seedAdmin creates the admin account, or promotes an existing user with that name.
func seedAdmin(ctx context.Context, users repository.UserRepository, username, password string) (bool, error) {
	username = validation.Clean(username)
	if len(password) < 8 || len(password) > 32 {
		return false, errors.New("admin password must be 8 to 32 characters")
	}

	existing, err := users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if existing.Role == model.RoleAdmin {
			return false, nil
		}
		if err := users.UpdateRole(ctx, existing.ID, model.RoleAdmin); err != nil {
			return false, fmt.Errorf("promote %s: %w", username, err)
		}
		return false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return false, fmt.Errorf("find %s: %w", username, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	admin := &model.User{
		Username: username,
		Password: string(hashed),
		Role:     model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("create %s: %w", username, err)
	}
	return true, nil
}
