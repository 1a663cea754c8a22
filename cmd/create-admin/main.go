package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hamzasiddiqui/bazaarline-backend/internal/users"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/config"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/logger"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/security"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "create-admin"})

	_ = godotenv.Load()

	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password (min 8 characters)")
	name := flag.String("name", "", "display name")
	role := flag.String("role", string(enums.RoleAdmin), "ADMIN or SUPER_ADMIN")
	flag.Parse()

	ctx := context.Background()

	if *email == "" || *password == "" || *name == "" {
		logg.Error(ctx, "email, password and name are required", nil)
		os.Exit(1)
	}
	if len(*password) < 8 {
		logg.Error(ctx, "password must be at least 8 characters", nil)
		os.Exit(1)
	}
	userRole := enums.UserRole(strings.ToUpper(*role))
	if !userRole.IsStaff() {
		logg.Error(ctx, "role must be ADMIN or SUPER_ADMIN", nil)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "create-admin",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		logg.Error(ctx, "failed to connect to database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	repo := users.NewRepository(dbClient.Gorm)
	normalized := strings.ToLower(strings.TrimSpace(*email))

	if existing, err := repo.GetByEmail(ctx, normalized); err == nil && existing != nil {
		logg.Error(logg.WithField(ctx, "email", normalized), "a user with this email already exists", nil)
		os.Exit(1)
	} else if err != nil && !db.IsNotFound(err) {
		logg.Error(ctx, "failed to look up email", err)
		os.Exit(1)
	}

	hasher := security.NewHasher(cfg.Password)
	hash, err := hasher.Hash(*password)
	if err != nil {
		logg.Error(ctx, "failed to hash password", err)
		os.Exit(1)
	}

	user := &models.User{
		Email:    normalized,
		Password: hash,
		Name:     strings.TrimSpace(*name),
		Role:     userRole,
		IsActive: true,
	}
	created, err := repo.Create(ctx, user)
	if err != nil {
		logg.Error(ctx, "failed to create admin user", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"user_id": created.ID.String(),
		"email":   created.Email,
		"role":    string(created.Role),
	})
	logg.Info(ctx, "admin user created")
}
