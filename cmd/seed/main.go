package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/escafood/kasadefteri-backend/internal/users"
	"github.com/escafood/kasadefteri-backend/pkg/config"
	"github.com/escafood/kasadefteri-backend/pkg/db"
	"github.com/escafood/kasadefteri-backend/pkg/enums"
	"github.com/escafood/kasadefteri-backend/pkg/logger"
)

// Seeds the first admin account so the identity header has someone to
// resolve. Safe to re-run; an existing username is left untouched.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	username := flag.String("username", "admin", "username for the seeded admin account")
	displayName := flag.String("display-name", "Yönetici", "display name for the seeded admin account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	usersRepo := users.NewRepository(dbClient.DB())
	userService, err := users.NewService(usersRepo, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to create user service", err)
		os.Exit(1)
	}

	if existing, err := userService.GetByUsername(ctx, *username); err == nil && existing != nil {
		fmt.Printf("account %q already exists, nothing to do\n", *username)
		return
	}

	result, err := userService.Create(ctx, "seed", users.CreateInput{
		Username:    *username,
		DisplayName: *displayName,
		Role:        enums.UserRoleAdmin,
	})
	if err != nil {
		logg.Error(ctx, "failed to seed admin account", err)
		os.Exit(1)
	}

	fmt.Printf("seeded admin account %q\n", result.User.Username)
	fmt.Printf("one-time password: %s\n", result.TempPassword)
}
