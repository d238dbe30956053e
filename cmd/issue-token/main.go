// issue-token 依 email 找到（或建立）使用者並印出 access token，開發時用來代替登入流程
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"go-gin-events/config"
	"go-gin-events/internal/auth"
	"go-gin-events/internal/database"
	"go-gin-events/internal/model"
	"go-gin-events/internal/repository"
	apperrors "go-gin-events/pkg/app_errors"
)

func main() {
	email := flag.String("email", "", "user email (required)")
	name := flag.String("name", "", "display name when the user is created")
	flag.Parse()

	if *email == "" {
		log.Fatal("-email is required")
	}

	cfg := config.LoadConfig()
	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	user, err := findOrCreateUser(ctx, repository.NewUserRepository(pool), *email, *name)
	if err != nil {
		log.Fatalf("Failed to load user: %v", err)
	}

	token, expiresAt, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL).Issue(user.ID)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	fmt.Printf("user_id:    %s\n", user.ID)
	fmt.Printf("expires_at: %s\n", expiresAt.Format(time.RFC3339))
	fmt.Printf("cookie:     %s=%s\n", cfg.Auth.CookieName, token)
}

func findOrCreateUser(ctx context.Context, users repository.UserRepository, email, name string) (*model.User, error) {
	user, err := users.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	if name == "" {
		name = email
	}
	return users.Create(ctx, &model.User{Name: name, Email: email})
}
