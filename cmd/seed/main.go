// seed registers a demo user in the local dev database through the same
// register path the API uses.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ErlanBelekov/authapi/internal/domain"
	"github.com/ErlanBelekov/authapi/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/authapi/internal/password"
	"github.com/ErlanBelekov/authapi/internal/token"
	"github.com/ErlanBelekov/authapi/internal/usecase"
)

const (
	seedUsername = "seed"
	seedEmail    = "seed@test.local"
	seedPassword = "seed-password"
)

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Seeding never logs in, so the token service is never asked to sign.
	tokens := token.NewService([]byte(os.Getenv("JWT_SECRET")), 0)
	uc := usecase.NewAuthUsecase(
		postgres.NewUserRepository(pool),
		password.NewBcryptHasher(password.DefaultCost),
		tokens,
	)

	user, err := uc.Register(ctx, usecase.RegisterInput{
		Username:        seedUsername,
		Email:           seedEmail,
		Password:        seedPassword,
		ConfirmPassword: seedPassword,
	})
	switch {
	case errors.Is(err, domain.ErrUserExists):
		fmt.Println("Seed user already exists, nothing to do")
	case err != nil:
		log.Fatalf("register seed user: %v", err)
	default:
		fmt.Println("Seed complete")
		fmt.Println()
		fmt.Printf("  User:     %s\n", seedEmail)
		fmt.Printf("  User ID:  %s\n", user.ID)
	}

	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println("    # → {\"message\":\"...\",\"token\":\"eyJ...\"}")
	fmt.Println()
	fmt.Println("  Step 2 — fetch the user:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/user/USER_ID -H \"Authorization: Bearer $JWT\"")
}
