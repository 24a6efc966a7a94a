// Seeds the default admin and team-member accounts for local development.
package main

import (
	"errors"
	"log"

	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/config"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := db.ConnectDatabase(config.AppConfig.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	s := store.New(db.DB)

	seed(s, "Admin User", "admin@example.com", models.RoleAdmin)
	seed(s, "Team Member", "team@example.com", models.RoleTeamMember)
}

func seed(s *store.Store, name, email string, role models.Role) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         role,
	}

	if err := s.CreateUser(user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			log.Printf("%s already exists", email)
			return
		}
		log.Fatalf("Failed to create %s: %v", email, err)
	}

	log.Printf("Created %s (%s)", email, role)
}
