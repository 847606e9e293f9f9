package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/logger"

	"interntrack.com/interntrack/config"
	"interntrack.com/interntrack/core/model"
	"interntrack.com/interntrack/core/store"
	"interntrack.com/interntrack/core/store/gormstore"
)

// Seeds the database with a default admin and a couple of demo interns.
// Existing accounts are left untouched.
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.StoreDriver == "memory" {
		log.Fatal("seeding requires a SQL store driver")
	}

	gs, err := gormstore.Open(cfg.StoreDriver, cfg.DSN, logger.Info)
	if err != nil {
		log.Fatalf("open %s store: %v", cfg.StoreDriver, err)
	}
	defer gs.Close()

	if err := gs.AutoMigrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	seedUsers := []struct {
		name       string
		email      string
		password   string
		role       model.UserRole
		department string
	}{
		{"Admin User", "admin@interntrack.com", "admin123", model.RoleAdmin, "Management"},
		{"John Doe", "john@interntrack.com", "intern123", model.RoleIntern, "Engineering"},
		{"Jane Smith", "jane@interntrack.com", "intern123", model.RoleIntern, "Design"},
	}

	users := gs.Users()
	for _, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), 12)
		if err != nil {
			log.Fatal(err)
		}
		department := su.department
		now := time.Now()
		user := &model.User{
			ID:         uuid.NewString(),
			Name:       su.name,
			Email:      su.email,
			Password:   string(hash),
			Role:       su.role,
			Department: &department,
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := users.Create(ctx, user); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				log.Printf("skipping %s, already exists", su.email)
				continue
			}
			log.Fatalf("seed %s: %v", su.email, err)
		}
		log.Printf("created %s (%s)", su.email, su.role)
	}
}
