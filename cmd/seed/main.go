package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"notely/internal/auth"
	"notely/internal/config"
	"notely/internal/db"
	"notely/internal/model"
	"notely/internal/repository"
)

type seedUser struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

var seedUsers = []seedUser{
	{Name: "Admin User", Email: "admin@example.com", Password: "admin123", Role: model.RoleAdmin},
	{Name: "Regular User", Email: "user@example.com", Password: "user123", Role: model.RoleUser},
}

func main() {
	log.Println("Starting seed script...")

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Note{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	created := 0
	for _, s := range seedUsers {
		existing, err := userRepo.FindByEmail(ctx, s.Email)
		if err != nil && err != gorm.ErrRecordNotFound {
			log.Fatalf("Error checking user %s: %v", s.Email, err)
		}
		if existing != nil {
			log.Printf("User %s already exists, skipping", s.Email)
			continue
		}

		hash, err := auth.HashPassword(s.Password)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", s.Email, err)
		}

		user := &model.User{
			Name:         s.Name,
			Email:        s.Email,
			PasswordHash: hash,
			Role:         s.Role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", s.Email, err)
		}
		created++
		log.Printf("Created %s user: %s / %s", s.Role, s.Email, s.Password)
	}

	log.Printf("Seed completed successfully! New users created: %d", created)
	log.Println("Test credentials:")
	for _, s := range seedUsers {
		log.Printf("  %-5s -> %s / %s", s.Role, s.Email, s.Password)
	}
}
