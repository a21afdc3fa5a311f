package main

import (
	"context"
	"errors"
	"log"
	"os"

	"gorm.io/gorm"

	"reviewhub/internal/config"
	"reviewhub/internal/db"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

var categories = []model.Category{
	{Name: "Films", Slug: "films"},
	{Name: "Books", Slug: "books"},
	{Name: "Music", Slug: "music"},
}

var genres = []model.Genre{
	{Name: "Drama", Slug: "drama"},
	{Name: "Comedy", Slug: "comedy"},
	{Name: "Detective", Slug: "detective"},
	{Name: "Rock", Slug: "rock"},
	{Name: "Arthouse", Slug: "arthouse"},
	{Name: "Fantasy", Slug: "fantasy"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Genre{},
		&model.Title{},
		&model.Review{},
		&model.Comment{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	categoryRepo := repository.NewCategoryRepository(gormDB)
	created := 0
	for _, category := range categories {
		if err := categoryRepo.Create(ctx, &category); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			log.Fatalf("Failed to seed category %s: %v", category.Slug, err)
		}
		created++
	}
	log.Printf("Seeded %d categories (%d already present)", created, len(categories)-created)

	genreRepo := repository.NewGenreRepository(gormDB)
	created = 0
	for _, genre := range genres {
		if err := genreRepo.Create(ctx, &genre); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			log.Fatalf("Failed to seed genre %s: %v", genre.Slug, err)
		}
		created++
	}
	log.Printf("Seeded %d genres (%d already present)", created, len(genres)-created)

	seedAdmin(ctx, repository.NewUserRepository(gormDB))

	log.Println("Seed completed")
}

// seedAdmin bootstraps the first admin account from ADMIN_EMAIL and
// ADMIN_USERNAME. The admin still logs in through the normal
// confirmation-code flow.
func seedAdmin(ctx context.Context, users repository.UserRepository) {
	email := os.Getenv("ADMIN_EMAIL")
	username := os.Getenv("ADMIN_USERNAME")
	if email == "" || username == "" {
		log.Println("ADMIN_EMAIL/ADMIN_USERNAME not set, skipping admin bootstrap")
		return
	}
	if err := model.ValidateEmail(email); err != nil {
		log.Fatalf("Invalid ADMIN_EMAIL: %v", err)
	}
	if err := model.ValidateUsername(username); err != nil {
		log.Fatalf("Invalid ADMIN_USERNAME: %v", err)
	}

	admin := &model.User{
		Username: username,
		Email:    email,
		Role:     model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("Admin %s already present", username)
			return
		}
		log.Fatalf("Failed to seed admin: %v", err)
	}
	log.Printf("Seeded admin %s <%s>", username, email)
}
