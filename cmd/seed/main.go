package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"

	"github.com/stayhub/stayhub/config"
	"github.com/stayhub/stayhub/internal/application"
	"github.com/stayhub/stayhub/internal/domain/entity"
	"github.com/stayhub/stayhub/internal/domain/uniqueness"
	pginfra "github.com/stayhub/stayhub/internal/infrastructure/postgres"
	"github.com/stayhub/stayhub/pkg/helpers"
)

const (
	adminEmail    = "admin@stayhub.dev"
	adminPassword = "password123"
	demoUsers     = 5
	demoPlaces    = 8
	demoReviews   = 15
)

var amenityCatalog = []string{"WiFi", "Air Conditioning", "Pool", "Kitchen", "Parking", "Washer"}

// Seeds demo data through the application facade so every row passes the
// same validation and uniqueness rules as API traffic.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.StorageBackend == config.BackendMemory {
		log.Fatal("seeding the in-memory backend is pointless, set STORAGE_BACKEND=postgres")
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	emails := uniqueness.NewRegistry()
	existing, err := users.GetAll(ctx)
	if err != nil {
		log.Fatalf("failed to load users: %v", err)
	}
	seed := make([]string, 0, len(existing))
	for _, u := range existing {
		seed = append(seed, u.Email)
	}
	emails.Seed(seed)

	facade := application.NewFacade(
		users,
		pginfra.NewPlaceRepository(pool),
		pginfra.NewReviewRepository(pool),
		pginfra.NewAmenityRepository(pool),
		emails,
		helpers.NewBcryptHasher(),
		logger,
	)

	gofakeit.Seed(0)

	admin := mustUser(ctx, facade, application.CreateUserInput{
		FirstName: "Admin",
		LastName:  "User",
		Email:     adminEmail,
		Password:  adminPassword,
		IsAdmin:   true,
	})
	fmt.Printf("admin: email=%s password=%s\n", adminEmail, adminPassword)

	var amenityIDs []string
	for _, name := range amenityCatalog {
		a, err := facade.CreateAmenity(ctx, name)
		if err != nil {
			var conflict *entity.ConflictError
			if !errors.As(err, &conflict) {
				log.Fatalf("failed to seed amenity %q: %v", name, err)
			}
			if a, err = facade.GetAmenityByName(ctx, name); err != nil {
				log.Fatalf("failed to load amenity %q: %v", name, err)
			}
		}
		amenityIDs = append(amenityIDs, a.ID)
	}

	userIDs := []string{admin.ID}
	for i := 0; i < demoUsers; i++ {
		u := mustUser(ctx, facade, application.CreateUserInput{
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Email:     gofakeit.Email(),
			Password:  adminPassword,
		})
		userIDs = append(userIDs, u.ID)
	}

	var placeIDs []string
	for i := 0; i < demoPlaces; i++ {
		p, err := facade.CreatePlace(ctx, application.CreatePlaceInput{
			Title:       gofakeit.Company() + " " + gofakeit.NounCommon(),
			Description: gofakeit.Paragraph(1, 3, 12, " "),
			Price:       gofakeit.Price(30, 500),
			Latitude:    gofakeit.Latitude(),
			Longitude:   gofakeit.Longitude(),
			OwnerID:     userIDs[gofakeit.IntRange(0, len(userIDs)-1)],
			AmenityIDs:  pick(amenityIDs, gofakeit.IntRange(1, 3)),
		})
		if err != nil {
			log.Fatalf("failed to seed place: %v", err)
		}
		placeIDs = append(placeIDs, p.ID)
	}

	for i := 0; i < demoReviews; i++ {
		_, err := facade.CreateReview(ctx, application.CreateReviewInput{
			Text:    gofakeit.Sentence(12),
			Rating:  gofakeit.IntRange(1, 5),
			UserID:  userIDs[gofakeit.IntRange(0, len(userIDs)-1)],
			PlaceID: placeIDs[gofakeit.IntRange(0, len(placeIDs)-1)],
		})
		if err != nil {
			log.Fatalf("failed to seed review: %v", err)
		}
	}

	fmt.Printf("seeded %d users, %d amenities, %d places, %d reviews\n",
		len(userIDs), len(amenityIDs), len(placeIDs), demoReviews)
}

func mustUser(ctx context.Context, f *application.Facade, in application.CreateUserInput) *entity.User {
	u, err := f.CreateUser(ctx, in)
	if err != nil {
		var conflict *entity.ConflictError
		if errors.As(err, &conflict) {
			if u, err = f.GetUserByEmail(ctx, in.Email); err == nil {
				return u
			}
		}
		log.Fatalf("failed to seed user %s: %v", in.Email, err)
	}
	return u
}

func pick(ids []string, n int) []string {
	if n >= len(ids) {
		return ids
	}
	start := gofakeit.IntRange(0, len(ids)-n)
	return ids[start : start+n]
}
