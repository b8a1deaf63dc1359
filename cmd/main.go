package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/stayhub/stayhub/config"
	"github.com/stayhub/stayhub/internal/application"
	"github.com/stayhub/stayhub/internal/container"
	repo "github.com/stayhub/stayhub/internal/domain/repository"
	"github.com/stayhub/stayhub/internal/domain/uniqueness"
	"github.com/stayhub/stayhub/internal/infrastructure/memory"
	pginfra "github.com/stayhub/stayhub/internal/infrastructure/postgres"
	"github.com/stayhub/stayhub/internal/interface/middleware"
	"github.com/stayhub/stayhub/internal/router"
	"github.com/stayhub/stayhub/pkg/events"
	"github.com/stayhub/stayhub/pkg/helpers"
	"github.com/stayhub/stayhub/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	users, places, reviews, amenities, cleanup := buildRepositories(ctx, cfg, logger)
	defer cleanup()

	// Seed the email registry from whatever the durable store already holds,
	// so restarts keep enforcing uniqueness against existing accounts.
	emails := uniqueness.NewRegistry()
	existing, err := users.GetAll(ctx)
	if err != nil {
		log.Fatalf("failed to load users for email registry: %v", err)
	}
	seed := make([]string, 0, len(existing))
	for _, u := range existing {
		seed = append(seed, u.Email)
	}
	emails.Seed(seed)

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	jwtManager := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	facade := application.NewFacade(users, places, reviews, amenities, emails, helpers.NewBcryptHasher(), logger)
	facade.JWT = jwtManager
	facade.Redis = rdb

	// Domain events are optional; a broker outage never blocks startup.
	if cfg.RabbitMQURL != "" {
		pub, err := events.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue)
		if err != nil {
			logger.WithError(err).Warn("event publisher unavailable, continuing without events")
		} else {
			defer pub.Close()
			facade.Events = pub
			container.SetPublisher(pub)
		}
	}

	// Provide singletons to the container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetRedis(rdb)
	container.SetJWT(jwtManager)
	container.SetFacade(facade)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.Env == "development" || cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s (backend=%s)", cfg.Port, cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

// buildRepositories selects the storage backend. The memory backend is for
// local hacking and tests; postgres is the default and runs migrations on
// startup.
func buildRepositories(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (
	repo.UserRepository, repo.PlaceRepository, repo.ReviewRepository, repo.AmenityRepository, func(),
) {
	if cfg.StorageBackend == config.BackendMemory {
		logger.Warn("using transient in-memory storage, data will not survive restarts")
		return memory.NewUserRepository(), memory.NewPlaceRepository(), memory.NewReviewRepository(), memory.NewAmenityRepository(), func() {}
	}

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("migration failed: %v", err)
	}
	container.SetPGPool(pool)
	return pginfra.NewUserRepository(pool), pginfra.NewPlaceRepository(pool), pginfra.NewReviewRepository(pool), pginfra.NewAmenityRepository(pool), pool.Close
}

func runMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
