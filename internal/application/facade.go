// Package application orchestrates operations that span more than one
// repository: reference resolution, the email reservation protocol, and the
// cross-backend delete cascade no single repository can enforce alone.
package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/stayhub/stayhub/internal/domain/entity"
	repo "github.com/stayhub/stayhub/internal/domain/repository"
	"github.com/stayhub/stayhub/internal/domain/uniqueness"
	"github.com/stayhub/stayhub/pkg/events"
	"github.com/stayhub/stayhub/pkg/helpers"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// PasswordHasher is the credential-hashing collaborator. The facade never
// stores or logs plaintext.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

const placeCacheTTL = 5 * time.Minute

// Facade wires the four repositories together with the uniqueness registry
// and the hashing collaborator. Redis, JWT and the event publisher are
// optional; a nil value simply disables that concern.
type Facade struct {
	Users     repo.UserRepository
	Places    repo.PlaceRepository
	Reviews   repo.ReviewRepository
	Amenities repo.AmenityRepository

	Emails *uniqueness.Registry
	Hasher PasswordHasher
	Logger *logrus.Logger

	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Events *events.Publisher
}

func NewFacade(
	users repo.UserRepository,
	places repo.PlaceRepository,
	reviews repo.ReviewRepository,
	amenities repo.AmenityRepository,
	emails *uniqueness.Registry,
	hasher PasswordHasher,
	logger *logrus.Logger,
) *Facade {
	return &Facade{
		Users:     users,
		Places:    places,
		Reviews:   reviews,
		Amenities: amenities,
		Emails:    emails,
		Hasher:    hasher,
		Logger:    logger,
	}
}

// publish emits a domain event best-effort; a missing or failing publisher
// never fails the operation that triggered it.
func (f *Facade) publish(ctx context.Context, event string, payload any) {
	if f.Events == nil {
		return
	}
	if err := f.Events.Publish(ctx, event, payload); err != nil {
		f.Logger.WithError(err).WithField("event", event).Warn("event publish failed")
	}
}

func placeCacheKey(id string) string {
	return "place:" + id
}

func (f *Facade) cachePlace(ctx context.Context, p *entity.Place) {
	if f.Redis == nil {
		return
	}
	if err := helpers.RedisSetJSON(ctx, f.Redis, placeCacheKey(p.ID), p, placeCacheTTL); err != nil {
		f.Logger.WithError(err).WithField("place_id", p.ID).Warn("place cache write failed")
	}
}

func (f *Facade) cachedPlace(ctx context.Context, id string) *entity.Place {
	if f.Redis == nil {
		return nil
	}
	var p entity.Place
	ok, err := helpers.RedisGetJSON(ctx, f.Redis, placeCacheKey(id), &p)
	if err != nil {
		f.Logger.WithError(err).WithField("place_id", id).Warn("place cache read failed")
		return nil
	}
	if !ok {
		return nil
	}
	return &p
}

func (f *Facade) dropPlaceCache(ctx context.Context, id string) {
	if f.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, f.Redis, placeCacheKey(id)); err != nil {
		f.Logger.WithError(err).WithField("place_id", id).Warn("place cache invalidation failed")
	}
}
