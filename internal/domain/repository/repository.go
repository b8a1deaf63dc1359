// Package repository defines the storage contracts the facade depends on.
// Both the in-memory and the Postgres backends implement them with
// identical caller-visible semantics.
package repository

import (
	"context"

	"github.com/stayhub/stayhub/internal/domain/entity"
)

// Repository is the uniform capability set every backend provides for an
// entity kind. Lookups on an absent id return entity.ErrNotFound; attribute
// lookup is first-match equality on a single named attribute.
type Repository[T any] interface {
	Add(ctx context.Context, e T) error
	Get(ctx context.Context, id string) (T, error)
	GetAll(ctx context.Context) ([]T, error)
	GetByAttribute(ctx context.Context, attr, value string) (T, error)
	Update(ctx context.Context, e T) error
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	Repository[*entity.User]
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

type PlaceRepository interface {
	Repository[*entity.Place]
}

type ReviewRepository interface {
	Repository[*entity.Review]
	ListByPlace(ctx context.Context, placeID string) ([]*entity.Review, error)
	// DeleteByPlace removes every review of a place. Deleting zero reviews
	// is not an error; under Postgres the FK cascade usually got there
	// first.
	DeleteByPlace(ctx context.Context, placeID string) error
}

type AmenityRepository interface {
	Repository[*entity.Amenity]
	GetByName(ctx context.Context, name string) (*entity.Amenity, error)
}
