package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/stayhub/stayhub/internal/domain/entity"
)

type CreatePlaceInput struct {
	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
	OwnerID     string
	AmenityIDs  []string
}

// CreatePlace resolves the owner (required) and the amenities (best effort:
// unresolvable ids are skipped, not errors), then builds and persists the
// place. Amenity attachment is not atomic with creation.
func (f *Facade) CreatePlace(ctx context.Context, in CreatePlaceInput) (*entity.Place, error) {
	owner, err := f.Users.Get(ctx, in.OwnerID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("owner %s: %w", in.OwnerID, entity.ErrNotFound)
		}
		return nil, err
	}

	p, err := entity.NewPlace(entity.NewPlaceInput{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		OwnerID:     owner.ID,
	})
	if err != nil {
		return nil, err
	}
	p.Owner = owner

	for _, aid := range in.AmenityIDs {
		a, err := f.Amenities.Get(ctx, aid)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				f.Logger.WithField("amenity_id", aid).Debug("skipping unknown amenity")
				continue
			}
			return nil, err
		}
		p.AddAmenity(a)
	}

	if err := f.Places.Add(ctx, p); err != nil {
		return nil, err
	}
	f.Logger.WithFields(logrus.Fields{"place_id": p.ID, "owner_id": owner.ID}).Info("place created")
	f.publish(ctx, "place.created", p)
	return p, nil
}

func (f *Facade) GetPlace(ctx context.Context, id string) (*entity.Place, error) {
	if p := f.cachedPlace(ctx, id); p != nil {
		return p, nil
	}
	p, err := f.Places.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	f.cachePlace(ctx, p)
	return p, nil
}

func (f *Facade) ListPlaces(ctx context.Context) ([]*entity.Place, error) {
	return f.Places.GetAll(ctx)
}

// UpdatePlaceInput carries the mutable fields plus an owner slot that only
// exists to be rejected: the owner reference is immutable.
type UpdatePlaceInput struct {
	Title       *string
	Description *string
	Price       *float64
	Latitude    *float64
	Longitude   *float64
	OwnerID     *string
}

func (f *Facade) UpdatePlace(ctx context.Context, id string, in UpdatePlaceInput) (*entity.Place, error) {
	if in.OwnerID != nil {
		return nil, &entity.ValidationError{Field: "owner_id", Reason: "cannot be changed"}
	}
	p, err := f.Places.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Update(entity.PlacePatch{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
	}); err != nil {
		return nil, err
	}
	if err := f.Places.Update(ctx, p); err != nil {
		return nil, err
	}
	f.dropPlaceCache(ctx, id)
	f.publish(ctx, "place.updated", p)
	return p, nil
}

// DeletePlace removes the place and all of its reviews. Reviews are always
// deleted through the review repository so both backends behave alike; under
// Postgres the FK cascade would cover them anyway.
func (f *Facade) DeletePlace(ctx context.Context, id string) error {
	p, err := f.Places.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := f.Reviews.DeleteByPlace(ctx, p.ID); err != nil {
		return err
	}
	if err := f.Places.Delete(ctx, p.ID); err != nil {
		return err
	}
	f.dropPlaceCache(ctx, id)
	f.Logger.WithField("place_id", id).Info("place deleted")
	f.publish(ctx, "place.deleted", map[string]string{"id": id})
	return nil
}

// AddAmenityToPlace attaches an existing amenity to a place. Unlike the
// skip-on-create behavior, an unknown amenity id here is an error.
func (f *Facade) AddAmenityToPlace(ctx context.Context, placeID, amenityID string) (*entity.Place, error) {
	p, err := f.Places.Get(ctx, placeID)
	if err != nil {
		return nil, err
	}
	a, err := f.Amenities.Get(ctx, amenityID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("amenity %s: %w", amenityID, entity.ErrNotFound)
		}
		return nil, err
	}
	p.AddAmenity(a)
	if err := f.Places.Update(ctx, p); err != nil {
		return nil, err
	}
	f.dropPlaceCache(ctx, placeID)
	return p, nil
}

func (f *Facade) RemoveAmenityFromPlace(ctx context.Context, placeID, amenityID string) (*entity.Place, error) {
	p, err := f.Places.Get(ctx, placeID)
	if err != nil {
		return nil, err
	}
	p.RemoveAmenity(amenityID)
	if err := f.Places.Update(ctx, p); err != nil {
		return nil, err
	}
	f.dropPlaceCache(ctx, placeID)
	return p, nil
}
