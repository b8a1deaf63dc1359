package application

import (
	"context"

	"github.com/stayhub/stayhub/internal/domain/entity"
)

func (f *Facade) CreateAmenity(ctx context.Context, name string) (*entity.Amenity, error) {
	a, err := entity.NewAmenity(name)
	if err != nil {
		return nil, err
	}
	if err := f.Amenities.Add(ctx, a); err != nil {
		return nil, err
	}
	f.Logger.WithField("amenity_id", a.ID).Info("amenity created")
	return a, nil
}

func (f *Facade) GetAmenity(ctx context.Context, id string) (*entity.Amenity, error) {
	return f.Amenities.Get(ctx, id)
}

func (f *Facade) GetAmenityByName(ctx context.Context, name string) (*entity.Amenity, error) {
	return f.Amenities.GetByName(ctx, name)
}

func (f *Facade) ListAmenities(ctx context.Context) ([]*entity.Amenity, error) {
	return f.Amenities.GetAll(ctx)
}

func (f *Facade) UpdateAmenity(ctx context.Context, id string, name *string) (*entity.Amenity, error) {
	a, err := f.Amenities.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Update(entity.AmenityPatch{Name: name}); err != nil {
		return nil, err
	}
	if err := f.Amenities.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
