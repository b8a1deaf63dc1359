package memory

import (
	"context"
	"sort"

	"github.com/stayhub/stayhub/internal/domain/entity"
	"github.com/stayhub/stayhub/internal/domain/repository"
)

type UserRepository struct {
	*Store[*entity.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{NewStore(
		func(u *entity.User) string { return u.ID },
		func(u *entity.User) *entity.User {
			c := *u
			return &c
		},
		map[string]func(*entity.User) string{
			"email":      func(u *entity.User) string { return u.Email },
			"first_name": func(u *entity.User) string { return u.FirstName },
			"last_name":  func(u *entity.User) string { return u.LastName },
		},
	)}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.GetByAttribute(ctx, "email", email)
}

type PlaceRepository struct {
	*Store[*entity.Place]
}

func NewPlaceRepository() *PlaceRepository {
	return &PlaceRepository{NewStore(
		func(p *entity.Place) string { return p.ID },
		// The id slices get their own backing arrays so an append on the
		// caller's copy never leaks into the stored one.
		func(p *entity.Place) *entity.Place {
			c := *p
			c.ReviewIDs = append([]string(nil), p.ReviewIDs...)
			c.AmenityIDs = append([]string(nil), p.AmenityIDs...)
			return &c
		},
		map[string]func(*entity.Place) string{
			"title":    func(p *entity.Place) string { return p.Title },
			"owner_id": func(p *entity.Place) string { return p.OwnerID },
		},
	)}
}

type ReviewRepository struct {
	*Store[*entity.Review]
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{NewStore(
		func(r *entity.Review) string { return r.ID },
		func(r *entity.Review) *entity.Review {
			c := *r
			return &c
		},
		map[string]func(*entity.Review) string{
			"place_id": func(r *entity.Review) string { return r.PlaceID },
			"user_id":  func(r *entity.Review) string { return r.UserID },
		},
	)}
}

func (r *ReviewRepository) ListByPlace(_ context.Context, placeID string) ([]*entity.Review, error) {
	reviews := r.where(func(rv *entity.Review) bool { return rv.PlaceID == placeID })
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.Before(reviews[j].CreatedAt) })
	return reviews, nil
}

// DeleteByPlace gives the transient backend the same cascade the database
// provides for the durable one.
func (r *ReviewRepository) DeleteByPlace(ctx context.Context, placeID string) error {
	for _, rv := range r.where(func(rv *entity.Review) bool { return rv.PlaceID == placeID }) {
		if err := r.Delete(ctx, rv.ID); err != nil {
			return err
		}
	}
	return nil
}

type AmenityRepository struct {
	*Store[*entity.Amenity]
}

func NewAmenityRepository() *AmenityRepository {
	return &AmenityRepository{NewStore(
		func(a *entity.Amenity) string { return a.ID },
		func(a *entity.Amenity) *entity.Amenity {
			c := *a
			return &c
		},
		map[string]func(*entity.Amenity) string{
			"name": func(a *entity.Amenity) string { return a.Name },
		},
	)}
}

func (r *AmenityRepository) GetByName(ctx context.Context, name string) (*entity.Amenity, error) {
	return r.GetByAttribute(ctx, "name", name)
}

var (
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.PlaceRepository   = (*PlaceRepository)(nil)
	_ repository.ReviewRepository  = (*ReviewRepository)(nil)
	_ repository.AmenityRepository = (*AmenityRepository)(nil)
)
