package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/stayhub/stayhub/internal/domain/entity"
)

type CreateReviewInput struct {
	Text    string
	Rating  int
	UserID  string
	PlaceID string
}

// CreateReview resolves both references (each missing one reported
// distinctly), persists the review, then appends it to the place's review
// collection. The append is a second write: if it fails the review still
// exists, and the place catches up the next time it is loaded from the
// durable store.
func (f *Facade) CreateReview(ctx context.Context, in CreateReviewInput) (*entity.Review, error) {
	user, err := f.Users.Get(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", in.UserID, entity.ErrNotFound)
		}
		return nil, err
	}
	place, err := f.Places.Get(ctx, in.PlaceID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("place %s: %w", in.PlaceID, entity.ErrNotFound)
		}
		return nil, err
	}

	r, err := entity.NewReview(entity.NewReviewInput{
		Text:    in.Text,
		Rating:  in.Rating,
		PlaceID: place.ID,
		UserID:  user.ID,
	})
	if err != nil {
		return nil, err
	}
	r.User = user
	r.Place = place

	if err := f.Reviews.Add(ctx, r); err != nil {
		return nil, err
	}

	if err := place.AddReview(r); err == nil {
		if err := f.Places.Update(ctx, place); err != nil {
			f.Logger.WithError(err).WithFields(logrus.Fields{
				"review_id": r.ID, "place_id": place.ID,
			}).Warn("review persisted but not appended to place")
		}
	}
	f.dropPlaceCache(ctx, place.ID)
	f.publish(ctx, "review.created", r)
	return r, nil
}

func (f *Facade) GetReview(ctx context.Context, id string) (*entity.Review, error) {
	return f.Reviews.Get(ctx, id)
}

func (f *Facade) ListReviews(ctx context.Context) ([]*entity.Review, error) {
	return f.Reviews.GetAll(ctx)
}

func (f *Facade) ListReviewsForPlace(ctx context.Context, placeID string) ([]*entity.Review, error) {
	if _, err := f.Places.Get(ctx, placeID); err != nil {
		return nil, err
	}
	return f.Reviews.ListByPlace(ctx, placeID)
}

// UpdateReviewInput rejects user and place slots: both references are
// immutable after creation.
type UpdateReviewInput struct {
	Text    *string
	Rating  *int
	UserID  *string
	PlaceID *string
}

func (f *Facade) UpdateReview(ctx context.Context, id string, in UpdateReviewInput) (*entity.Review, error) {
	if in.UserID != nil {
		return nil, &entity.ValidationError{Field: "user_id", Reason: "cannot be changed"}
	}
	if in.PlaceID != nil {
		return nil, &entity.ValidationError{Field: "place_id", Reason: "cannot be changed"}
	}
	r, err := f.Reviews.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.Update(entity.ReviewPatch{Text: in.Text, Rating: in.Rating}); err != nil {
		return nil, err
	}
	if err := f.Reviews.Update(ctx, r); err != nil {
		return nil, err
	}
	f.publish(ctx, "review.updated", r)
	return r, nil
}

// DeleteReview removes the review and detaches it from its place's review
// collection.
func (f *Facade) DeleteReview(ctx context.Context, id string) error {
	r, err := f.Reviews.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := f.Reviews.Delete(ctx, r.ID); err != nil {
		return err
	}
	place, err := f.Places.Get(ctx, r.PlaceID)
	if err == nil {
		place.RemoveReview(r.ID)
		if err := f.Places.Update(ctx, place); err != nil {
			f.Logger.WithError(err).WithFields(logrus.Fields{
				"review_id": r.ID, "place_id": place.ID,
			}).Warn("review deleted but still referenced by place")
		}
		f.dropPlaceCache(ctx, place.ID)
	} else if !errors.Is(err, entity.ErrNotFound) {
		return err
	}
	f.publish(ctx, "review.deleted", map[string]string{"id": id})
	return nil
}
