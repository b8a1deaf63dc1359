package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhub/stayhub/internal/domain/entity"
)

func TestNewReview(t *testing.T) {
	r, err := entity.NewReview(entity.NewReviewInput{
		Text: "lovely stay", Rating: 4, PlaceID: "place-1", UserID: "user-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, 4, r.Rating)
	assert.Equal(t, "place-1", r.PlaceID)
	assert.Equal(t, "user-1", r.UserID)
}

func TestNewReviewValidation(t *testing.T) {
	cases := []struct {
		name  string
		in    entity.NewReviewInput
		field string
	}{
		{"missing text", entity.NewReviewInput{Rating: 3, PlaceID: "p", UserID: "u"}, "text"},
		{"rating too low", entity.NewReviewInput{Text: "x", Rating: 0, PlaceID: "p", UserID: "u"}, "rating"},
		{"rating too high", entity.NewReviewInput{Text: "x", Rating: 6, PlaceID: "p", UserID: "u"}, "rating"},
		{"missing place", entity.NewReviewInput{Text: "x", Rating: 3, UserID: "u"}, "place_id"},
		{"missing user", entity.NewReviewInput{Text: "x", Rating: 3, PlaceID: "p"}, "user_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := entity.NewReview(tc.in)
			var verr *entity.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestReviewUpdateInvalidRatingLeavesReviewUnchanged(t *testing.T) {
	r, err := entity.NewReview(entity.NewReviewInput{
		Text: "fine", Rating: 3, PlaceID: "p", UserID: "u",
	})
	require.NoError(t, err)
	before := *r

	err = r.Update(entity.ReviewPatch{Text: ptr("amazing"), Rating: ptr(6)})

	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "rating", verr.Field)
	assert.Equal(t, before, *r)
}

func TestReviewUpdate(t *testing.T) {
	r, err := entity.NewReview(entity.NewReviewInput{
		Text: "fine", Rating: 3, PlaceID: "p", UserID: "u",
	})
	require.NoError(t, err)

	require.NoError(t, r.Update(entity.ReviewPatch{Rating: ptr(5)}))
	assert.Equal(t, 5, r.Rating)
	assert.Equal(t, "fine", r.Text)
}
