package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhub/stayhub/internal/domain/entity"
)

func sampleReview() *entity.Review {
	now := time.Now().UTC()
	return &entity.Review{
		Base:    entity.Base{ID: "r-1", CreatedAt: now, UpdatedAt: now},
		Text:    "lovely stay",
		Rating:  4,
		PlaceID: "p-1",
		UserID:  "u-1",
	}
}

func reviewRows(reviews ...*entity.Review) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "text", "rating", "place_id", "user_id", "created_at", "updated_at",
	})
	for _, rv := range reviews {
		rows.AddRow(rv.ID, rv.Text, rv.Rating, rv.PlaceID, rv.UserID, rv.CreatedAt, rv.UpdatedAt)
	}
	return rows
}

func TestReviewRepositoryAdd(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock)
	rv := sampleReview()

	mock.ExpectExec(`INSERT INTO reviews`).
		WithArgs(rv.ID, rv.Text, rv.Rating, rv.PlaceID, rv.UserID, rv.CreatedAt, rv.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Add(context.Background(), rv))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepositoryGetAbsent(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM reviews WHERE id`).
		WithArgs("missing").
		WillReturnRows(reviewRows())

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepositoryListByPlace(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock)
	rv := sampleReview()

	mock.ExpectQuery(`SELECT .+ FROM reviews WHERE place_id`).
		WithArgs(rv.PlaceID).
		WillReturnRows(reviewRows(rv))

	got, err := repo.ListByPlace(context.Background(), rv.PlaceID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rv.ID, got[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepositoryUpdateAbsent(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock)
	rv := sampleReview()

	mock.ExpectExec(`UPDATE reviews`).
		WithArgs(rv.Text, rv.Rating, rv.UpdatedAt, rv.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(t, repo.Update(context.Background(), rv), entity.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepositoryDeleteByPlace(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock)

	mock.ExpectExec(`DELETE FROM reviews WHERE place_id`).
		WithArgs("p-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	require.NoError(t, repo.DeleteByPlace(context.Background(), "p-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepositoryDeleteByPlaceWithNoReviews(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock)

	// deleting zero reviews is not an error; the FK cascade may have
	// emptied the table first
	mock.ExpectExec(`DELETE FROM reviews WHERE place_id`).
		WithArgs("p-empty").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.DeleteByPlace(context.Background(), "p-empty"))
	require.NoError(t, mock.ExpectationsWereMet())
}
