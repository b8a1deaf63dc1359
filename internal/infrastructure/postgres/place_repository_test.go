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

func samplePlace() *entity.Place {
	now := time.Now().UTC()
	return &entity.Place{
		Base:       entity.Base{ID: "p-1", CreatedAt: now, UpdatedAt: now},
		Title:      "Cozy Cabin",
		Price:      120,
		Latitude:   48.85,
		Longitude:  2.35,
		OwnerID:    "u-1",
		ReviewIDs:  []string{},
		AmenityIDs: []string{"a-1", "a-2"},
	}
}

func placeRow(p *entity.Place) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "title", "description", "price", "latitude", "longitude", "owner_id", "created_at", "updated_at",
	}).AddRow(p.ID, p.Title, p.Description, p.Price, p.Latitude, p.Longitude, p.OwnerID, p.CreatedAt, p.UpdatedAt)
}

func expectRefLoads(mock pgxmock.PgxPoolIface, placeID string, reviewIDs, amenityIDs []string) {
	rrows := pgxmock.NewRows([]string{"id"})
	for _, id := range reviewIDs {
		rrows.AddRow(id)
	}
	mock.ExpectQuery(`SELECT id FROM reviews WHERE place_id`).
		WithArgs(placeID).
		WillReturnRows(rrows)

	arows := pgxmock.NewRows([]string{"amenity_id"})
	for _, id := range amenityIDs {
		arows.AddRow(id)
	}
	mock.ExpectQuery(`SELECT amenity_id FROM place_amenity WHERE place_id`).
		WithArgs(placeID).
		WillReturnRows(arows)
}

func TestPlaceRepositoryAddWritesAmenityLinks(t *testing.T) {
	mock := newMock(t)
	repo := NewPlaceRepository(mock)
	p := samplePlace()

	mock.ExpectExec(`INSERT INTO places`).
		WithArgs(p.ID, p.Title, p.Description, p.Price, p.Latitude, p.Longitude, p.OwnerID, p.CreatedAt, p.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`DELETE FROM place_amenity`).
		WithArgs(p.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO place_amenity`).
		WithArgs(p.ID, "a-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO place_amenity`).
		WithArgs(p.ID, "a-2").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Add(context.Background(), p))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceRepositoryGetLoadsRefs(t *testing.T) {
	mock := newMock(t)
	repo := NewPlaceRepository(mock)
	p := samplePlace()

	mock.ExpectQuery(`SELECT .+ FROM places WHERE id`).
		WithArgs(p.ID).
		WillReturnRows(placeRow(p))
	expectRefLoads(mock, p.ID, []string{"r-1", "r-2"}, []string{"a-1"})

	got, err := repo.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"r-1", "r-2"}, got.ReviewIDs)
	assert.Equal(t, []string{"a-1"}, got.AmenityIDs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceRepositoryGetAbsent(t *testing.T) {
	mock := newMock(t)
	repo := NewPlaceRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM places WHERE id`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "title", "description", "price", "latitude", "longitude", "owner_id", "created_at", "updated_at",
		}))

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceRepositoryUpdateReconcilesAmenities(t *testing.T) {
	mock := newMock(t)
	repo := NewPlaceRepository(mock)
	p := samplePlace()
	p.AmenityIDs = []string{"a-3"}

	mock.ExpectExec(`UPDATE places`).
		WithArgs(p.Title, p.Description, p.Price, p.Latitude, p.Longitude, p.UpdatedAt, p.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	// the join table is rebuilt from the entity's current amenity set
	mock.ExpectExec(`DELETE FROM place_amenity`).
		WithArgs(p.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(`INSERT INTO place_amenity`).
		WithArgs(p.ID, "a-3").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Update(context.Background(), p))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceRepositoryUpdateAbsentSkipsAmenities(t *testing.T) {
	mock := newMock(t)
	repo := NewPlaceRepository(mock)
	p := samplePlace()

	mock.ExpectExec(`UPDATE places`).
		WithArgs(p.Title, p.Description, p.Price, p.Latitude, p.Longitude, p.UpdatedAt, p.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(t, repo.Update(context.Background(), p), entity.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceRepositoryDelete(t *testing.T) {
	mock := newMock(t)
	repo := NewPlaceRepository(mock)

	mock.ExpectExec(`DELETE FROM places`).
		WithArgs("p-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, repo.Delete(context.Background(), "p-1"))

	mock.ExpectExec(`DELETE FROM places`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), entity.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceRepositoryGetByAttributeRejectsUnknownColumn(t *testing.T) {
	mock := newMock(t)
	repo := NewPlaceRepository(mock)

	_, err := repo.GetByAttribute(context.Background(), "price; DROP TABLE places", "x")
	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)
	require.NoError(t, mock.ExpectationsWereMet())
}
