package postgres

import (
	"context"
	"fmt"

	"github.com/stayhub/stayhub/internal/domain/entity"
	"github.com/stayhub/stayhub/internal/domain/repository"
)

type ReviewRepository struct {
	db DB
}

func NewReviewRepository(db DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewColumns = `id, text, rating, place_id, user_id, created_at, updated_at`

var reviewAttrColumns = map[string]string{
	"place_id": "place_id",
	"user_id":  "user_id",
}

func (r *ReviewRepository) Add(ctx context.Context, rv *entity.Review) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reviews (id, text, rating, place_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rv.ID, rv.Text, rv.Rating, rv.PlaceID, rv.UserID, rv.CreatedAt, rv.UpdatedAt)
	return err
}

func (r *ReviewRepository) Get(ctx context.Context, id string) (*entity.Review, error) {
	return r.scanOne(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
}

func (r *ReviewRepository) GetAll(ctx context.Context) ([]*entity.Review, error) {
	return r.list(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY created_at`)
}

func (r *ReviewRepository) GetByAttribute(ctx context.Context, attr, value string) (*entity.Review, error) {
	col, ok := reviewAttrColumns[attr]
	if !ok {
		return nil, &entity.ValidationError{Field: attr, Reason: "is not a searchable attribute"}
	}
	return r.scanOne(ctx, fmt.Sprintf(`SELECT %s FROM reviews WHERE %s = $1 ORDER BY created_at LIMIT 1`, reviewColumns, col), value)
}

func (r *ReviewRepository) Update(ctx context.Context, rv *entity.Review) error {
	res, err := r.db.Exec(ctx, `
		UPDATE reviews
		SET text = $1, rating = $2, updated_at = $3
		WHERE id = $4
	`, rv.Text, rv.Rating, rv.UpdatedAt, rv.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) ListByPlace(ctx context.Context, placeID string) ([]*entity.Review, error) {
	return r.list(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE place_id = $1 ORDER BY created_at`, placeID)
}

func (r *ReviewRepository) DeleteByPlace(ctx context.Context, placeID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE place_id = $1`, placeID)
	return err
}

func (r *ReviewRepository) scanOne(ctx context.Context, sql string, args ...any) (*entity.Review, error) {
	rv := &entity.Review{}
	row := r.db.QueryRow(ctx, sql, args...)
	if err := row.Scan(&rv.ID, &rv.Text, &rv.Rating, &rv.PlaceID, &rv.UserID,
		&rv.CreatedAt, &rv.UpdatedAt); err != nil {
		return nil, translate(err, "", "")
	}
	return rv, nil
}

func (r *ReviewRepository) list(ctx context.Context, sql string, args ...any) ([]*entity.Review, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Review
	for rows.Next() {
		rv := &entity.Review{}
		if err := rows.Scan(&rv.ID, &rv.Text, &rv.Rating, &rv.PlaceID, &rv.UserID,
			&rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
