package postgres

import (
	"context"
	"fmt"

	"github.com/stayhub/stayhub/internal/domain/entity"
	"github.com/stayhub/stayhub/internal/domain/repository"
)

type AmenityRepository struct {
	db DB
}

func NewAmenityRepository(db DB) *AmenityRepository {
	return &AmenityRepository{db: db}
}

const amenityColumns = `id, name, created_at, updated_at`

var amenityAttrColumns = map[string]string{
	"name": "name",
}

func (r *AmenityRepository) Add(ctx context.Context, a *entity.Amenity) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO amenities (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`, a.ID, a.Name, a.CreatedAt, a.UpdatedAt)
	return translate(err, "name", a.Name)
}

func (r *AmenityRepository) Get(ctx context.Context, id string) (*entity.Amenity, error) {
	return r.scanOne(ctx, `SELECT `+amenityColumns+` FROM amenities WHERE id = $1`, id)
}

func (r *AmenityRepository) GetAll(ctx context.Context) ([]*entity.Amenity, error) {
	rows, err := r.db.Query(ctx, `SELECT `+amenityColumns+` FROM amenities ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Amenity
	for rows.Next() {
		a := &entity.Amenity{}
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AmenityRepository) GetByAttribute(ctx context.Context, attr, value string) (*entity.Amenity, error) {
	col, ok := amenityAttrColumns[attr]
	if !ok {
		return nil, &entity.ValidationError{Field: attr, Reason: "is not a searchable attribute"}
	}
	return r.scanOne(ctx, fmt.Sprintf(`SELECT %s FROM amenities WHERE %s = $1 ORDER BY created_at LIMIT 1`, amenityColumns, col), value)
}

func (r *AmenityRepository) GetByName(ctx context.Context, name string) (*entity.Amenity, error) {
	return r.GetByAttribute(ctx, "name", name)
}

func (r *AmenityRepository) Update(ctx context.Context, a *entity.Amenity) error {
	res, err := r.db.Exec(ctx, `
		UPDATE amenities
		SET name = $1, updated_at = $2
		WHERE id = $3
	`, a.Name, a.UpdatedAt, a.ID)
	if err != nil {
		return translate(err, "name", a.Name)
	}
	if res.RowsAffected() == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *AmenityRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM amenities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *AmenityRepository) scanOne(ctx context.Context, sql string, args ...any) (*entity.Amenity, error) {
	a := &entity.Amenity{}
	row := r.db.QueryRow(ctx, sql, args...)
	if err := row.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, translate(err, "", "")
	}
	return a, nil
}

var _ repository.AmenityRepository = (*AmenityRepository)(nil)
