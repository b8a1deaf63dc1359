package postgres

import (
	"context"
	"fmt"

	"github.com/stayhub/stayhub/internal/domain/entity"
	"github.com/stayhub/stayhub/internal/domain/repository"
)

type PlaceRepository struct {
	db DB
}

func NewPlaceRepository(db DB) *PlaceRepository {
	return &PlaceRepository{db: db}
}

const placeColumns = `id, title, description, price, latitude, longitude, owner_id, created_at, updated_at`

var placeAttrColumns = map[string]string{
	"title":    "title",
	"owner_id": "owner_id",
}

func (r *PlaceRepository) Add(ctx context.Context, p *entity.Place) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO places (id, title, description, price, latitude, longitude, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.Title, p.Description, p.Price, p.Latitude, p.Longitude, p.OwnerID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return err
	}
	return r.replaceAmenities(ctx, p)
}

func (r *PlaceRepository) Get(ctx context.Context, id string) (*entity.Place, error) {
	p, err := r.scanOne(ctx, `SELECT `+placeColumns+` FROM places WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if err := r.loadRefs(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PlaceRepository) GetAll(ctx context.Context) ([]*entity.Place, error) {
	rows, err := r.db.Query(ctx, `SELECT `+placeColumns+` FROM places ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Place
	for rows.Next() {
		p := &entity.Place{}
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Latitude, &p.Longitude,
			&p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range out {
		if err := r.loadRefs(ctx, p); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *PlaceRepository) GetByAttribute(ctx context.Context, attr, value string) (*entity.Place, error) {
	col, ok := placeAttrColumns[attr]
	if !ok {
		return nil, &entity.ValidationError{Field: attr, Reason: "is not a searchable attribute"}
	}
	p, err := r.scanOne(ctx, fmt.Sprintf(`SELECT %s FROM places WHERE %s = $1 ORDER BY created_at LIMIT 1`, placeColumns, col), value)
	if err != nil {
		return nil, err
	}
	if err := r.loadRefs(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PlaceRepository) Update(ctx context.Context, p *entity.Place) error {
	res, err := r.db.Exec(ctx, `
		UPDATE places
		SET title = $1, description = $2, price = $3, latitude = $4, longitude = $5, updated_at = $6
		WHERE id = $7
	`, p.Title, p.Description, p.Price, p.Latitude, p.Longitude, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return entity.ErrNotFound
	}
	return r.replaceAmenities(ctx, p)
}

// Delete removes the place. Its reviews and amenity links go with it via
// the schema's ON DELETE CASCADE.
func (r *PlaceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *PlaceRepository) scanOne(ctx context.Context, sql string, args ...any) (*entity.Place, error) {
	p := &entity.Place{}
	row := r.db.QueryRow(ctx, sql, args...)
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Latitude, &p.Longitude,
		&p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, translate(err, "", "")
	}
	return p, nil
}

// loadRefs fills ReviewIDs and AmenityIDs from their tables.
func (r *PlaceRepository) loadRefs(ctx context.Context, p *entity.Place) error {
	p.ReviewIDs = []string{}
	p.AmenityIDs = []string{}

	rows, err := r.db.Query(ctx, `SELECT id FROM reviews WHERE place_id = $1 ORDER BY created_at`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		p.ReviewIDs = append(p.ReviewIDs, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	arows, err := r.db.Query(ctx, `SELECT amenity_id FROM place_amenity WHERE place_id = $1 ORDER BY amenity_id`, p.ID)
	if err != nil {
		return err
	}
	defer arows.Close()
	for arows.Next() {
		var id string
		if err := arows.Scan(&id); err != nil {
			return err
		}
		p.AmenityIDs = append(p.AmenityIDs, id)
	}
	return arows.Err()
}

// replaceAmenities reconciles the join table with the entity's amenity set.
func (r *PlaceRepository) replaceAmenities(ctx context.Context, p *entity.Place) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM place_amenity WHERE place_id = $1`, p.ID); err != nil {
		return err
	}
	for _, aid := range p.AmenityIDs {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO place_amenity (place_id, amenity_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, p.ID, aid); err != nil {
			return err
		}
	}
	return nil
}

var _ repository.PlaceRepository = (*PlaceRepository)(nil)
