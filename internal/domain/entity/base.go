package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the identity and timestamp lifecycle shared by every entity.
// Variants embed it rather than inheriting from it; the identifier is
// generated here, never by a storage backend.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBase mints a fresh identity with equal created/updated timestamps.
func NewBase() Base {
	now := time.Now().UTC()
	return Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
}

// Touch refreshes UpdatedAt. Called only after a mutation fully validated.
func (b *Base) Touch() {
	b.UpdatedAt = time.Now().UTC()
}
