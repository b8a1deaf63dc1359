// Package uniqueness holds the process-wide email reservation index. It is
// deliberately not delegated to the durable store's unique constraints,
// because the in-memory backend has none and both backends must enforce the
// same invariant.
package uniqueness

import (
	"sync"

	"github.com/stayhub/stayhub/internal/domain/entity"
)

// Registry is a mutex-guarded set of reserved emails. The lock covers the
// whole check-then-reserve sequence so two concurrent reservations of the
// same value serialize and exactly one wins.
type Registry struct {
	mu     sync.Mutex
	emails map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{emails: make(map[string]struct{})}
}

// Reserve claims an email, failing with a ConflictError if already held.
func (r *Registry) Reserve(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.emails[email]; taken {
		return &entity.ConflictError{Attribute: "email", Value: email}
	}
	r.emails[email] = struct{}{}
	return nil
}

// Release frees a reservation. Releasing an email that is not reserved is a
// no-op.
func (r *Registry) Release(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.emails, email)
}

// Swap releases oldEmail and reserves newEmail under one lock. On conflict
// nothing changes, so a failed email update leaves the old reservation
// intact.
func (r *Registry) Swap(oldEmail, newEmail string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if newEmail == oldEmail {
		return nil
	}
	if _, taken := r.emails[newEmail]; taken {
		return &entity.ConflictError{Attribute: "email", Value: newEmail}
	}
	delete(r.emails, oldEmail)
	r.emails[newEmail] = struct{}{}
	return nil
}

// Seed primes the registry from emails already persisted in the durable
// store. Duplicates are collapsed silently.
func (r *Registry) Seed(emails []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range emails {
		r.emails[e] = struct{}{}
	}
}

// Len reports how many emails are currently reserved.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.emails)
}

var _ entity.EmailRegistry = (*Registry)(nil)
