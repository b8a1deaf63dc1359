package entity

// EmailRegistry is the uniqueness index injected into user construction and
// updates. Implementations must serialize their check-then-reserve sequence.
type EmailRegistry interface {
	// Reserve claims an email, failing with a ConflictError if taken.
	Reserve(email string) error
	// Release frees a reservation. Idempotent.
	Release(email string)
	// Swap atomically releases oldEmail and reserves newEmail.
	Swap(oldEmail, newEmail string) error
}

// User is an account that owns places and writes reviews. At most one user
// exists per email; the invariant is held by the injected EmailRegistry, not
// by any particular storage backend.
type User struct {
	Base
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // bcrypt hash, never plaintext
	IsAdmin      bool   `json:"is_admin"`
}

type NewUserInput struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	IsAdmin      bool
}

// NewUser validates all fields, reserves the email, and only then builds the
// user. A failed reservation leaves the registry untouched.
func NewUser(in NewUserInput, emails EmailRegistry) (*User, error) {
	if err := requireString("first_name", in.FirstName, 50); err != nil {
		return nil, err
	}
	if err := requireString("last_name", in.LastName, 50); err != nil {
		return nil, err
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := emails.Reserve(in.Email); err != nil {
		return nil, err
	}
	return &User{
		Base:         NewBase(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		IsAdmin:      in.IsAdmin,
	}, nil
}

// UserPatch is a tagged update: one optional slot per mutable field.
type UserPatch struct {
	FirstName    *string
	LastName     *string
	Email        *string
	PasswordHash *string
	IsAdmin      *bool
}

// Update applies a patch in two passes: every present field is validated
// before any assignment happens, so a partially invalid patch never leaves
// the user half-mutated. An email change goes through the registry between
// validation and assignment; a conflict there leaves both the registry and
// the user in their prior state.
func (u *User) Update(p UserPatch, emails EmailRegistry) error {
	if p.FirstName != nil {
		if err := requireString("first_name", *p.FirstName, 50); err != nil {
			return err
		}
	}
	if p.LastName != nil {
		if err := requireString("last_name", *p.LastName, 50); err != nil {
			return err
		}
	}
	if p.Email != nil {
		if err := validateEmail(*p.Email); err != nil {
			return err
		}
	}
	if p.PasswordHash != nil {
		if err := requireString("password", *p.PasswordHash, 0); err != nil {
			return err
		}
	}

	if p.Email != nil && *p.Email != u.Email {
		if err := emails.Swap(u.Email, *p.Email); err != nil {
			return err
		}
	}

	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.IsAdmin != nil {
		u.IsAdmin = *p.IsAdmin
	}
	u.Touch()
	return nil
}
