package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/stayhub/stayhub/internal/domain/entity"
)

type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	IsAdmin   bool
}

// CreateUser hashes the credential, builds the user (which validates fields
// and reserves the email), then persists it. If persistence fails the
// reservation is rolled back so the email stays available.
func (f *Facade) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	if in.Password == "" {
		return nil, &entity.ValidationError{Field: "password", Reason: "is required"}
	}
	hash, err := f.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u, err := entity.NewUser(entity.NewUserInput{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		IsAdmin:      in.IsAdmin,
	}, f.Emails)
	if err != nil {
		return nil, err
	}
	if err := f.Users.Add(ctx, u); err != nil {
		f.Emails.Release(u.Email)
		return nil, err
	}
	f.Logger.WithFields(logrus.Fields{"user_id": u.ID}).Info("user created")
	f.publish(ctx, "user.created", u)
	return u, nil
}

func (f *Facade) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return f.Users.Get(ctx, id)
}

func (f *Facade) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return f.Users.GetByEmail(ctx, email)
}

func (f *Facade) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return f.Users.GetAll(ctx)
}

type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	IsAdmin   *bool
}

// UpdateUser applies a patch through the entity's own update, which
// validates everything before mutating anything and runs the email swap
// protocol against the registry.
func (f *Facade) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*entity.User, error) {
	u, err := f.Users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := entity.UserPatch{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		IsAdmin:   in.IsAdmin,
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, &entity.ValidationError{Field: "password", Reason: "is required"}
		}
		hash, err := f.Hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	oldEmail := u.Email
	oldAdmin := u.IsAdmin
	if err := u.Update(patch, f.Emails); err != nil {
		return nil, err
	}
	if err := f.Users.Update(ctx, u); err != nil {
		// the entity already swapped its reservation; swap it back in one
		// step so no window exists where neither email is reserved
		if u.Email != oldEmail {
			if serr := f.Emails.Swap(u.Email, oldEmail); serr != nil {
				f.Logger.WithError(serr).WithFields(logrus.Fields{"user_id": u.ID}).
					Warn("email reservation rollback failed")
			}
		}
		return nil, err
	}
	if u.IsAdmin != oldAdmin {
		// the session hash caches the admin flag; drop it so stale
		// privileges cannot outlive the change
		f.Logout(ctx, u.ID)
	}
	f.publish(ctx, "user.updated", u)
	return u, nil
}

// Authenticate verifies a credential against the stored hash. Both an
// unknown email and a bad password report the same error.
func (f *Facade) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := f.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !f.Hasher.Verify(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
