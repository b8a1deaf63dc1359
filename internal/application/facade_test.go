package application_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhub/stayhub/internal/application"
	"github.com/stayhub/stayhub/internal/domain/entity"
	"github.com/stayhub/stayhub/internal/domain/repository"
	"github.com/stayhub/stayhub/internal/domain/uniqueness"
	"github.com/stayhub/stayhub/internal/infrastructure/memory"
)

// plainHasher keeps facade tests fast; bcrypt is covered by its own package.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (plainHasher) Verify(hash, plain string) bool    { return hash == "hashed:"+plain }

func newFacade() *application.Facade {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return application.NewFacade(
		memory.NewUserRepository(),
		memory.NewPlaceRepository(),
		memory.NewReviewRepository(),
		memory.NewAmenityRepository(),
		uniqueness.NewRegistry(),
		plainHasher{},
		logger,
	)
}

func createUser(t *testing.T, f *application.Facade, email string) *entity.User {
	t.Helper()
	u, err := f.CreateUser(context.Background(), application.CreateUserInput{
		FirstName: "John",
		LastName:  "Doe",
		Email:     email,
		Password:  "secret123",
	})
	require.NoError(t, err)
	return u
}

func createPlace(t *testing.T, f *application.Facade, ownerID string) *entity.Place {
	t.Helper()
	p, err := f.CreatePlace(context.Background(), application.CreatePlaceInput{
		Title:     "Cozy Cabin",
		Price:     100,
		Latitude:  48.85,
		Longitude: 2.35,
		OwnerID:   ownerID,
	})
	require.NoError(t, err)
	return p
}

func TestCreateUser(t *testing.T) {
	f := newFacade()
	u := createUser(t, f, "john.doe@example.com")

	assert.Equal(t, "hashed:secret123", u.PasswordHash)

	got, err := f.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "john.doe@example.com", got.Email)
}

func TestCreateUserRequiresPassword(t *testing.T) {
	f := newFacade()
	_, err := f.CreateUser(context.Background(), application.CreateUserInput{
		FirstName: "John", LastName: "Doe", Email: "john@example.com",
	})
	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	f := newFacade()
	ctx := context.Background()
	createUser(t, f, "john.doe@example.com")

	_, err := f.CreateUser(ctx, application.CreateUserInput{
		FirstName: "Jane", LastName: "Doe", Email: "john.doe@example.com", Password: "x12345678",
	})
	var conflict *entity.ConflictError
	require.ErrorAs(t, err, &conflict)

	users, err := f.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUpdateUserEmailConflictLeavesBothUsersUnchanged(t *testing.T) {
	f := newFacade()
	ctx := context.Background()
	john := createUser(t, f, "john@example.com")
	createUser(t, f, "jane@example.com")

	_, err := f.UpdateUser(ctx, john.ID, application.UpdateUserInput{
		Email: ptr("jane@example.com"),
	})
	var conflict *entity.ConflictError
	require.ErrorAs(t, err, &conflict)

	stillJohn, err := f.GetUserByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, john.ID, stillJohn.ID)
	_, err = f.GetUserByEmail(ctx, "jane@example.com")
	assert.NoError(t, err)
}

// failingUserUpdates persists everything except Update, which always fails.
type failingUserUpdates struct {
	repository.UserRepository
}

func (failingUserUpdates) Update(ctx context.Context, u *entity.User) error {
	return errors.New("storage unavailable")
}

func TestUpdateUserPersistFailureRestoresEmailReservation(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	f := application.NewFacade(
		failingUserUpdates{UserRepository: memory.NewUserRepository()},
		memory.NewPlaceRepository(),
		memory.NewReviewRepository(),
		memory.NewAmenityRepository(),
		uniqueness.NewRegistry(),
		plainHasher{},
		logger,
	)
	ctx := context.Background()
	john := createUser(t, f, "john@example.com")

	_, err := f.UpdateUser(ctx, john.ID, application.UpdateUserInput{
		Email: ptr("john.new@example.com"),
	})
	require.Error(t, err)

	// the old email must still be reserved
	_, err = f.CreateUser(ctx, application.CreateUserInput{
		FirstName: "Jane", LastName: "Doe", Email: "john@example.com", Password: "x12345678",
	})
	var conflict *entity.ConflictError
	require.ErrorAs(t, err, &conflict)

	// and the attempted email must be free again
	_, err = f.CreateUser(ctx, application.CreateUserInput{
		FirstName: "Jane", LastName: "Doe", Email: "john.new@example.com", Password: "x12345678",
	})
	assert.NoError(t, err)
}

func TestUpdateUserAdminToggle(t *testing.T) {
	f := newFacade()
	ctx := context.Background()
	u := createUser(t, f, "john@example.com")

	// toggling the flag also drops any cached session, so the change takes
	// effect without waiting out the session TTL
	got, err := f.UpdateUser(ctx, u.ID, application.UpdateUserInput{IsAdmin: ptr(true)})
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)

	got, err = f.UpdateUser(ctx, got.ID, application.UpdateUserInput{IsAdmin: ptr(false)})
	require.NoError(t, err)
	assert.False(t, got.IsAdmin)
}

func TestUpdateUnknownUser(t *testing.T) {
	f := newFacade()
	_, err := f.UpdateUser(context.Background(), "missing", application.UpdateUserInput{
		FirstName: ptr("X"),
	})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestAuthenticate(t *testing.T) {
	f := newFacade()
	ctx := context.Background()
	u := createUser(t, f, "john@example.com")

	got, err := f.Authenticate(ctx, "john@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = f.Authenticate(ctx, "john@example.com", "wrong")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)

	// unknown email reports the same error as a bad password
	_, err = f.Authenticate(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)
}

func TestCreatePlaceUnknownOwner(t *testing.T) {
	f := newFacade()
	_, err := f.CreatePlace(context.Background(), application.CreatePlaceInput{
		Title: "Cabin", Price: 100, OwnerID: "ghost",
	})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCreatePlaceSkipsUnknownAmenities(t *testing.T) {
	f := newFacade()
	ctx := context.Background()
	owner := createUser(t, f, "owner@example.com")
	wifi, err := f.CreateAmenity(ctx, "WiFi")
	require.NoError(t, err)

	p, err := f.CreatePlace(ctx, application.CreatePlaceInput{
		Title:      "Cabin",
		Price:      100,
		OwnerID:    owner.ID,
		AmenityIDs: []string{wifi.ID, "ghost-amenity"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{wifi.ID}, p.AmenityIDs)
}

func TestUpdatePlaceRejectsOwnerChange(t *testing.T) {
	f := newFacade()
	owner := createUser(t, f, "owner@example.com")
	p := createPlace(t, f, owner.ID)

	_, err := f.UpdatePlace(context.Background(), p.ID, application.UpdatePlaceInput{
		OwnerID: ptr("someone-else"),
	})
	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "owner_id", verr.Field)
}

func TestCreateReviewAppendsToPlace(t *testing.T) {
	f := newFacade()
	ctx := context.Background()
	owner := createUser(t, f, "owner@example.com")
	guest := createUser(t, f, "guest@example.com")
	p := createPlace(t, f, owner.ID)

	r, err := f.CreateReview(ctx, application.CreateReviewInput{
		Text: "wonderful", Rating: 5, UserID: guest.ID, PlaceID: p.ID,
	})
	require.NoError(t, err)

	got, err := f.GetPlace(ctx, p.ID)
	require.NoError(t, err)
	assert.Contains(t, got.ReviewIDs, r.ID)
}

func TestCreateReviewInvalidRatingPersistsNothing(t *testing.T) {
	f := newFacade()
	ctx := context.Background()
	owner := createUser(t, f, "owner@example.com")
	guest := createUser(t, f, "guest@example.com")
	p := createPlace(t, f, owner.ID)

	_, err := f.CreateReview(ctx, application.CreateReviewInput{
		Text: "way too good", Rating: 6, UserID: guest.ID, PlaceID: p.ID,
	})
	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "rating", verr.Field)

	reviews, err := f.ListReviews(ctx)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	got, err := f.GetPlace(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ReviewIDs)
}

func TestCreateReviewDistinguishesMissingReferences(t *testing.T) {
	f := newFacade()
	ctx := context.Background()
	owner := createUser(t, f, "owner@example.com")
	p := createPlace(t, f, owner.ID)

	_, err := f.CreateReview(ctx, application.CreateReviewInput{
		Text: "x", Rating: 3, UserID: "ghost", PlaceID: p.ID,
	})
	require.ErrorIs(t, err, entity.ErrNotFound)
	assert.Contains(t, err.Error(), "user")

	_, err = f.CreateReview(ctx, application.CreateReviewInput{
		Text: "x", Rating: 3, UserID: owner.ID, PlaceID: "ghost",
	})
	require.ErrorIs(t, err, entity.ErrNotFound)
	assert.Contains(t, err.Error(), "place")
}

func TestUpdateReviewRejectsReferenceChanges(t *testing.T) {
	f := newFacade()
	ctx := context.Background()
	owner := createUser(t, f, "owner@example.com")
	p := createPlace(t, f, owner.ID)
	r, err := f.CreateReview(ctx, application.CreateReviewInput{
		Text: "ok", Rating: 3, UserID: owner.ID, PlaceID: p.ID,
	})
	require.NoError(t, err)

	_, err = f.UpdateReview(ctx, r.ID, application.UpdateReviewInput{UserID: ptr("other")})
	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = f.UpdateReview(ctx, r.ID, application.UpdateReviewInput{PlaceID: ptr("other")})
	require.ErrorAs(t, err, &verr)
}

func TestDeletePlaceCascadesReviews(t *testing.T) {
	f := newFacade()
	ctx := context.Background()
	owner := createUser(t, f, "owner@example.com")
	guest := createUser(t, f, "guest@example.com")
	p := createPlace(t, f, owner.ID)
	other := createPlace(t, f, owner.ID)

	r1, err := f.CreateReview(ctx, application.CreateReviewInput{
		Text: "a", Rating: 4, UserID: guest.ID, PlaceID: p.ID,
	})
	require.NoError(t, err)
	r2, err := f.CreateReview(ctx, application.CreateReviewInput{
		Text: "b", Rating: 2, UserID: guest.ID, PlaceID: other.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.DeletePlace(ctx, p.ID))

	_, err = f.GetPlace(ctx, p.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	_, err = f.GetReview(ctx, r1.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	// the other place and its review survive
	_, err = f.GetReview(ctx, r2.ID)
	assert.NoError(t, err)
}

func TestDeleteReviewDetachesFromPlace(t *testing.T) {
	f := newFacade()
	ctx := context.Background()
	owner := createUser(t, f, "owner@example.com")
	p := createPlace(t, f, owner.ID)
	r, err := f.CreateReview(ctx, application.CreateReviewInput{
		Text: "ok", Rating: 3, UserID: owner.ID, PlaceID: p.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.DeleteReview(ctx, r.ID))

	got, err := f.GetPlace(ctx, p.ID)
	require.NoError(t, err)
	assert.NotContains(t, got.ReviewIDs, r.ID)
}

func TestListReviewsForPlaceRequiresPlace(t *testing.T) {
	f := newFacade()
	_, err := f.ListReviewsForPlace(context.Background(), "ghost")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestAmenityAttachment(t *testing.T) {
	f := newFacade()
	ctx := context.Background()
	owner := createUser(t, f, "owner@example.com")
	p := createPlace(t, f, owner.ID)
	wifi, err := f.CreateAmenity(ctx, "WiFi")
	require.NoError(t, err)

	got, err := f.AddAmenityToPlace(ctx, p.ID, wifi.ID)
	require.NoError(t, err)
	assert.True(t, got.HasAmenity(wifi.ID))

	// attaching an unknown amenity is an error here, unlike creation
	_, err = f.AddAmenityToPlace(ctx, p.ID, "ghost")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	got, err = f.RemoveAmenityFromPlace(ctx, p.ID, wifi.ID)
	require.NoError(t, err)
	assert.False(t, got.HasAmenity(wifi.ID))
}

func ptr[T any](v T) *T { return &v }
