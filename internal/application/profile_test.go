package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourbook/tourbook-api/pkg/helpers"
)

func registeredIdentity(t *testing.T, svc *Service) Identity {
	t.Helper()
	res, err := svc.Register(context.Background(), registerInput("alice@example.com"))
	require.NoError(t, err)
	return Identity{UserID: res.User.ID, Email: res.User.Email, Role: res.User.Role}
}

func TestGetProfile(t *testing.T) {
	mem := newMemoryRepo()
	svc := newTestService(mem, &fakeNotifier{}, &fakeUploader{})
	id := registeredIdentity(t, svc)

	u, err := svc.GetProfile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "Alice", u.FirstName)
}

func TestGetProfile_UnknownUser(t *testing.T) {
	svc := newTestService(newMemoryRepo(), &fakeNotifier{}, &fakeUploader{})
	_, err := svc.GetProfile(context.Background(), Identity{UserID: "missing"})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile_PartialSemantics(t *testing.T) {
	ctx := context.Background()
	mem := newMemoryRepo()
	svc := newTestService(mem, &fakeNotifier{}, &fakeUploader{})
	id := registeredIdentity(t, svc)

	phone := "+15551234567"
	u, err := svc.UpdateProfile(ctx, id, UpdateProfileInput{Phone: &phone})
	require.NoError(t, err)

	// supplied field applied, absent fields untouched
	require.NotNil(t, u.Phone)
	assert.Equal(t, phone, *u.Phone)
	assert.Equal(t, "Alice", u.FirstName)
	assert.Equal(t, "Walker", u.LastName)

	first := "Alicia"
	u, err = svc.UpdateProfile(ctx, id, UpdateProfileInput{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", u.FirstName)
	require.NotNil(t, u.Phone)
	assert.Equal(t, phone, *u.Phone)
}

func TestUpdateProfile_ImageReplace(t *testing.T) {
	ctx := context.Background()
	mem := newMemoryRepo()
	svc := newTestService(mem, &fakeNotifier{}, &fakeUploader{url: "https://cdn.example.com/p/1.png"})
	id := registeredIdentity(t, svc)

	u, err := svc.UpdateProfile(ctx, id, UpdateProfileInput{
		Image: &ImageInput{Reader: strings.NewReader("img"), Filename: "p.png", ContentType: "image/png"},
	})
	require.NoError(t, err)
	require.NotNil(t, u.ProfileImageURL)
	assert.Equal(t, "https://cdn.example.com/p/1.png", *u.ProfileImageURL)
}

func TestUpdateProfile_UploadFailureRejectsWholeUpdate(t *testing.T) {
	ctx := context.Background()
	mem := newMemoryRepo()
	svc := newTestService(mem, &fakeNotifier{}, &fakeUploader{err: assert.AnError})
	id := registeredIdentity(t, svc)

	first := "Alicia"
	_, err := svc.UpdateProfile(ctx, id, UpdateProfileInput{
		FirstName: &first,
		Image:     &ImageInput{Reader: strings.NewReader("img"), Filename: "p.png", ContentType: "image/png"},
	})
	require.ErrorIs(t, err, ErrUpload)

	// nothing persisted
	stored := mem.raw(id.UserID)
	assert.Equal(t, "Alice", stored.FirstName)
	assert.Nil(t, stored.ProfileImageURL)
}

func TestUpdatePassword_WrongCurrentLeavesHashUnchanged(t *testing.T) {
	ctx := context.Background()
	mem := newMemoryRepo()
	svc := newTestService(mem, &fakeNotifier{}, &fakeUploader{})
	id := registeredIdentity(t, svc)

	before := mem.raw(id.UserID).PasswordHash

	err := svc.UpdatePassword(ctx, id, "Wr0ng!Pass", "N3w!Password")
	require.ErrorIs(t, err, ErrWrongPassword)
	assert.Equal(t, before, mem.raw(id.UserID).PasswordHash)
}

func TestUpdatePassword_Success(t *testing.T) {
	ctx := context.Background()
	mem := newMemoryRepo()
	svc := newTestService(mem, &fakeNotifier{}, &fakeUploader{})
	id := registeredIdentity(t, svc)

	require.NoError(t, svc.UpdatePassword(ctx, id, "Str0ng!Pass", "N3w!Password"))

	stored := mem.raw(id.UserID)
	assert.False(t, helpers.CompareHashAndPassword(stored.PasswordHash, "Str0ng!Pass"))
	assert.True(t, helpers.CompareHashAndPassword(stored.PasswordHash, "N3w!Password"))
}
