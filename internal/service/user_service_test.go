package service

import (
	"context"
	"strings"
	"testing"

	"parley/internal/database"
	"parley/internal/models"
	"parley/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	url string
	err error
}

func (f *fakeUploader) Upload(ctx context.Context, image string) (string, error) {
	return f.url, f.err
}

func newUserServiceTest(t *testing.T) (*UserService, repository.UserRepository) {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)
	repo := repository.NewUserRepository(db)
	return NewUserService(repo, &fakeUploader{url: "https://media.example.com/new.png"}), repo
}

func createUser(t *testing.T, repo repository.UserRepository, email string) *models.User {
	t.Helper()
	user := &models.User{FullName: "Service User", Email: email, Password: "hash", About: "old about"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUpdateProfileAppliesAllFields(t *testing.T) {
	svc, repo := newUserServiceTest(t)
	ctx := context.Background()
	user := createUser(t, repo, "all@x.com")

	pic := "base64-image-data"
	about := "new about"
	name := "  New Name  "
	updated, err := svc.UpdateProfile(ctx, UpdateProfileInput{
		UserID:     user.ID,
		ProfilePic: &pic,
		About:      &about,
		FullName:   &name,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://media.example.com/new.png", updated.ProfilePic)
	assert.Equal(t, "new about", updated.About)
	assert.Equal(t, "New Name", updated.FullName)

	reloaded, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", reloaded.FullName)
}

func TestUpdateProfileClearsAboutWithEmptyString(t *testing.T) {
	svc, repo := newUserServiceTest(t)
	ctx := context.Background()
	user := createUser(t, repo, "clear@x.com")

	empty := ""
	updated, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID, About: &empty})
	require.NoError(t, err)
	assert.Equal(t, "", updated.About)
}

func TestUpdateProfileWithNothingToApply(t *testing.T) {
	svc, repo := newUserServiceTest(t)
	user := createUser(t, repo, "noop@x.com")

	blank := "   "
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: user.ID, FullName: &blank})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestUpdateProfileRejectsOverlongFields(t *testing.T) {
	svc, repo := newUserServiceTest(t)
	ctx := context.Background()
	user := createUser(t, repo, "long@x.com")

	longAbout := strings.Repeat("a", 501)
	_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID, About: &longAbout})
	require.Error(t, err)

	longName := strings.Repeat("n", 101)
	_, err = svc.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID, FullName: &longName})
	require.Error(t, err)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc, _ := newUserServiceTest(t)

	about := "x"
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 404, About: &about})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestMuteAndUnmuteReturnResultingSet(t *testing.T) {
	svc, repo := newUserServiceTest(t)
	ctx := context.Background()
	user := createUser(t, repo, "sets@x.com")
	first := createUser(t, repo, "first@x.com")
	second := createUser(t, repo, "second@x.com")

	muted, err := svc.MuteConversation(ctx, user.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{first.ID}, muted)

	muted, err = svc.MuteConversation(ctx, user.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{first.ID, second.ID}, muted)

	muted, err = svc.UnmuteConversation(ctx, user.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{second.ID}, muted)

	// Unmuting a conversation that was never muted leaves the set unchanged.
	muted, err = svc.UnmuteConversation(ctx, user.ID, 999)
	require.NoError(t, err)
	assert.Equal(t, []uint{second.ID}, muted)
}
