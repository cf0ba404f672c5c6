package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"parley/internal/config"
	"parley/internal/models"
	"parley/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubUploader fakes the media store for handler tests.
type stubUploader struct {
	url string
	err error

	calledWith string
}

func (u *stubUploader) Upload(_ context.Context, image string) (string, error) {
	u.calledWith = image
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

func newProfileTestServer(t *testing.T, mockRepo *MockUserRepository, uploader service.Uploader) (*Server, *fiber.App) {
	t.Helper()
	s := &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		userRepo: mockRepo,
		uploader: uploader,
	}
	s.userService = service.NewUserService(mockRepo, uploader)

	app := fiber.New()
	app.Put("/me", s.AuthRequired(), s.UpdateProfile)
	return s, app
}

func profileRequest(t *testing.T, s *Server, body any) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	token, err := s.generateToken(5)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/me", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	return req
}

func storedProfileUser() *models.User {
	return &models.User{
		ID:       5,
		FullName: "Original Name",
		Email:    "orig@x.com",
		Password: "hash",
		About:    "old about",
	}
}

func TestUpdateProfile(t *testing.T) {
	t.Run("rejects an empty update", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, uint(5)).Return(storedProfileUser(), nil)

		s, app := newProfileTestServer(t, mockRepo, &stubUploader{})
		resp, err := app.Test(profileRequest(t, s, map[string]any{}), -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "No profile fields to update", decodeBody(t, resp)["error"])
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("blank fullName alone is not a change", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, uint(5)).Return(storedProfileUser(), nil)

		s, app := newProfileTestServer(t, mockRepo, &stubUploader{})
		resp, err := app.Test(profileRequest(t, s, map[string]any{"fullName": "   "}), -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("empty about is a valid replacement", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, uint(5)).Return(storedProfileUser(), nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.About == ""
		})).Return(nil)

		s, app := newProfileTestServer(t, mockRepo, &stubUploader{})
		resp, err := app.Test(profileRequest(t, s, map[string]any{"about": ""}), -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "", body["about"])
		assert.NotContains(t, body, "password")
		mockRepo.AssertExpectations(t)
	})

	t.Run("trims fullName", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, uint(5)).Return(storedProfileUser(), nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.FullName == "New Name"
		})).Return(nil)

		s, app := newProfileTestServer(t, mockRepo, &stubUploader{})
		resp, err := app.Test(profileRequest(t, s, map[string]any{"fullName": "  New Name  "}), -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "New Name", decodeBody(t, resp)["fullName"])
		mockRepo.AssertExpectations(t)
	})

	t.Run("uploads profilePic and stores the secure URL", func(t *testing.T) {
		uploader := &stubUploader{url: "https://media.example.com/abc.webp"}
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, uint(5)).Return(storedProfileUser(), nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.ProfilePic == uploader.url
		})).Return(nil)

		s, app := newProfileTestServer(t, mockRepo, uploader)
		resp, err := app.Test(profileRequest(t, s, map[string]any{"profilePic": "data:image/png;base64,aGk="}), -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, uploader.url, decodeBody(t, resp)["profilePic"])
		assert.Equal(t, "data:image/png;base64,aGk=", uploader.calledWith)
		mockRepo.AssertExpectations(t)
	})

	t.Run("upload failure is a server error", func(t *testing.T) {
		uploader := &stubUploader{err: models.NewInternalError(assert.AnError)}
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, uint(5)).Return(storedProfileUser(), nil)

		s, app := newProfileTestServer(t, mockRepo, uploader)
		resp, err := app.Test(profileRequest(t, s, map[string]any{"profilePic": "data:image/png;base64,aGk="}), -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockRepo.AssertNotCalled(t, "Update")
	})
}
