package handlers_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nexphase/nexcareer/api/http/handlers"
	"github.com/nexphase/nexcareer/pkg/ai"
	"github.com/nexphase/nexcareer/pkg/apperr"
	"github.com/nexphase/nexcareer/pkg/mocks"
	"github.com/nexphase/nexcareer/pkg/profile"
	"github.com/nexphase/nexcareer/pkg/resume"
	"github.com/nexphase/nexcareer/pkg/result"
)

func uploadRequest(t *testing.T, name string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, "/profile/resume", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

type profileFixture struct {
	repo    *mocks.ProfileRepository
	storage *mocks.StorageService
	ai      *mocks.AIService
	app     *fiber.App
}

func newProfileFixture(user uuid.UUID) profileFixture {
	f := profileFixture{
		repo:    new(mocks.ProfileRepository),
		storage: new(mocks.StorageService),
		ai:      new(mocks.AIService),
	}
	uc := profile.NewService(f.repo, resume.NewParser(), f.storage, f.ai)
	h := handlers.NewProfileHandler(uc, 1<<20, time.Minute)
	f.app = fiber.New()
	f.app.Use(withUser(user))
	f.app.Post("/profile/resume", h.UploadResume)
	return f
}

func TestProfileHandler_UploadPlainTextResume(t *testing.T) {
	user := uuid.New()
	f := newProfileFixture(user)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(result.Ok("http://files/resumes/cv.txt"))
	f.ai.On("ParseResume", mock.Anything, "Jane Doe\nGo developer").
		Return(result.Ok(&ai.ResumeData{Name: "Jane Doe", Skills: []string{"Go"}}))
	f.repo.On("FindByUserID", mock.Anything, user).Return(profile.Profile{}, apperr.ErrNotFound)
	f.repo.On("Upsert", mock.Anything, mock.Anything).Return(
		func(_ context.Context, p profile.Profile) (profile.Profile, error) { return p, nil }, nil)

	resp, err := f.app.Test(uploadRequest(t, "cv.txt", []byte("Jane Doe\nGo developer\n")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProfileHandler_UploadRejectsUnknownFormat(t *testing.T) {
	f := newProfileFixture(uuid.New())

	resp, err := f.app.Test(uploadRequest(t, "photo.png", []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestProfileHandler_UploadRejectsOversizedFile(t *testing.T) {
	f := newProfileFixture(uuid.New())

	resp, err := f.app.Test(uploadRequest(t, "cv.txt", bytes.Repeat([]byte("a"), 1<<20+1)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}
