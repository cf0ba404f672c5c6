// Package service implements business logic between handlers and repositories.
package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"parley/internal/config"
	"parley/internal/middleware"
	"parley/internal/models"

	"github.com/gabriel-vasile/mimetype"
)

// Uploader stores raw image data in the external media store and returns
// its canonical secure URL.
type Uploader interface {
	Upload(ctx context.Context, image string) (string, error)
}

// MediaService uploads profile pictures to the configured media store.
// The store contract is a multipart POST answered with JSON carrying a
// "secure_url" field.
type MediaService struct {
	uploadURL          string
	uploadPreset       string
	maxUploadSizeBytes int64
	httpClient         *http.Client
}

// NewMediaService creates a MediaService from configuration.
func NewMediaService(cfg *config.Config) *MediaService {
	return &MediaService{
		uploadURL:          cfg.MediaUploadURL,
		uploadPreset:       cfg.MediaUploadPreset,
		maxUploadSizeBytes: int64(cfg.MediaMaxUploadSizeMB) * 1024 * 1024,
		httpClient:         &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload accepts a base64 data URI (or bare base64 payload), validates that it
// is an image within the size limit, and forwards it to the media store.
func (s *MediaService) Upload(ctx context.Context, image string) (string, error) {
	if s.uploadURL == "" {
		return "", models.NewInternalError(fmt.Errorf("media store is not configured"))
	}

	data, err := decodeImagePayload(image)
	if err != nil {
		return "", models.NewValidationError("Invalid profile picture data")
	}
	if int64(len(data)) > s.maxUploadSizeBytes {
		return "", models.NewValidationError("Profile picture exceeds the upload size limit")
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", models.NewValidationError("Profile picture must be an image")
	}

	secureURL, err := s.post(ctx, data, mtype.Extension())
	if err != nil {
		middleware.MediaUploads.WithLabelValues("error").Inc()
		return "", models.NewInternalError(err)
	}
	middleware.MediaUploads.WithLabelValues("ok").Inc()
	return secureURL, nil
}

func (s *MediaService) post(ctx context.Context, data []byte, ext string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "upload"+ext)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if s.uploadPreset != "" {
		if err := writer.WriteField("upload_preset", s.uploadPreset); err != nil {
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.uploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("media store request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("media store returned status %d: %s", resp.StatusCode, snippet)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("media store returned invalid response: %w", err)
	}
	if parsed.SecureURL == "" {
		return "", fmt.Errorf("media store response missing secure_url")
	}
	return parsed.SecureURL, nil
}

// decodeImagePayload strips an optional "data:<mime>;base64," prefix and
// decodes the remaining base64 payload.
func decodeImagePayload(image string) ([]byte, error) {
	payload := image
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return nil, fmt.Errorf("malformed data URI")
		}
		payload = payload[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image payload")
	}
	return data, nil
}
