package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Ianrury/articel/internal/models"
)

var (
	ErrNotAnImage     = errors.New("only image files are allowed")
	ErrImageTooLarge  = errors.New("image exceeds the maximum upload size")
	ErrSubmitInFlight = errors.New("a submission is already in progress")
)

type selectedFile struct {
	name        string
	contentType string
	data        []byte
}

// CreateArticleFlow is the two-phase create form: optionally upload the
// selected image to obtain a hosted URL, then submit the article payload.
// The phases are independently retriable; a URL obtained in phase one is
// cached so a retry after a failed create does not upload again.
type CreateArticleFlow struct {
	api           ArticleAPI
	maxUploadSize int64

	mu             sync.Mutex
	file           *selectedFile
	previewDataURL string
	uploadedURL    string
	uploading      bool
	submitting     bool
	idempotencyKey string
}

func NewCreateArticleFlow(api ArticleAPI, maxUploadSize int64) *CreateArticleFlow {
	return &CreateArticleFlow{
		api:            api,
		maxUploadSize:  maxUploadSize,
		idempotencyKey: uuid.New().String(),
	}
}

// SelectImage validates and stages a local file. Selecting a new file
// replaces the previous one and clears any cached uploaded URL, forcing a
// fresh upload on the next submit. Validation failures never reach the
// network.
func (f *CreateArticleFlow) SelectImage(name, contentType string, size int64, file io.Reader) error {
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotAnImage
	}
	if size > f.maxUploadSize {
		return ErrImageTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(file, f.maxUploadSize+1))
	if err != nil {
		return fmt.Errorf("reading selected file: %w", err)
	}
	if int64(len(data)) > f.maxUploadSize {
		return ErrImageTooLarge
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.file = &selectedFile{name: name, contentType: contentType, data: data}
	f.previewDataURL = fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
	f.uploadedURL = ""
	return nil
}

// RemoveImage discards the staged file, its preview, and the cached URL.
func (f *CreateArticleFlow) RemoveImage() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.file = nil
	f.previewDataURL = ""
	f.uploadedURL = ""
}

// Preview returns the data URL of the staged image, if one is selected.
func (f *CreateArticleFlow) Preview() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.previewDataURL
}

// Uploading reports whether phase one is in flight.
func (f *CreateArticleFlow) Uploading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploading
}

// Submit runs both phases. On success all form and upload state resets and a
// fresh idempotency key is issued for the next article. On failure the state
// is left populated for a manual retry.
func (f *CreateArticleFlow) Submit(ctx context.Context, token string, input models.ArticleInput) (*models.Article, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	f.submitting = true

	file := f.file
	uploadedURL := f.uploadedURL
	needUpload := file != nil && uploadedURL == ""
	if needUpload {
		f.uploading = true
	}
	key := f.idempotencyKey
	f.mu.Unlock()

	if needUpload {
		hostedURL, err := f.api.UploadImage(ctx, token, file.name, bytes.NewReader(file.data))

		f.mu.Lock()
		f.uploading = false
		if err != nil {
			f.submitting = false
			f.mu.Unlock()
			return nil, fmt.Errorf("uploading image: %w", err)
		}
		f.uploadedURL = hostedURL
		uploadedURL = hostedURL
		f.mu.Unlock()
	}

	input.ImageURL = uploadedURL

	article, err := f.api.CreateArticle(ctx, token, input, key)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false

	if err != nil {
		return nil, fmt.Errorf("creating article: %w", err)
	}

	f.file = nil
	f.previewDataURL = ""
	f.uploadedURL = ""
	f.idempotencyKey = uuid.New().String()
	return article, nil
}
