package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ianrury/articel/internal/models"
)

const maxUpload = 5 * 1024 * 1024

func validInput() models.ArticleInput {
	return models.ArticleInput{
		Title:      "A reasonable headline",
		Content:    "Long enough body for the form rules.",
		CategoryID: "b11e39fd-7dd4-4fc2-b6b8-3f9f2f1a8a11",
	}
}

func TestCreateFlow_RejectsNonImageWithoutNetwork(t *testing.T) {
	api := &fakeArticleAPI{uploadURL: "http://cdn/img.jpg"}
	flow := NewCreateArticleFlow(api, maxUpload)

	err := flow.SelectImage("notes.txt", "text/plain", 100, strings.NewReader("hello"))

	assert.ErrorIs(t, err, ErrNotAnImage)
	assert.Zero(t, api.uploads())
}

func TestCreateFlow_RejectsOversizeWithoutNetwork(t *testing.T) {
	api := &fakeArticleAPI{uploadURL: "http://cdn/img.jpg"}
	flow := NewCreateArticleFlow(api, maxUpload)

	err := flow.SelectImage("big.jpg", "image/jpeg", maxUpload+1, strings.NewReader("x"))

	assert.ErrorIs(t, err, ErrImageTooLarge)
	assert.Zero(t, api.uploads())
}

func TestCreateFlow_RejectsUndersizedClaimWithOversizedBody(t *testing.T) {
	api := &fakeArticleAPI{uploadURL: "http://cdn/img.jpg"}
	flow := NewCreateArticleFlow(api, 16)

	err := flow.SelectImage("img.jpg", "image/jpeg", 10, strings.NewReader(strings.Repeat("a", 64)))

	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestCreateFlow_UploadThenCreate(t *testing.T) {
	api := &fakeArticleAPI{uploadURL: "http://cdn/img.jpg"}
	flow := NewCreateArticleFlow(api, maxUpload)

	jpeg := strings.Repeat("j", 2*1024*1024) // 2 MB
	require.NoError(t, flow.SelectImage("photo.jpg", "image/jpeg", int64(len(jpeg)), strings.NewReader(jpeg)))
	assert.True(t, strings.HasPrefix(flow.Preview(), "data:image/jpeg;base64,"))

	article, err := flow.Submit(context.Background(), "tok", validInput())
	require.NoError(t, err)

	assert.Equal(t, 1, api.uploads())
	created := api.createdInputs()
	require.Len(t, created, 1)
	assert.Equal(t, "http://cdn/img.jpg", created[0].ImageURL)
	assert.Equal(t, "http://cdn/img.jpg", article.ImageURL)
}

func TestCreateFlow_NoImageSkipsUpload(t *testing.T) {
	api := &fakeArticleAPI{}
	flow := NewCreateArticleFlow(api, maxUpload)

	_, err := flow.Submit(context.Background(), "tok", validInput())
	require.NoError(t, err)

	assert.Zero(t, api.uploads())
	created := api.createdInputs()
	require.Len(t, created, 1)
	assert.Empty(t, created[0].ImageURL)
}

func TestCreateFlow_RetryAfterCreateFailureDoesNotReupload(t *testing.T) {
	api := &fakeArticleAPI{uploadURL: "http://cdn/img.jpg", createErr: errors.New("boom")}
	flow := NewCreateArticleFlow(api, maxUpload)

	require.NoError(t, flow.SelectImage("photo.jpg", "image/jpeg", 4, strings.NewReader("jpeg")))

	_, err := flow.Submit(context.Background(), "tok", validInput())
	require.Error(t, err)
	assert.Equal(t, 1, api.uploads())

	// The form stays populated; a manual retry reuses the hosted URL.
	api.mu.Lock()
	api.createErr = nil
	api.mu.Unlock()

	article, err := flow.Submit(context.Background(), "tok", validInput())
	require.NoError(t, err)

	assert.Equal(t, 1, api.uploads(), "retry must not upload again")
	assert.Equal(t, "http://cdn/img.jpg", article.ImageURL)
}

func TestCreateFlow_UploadFailureKeepsFileForRetry(t *testing.T) {
	api := &fakeArticleAPI{uploadErr: errors.New("upload down")}
	flow := NewCreateArticleFlow(api, maxUpload)

	require.NoError(t, flow.SelectImage("photo.jpg", "image/jpeg", 4, strings.NewReader("jpeg")))

	_, err := flow.Submit(context.Background(), "tok", validInput())
	require.Error(t, err)
	assert.Empty(t, api.createdInputs(), "create must not run when upload fails")
	assert.False(t, flow.Uploading(), "progress resets after a failed upload")

	api.mu.Lock()
	api.uploadErr = nil
	api.uploadURL = "http://cdn/late.jpg"
	api.mu.Unlock()

	article, err := flow.Submit(context.Background(), "tok", validInput())
	require.NoError(t, err)
	assert.Equal(t, 2, api.uploads())
	assert.Equal(t, "http://cdn/late.jpg", article.ImageURL)
}

func TestCreateFlow_ReselectingImageForcesReupload(t *testing.T) {
	api := &fakeArticleAPI{uploadURL: "http://cdn/first.jpg", createErr: errors.New("boom")}
	flow := NewCreateArticleFlow(api, maxUpload)

	require.NoError(t, flow.SelectImage("one.jpg", "image/jpeg", 3, strings.NewReader("one")))
	_, err := flow.Submit(context.Background(), "tok", validInput())
	require.Error(t, err)
	assert.Equal(t, 1, api.uploads())

	// A new selection clears the cached URL.
	require.NoError(t, flow.SelectImage("two.jpg", "image/jpeg", 3, strings.NewReader("two")))

	api.mu.Lock()
	api.createErr = nil
	api.uploadURL = "http://cdn/second.jpg"
	api.mu.Unlock()

	article, err := flow.Submit(context.Background(), "tok", validInput())
	require.NoError(t, err)
	assert.Equal(t, 2, api.uploads())
	assert.Equal(t, "http://cdn/second.jpg", article.ImageURL)
}

func TestCreateFlow_RemoveImageClearsEverything(t *testing.T) {
	api := &fakeArticleAPI{uploadURL: "http://cdn/img.jpg"}
	flow := NewCreateArticleFlow(api, maxUpload)

	require.NoError(t, flow.SelectImage("photo.jpg", "image/jpeg", 4, strings.NewReader("jpeg")))
	flow.RemoveImage()

	assert.Empty(t, flow.Preview())

	_, err := flow.Submit(context.Background(), "tok", validInput())
	require.NoError(t, err)
	assert.Zero(t, api.uploads())
}

func TestCreateFlow_SuccessResetsState(t *testing.T) {
	api := &fakeArticleAPI{uploadURL: "http://cdn/img.jpg"}
	flow := NewCreateArticleFlow(api, maxUpload)

	require.NoError(t, flow.SelectImage("photo.jpg", "image/jpeg", 4, strings.NewReader("jpeg")))
	_, err := flow.Submit(context.Background(), "tok", validInput())
	require.NoError(t, err)

	assert.Empty(t, flow.Preview())

	// The next submission carries a fresh idempotency key and no image.
	_, err = flow.Submit(context.Background(), "tok", validInput())
	require.NoError(t, err)

	assert.Equal(t, 1, api.uploads())
	api.mu.Lock()
	defer api.mu.Unlock()
	require.Len(t, api.createKeys, 2)
	assert.NotEqual(t, api.createKeys[0], api.createKeys[1])
	assert.Empty(t, api.created[1].ImageURL)
}

func TestCreateFlow_ConcurrentSubmitRejected(t *testing.T) {
	gate := make(chan struct{})
	api := &fakeArticleAPI{uploadURL: "http://cdn/img.jpg", uploadGate: gate}
	flow := NewCreateArticleFlow(api, maxUpload)

	require.NoError(t, flow.SelectImage("photo.jpg", "image/jpeg", 4, strings.NewReader("jpeg")))

	firstDone := make(chan error, 1)
	go func() {
		_, err := flow.Submit(context.Background(), "tok", validInput())
		firstDone <- err
	}()

	// Wait until the first submission is inside the upload phase.
	require.Eventually(t, func() bool { return flow.Uploading() }, time.Second, time.Millisecond)

	_, err := flow.Submit(context.Background(), "tok", validInput())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(gate)
	require.NoError(t, <-firstDone)
}
