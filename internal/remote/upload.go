package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// uploadResponse covers every shape the upload endpoint has been observed to
// return; the schema was never pinned down server-side.
type uploadResponse struct {
	URL      string `json:"url"`
	ImageURL string `json:"imageUrl"`
	Data     struct {
		URL string `json:"url"`
	} `json:"data"`
}

func (r uploadResponse) hostedURL() string {
	if r.URL != "" {
		return r.URL
	}
	if r.ImageURL != "" {
		return r.ImageURL
	}
	return r.Data.URL
}

// UploadImage posts the file as multipart field "image" and returns the
// hosted URL.
func (c *Client) UploadImage(ctx context.Context, token, fileName string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", fileName)
	if err != nil {
		return "", fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copying file into multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Kind: KindUnreachable, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", decodeError(resp)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &Error{Kind: KindBadResponse, Status: resp.StatusCode, Message: err.Error()}
	}

	hostedURL := parsed.hostedURL()
	if hostedURL == "" {
		return "", &Error{Kind: KindBadResponse, Status: resp.StatusCode, Message: "upload response carried no url"}
	}

	return hostedURL, nil
}
