package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the content API. The session token is passed per call, not
// held by the client, so one client instance serves every user of the console.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// errorBody is the shape the API uses for failures; some endpoints send
// "message", others "error".
type errorBody struct {
	Message string `json:"message"`
	ErrMsg  string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body interface{}, out interface{}) error {
	return c.doWithHeaders(ctx, method, path, token, query, body, out, nil)
}

func (c *Client) doWithHeaders(ctx context.Context, method, path, token string, query url.Values, body interface{}, out interface{}, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindUnreachable, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindBadResponse, Status: resp.StatusCode, Message: err.Error()}
	}

	return nil
}

func decodeError(resp *http.Response) *Error {
	apiErr := &Error{
		Kind:   kindForStatus(resp.StatusCode),
		Status: resp.StatusCode,
	}

	var parsed errorBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&parsed); err == nil {
		if parsed.Message != "" {
			apiErr.Message = parsed.Message
		} else {
			apiErr.Message = parsed.ErrMsg
		}
	}

	return apiErr
}
