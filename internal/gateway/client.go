package gateway

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"shareit/internal/models"
)

// Client forwards validated requests to the business tier.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Forward replays the incoming request against the server and returns
// the raw response. The caller owns the response body.
func (c *Client) Forward(ctx context.Context, r *http.Request, body []byte) (*http.Response, error) {
	endpoint := c.baseURL + r.URL.Path
	if q := r.URL.RawQuery; q != "" {
		endpoint += "?" + q
	}

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if v := r.Header.Get(models.HeaderUserID); v != "" {
		req.Header.Set(models.HeaderUserID, v)
	}
	if v := r.Header.Get(headerRequestID); v != "" {
		req.Header.Set(headerRequestID, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call server: %w", err)
	}
	return resp, nil
}
