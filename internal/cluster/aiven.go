package cluster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"opensearch-cleanup/internal/engine"
)

// Client talks to the Aiven service API for one project's Opensearch
// services.
type Client struct {
	BaseURL    string
	Token      string
	Project    string
	Client     *http.Client
	RetryCount int
}

// NewClient creates an Aiven API client. baseURL is the API root without the
// version segment, e.g. https://api.aiven.io.
func NewClient(baseURL, token, project string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		Project:    project,
		Client:     &http.Client{Timeout: 30 * time.Second},
		RetryCount: 2,
	}
}

// SetRetryCount sets the number of retry attempts for failed requests.
func (c *Client) SetRetryCount(count int) {
	c.RetryCount = count
}

// doRequestWithRetry executes an HTTP request with retry logic. Transport
// errors and gateway-side 502/503/504 responses are retried with a linear
// backoff; other responses are returned as-is.
func (c *Client) doRequestWithRetry(req *http.Request) (*http.Response, error) {
	var lastErr error
	var resp *http.Response

	for attempt := 0; attempt <= c.RetryCount; attempt++ {
		if attempt > 0 {
			waitTime := time.Duration(attempt) * time.Second
			select {
			case <-time.After(waitTime):
			case <-req.Context().Done():
				return nil, req.Context().Err()
			}
		}

		resp, lastErr = c.Client.Do(req)
		if lastErr != nil {
			if attempt < c.RetryCount {
				continue
			}
			return nil, lastErr
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		if resp.StatusCode == 502 || resp.StatusCode == 503 || resp.StatusCode == 504 {
			resp.Body.Close()
			if attempt < c.RetryCount {
				continue
			}
		}

		return resp, nil
	}
	return resp, lastErr
}

func (c *Client) addAuth(req *http.Request) {
	req.Header.Set("Authorization", "aivenv1 "+c.Token)
}

// indexListResponse mirrors the Aiven index listing payload; only the fields
// the cleanup cares about are decoded.
type indexListResponse struct {
	Indexes []indexEntry `json:"indexes"`
}

type indexEntry struct {
	IndexName string `json:"index_name"`
	Size      int64  `json:"size"`
	Docs      int64  `json:"docs"`
	Health    string `json:"health"`
	Status    string `json:"status"`
}

// ListIndices fetches the current index listing of a service and converts it
// into the engine's snapshot form, preserving the API's ordering.
func (c *Client) ListIndices(ctx context.Context, service string) ([]engine.IndexInfo, error) {
	endpoint := fmt.Sprintf("%s/v1/project/%s/service/%s/index",
		c.BaseURL, url.PathEscape(c.Project), url.PathEscape(service))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.addAuth(req)

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("listing indices for %s: unexpected status %s: %s", service, resp.Status, body)
	}

	var listing indexListResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decoding index listing for %s: %w", service, err)
	}

	indices := make([]engine.IndexInfo, 0, len(listing.Indexes))
	for _, entry := range listing.Indexes {
		indices = append(indices, engine.IndexInfo{
			Name:      entry.IndexName,
			SizeBytes: entry.Size,
		})
	}
	return indices, nil
}

// DeleteIndex deletes a single index of a service.
func (c *Client) DeleteIndex(ctx context.Context, service, index string) error {
	endpoint := fmt.Sprintf("%s/v1/project/%s/service/%s/index/%s",
		c.BaseURL, url.PathEscape(c.Project), url.PathEscape(service), url.PathEscape(index))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	c.addAuth(req)

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("deleting index %s on %s: unexpected status %s: %s", index, service, resp.Status, body)
	}
	return nil
}
