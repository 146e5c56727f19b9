package apiclient

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

	"github.com/google/uuid"

	"carrental-client/internal/domain"
	"carrental-client/internal/logger"
	"carrental-client/internal/observability"
)

const serviceName = "carrental-api"

// TokenSource yields the bearer token for a single request
type TokenSource func(ctx context.Context) (string, error)

// client performs authenticated JSON requests against the backend. The token
// is obtained fresh for every request, so a refreshed session is picked up
// without rebuilding the client.
type client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
}

func newClient(baseURL string, httpClient *http.Client, token TokenSource) *client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		token:      token,
	}
}

func (c *client) do(ctx context.Context, operation, method, path string, query url.Values, body, out any) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", operation, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.ExternalServiceCall(serviceName, operation, "method", method, "path", path, "request_id", requestID)
	start := time.Now()
	err = c.send(req, operation, out)
	observability.BackendRequestDuration.WithLabelValues(operation, outcomeLabel(err)).Observe(time.Since(start).Seconds())
	logger.ExternalServiceResult(serviceName, operation, err, "request_id", requestID)
	return err
}

func (c *client) send(req *http.Request, operation string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrTransport, operation, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s: failed to read response: %w", domain.ErrTransport, operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(operation, resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: failed to decode response: %w", domain.ErrTransport, operation, err)
	}
	return nil
}

func outcomeLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// decodePage accepts both the paginated envelope and a bare JSON list
func decodePage[T any](raw json.RawMessage) (*domain.Page[T], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return &domain.Page[T]{Items: items, Total: len(items), Page: 1, PageSize: len(items), Pages: 1}, nil
	}
	var page domain.Page[T]
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return &page, nil
}

func setPaging(q url.Values, page, pageSize int, sortBy, sortOrder string) {
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if pageSize > 0 {
		q.Set("page_size", fmt.Sprint(pageSize))
	}
	if sortBy != "" {
		q.Set("sort_by", sortBy)
	}
	if sortOrder != "" {
		q.Set("sort_order", sortOrder)
	}
}
