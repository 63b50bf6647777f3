package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/enrichx/directory-service/internal/config"
	domainErrors "github.com/enrichx/directory-service/internal/domain/errors"
	"github.com/enrichx/directory-service/internal/domain/models"
	"github.com/enrichx/directory-service/internal/domain/repository"
	"github.com/enrichx/directory-service/internal/utils/metrics"
)

// Client talks to the identity provider's admin REST API using the
// privileged service key. It implements repository.IdentityStore.
type Client struct {
	baseURL    string
	serviceKey string
	pageSize   int
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new identity admin client.
func NewClient(cfg config.IdentityConfig, logger *zap.Logger) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		serviceKey: cfg.ServiceKey,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("identity_client"),
	}
}

type listUsersPage struct {
	Users []models.IdentityRecord `json:"users"`
	Total int                     `json:"total"`
}

// List drains the provider's paginated user listing into one snapshot.
func (c *Client) List(ctx context.Context) ([]models.IdentityRecord, error) {
	var all []models.IdentityRecord
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(c.pageSize))

		var result listUsersPage
		if err := c.do(ctx, http.MethodGet, "/admin/users?"+q.Encode(), nil, &result); err != nil {
			return nil, err
		}
		all = append(all, result.Users...)
		if len(result.Users) < c.pageSize {
			break
		}
	}
	return all, nil
}

// GetByID fetches one account by id.
func (c *Client) GetByID(ctx context.Context, id string) (*models.IdentityRecord, error) {
	var user models.IdentityRecord
	if err := c.do(ctx, http.MethodGet, "/admin/users/"+url.PathEscape(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMetadata merges the given entries into the account's user_metadata.
func (c *Client) UpdateMetadata(ctx context.Context, id string, patch models.Metadata) error {
	body := map[string]interface{}{"user_metadata": patch}
	return c.do(ctx, http.MethodPut, "/admin/users/"+url.PathEscape(id), body, nil)
}

// SetBanned sets or clears banned_until. A nil until lifts the ban. The
// provider stores the timestamp verbatim, so re-sending the same value is
// idempotent.
func (c *Client) SetBanned(ctx context.Context, id string, until *time.Time) error {
	body := map[string]interface{}{"banned_until": until}
	return c.do(ctx, http.MethodPut, "/admin/users/"+url.PathEscape(id), body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.StoreRequestsTotal.WithLabelValues("identity", "error").Inc()
		return fmt.Errorf("%w: %v", domainErrors.ErrIdentityStore, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		metrics.StoreRequestsTotal.WithLabelValues("identity", "not_found").Inc()
		return domainErrors.ErrUserNotFound
	case resp.StatusCode >= 400:
		metrics.StoreRequestsTotal.WithLabelValues("identity", "error").Inc()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("Identity store request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", detail),
		)
		return fmt.Errorf("%w: %s %s: status %d", domainErrors.ErrIdentityStore, method, path, resp.StatusCode)
	}

	metrics.StoreRequestsTotal.WithLabelValues("identity", "ok").Inc()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", domainErrors.ErrIdentityStore, err)
		}
	}
	return nil
}

var _ repository.IdentityStore = (*Client)(nil)
