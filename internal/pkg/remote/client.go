package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/config"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/schedule"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Client talks to the upstream schedule system over its JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client. When a token URL is configured, requests carry a
// client-credentials bearer token that is fetched and refreshed automatically.
func NewClient(cfg config.RemoteConfig) *Client {
	base := &http.Client{Timeout: cfg.Timeout}

	httpClient := base
	if cfg.TokenURL != "" {
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		httpClient = cc.Client(ctx)
		httpClient.Timeout = cfg.Timeout
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}
}

// APIError represents a non-success response from the schedule API
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("schedule API error [%d] %s: %s", e.StatusCode, e.ErrorCode, e.Message)
}

type schedulesResponse struct {
	Data []schedule.RemoteShift `json:"data"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FetchSchedules implements schedule.RemoteSource.
func (c *Client) FetchSchedules(ctx context.Context, departmentCode string, from, to time.Time) ([]schedule.RemoteShift, error) {
	endpoint := fmt.Sprintf("%s/departments/%s/schedules", c.baseURL, url.PathEscape(departmentCode))

	query := url.Values{}
	query.Set("from", from.Format(time.DateOnly))
	query.Set("to", to.Format(time.DateOnly))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build schedule request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("schedule request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var body errorResponse
		if raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); readErr == nil && json.Unmarshal(raw, &body) == nil {
			apiErr.ErrorCode = body.Code
			if body.Message != "" {
				apiErr.Message = body.Message
			}
		}
		return nil, apiErr
	}

	var payload schedulesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode schedule response: %w", err)
	}

	return payload.Data, nil
}
