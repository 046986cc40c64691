package microcms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sharetube/livepage/internal/repository/content"
)

const (
	apiKeyHeader = "X-MICROCMS-API-KEY"
	maxBodyBytes = 1 << 20
)

type Config struct {
	ServiceDomain string
	APIKey        string
	// BaseURL replaces https://{ServiceDomain}.microcms.io/api/v1 when set.
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(cfg *Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.microcms.io/api/v1", cfg.ServiceDomain)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *Client) recordURL(params *content.GetParams) string {
	u := c.baseURL + "/" + url.PathEscape(params.Endpoint) + "/" + url.PathEscape(params.ContentID)
	if params.DraftKey != "" {
		u += "?" + url.Values{"draftKey": {params.DraftKey}}.Encode()
	}

	return u
}

func (c *Client) Get(ctx context.Context, params *content.GetParams) (content.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.recordURL(params), nil)
	if err != nil {
		return content.Record{}, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.client.Do(req)
	if err != nil {
		return content.Record{}, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		if resp.StatusCode == http.StatusNotFound {
			return content.Record{}, content.ErrNotFound
		}
		return content.Record{}, fmt.Errorf("%w: %d", content.ErrUnexpectedStatus, resp.StatusCode)
	}

	var record content.Record
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&record); err != nil {
		return content.Record{}, fmt.Errorf("decode record: %w", err)
	}

	return record, nil
}
