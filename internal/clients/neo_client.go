package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"cosmicwatch/internal/models"
)

// UpstreamError — отказ внешнего фида. StatusCode = 0, если ответа не было
// (таймаут, сетевая ошибка).
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("NEO feed returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("NEO feed unavailable: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

type NEOClient interface {
	FetchFeed(ctx context.Context, startDate, endDate string) (map[string][]models.NearEarthObject, error)
}

type NEOConfig struct {
	APIKey  string
	FeedURL string
	Timeout time.Duration
}

type neoClient struct {
	apiKey  string
	feedURL string
	client  *http.Client
}

// NewNEOClient создает клиент с собственным http.Client — никакого
// глобального состояния, конфигурация передается явно
func NewNEOClient(config NEOConfig) NEOClient {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &neoClient{
		apiKey:  config.APIKey,
		feedURL: config.FeedURL,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:       10,
				IdleConnTimeout:    30 * time.Second,
				DisableCompression: false,
			},
		},
	}
}

func (c *neoClient) FetchFeed(ctx context.Context, startDate, endDate string) (map[string][]models.NearEarthObject, error) {
	params := url.Values{}
	params.Add("start_date", startDate)
	params.Add("end_date", endDate)
	if c.apiKey != "" {
		params.Add("api_key", c.apiKey)
	}

	reqURL := c.feedURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "Cosmic-Watch/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	var data struct {
		NearEarthObjects map[string][]models.NearEarthObject `json:"near_earth_objects"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	return data.NearEarthObjects, nil
}
