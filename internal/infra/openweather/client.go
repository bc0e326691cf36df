package openweather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/weatherly/internal/domain/forecast"
	apperrors "github.com/yanqian/weatherly/pkg/errors"
)

const (
	defaultBaseURL = "http://api.openweathermap.org/data/2.5"
	defaultUnits   = "imperial"
	defaultTimeout = 10 * time.Second

	currentPath  = "/weather"
	forecastPath = "/forecast"
)

// Options configures the API client.
type Options struct {
	BaseURL string
	APIKey  string
	Units   string
	Timeout time.Duration
}

// Client fetches current conditions and the 5 day / 3 hour forecast from OpenWeatherMap.
type Client struct {
	baseURL    string
	apiKey     string
	units      string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(opts Options) *Client {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	units := strings.TrimSpace(opts.Units)
	if units == "" {
		units = defaultUnits
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		apiKey:  opts.APIKey,
		units:   units,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchCurrent retrieves current conditions for location.
func (c *Client) FetchCurrent(ctx context.Context, location string) (forecast.Current, error) {
	body, err := c.get(ctx, currentPath, location)
	if err != nil {
		return forecast.Current{}, err
	}
	current, err := forecast.ParseCurrent(body)
	if err != nil {
		return forecast.Current{}, apperrors.Wrap(apperrors.CodeDecode, "decode current weather response", err)
	}
	return current, nil
}

// FetchForecast retrieves the forecast series for location.
func (c *Client) FetchForecast(ctx context.Context, location string) (forecast.Series, error) {
	body, err := c.get(ctx, forecastPath, location)
	if err != nil {
		return forecast.Series{}, err
	}
	series, err := forecast.ParseForecast(body)
	if err != nil {
		return forecast.Series{}, apperrors.Wrap(apperrors.CodeDecode, "decode forecast response", err)
	}
	return series, nil
}

func (c *Client) get(ctx context.Context, path, location string) ([]byte, error) {
	params := url.Values{}
	params.Set("q", location)
	params.Set("appid", c.apiKey)
	params.Set("units", c.units)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTransport, "build weather request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTransport, fmt.Sprintf("GET %s failed", path), redact(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, apperrors.Wrap(apperrors.CodeTransport,
			fmt.Sprintf("GET %s returned status=%d body=%s", path, resp.StatusCode, strings.TrimSpace(string(payload))), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTransport, fmt.Sprintf("read %s response", path), err)
	}
	return body, nil
}

// redact drops the request URL (which carries appid) from transport errors.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
