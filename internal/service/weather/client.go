package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/evateli/globetalk/internal/config"
)

// Report is the subset of current conditions the frontend renders.
type Report struct {
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Icon        string  `json:"icon"`
	Humidity    int     `json:"humidity"`
	City        string  `json:"city"`
	LocalTime   string  `json:"local_time"`
}

// StatusError reports a non-200 reply from the weather API.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("weather api returned status %d", e.StatusCode)
}

// Client queries the OpenWeatherMap current-conditions endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient builds the weather client from configuration.
func NewClient(cfg config.WeatherConfig) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		now:        time.Now,
	}
}

type currentConditions struct {
	Name     string `json:"name"`
	Timezone int    `json:"timezone"`
	Main     struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// Current fetches metric conditions for a city. The local time is derived
// from the UTC offset carried in the payload.
func (c *Client) Current(ctx context.Context, city string) (Report, error) {
	endpoint := fmt.Sprintf("%s/weather?q=%s&units=metric&appid=%s",
		c.baseURL, url.QueryEscape(city), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Report{}, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Report{}, &StatusError{StatusCode: resp.StatusCode}
	}

	var payload currentConditions
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Report{}, fmt.Errorf("decode weather response: %w", err)
	}

	report := Report{
		Temperature: payload.Main.Temp,
		Humidity:    payload.Main.Humidity,
		City:        payload.Name,
		LocalTime:   c.localTime(payload.Timezone),
	}
	if len(payload.Weather) > 0 {
		report.Condition = payload.Weather[0].Description
		report.Icon = payload.Weather[0].Icon
	}

	return report, nil
}

func (c *Client) localTime(offsetSeconds int) string {
	return c.now().UTC().Add(time.Duration(offsetSeconds) * time.Second).Format("15:04")
}
