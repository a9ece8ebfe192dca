package fred_client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseUrl = "https://api.stlouisfed.org"

type Observation struct {
	Date  time.Time
	Value float64
}

type Client struct {
	BaseUrl    string
	ApiKey     string
	HttpClient *http.Client
}

func New(baseUrl, apiKey string) *Client {
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	return &Client{
		BaseUrl:    strings.TrimRight(baseUrl, "/"),
		ApiKey:     apiKey,
		HttpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// GetObservations returns the series values between start and end,
// inclusive, sorted by date. FRED reports missing values as "." and
// those are dropped.
func (c Client) GetObservations(ctx context.Context, seriesID string, start, end time.Time) ([]Observation, error) {
	if seriesID == "" {
		return nil, fmt.Errorf("series id is required")
	}

	params := url.Values{}
	params.Set("series_id", seriesID)
	params.Set("api_key", c.ApiKey)
	params.Set("file_type", "json")
	params.Set("sort_order", "asc")
	params.Set("observation_start", start.Format(time.DateOnly))
	params.Set("observation_end", end.Format(time.DateOnly))

	u := fmt.Sprintf("%s/fred/series/observations?%s", c.BaseUrl, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s observations: %w", seriesID, err)
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed with status code %d: %s", response.StatusCode, string(responseBytes))
	}

	responseBody := observationsResponse{}
	if err := json.Unmarshal(responseBytes, &responseBody); err != nil {
		return nil, fmt.Errorf("failed to parse %s observations: %w", seriesID, err)
	}

	out := []Observation{}
	for _, o := range responseBody.Observations {
		if o.Value == "." || o.Value == "" {
			continue
		}
		date, err := time.Parse(time.DateOnly, o.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid observation date %q: %w", o.Date, err)
		}
		value, err := strconv.ParseFloat(o.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid observation value %q on %s: %w", o.Value, o.Date, err)
		}
		out = append(out, Observation{
			Date:  date,
			Value: value,
		})
	}

	return out, nil
}
