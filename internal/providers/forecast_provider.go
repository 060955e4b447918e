package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/models/dtos"
)

// ForecastProvider implements an adapter for the weather-forecast API.
type ForecastProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewForecastProvider creates a new forecast provider
func NewForecastProvider() *ForecastProvider {
	baseURL := os.Getenv("FORECAST_API_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.mountainforecast.example.com/v1" // Default
	}
	apiKey := os.Getenv("FORECAST_API_KEY")

	return &ForecastProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetProviderType returns the provider type identifier
func (p *ForecastProvider) GetProviderType() string {
	return string(dtos.SourceForecastAPI)
}

type forecastWireDay struct {
	Date          string   `json:"date"`
	SnowfallIn    float64  `json:"snowfallIn"`
	TempHighF     float64  `json:"tempHighF"`
	TempLowF      float64  `json:"tempLowF"`
	WindMph       float64  `json:"windMph"`
	CloudCoverPct float64  `json:"cloudCoverPct"`
	Confidence    string   `json:"confidence"`
	BaseDepthIn   *float64 `json:"baseDepthIn"`
	LiftsOpen     *int     `json:"liftsOpen"`
	LiftsTotal    *int     `json:"liftsTotal"`
}

type forecastWireHour struct {
	Hour          string  `json:"hour"`
	SnowfallIn    float64 `json:"snowfallIn"`
	TempF         float64 `json:"tempF"`
	WindMph       float64 `json:"windMph"`
	CloudCoverPct float64 `json:"cloudCoverPct"`
}

type forecastWireResponse struct {
	Daily  []forecastWireDay  `json:"daily"`
	Hourly []forecastWireHour `json:"hourly"`
}

// FetchForecast fetches the daily and hourly forecast for a point and
// normalizes it into a RawReading. Hourly rows with unparseable timestamps
// are dropped; daily rows pass through untouched for the validator to judge.
func (p *ForecastProvider) FetchForecast(ctx context.Context, resortID string, lat, lng float64) (*dtos.RawReading, error) {
	if resortID == "" {
		return nil, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "resort ID cannot be empty",
		}
	}

	endpoint := fmt.Sprintf("/forecast?lat=%.4f&lng=%.4f", lat, lng)

	var wire forecastWireResponse
	if _, err := p.doGET(ctx, endpoint, &wire); err != nil {
		return nil, err
	}

	reading := &dtos.ForecastReading{
		Daily:  make([]dtos.DailyForecastRecord, 0, len(wire.Daily)),
		Hourly: make([]dtos.HourlyForecastRecord, 0, len(wire.Hourly)),
	}

	for _, d := range wire.Daily {
		confidence := d.Confidence
		if confidence == "" {
			confidence = "medium"
		}
		reading.Daily = append(reading.Daily, dtos.DailyForecastRecord{
			Date:          d.Date,
			SnowfallIn:    d.SnowfallIn,
			TempHighF:     d.TempHighF,
			TempLowF:      d.TempLowF,
			WindMph:       d.WindMph,
			CloudCoverPct: d.CloudCoverPct,
			Confidence:    confidence,
			BaseDepthIn:   d.BaseDepthIn,
			LiftsOpen:     d.LiftsOpen,
			LiftsTotal:    d.LiftsTotal,
		})
	}

	for _, h := range wire.Hourly {
		hour, err := time.Parse(time.RFC3339, h.Hour)
		if err != nil {
			continue
		}
		reading.Hourly = append(reading.Hourly, dtos.HourlyForecastRecord{
			Hour:          hour,
			SnowfallIn:    h.SnowfallIn,
			TempF:         h.TempF,
			WindMph:       h.WindMph,
			CloudCoverPct: h.CloudCoverPct,
		})
	}

	return &dtos.RawReading{
		Kind:     dtos.SourceForecastAPI,
		ResortID: resortID,
		Forecast: reading,
	}, nil
}

// doGET performs a GET request with authentication
func (p *ForecastProvider) doGET(ctx context.Context, endpoint string, result interface{}) (int, error) {
	url := p.BaseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}

	req.Header.Set("X-Api-Key", p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Request to forecast API failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeUpstreamError,
			Message: fmt.Sprintf("Forecast API returned status %d", resp.StatusCode),
			Details: string(bodyBytes),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "Failed to decode response",
			Err:     err,
		}
	}

	return resp.StatusCode, nil
}
