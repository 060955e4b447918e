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

// TelemetryProvider implements adapters for snowpack telemetry stations and
// avalanche bulletins. Both feeds share one upstream gateway.
type TelemetryProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewTelemetryProvider creates a new telemetry provider
func NewTelemetryProvider() *TelemetryProvider {
	baseURL := os.Getenv("TELEMETRY_API_BASE_URL")
	if baseURL == "" {
		baseURL = "https://telemetry.snowdata.example.com/v1" // Default
	}

	return &TelemetryProvider{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type snowpackWireReading struct {
	StationID string  `json:"stationId"`
	Date      string  `json:"date"`
	DepthIn   float64 `json:"depthIn"`
	SweIn     float64 `json:"sweIn"`
}

type avalancheWireBulletin struct {
	Date        string `json:"date"`
	DangerLevel int    `json:"dangerLevel"`
	Summary     string `json:"summary"`
}

// FetchSnowpack fetches the latest reading for a station and normalizes it.
func (p *TelemetryProvider) FetchSnowpack(ctx context.Context, resortID, stationID string) (*dtos.RawReading, error) {
	if stationID == "" {
		return nil, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "station ID cannot be empty",
		}
	}

	var wire snowpackWireReading
	if _, err := p.doGET(ctx, fmt.Sprintf("/stations/%s/latest", stationID), &wire); err != nil {
		return nil, err
	}

	return &dtos.RawReading{
		Kind:     dtos.SourceSnowpack,
		ResortID: resortID,
		Snowpack: &dtos.SnowpackObservation{
			StationID: wire.StationID,
			Date:      wire.Date,
			DepthIn:   wire.DepthIn,
			SweIn:     wire.SweIn,
		},
	}, nil
}

// FetchAvalancheBulletin fetches today's danger rating for a forecast zone.
func (p *TelemetryProvider) FetchAvalancheBulletin(ctx context.Context, regionID, zone string) (*dtos.RawReading, error) {
	if zone == "" {
		return nil, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "avalanche zone cannot be empty",
		}
	}

	var wire avalancheWireBulletin
	if _, err := p.doGET(ctx, fmt.Sprintf("/avalanche/%s/today", zone), &wire); err != nil {
		return nil, err
	}

	return &dtos.RawReading{
		Kind:     dtos.SourceAvalanche,
		RegionID: regionID,
		Avalanche: &dtos.AvalancheObservation{
			Date:        wire.Date,
			DangerLevel: wire.DangerLevel,
			Summary:     wire.Summary,
		},
	}, nil
}

func (p *TelemetryProvider) doGET(ctx context.Context, endpoint string, result interface{}) (int, error) {
	url := p.BaseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Request to telemetry gateway failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeUpstreamError,
			Message: fmt.Sprintf("Telemetry gateway returned status %d", resp.StatusCode),
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
