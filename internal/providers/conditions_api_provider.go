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

// ConditionsAPIProvider implements an adapter for the third-party state-level
// conditions API. Payloads arrive inches-based and are normalized into
// RawReading before anything downstream sees them.
type ConditionsAPIProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewConditionsAPIProvider creates a new conditions API provider
func NewConditionsAPIProvider() *ConditionsAPIProvider {
	baseURL := os.Getenv("CONDITIONS_API_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.skiconditions.example.com/v1" // Default
	}
	apiKey := os.Getenv("CONDITIONS_API_KEY")

	return &ConditionsAPIProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetProviderType returns the provider type identifier
func (p *ConditionsAPIProvider) GetProviderType() string {
	return string(dtos.SourceConditionsAPI)
}

// conditionsWireResort is the upstream payload shape. It never leaves this
// package; FetchStateConditions normalizes it into RawReading.
type conditionsWireResort struct {
	ResortID    string   `json:"resortId"`
	Snow24In    *float64 `json:"snowfall24In"`
	Snow48In    *float64 `json:"snowfall48In"`
	Snow72In    *float64 `json:"snowfall72In"`
	BaseDepthIn *int     `json:"baseDepthIn"`
	LiftsOpen   *int     `json:"liftsOpen"`
	TrailsOpen  *int     `json:"trailsOpen"`
	Surface     *string  `json:"surfaceCondition"`
	OpenFlag    *int     `json:"openFlag"`
	UpdatedAt   string   `json:"updatedAt"`
}

type conditionsWireResponse struct {
	State   string                 `json:"state"`
	Resorts []conditionsWireResort `json:"resorts"`
}

// FetchStateConditions fetches all resort conditions for a state and
// normalizes them. Records with an unparseable timestamp are dropped with
// the count reported alongside; a trickle of bad rows must not sink the batch.
func (p *ConditionsAPIProvider) FetchStateConditions(ctx context.Context, state string) ([]dtos.RawReading, int, error) {
	if state == "" {
		return nil, 0, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "state cannot be empty",
		}
	}

	endpoint := fmt.Sprintf("/states/%s/conditions", state)

	var wire conditionsWireResponse
	if _, err := p.doGET(ctx, endpoint, &wire); err != nil {
		return nil, 0, err
	}

	readings := make([]dtos.RawReading, 0, len(wire.Resorts))
	dropped := 0
	for _, res := range wire.Resorts {
		observedAt, err := time.Parse(time.RFC3339, res.UpdatedAt)
		if err != nil {
			dropped++
			continue
		}

		readings = append(readings, dtos.RawReading{
			Kind:     dtos.SourceConditionsAPI,
			ResortID: res.ResortID,
			Conditions: &dtos.ConditionsReading{
				ResortID:    res.ResortID,
				Snow24In:    res.Snow24In,
				Snow48In:    res.Snow48In,
				Snow72In:    res.Snow72In,
				BaseDepthIn: res.BaseDepthIn,
				LiftsOpen:   res.LiftsOpen,
				TrailsOpen:  res.TrailsOpen,
				Surface:     res.Surface,
				OpenFlag:    res.OpenFlag,
				Source:      string(dtos.SourceConditionsAPI),
				ObservedAt:  observedAt,
			},
		})
	}

	return readings, dropped, nil
}

// doGET performs a GET request with authentication
func (p *ConditionsAPIProvider) doGET(ctx context.Context, endpoint string, result interface{}) (int, error) {
	url := p.BaseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}

	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Request to conditions API failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: "Conditions API rate limit exceeded",
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeUpstreamError,
			Message: fmt.Sprintf("Conditions API returned status %d", resp.StatusCode),
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
