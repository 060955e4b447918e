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

// ScrapeFeedProvider pulls extracted snow reports from the scraper fleet's
// feed endpoint. The scraping itself happens elsewhere; this adapter only
// consumes the typed payloads the scrapers publish and normalizes them into
// RawReadings.
type ScrapeFeedProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewScrapeFeedProvider creates a new scrape feed provider
func NewScrapeFeedProvider() *ScrapeFeedProvider {
	baseURL := os.Getenv("SCRAPE_FEED_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:9090" // Default: local scraper fleet
	}

	return &ScrapeFeedProvider{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// GetProviderType returns the provider type identifier
func (p *ScrapeFeedProvider) GetProviderType() string {
	return string(dtos.SourceScrapedReport)
}

type scrapeWireReport struct {
	ResortID     string   `json:"resortId"`
	ReportDate   string   `json:"reportDate"`
	Snowfall24Cm *float64 `json:"snowfallCm24h"`
	Snowfall48Cm *float64 `json:"snowfallCm48h"`
	Snowfall72Cm *float64 `json:"snowfallCm72h"`
	BaseDepthCm  *float64 `json:"baseDepthCm"`
	LiftsOpen    *int     `json:"liftsOpen"`
	TrailsOpen   *int     `json:"trailsOpen"`
	Surface      *string  `json:"surfaceDescription"`
	OpenFlag     *int     `json:"openFlag"`
	UpdatedAt    *string  `json:"updatedAt"`
}

type scrapeWireResponse struct {
	Reports []scrapeWireReport `json:"reports"`
}

// FetchReports fetches the latest extracted reports and normalizes them.
// Reports missing a resort id or report date are dropped and counted.
func (p *ScrapeFeedProvider) FetchReports(ctx context.Context) ([]dtos.RawReading, int, error) {
	var wire scrapeWireResponse
	if _, err := p.doGET(ctx, "/reports/latest", &wire); err != nil {
		return nil, 0, err
	}

	readings := make([]dtos.RawReading, 0, len(wire.Reports))
	dropped := 0
	for _, rep := range wire.Reports {
		if rep.ResortID == "" || rep.ReportDate == "" {
			dropped++
			continue
		}

		scraped := &dtos.ScrapedReport{
			ReportDate:   rep.ReportDate,
			Snowfall24Cm: rep.Snowfall24Cm,
			Snowfall48Cm: rep.Snowfall48Cm,
			Snowfall72Cm: rep.Snowfall72Cm,
			BaseDepthCm:  rep.BaseDepthCm,
			LiftsOpen:    rep.LiftsOpen,
			TrailsOpen:   rep.TrailsOpen,
			Surface:      rep.Surface,
			OpenFlag:     rep.OpenFlag,
		}

		if rep.UpdatedAt != nil {
			if ts, err := time.Parse(time.RFC3339, *rep.UpdatedAt); err == nil {
				scraped.UpdatedAt = &ts
			}
		}

		readings = append(readings, dtos.RawReading{
			Kind:     dtos.SourceScrapedReport,
			ResortID: rep.ResortID,
			Scraped:  scraped,
		})
	}

	return readings, dropped, nil
}

// doGET performs a GET request against the scrape feed
func (p *ScrapeFeedProvider) doGET(ctx context.Context, endpoint string, result interface{}) (int, error) {
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
			Message: "Request to scrape feed failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeUpstreamError,
			Message: fmt.Sprintf("Scrape feed returned status %d", resp.StatusCode),
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
