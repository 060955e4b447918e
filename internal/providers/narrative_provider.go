package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"snowchase/basecamp/internal/constants"
)

// NarrativeProvider calls the external text-generation service that turns a
// worth-knowing delta into a one-sentence justification. The service is
// opaque; callers fall back to a templated sentence when it fails.
type NarrativeProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewNarrativeProvider creates a new narrative provider
func NewNarrativeProvider() *NarrativeProvider {
	baseURL := os.Getenv("NARRATIVE_API_BASE_URL")
	if baseURL == "" {
		baseURL = "https://textgen.internal.example.com/v1" // Default
	}
	apiKey := os.Getenv("NARRATIVE_API_KEY")

	return &NarrativeProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type narrativeRequest struct {
	ResortName  string  `json:"resortName"`
	PassType    string  `json:"passType"`
	WindowDays  int     `json:"windowDays"`
	SnowTotalIn float64 `json:"snowTotalIn"`
	DiffIn      float64 `json:"diffIn"`
	Ratio       float64 `json:"ratio"`
}

type narrativeResponse struct {
	Text string `json:"text"`
}

// GenerateJustification asks the text service for a one-sentence writeup.
func (p *NarrativeProvider) GenerateJustification(ctx context.Context, resortName, passType string, windowDays int, snowTotalIn, diffIn, ratio float64) (string, error) {
	reqBody := narrativeRequest{
		ResortName:  resortName,
		PassType:    passType,
		WindowDays:  windowDays,
		SnowTotalIn: snowTotalIn,
		DiffIn:      diffIn,
		Ratio:       ratio,
	}

	payloadBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "Failed to marshal request body",
			Err:     err,
		}
	}

	url := p.BaseURL + "/justify"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payloadBytes))
	if err != nil {
		return "", &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}

	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Request to narrative service failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", &ProviderError{
			Code:    constants.ErrCodeUpstreamError,
			Message: fmt.Sprintf("Narrative service returned status %d", resp.StatusCode),
			Details: string(bodyBytes),
		}
	}

	var result narrativeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "Failed to decode response",
			Err:     err,
		}
	}

	return result.Text, nil
}
