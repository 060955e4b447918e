package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newScrapeFeedTestServer(t *testing.T, status int, body string) (*httptest.Server, *ScrapeFeedProvider) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reports/latest" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	provider := &ScrapeFeedProvider{
		BaseURL: server.URL,
		Client:  server.Client(),
	}
	return server, provider
}

func TestFetchReports_NormalizesWirePayload(t *testing.T) {
	body := `{
		"reports": [
			{
				"resortId": "resort-1",
				"reportDate": "2026-02-01",
				"snowfallCm24h": 30.5,
				"baseDepthCm": 150,
				"liftsOpen": 8,
				"surfaceDescription": "packed powder",
				"openFlag": 1,
				"updatedAt": "2026-02-01T07:30:00Z"
			}
		]
	}`
	_, provider := newScrapeFeedTestServer(t, http.StatusOK, body)

	readings, dropped, err := provider.FetchReports(context.Background())
	if err != nil {
		t.Fatalf("FetchReports failed: %v", err)
	}
	if dropped != 0 {
		t.Errorf("Expected 0 dropped, got %d", dropped)
	}
	if len(readings) != 1 {
		t.Fatalf("Expected 1 reading, got %d", len(readings))
	}

	reading := readings[0]
	if reading.ResortID != "resort-1" {
		t.Errorf("Expected resort-1, got %q", reading.ResortID)
	}
	if reading.Scraped == nil {
		t.Fatal("Expected scraped payload set")
	}
	if reading.Scraped.Snowfall24Cm == nil || *reading.Scraped.Snowfall24Cm != 30.5 {
		t.Errorf("Expected 30.5cm snowfall, got %v", reading.Scraped.Snowfall24Cm)
	}
	if reading.Scraped.Surface == nil || *reading.Scraped.Surface != "packed powder" {
		t.Errorf("Expected surface carried through, got %v", reading.Scraped.Surface)
	}

	want := time.Date(2026, 2, 1, 7, 30, 0, 0, time.UTC)
	if reading.Scraped.UpdatedAt == nil || !reading.Scraped.UpdatedAt.Equal(want) {
		t.Errorf("Expected parsed update time %v, got %v", want, reading.Scraped.UpdatedAt)
	}
}

func TestFetchReports_DropsIncompleteReports(t *testing.T) {
	body := `{
		"reports": [
			{"resortId": "resort-1", "reportDate": "2026-02-01"},
			{"resortId": "", "reportDate": "2026-02-01"},
			{"resortId": "resort-3", "reportDate": ""}
		]
	}`
	_, provider := newScrapeFeedTestServer(t, http.StatusOK, body)

	readings, dropped, err := provider.FetchReports(context.Background())
	if err != nil {
		t.Fatalf("FetchReports failed: %v", err)
	}
	if len(readings) != 1 {
		t.Errorf("Expected 1 kept reading, got %d", len(readings))
	}
	if dropped != 2 {
		t.Errorf("Expected 2 dropped, got %d", dropped)
	}
}

func TestFetchReports_UpstreamErrorSurfaced(t *testing.T) {
	_, provider := newScrapeFeedTestServer(t, http.StatusBadGateway, `{"error":"fleet down"}`)

	_, _, err := provider.FetchReports(context.Background())
	if err == nil {
		t.Fatal("Expected error on 502 response")
	}

	provErr, ok := err.(*ProviderError)
	if !ok {
		t.Fatalf("Expected *ProviderError, got %T", err)
	}
	if provErr.Code != "UPSTREAM_ERROR" {
		t.Errorf("Expected upstream error code, got %q", provErr.Code)
	}
}

func TestFetchReports_InvalidTimestampIgnored(t *testing.T) {
	body := `{
		"reports": [
			{"resortId": "resort-1", "reportDate": "2026-02-01", "updatedAt": "yesterday"}
		]
	}`
	_, provider := newScrapeFeedTestServer(t, http.StatusOK, body)

	readings, _, err := provider.FetchReports(context.Background())
	if err != nil {
		t.Fatalf("FetchReports failed: %v", err)
	}
	if readings[0].Scraped.UpdatedAt != nil {
		t.Errorf("Expected unparseable update time dropped, got %v", readings[0].Scraped.UpdatedAt)
	}
}
