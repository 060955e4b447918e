package constants

type (
	APIStatus string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"
)

// Sync event types for the sync_history table
const (
	SyncEventSnowReports  = "SNOW_REPORT_SYNC"
	SyncEventConditions   = "CONDITIONS_API_SYNC"
	SyncEventForecasts    = "FORECAST_SYNC"
	SyncEventTelemetry    = "TELEMETRY_SYNC"
)

// Provider error codes
const (
	ErrCodeNetworkError      = "NETWORK_ERROR"
	ErrCodeInvalidDataFormat = "INVALID_DATA_FORMAT"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeUpstreamError     = "UPSTREAM_ERROR"
)
