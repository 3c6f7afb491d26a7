package health

import (
	"context"
	"time"
)

const (
	// StatusUp is the only status the service reports. A process that can
	// answer is up.
	StatusUp = "UP"

	// TimestampLayout is an ISO-8601 extended local date-time without offset.
	// The fraction is printed only when non-zero, trailing zeros trimmed.
	TimestampLayout = "2006-01-02T15:04:05.999999999"
)

// Clock returns the current wall-clock time.
type Clock func() time.Time

// Status is the health check payload.
type Status struct {
	// Status is always "UP".
	Status string `json:"status"`
	// Timestamp is the local time the check ran, formatted with TimestampLayout.
	Timestamp string `json:"timestamp"`
}

// HealthService reports liveness of the process.
type HealthService struct {
	clock Clock
}

// NewHealthService creates a health service reading time from clock.
// A nil clock falls back to time.Now.
func NewHealthService(clock Clock) *HealthService {
	if clock == nil {
		clock = time.Now
	}
	return &HealthService{clock: clock}
}

// GetHealth samples the clock and returns the current status.
func (s *HealthService) GetHealth(ctx context.Context) *Status {
	return &Status{
		Status:    StatusUp,
		Timestamp: FormatTimestamp(s.clock()),
	}
}

// FormatTimestamp renders t in the local zone with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

// ParseTimestamp is the inverse of FormatTimestamp. The fraction is optional.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s, time.Local)
}
