package server

import (
	"github.com/exemplo/appserver/internal/server/health"
)

type Services struct {
	Health *health.HealthService
}

// NewServices wires the request-time services. A nil clock uses time.Now.
func NewServices(clock health.Clock) *Services {
	return &Services{
		Health: health.NewHealthService(clock),
	}
}
