package service

import (
	"context"
	"time"
)

type SystemStatus struct {
	DatabaseConnected bool      `json:"databaseConnected"`
	UsingMockData     bool      `json:"usingMockData"`
	Environment       string    `json:"environment"`
	Timestamp         time.Time `json:"timestamp"`
}

// Pinger is satisfied by the primary store provider.
type Pinger interface {
	PrimaryToggle
	Ping(ctx context.Context) error
}

type StatusService interface {
	Status(ctx context.Context) SystemStatus
}

type statusService struct {
	primary Pinger
	env     string
	timeout time.Duration
	now     func() time.Time
}

func NewStatusService(primary Pinger, env string) StatusService {
	return &statusService{primary: primary, env: env, timeout: 2 * time.Second, now: time.Now}
}

// Status probes the primary store on every call.
func (s *statusService) Status(ctx context.Context) SystemStatus {
	connected := false
	if s.primary != nil && s.primary.Enabled() {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		connected = s.primary.Ping(ctx) == nil
	}
	return SystemStatus{
		DatabaseConnected: connected,
		UsingMockData:     !connected,
		Environment:       s.env,
		Timestamp:         s.now().UTC(),
	}
}
