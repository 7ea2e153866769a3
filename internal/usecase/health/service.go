package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the database is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult struct {
	OK       bool
	Err      error
	Duration time.Duration
}

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db         DBPinger
	credential CredentialChecker
}

// New creates a Service. credential can be nil.
func New(db DBPinger, credential CredentialChecker) *Service {
	return &Service{db: db, credential: credential}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)
	checks["database"] = run(ctx, s.db.Ping)
	if s.credential != nil {
		checks["embedding"] = run(ctx, s.credential.Check)
	}

	status := Healthy
	switch {
	case !checks["database"].OK:
		status = Unhealthy
	default:
		for _, v := range checks {
			if !v.OK {
				status = Degraded
				break
			}
		}
	}

	return Report{Status: status, Checks: checks}
}

func run(ctx context.Context, fn func(context.Context) error) CheckResult {
	start := time.Now()
	err := fn(ctx)
	return CheckResult{OK: err == nil, Err: err, Duration: time.Since(start)}
}
