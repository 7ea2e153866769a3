package provision

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vecprovision/internal/domain"
	domcol "github.com/kailas-cloud/vecprovision/internal/domain/collection"
	"github.com/kailas-cloud/vecprovision/internal/metrics"
)

// Outcome describes what happened to one collection.
type Outcome struct {
	Name     string
	Kind     domcol.Kind
	Module   string
	Replaced bool // a collection with the same name existed and was dropped
}

// Report summarises a provisioning run.
type Report struct {
	Outcomes []Outcome
}

// Status is the observed state of one collection.
type Status struct {
	Name       string
	Exists     bool
	Collection domcol.Collection
}

// Service resets collections: drop if present, then create.
type Service struct {
	dialer  Dialer
	checker CredentialChecker
	logger  *zap.Logger
}

// New creates a provisioning service.
func New(dialer Dialer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{dialer: dialer, logger: logger}
}

// WithCredentialChecker enables the embedding credential preflight.
func (s *Service) WithCredentialChecker(c CredentialChecker) *Service {
	s.checker = c
	return s
}

// Provision drops every collection in cols that already exists, then creates all of them.
// The connection is closed exactly once on every path after a successful dial.
// Any failure aborts the run; nothing is retried or rolled back.
func (s *Service) Provision(ctx context.Context, cols []domcol.Collection) (Report, error) {
	if err := validatePlan(cols); err != nil {
		return Report{}, err
	}

	if s.checker != nil {
		if err := s.checker.Check(ctx); err != nil {
			return Report{}, fmt.Errorf("credential preflight: %w", err)
		}
	}

	conn, err := s.dialer.Dial(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	replaced := make(map[string]bool, len(cols))
	for _, col := range cols {
		exists, err := conn.Exists(ctx, col.Name())
		if err != nil {
			return Report{}, fmt.Errorf("check %s collection: %w", col.Kind(), err)
		}
		if !exists {
			continue
		}

		s.logger.Warn("Dropping existing collection",
			zap.String("collection", col.Name()),
			zap.String("kind", string(col.Kind())),
		)
		if err := conn.Delete(ctx, col.Name()); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return Report{}, fmt.Errorf("delete %s collection: %w", col.Kind(), err)
		}
		replaced[col.Name()] = true
	}

	report := Report{Outcomes: make([]Outcome, 0, len(cols))}
	for _, col := range cols {
		if err := conn.Create(ctx, col); err != nil {
			return report, fmt.Errorf("create %s collection: %w", col.Kind(), err)
		}

		out := Outcome{
			Name:     col.Name(),
			Kind:     col.Kind(),
			Module:   col.Vectorizer().Module(),
			Replaced: replaced[col.Name()],
		}
		report.Outcomes = append(report.Outcomes, out)
		metrics.CollectionsProvisionedTotal.WithLabelValues(string(out.Kind), strconv.FormatBool(out.Replaced)).Inc()

		s.logger.Info("Collection created",
			zap.String("collection", out.Name),
			zap.String("kind", string(out.Kind)),
			zap.String("vectorizer", out.Module),
			zap.Bool("replaced", out.Replaced),
		)
	}

	metrics.LastSuccessTimestamp.Set(float64(time.Now().Unix()))
	return report, nil
}

// Inspect reports whether each named collection exists and, if so, its stored definition.
func (s *Service) Inspect(ctx context.Context, names []string) ([]Status, error) {
	conn, err := s.dialer.Dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	out := make([]Status, 0, len(names))
	for _, name := range names {
		col, err := conn.Get(ctx, name)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			out = append(out, Status{Name: name})
		case err != nil:
			return nil, fmt.Errorf("inspect collection %s: %w", name, err)
		default:
			out = append(out, Status{Name: name, Exists: true, Collection: col})
		}
	}
	return out, nil
}

func validatePlan(cols []domcol.Collection) error {
	if len(cols) == 0 {
		return fmt.Errorf("%w: nothing to provision", domain.ErrInvalidConfig)
	}
	for i := range cols {
		for j := i + 1; j < len(cols); j++ {
			if domcol.SameName(cols[i].Name(), cols[j].Name()) {
				return fmt.Errorf("%w: collection %q listed twice", domain.ErrInvalidConfig, cols[i].Name())
			}
		}
	}
	return nil
}
