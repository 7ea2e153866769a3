package provision

import (
	"context"
	"time"

	"go.uber.org/zap"

	domcol "github.com/kailas-cloud/vecprovision/internal/domain/collection"
	"github.com/kailas-cloud/vecprovision/internal/metrics"
)

// InstrumentedRepository wraps Repository with operation metrics and debug logging.
type InstrumentedRepository struct {
	inner  Repository
	logger *zap.Logger
}

// NewInstrumented wraps a repository with observability.
func NewInstrumented(inner Repository, logger *zap.Logger) *InstrumentedRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstrumentedRepository{inner: inner, logger: logger}
}

// Exists implements Repository.
func (r *InstrumentedRepository) Exists(ctx context.Context, name string) (bool, error) {
	start := time.Now()
	ok, err := r.inner.Exists(ctx, name)
	r.observe("exists", name, start, err, zap.Bool("exists", ok))
	return ok, err
}

// Get implements Repository.
func (r *InstrumentedRepository) Get(ctx context.Context, name string) (domcol.Collection, error) {
	start := time.Now()
	col, err := r.inner.Get(ctx, name)
	r.observe("get", name, start, err)
	return col, err
}

// Create implements Repository.
func (r *InstrumentedRepository) Create(ctx context.Context, col domcol.Collection) error {
	start := time.Now()
	err := r.inner.Create(ctx, col)
	r.observe("create", col.Name(), start, err, zap.String("vectorizer", col.Vectorizer().Module()))
	return err
}

// Delete implements Repository.
func (r *InstrumentedRepository) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := r.inner.Delete(ctx, name)
	r.observe("delete", name, start, err)
	return err
}

func (r *InstrumentedRepository) observe(op, name string, start time.Time, err error, extra ...zap.Field) {
	duration := time.Since(start)
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.SchemaOperationsTotal.WithLabelValues(op, status).Inc()
	metrics.SchemaOperationDuration.WithLabelValues(op).Observe(duration.Seconds())

	fields := append([]zap.Field{
		zap.String("op", op),
		zap.String("collection", name),
		zap.Duration("duration", duration),
	}, extra...)
	if err != nil {
		r.logger.Debug("Schema operation failed", append(fields, zap.Error(err))...)
		return
	}
	r.logger.Debug("Schema operation", fields...)
}
