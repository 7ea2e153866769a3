package weaviate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	wv "github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	wvgrpc "github.com/weaviate/weaviate-go-client/v4/weaviate/grpc"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vecprovision/internal/db"
	"github.com/kailas-cloud/vecprovision/internal/domain"
	logpkg "github.com/kailas-cloud/vecprovision/internal/logger"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for a Weaviate store.
type Config struct {
	Scheme   string // http or https (default: http)
	Host     string // host:port of the REST endpoint
	GRPCHost string // host:port of the gRPC endpoint, empty disables gRPC
	APIKey   string
	Headers  map[string]string // extra request headers (provider API keys)
	Timeout  time.Duration     // per-request timeout, 0 = none
}

// Store implements db.Store via weaviate-go-client.
type Store struct {
	client    *wv.Client
	pool      *http.Client // nil when the client manages its own transport (auth)
	closeOnce sync.Once
}

// NewStore creates a Weaviate store.
// Without an API key no request is issued until the first call. With one, the client
// waits for the database and resolves its auth settings before returning.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("host is required")
	}
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = "http"
	}

	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		if v != "" {
			headers[k] = v
		}
	}

	wcfg := wv.Config{
		Host:    cfg.Host,
		Scheme:  scheme,
		Headers: headers,
		Timeout: cfg.Timeout,
	}

	// The client refuses a custom ConnectionClient together with AuthConfig.
	var pool *http.Client
	if cfg.APIKey != "" {
		wcfg.AuthConfig = auth.ApiKey{Value: cfg.APIKey}
	} else {
		pool = &http.Client{Timeout: cfg.Timeout}
		wcfg.ConnectionClient = pool
	}
	if cfg.GRPCHost != "" {
		wcfg.GrpcConfig = &wvgrpc.Config{
			Host:    cfg.GRPCHost,
			Secured: scheme == "https",
		}
	}

	client, err := wv.NewClient(wcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", mapError(err))
	}

	return &Store{client: client, pool: pool}, nil
}

// Ping checks that the database reports ready.
func (s *Store) Ping(ctx context.Context) error {
	ready, err := s.client.Misc().ReadyChecker().Do(ctx)
	if err != nil {
		return &db.Error{Op: db.OpReady, Err: mapError(err)}
	}
	if !ready {
		return &db.Error{Op: db.OpReady, Err: domain.ErrUnavailable}
	}
	return nil
}

// Close releases idle pooled connections when the store owns the pool.
// Safe to call more than once.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		if s.pool != nil {
			s.pool.CloseIdleConnections()
		}
	})
}

// WaitForReady polls Ping with exponential backoff until the store responds or timeout expires.
// A non-positive timeout performs a single check.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		return s.Ping(ctx)
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = 100 * time.Millisecond
	expo.MaxInterval = 2 * time.Second
	expo.MaxElapsedTime = timeout

	op := func() error {
		err := s.Ping(ctx)
		if errors.Is(err, domain.ErrUnauthorized) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		logpkg.FromContext(ctx).Debug("Database not ready, retrying",
			zap.Duration("wait", wait), zap.Error(err))
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(expo, ctx), notify); err != nil {
		return fmt.Errorf("timeout waiting for database: %w", err)
	}
	return nil
}
