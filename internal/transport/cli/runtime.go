package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vecprovision/internal/config"
	dbweaviate "github.com/kailas-cloud/vecprovision/internal/db/weaviate"
	"github.com/kailas-cloud/vecprovision/internal/domain/vectorizer"
	logpkg "github.com/kailas-cloud/vecprovision/internal/logger"
	"github.com/kailas-cloud/vecprovision/internal/metrics"
	collectionrepo "github.com/kailas-cloud/vecprovision/internal/repository/collection"
	openaiTransport "github.com/kailas-cloud/vecprovision/internal/transport/openai"
	"github.com/kailas-cloud/vecprovision/internal/usecase/provision"
)

const metricsPushTimeout = 5 * time.Second

// backend is the database session used by commands.
type backend interface {
	provision.Conn
	Ping(ctx context.Context) error
}

type weaviateBackend struct {
	provision.Conn
	store *dbweaviate.Store
}

func (b weaviateBackend) Ping(ctx context.Context) error { return b.store.Ping(ctx) }

// dialBackend opens a database session. Overridden in tests.
var dialBackend = func(ctx context.Context, cfg config.Config, log *zap.Logger, waitReady bool) (backend, error) {
	ep, err := cfg.Weaviate.Endpoint()
	if err != nil {
		return nil, err
	}
	source, secret := cfg.Weaviate.Credential()

	log.Info("Connecting to Weaviate",
		zap.String("scheme", ep.Scheme),
		zap.String("host", ep.Host),
		zap.String("grpc_host", ep.GRPCHost),
		zap.String("auth_source", string(source)),
		zap.String("api_key", logpkg.Redact(secret)),
	)

	store, err := dbweaviate.NewStore(dbweaviate.Config{
		Scheme:   ep.Scheme,
		Host:     ep.Host,
		GRPCHost: ep.GRPCHost,
		APIKey:   secret,
		Headers:  cfg.Embedding.Headers(),
		Timeout:  cfg.Weaviate.RequestTimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}

	if waitReady {
		if err := store.WaitForReady(ctx, cfg.Weaviate.ReadinessTimeout()); err != nil {
			store.Close()
			return nil, err
		}
		log.Info("Connected to Weaviate")
	}

	repo := provision.NewInstrumented(collectionrepo.New(store), log)
	return weaviateBackend{Conn: provision.NewConn(repo, store.Close), store: store}, nil
}

// runtime is what every command needs after configuration is loaded.
type runtime struct {
	cfg    config.Config
	env    string
	logger *zap.Logger
}

func loadRuntime() (*runtime, error) {
	env := rootOpts.env
	if env == "" {
		env = config.GetEnv()
	}

	var (
		cfg config.Config
		err error
	)
	if rootOpts.configPath != "" {
		cfg, err = config.LoadFrom(rootOpts.configPath)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		if log, logErr := logpkg.NewLogger(env); logErr == nil {
			log.Error("Failed to load config", zap.String("env", env), zap.Error(err))
			_ = log.Sync()
		}
		return nil, err
	}

	log, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &runtime{cfg: cfg, env: env, logger: log}, nil
}

// commandContext is cancelled on SIGINT/SIGTERM or after timeout.
func (r *runtime) commandContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	ctx = logpkg.ContextWithLogger(ctx, r.logger)
	return ctx, func() {
		cancel()
		stop()
	}
}

func (r *runtime) dialer() provision.Dialer {
	return provision.DialerFunc(func(ctx context.Context) (provision.Conn, error) {
		return dialBackend(ctx, r.cfg, r.logger, true)
	})
}

func (r *runtime) credentialChecker(p vectorizer.Provider) *openaiTransport.Checker {
	pc := r.cfg.Embedding.ProviderConfig(p)
	return openaiTransport.NewChecker(&openaiTransport.Config{
		APIKey:   pc.APIKey,
		BaseURL:  pc.BaseURL,
		Model:    pc.PreflightModel,
		Provider: string(p),
		Logger:   r.logger,
	})
}

// pushMetrics sends the run's metrics to the Pushgateway, if configured. Failures only warn.
func (r *runtime) pushMetrics() {
	if r.cfg.Metrics.PushgatewayURL == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), metricsPushTimeout)
	defer cancel()
	if err := metrics.Push(ctx, r.cfg.Metrics.PushgatewayURL, r.cfg.Metrics.Job); err != nil {
		r.logger.Warn("Failed to push metrics", zap.String("url", r.cfg.Metrics.PushgatewayURL), zap.Error(err))
		return
	}
	r.logger.Debug("Metrics pushed", zap.String("url", r.cfg.Metrics.PushgatewayURL))
}
