package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vecprovision/internal/config"
	"github.com/kailas-cloud/vecprovision/internal/domain"
	domcol "github.com/kailas-cloud/vecprovision/internal/domain/collection"
)

// fakeBackend is an in-memory database session.
type fakeBackend struct {
	collections map[string]domcol.Collection
	pingErr     error
	dialErr     error
	dials       int
	closes      int
	calls       []string
}

func newFakeBackend(existing ...string) *fakeBackend {
	b := &fakeBackend{collections: make(map[string]domcol.Collection)}
	for _, name := range existing {
		b.collections[name] = domcol.Collection{}
	}
	return b
}

func (b *fakeBackend) Exists(_ context.Context, name string) (bool, error) {
	b.calls = append(b.calls, "exists:"+name)
	_, ok := b.collections[name]
	return ok, nil
}

func (b *fakeBackend) Get(_ context.Context, name string) (domcol.Collection, error) {
	b.calls = append(b.calls, "get:"+name)
	col, ok := b.collections[name]
	if !ok {
		return domcol.Collection{}, fmt.Errorf("collection %s: %w", name, domain.ErrNotFound)
	}
	return col, nil
}

func (b *fakeBackend) Create(_ context.Context, col domcol.Collection) error {
	b.calls = append(b.calls, "create:"+col.Name())
	b.collections[col.Name()] = col
	return nil
}

func (b *fakeBackend) Delete(_ context.Context, name string) error {
	b.calls = append(b.calls, "delete:"+name)
	delete(b.collections, name)
	return nil
}

func (b *fakeBackend) Ping(_ context.Context) error { return b.pingErr }

func (b *fakeBackend) Close() { b.closes++ }

// useBackend routes every dial to b for the duration of the test.
func useBackend(t *testing.T, b *fakeBackend) {
	t.Helper()
	orig := dialBackend
	dialBackend = func(_ context.Context, _ config.Config, _ *zap.Logger, _ bool) (backend, error) {
		b.dials++
		if b.dialErr != nil {
			return nil, b.dialErr
		}
		return b, nil
	}
	t.Cleanup(func() { dialBackend = orig })
}

// setEnv clears every variable the loader reads, then applies overrides.
func setEnv(t *testing.T, overrides map[string]string) {
	t.Helper()
	for _, k := range []string{
		"ENV", "WEAVIATE_URL", "WEAVIATE_PORT", "WEAVIATE_GRPC_PORT", "WEAVIATE_DISABLE_GRPC",
		"WEAVIATE_AUTH_SOURCE", "WEAVIATE_API_KEY", "PASSWORD",
		"WEAVIATE_READINESS_TIMEOUT_SEC", "WEAVIATE_REQUEST_TIMEOUT_SEC",
		"SEARCH_COLLECTION_NAME", "STORE_COLLECTION_NAME",
		"EMBEDDING_PROVIDER", "EMBEDDING_MODEL", "VERIFY_CREDENTIALS",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_PREFLIGHT_MODEL",
		"COHERE_API_KEY", "COHERE_BASE_URL", "COHERE_PREFLIGHT_MODEL",
		"METRICS_PUSHGATEWAY_URL", "METRICS_JOB", "LOG_LEVEL", "PROVISION_TIMEOUT_SEC",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("LOG_LEVEL", "error")
	for k, v := range overrides {
		t.Setenv(k, v)
	}
}

func baseEnv() map[string]string {
	return map[string]string{
		"SEARCH_COLLECTION_NAME": "Knowledge",
		"STORE_COLLECTION_NAME":  "Memories",
		"OPENAI_API_KEY":         "sk-test",
	}
}

// execute runs the root command with fresh flag state and an absent config file.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootOpts.env, rootOpts.dotenv, rootOpts.configPath = "", "", ""
	provisionOpts.dryRun, provisionOpts.verifyCredentials, provisionOpts.timeout = false, false, 0
	statusOpts.verifyCredentials = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "absent.yaml")))
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
