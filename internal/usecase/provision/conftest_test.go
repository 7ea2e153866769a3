package provision

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/kailas-cloud/vecprovision/internal/domain"
	domcol "github.com/kailas-cloud/vecprovision/internal/domain/collection"
	"github.com/kailas-cloud/vecprovision/internal/domain/vectorizer"
)

// recordingConn records every call in order and keeps collections in memory.
type recordingConn struct {
	mu       sync.Mutex
	calls    []string
	existing map[string]domcol.Collection
	closes   int

	existsErr error
	deleteErr error
	createErr map[string]error
}

func newRecordingConn(existing ...string) *recordingConn {
	c := &recordingConn{existing: make(map[string]domcol.Collection), createErr: make(map[string]error)}
	for _, name := range existing {
		c.existing[name] = domcol.Collection{}
	}
	return c
}

func (c *recordingConn) record(call string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
}

func (c *recordingConn) Exists(_ context.Context, name string) (bool, error) {
	c.record("exists:" + name)
	if c.existsErr != nil {
		return false, c.existsErr
	}
	_, ok := c.existing[name]
	return ok, nil
}

func (c *recordingConn) Get(_ context.Context, name string) (domcol.Collection, error) {
	c.record("get:" + name)
	col, ok := c.existing[name]
	if !ok {
		return domcol.Collection{}, fmt.Errorf("collection %s: %w", name, domain.ErrNotFound)
	}
	return col, nil
}

func (c *recordingConn) Create(_ context.Context, col domcol.Collection) error {
	c.record("create:" + col.Name())
	if err := c.createErr[col.Name()]; err != nil {
		return err
	}
	c.existing[col.Name()] = col
	return nil
}

func (c *recordingConn) Delete(_ context.Context, name string) error {
	c.record("delete:" + name)
	if c.deleteErr != nil {
		return c.deleteErr
	}
	delete(c.existing, name)
	return nil
}

func (c *recordingConn) Close() {
	c.record("close")
	c.mu.Lock()
	c.closes++
	c.mu.Unlock()
}

// mockDialer hands out a single connection.
type mockDialer struct {
	conn  *recordingConn
	err   error
	dials int
}

func (d *mockDialer) Dial(_ context.Context) (Conn, error) {
	d.dials++
	if d.err != nil {
		return nil, d.err
	}
	return d.conn, nil
}

type mockChecker struct {
	err   error
	calls int
}

func (m *mockChecker) Check(_ context.Context) error {
	m.calls++
	return m.err
}

func makePlan(t *testing.T, p vectorizer.Provider) []domcol.Collection {
	t.Helper()
	vec, err := vectorizer.New(p, "")
	if err != nil {
		t.Fatalf("vectorizer.New: %v", err)
	}
	cols, err := Plan("Knowledge", "Memories", vec)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	return cols
}

func equalCalls(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("call[%d] = %q, want %q (all: %v)", i, got[i], want[i], got)
		}
	}
}
