package collection

import (
	"context"
	"testing"

	"github.com/kailas-cloud/vecprovision/internal/db"
	domcol "github.com/kailas-cloud/vecprovision/internal/domain/collection"
	"github.com/kailas-cloud/vecprovision/internal/domain/collection/property"
	"github.com/kailas-cloud/vecprovision/internal/domain/vectorizer"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	classExistsFn func(ctx context.Context, name string) (bool, error)
	getClassFn    func(ctx context.Context, name string) (*db.ClassDefinition, error)
	createClassFn func(ctx context.Context, def *db.ClassDefinition) error
	deleteClassFn func(ctx context.Context, name string) error
}

func (m *mockStore) ClassExists(ctx context.Context, name string) (bool, error) {
	if m.classExistsFn != nil {
		return m.classExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) GetClass(ctx context.Context, name string) (*db.ClassDefinition, error) {
	if m.getClassFn != nil {
		return m.getClassFn(ctx, name)
	}
	return nil, &db.Error{Op: db.OpGetClass, Class: name, Err: db.ErrClassNotFound}
}

func (m *mockStore) CreateClass(ctx context.Context, def *db.ClassDefinition) error {
	if m.createClassFn != nil {
		return m.createClassFn(ctx, def)
	}
	return nil
}

func (m *mockStore) DeleteClass(ctx context.Context, name string) error {
	if m.deleteClassFn != nil {
		return m.deleteClassFn(ctx, name)
	}
	return nil
}

func makeCollection(t *testing.T, name string, p vectorizer.Provider, model string) domcol.Collection {
	t.Helper()
	vec, err := vectorizer.New(p, model)
	if err != nil {
		t.Fatalf("vectorizer.New: %v", err)
	}
	content, err := property.New("content", property.Text, "The content of the stored memory")
	if err != nil {
		t.Fatalf("property.New: %v", err)
	}
	col, err := domcol.New(name, domcol.KindStore, "Stored memories", vec, []property.Property{content})
	if err != nil {
		t.Fatalf("domcol.New: %v", err)
	}
	return col
}
