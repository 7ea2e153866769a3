package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/vecprovision/internal/db"
	"github.com/kailas-cloud/vecprovision/internal/domain"
	domcol "github.com/kailas-cloud/vecprovision/internal/domain/collection"
)

// store is the consumer interface for collections (ISP).
type store interface {
	ClassExists(ctx context.Context, name string) (bool, error)
	GetClass(ctx context.Context, name string) (*db.ClassDefinition, error)
	CreateClass(ctx context.Context, def *db.ClassDefinition) error
	DeleteClass(ctx context.Context, name string) error
}

// Repo implements usecase/provision.Repository on top of a schema store.
type Repo struct {
	store store
}

// New creates a collection repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Exists reports whether a collection with the given name is present.
func (r *Repo) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := r.store.ClassExists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("check collection %s: %w", name, err)
	}
	return ok, nil
}

// Get retrieves a collection definition by name.
func (r *Repo) Get(ctx context.Context, name string) (domcol.Collection, error) {
	def, err := r.store.GetClass(ctx, name)
	if err != nil {
		if errors.Is(err, db.ErrClassNotFound) {
			return domcol.Collection{}, domain.ErrNotFound
		}
		return domcol.Collection{}, fmt.Errorf("get collection %s: %w", name, err)
	}
	return collectionFromClass(def), nil
}

// Create stores a collection definition.
func (r *Repo) Create(ctx context.Context, col domcol.Collection) error {
	if err := r.store.CreateClass(ctx, classFromCollection(col)); err != nil {
		if errors.Is(err, db.ErrClassExists) {
			return fmt.Errorf("create collection %s: %w: %w", col.Name(), domain.ErrAlreadyExists, err)
		}
		return fmt.Errorf("create collection %s: %w", col.Name(), err)
	}
	return nil
}

// Delete removes a collection and every object stored in it.
func (r *Repo) Delete(ctx context.Context, name string) error {
	if err := r.store.DeleteClass(ctx, name); err != nil {
		if errors.Is(err, db.ErrClassNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete collection %s: %w", name, err)
	}
	return nil
}
