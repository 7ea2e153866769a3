package db

import (
	"context"
	"time"
)

// Store is the database facade used by the provisioner.
type Store interface {
	Pinger
	SchemaManager
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SchemaManager provides collection (class) lifecycle operations.
type SchemaManager interface {
	ClassExists(ctx context.Context, name string) (bool, error)
	GetClass(ctx context.Context, name string) (*ClassDefinition, error)
	CreateClass(ctx context.Context, def *ClassDefinition) error
	DeleteClass(ctx context.Context, name string) error
}
