package provision

import (
	"context"

	domcol "github.com/kailas-cloud/vecprovision/internal/domain/collection"
)

// Repository defines the storage contract for collections.
type Repository interface {
	Exists(ctx context.Context, name string) (bool, error)
	Get(ctx context.Context, name string) (domcol.Collection, error)
	Create(ctx context.Context, col domcol.Collection) error
	Delete(ctx context.Context, name string) error
}

// Conn is an open database session. Close is called exactly once by the service.
type Conn interface {
	Repository
	Close()
}

// Dialer opens database sessions.
type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(ctx context.Context) (Conn, error)

// Dial calls f(ctx).
func (f DialerFunc) Dial(ctx context.Context) (Conn, error) { return f(ctx) }

// CredentialChecker verifies the embedding provider credential before any database work.
type CredentialChecker interface {
	Check(ctx context.Context) error
}

type conn struct {
	Repository
	closeFn func()
}

func (c conn) Close() {
	if c.closeFn != nil {
		c.closeFn()
	}
}

// NewConn pairs a repository with the function that releases its connection.
func NewConn(repo Repository, closeFn func()) Conn {
	return conn{Repository: repo, closeFn: closeFn}
}
