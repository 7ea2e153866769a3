package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CredentialChecker checks the embedding provider key.
type CredentialChecker interface {
	Check(ctx context.Context) error
}
