package repositories

import (
	"context"
)

// UnitOfWork defines the interface for atomic multi-table operations.
// Reconciliation writes to the identity and profile stores always run
// inside a single Do scope: partial application rolls back entirely.
type UnitOfWork interface {
	// Do executes the given function within a transaction scope
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
