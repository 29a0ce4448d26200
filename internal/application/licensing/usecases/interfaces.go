package usecases

import (
	"context"

	"keymint/internal/shared/keygen"
)

// KeyGenerator mints unique license key strings against a store probe.
type KeyGenerator interface {
	Generate(ctx context.Context, exists keygen.ExistsFunc) (string, error)
}

// TransactionManager runs a function inside one storage transaction.
// Repositories called with the wrapped context join that transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
