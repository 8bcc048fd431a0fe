package ports

import (
	"context"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
)

// AccountRepository defines the persistence contract for accounts and their
// ledger balances.
type AccountRepository interface {
	// Get retrieves an account by its unique identifier.
	// Returns ObjectNotFoundError when no such account exists.
	Get(ctx context.Context, id kernel.UUID) (*account.Account, error)

	// GetWithLock retrieves an account and locks its row for the duration of
	// the current transaction. Balance mutations (checkout debit, cancellation
	// refund) go through this method so concurrent ledger updates serialize.
	GetWithLock(ctx context.Context, id kernel.UUID) (*account.Account, error)

	// Update persists changes to an existing account.
	Update(ctx context.Context, acc *account.Account) error
}
