package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork per request or command,
// keeping concurrent operations isolated from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Handlers begin it, mutate
// aggregates through the transaction-bound repositories, and commit; rolling
// back after a commit is a no-op, so `defer uow.Rollback(ctx)` is the idiom.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Calling it after a successful Commit does nothing.
	Rollback(ctx context.Context) error

	// AccountRepository returns an AccountRepository bound to the current transaction.
	AccountRepository() AccountRepository

	// ProductRepository returns a ProductRepository bound to the current transaction.
	ProductRepository() ProductRepository

	// CartRepository returns a CartRepository bound to the current transaction.
	CartRepository() CartRepository

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// ChatRepository returns a ChatRepository bound to the current transaction.
	ChatRepository() ChatRepository
}
