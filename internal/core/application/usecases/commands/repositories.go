// Package commands contains the write-side operations of the order lifecycle:
// cart mutations, checkout, courier claims, delivery progress, cancellation and
// rating. Every handler follows the same shape: validate the command, open a
// unit of work, mutate aggregates through transaction-bound repositories,
// commit, then fire best-effort side effects (cache invalidation,
// notifications) only after the commit.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces for command handlers. Each handler declares the
// narrowest combination of repositories it actually touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// AccountRepoFactory provides access to the account repository within a transaction.
	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	// ProductRepoFactory provides access to the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// CartRepoFactory provides access to the cart repository within a transaction.
	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ChatRepoFactory provides access to the chat repository within a transaction.
	ChatRepoFactory interface {
		ChatRepository() ports.ChatRepository
	}

	// CartUoW manages transactions for cart mutations: line upserts, removals
	// and clears need the cart plus the catalog for stock checks.
	CartUoW interface {
		TxManager
		CartRepoFactory
		ProductRepoFactory
	}

	// CartUoWFactory creates new cart unit of work instances.
	CartUoWFactory interface {
		Create() CartUoW
	}

	// CheckoutUoW manages the checkout transaction, which spans the cart, the
	// catalog, the new order and the customer's ledger balance.
	CheckoutUoW interface {
		TxManager
		CartRepoFactory
		ProductRepoFactory
		OrderRepoFactory
		AccountRepoFactory
	}

	// CheckoutUoWFactory creates new checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// AssignmentUoW manages the claim transaction: the order row, the chat
	// channel created with it, and the customer account for notification.
	AssignmentUoW interface {
		TxManager
		OrderRepoFactory
		ChatRepoFactory
		AccountRepoFactory
	}

	// AssignmentUoWFactory creates new assignment unit of work instances.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// OrderUoW manages transactions for order status changes after assignment.
	// The account repository covers refunds and notification recipients.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AccountRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CartPurgeUoW manages the cleanup transaction for deactivated carts.
	CartPurgeUoW interface {
		TxManager
		CartRepoFactory
	}

	// CartPurgeUoWFactory creates new cart purge unit of work instances.
	CartPurgeUoWFactory interface {
		Create() CartPurgeUoW
	}
)
