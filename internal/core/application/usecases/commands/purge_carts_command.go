package commands

import (
	"errors"
	"time"

	"marketplace/internal/pkg/guard"
)

var (
	ErrPurgeCartsCommandIsNotConstructed = errors.New(
		"PurgeCartsCommand must be created via NewPurgeCartsCommand constructor",
	)
	ErrRetentionIsInvalid = errors.New("retention must be greater than 0")
)

// PurgeCartsCommand deletes deactivated carts older than the retention period.
type PurgeCartsCommand struct { //nolint:recvcheck //using for validation
	retention time.Duration

	guard guard.ConstructorGuard
}

// NewPurgeCartsCommand creates a command to purge old deactivated carts.
func NewPurgeCartsCommand(retention time.Duration) (PurgeCartsCommand, error) {
	if retention <= 0 {
		return PurgeCartsCommand{}, ErrRetentionIsInvalid
	}
	return PurgeCartsCommand{
		retention: retention,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PurgeCartsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeCartsCommandIsNotConstructed)
}

// Retention returns how long deactivated carts are kept before deletion.
func (c PurgeCartsCommand) Retention() time.Duration {
	return c.retention
}
