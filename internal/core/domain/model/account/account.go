package account

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrAccountIsNotConstructed is returned when an Account instance was not created
	// through the NewAccount or RestoreAccount factory methods.
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount or RestoreAccount constructor")
	// ErrEmailIsRequired is returned when attempting to create an account without an email.
	ErrEmailIsRequired = errs.NewValueIsRequiredError("email")
	// ErrNameIsRequired is returned when attempting to create an account without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// Role distinguishes the two kinds of accounts the core works with.
// Authentication itself is an external collaborator; the role is the only part
// of the identity the core needs.
type Role string

const (
	// RoleCustomer is an account that browses, fills carts and places orders.
	RoleCustomer Role = "customer"
	// RoleCourier is an account that claims and fulfills deliveries.
	RoleCourier Role = "courier"
)

// Validate checks that the role is one of the known values.
func (r Role) Validate() error {
	if r != RoleCustomer && r != RoleCourier {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

// Account is the aggregate holding a user identity reference and its balance
// ledger. The balance is mutated only through Debit and Credit; both are called
// from command handlers inside the same unit of work as the order mutation they
// belong to.
//
// Invariants:
//   - Balance is never negative.
//   - A debit that exceeds the balance fails with InsufficientFundsError and
//     changes nothing.
type Account struct {
	id      kernel.UUID
	email   string
	name    string
	role    Role
	balance kernel.Money

	guard guard.ConstructorGuard
}

// NewAccount creates an account with a zero balance.
func NewAccount(id kernel.UUID, email, name string, role Role) (*Account, error) {
	return RestoreAccount(id, email, name, role, kernel.ZeroMoney())
}

// RestoreAccount reconstructs an account from persistent storage.
func RestoreAccount(id kernel.UUID, email, name string, role Role, balance kernel.Money) (*Account, error) {
	account := &Account{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		account.setID(id),
		account.setEmail(email),
		account.setName(name),
		account.setRole(role),
	); err != nil {
		return nil, err
	}

	account.balance = balance
	return account, nil
}

// Validate ensures the account was created through a constructor.
func (a *Account) Validate() error {
	if a == nil {
		return ErrAccountIsNotConstructed
	}
	return a.guard.Validate(ErrAccountIsNotConstructed)
}

// ID returns the account's unique identifier.
func (a *Account) ID() kernel.UUID {
	return a.id
}

// Email returns the address notifications for this account are sent to.
func (a *Account) Email() string {
	return a.email
}

// Name returns the display name of the account.
func (a *Account) Name() string {
	return a.name
}

// Role returns the account role.
func (a *Account) Role() Role {
	return a.role
}

// Balance returns the current balance.
func (a *Account) Balance() kernel.Money {
	return a.balance
}

// Debit decreases the balance by amount.
// Fails with InsufficientFundsError when the balance does not cover the amount;
// the balance is left untouched in that case.
func (a *Account) Debit(amount kernel.Money) error {
	if a.balance.LessThan(amount) {
		return errs.NewInsufficientFundsError(a.balance.String(), amount.String())
	}

	rest, err := a.balance.Sub(amount)
	if err != nil {
		return err
	}

	a.balance = rest
	return nil
}

// Credit increases the balance by amount. Credit always succeeds.
func (a *Account) Credit(amount kernel.Money) {
	a.balance = a.balance.Add(amount)
}

// AsCustomer derives the customer principal for this account.
// Fails with ForbiddenError when the account is not a customer.
func (a *Account) AsCustomer() (Customer, error) {
	if a.role != RoleCustomer {
		return Customer{}, errs.NewForbiddenError("customer role required")
	}
	return Customer{id: a.id, guard: guard.NewConstructorGuard()}, nil
}

// AsCourier derives the courier principal for this account.
// Fails with ForbiddenError when the account is not a courier.
func (a *Account) AsCourier() (Courier, error) {
	if a.role != RoleCourier {
		return Courier{}, errs.NewForbiddenError("courier role required")
	}
	return Courier{id: a.id, guard: guard.NewConstructorGuard()}, nil
}

func (a *Account) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Account) setEmail(email string) error {
	if email == "" {
		return ErrEmailIsRequired
	}
	a.email = email
	return nil
}

func (a *Account) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	a.name = name
	return nil
}

func (a *Account) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
