// Package account implements the Account aggregate and the capability-typed
// principals derived from it.
//
// Account owns the internal balance ledger: Debit and Credit are the only
// operations that may change a balance, and they always execute inside the
// unit of work of the business operation that triggered them, so a mid-operation
// failure leaves balance and order state consistent.
//
// Customer and Courier are principal value objects established once at the HTTP
// boundary from the account role. Downstream use cases accept only the principal
// type they need instead of re-checking role strings.
package account
