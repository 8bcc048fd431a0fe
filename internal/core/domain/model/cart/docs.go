// Package cart implements the Cart aggregate: the single mutable staging area a
// customer fills before checkout.
//
// A customer has at most one active cart at any time. The cart is the source of
// truth for its lines until checkout snapshots them into an order; it is then
// deactivated and its lines are deleted in the same transaction.
//
// All quantity, stock, and availability rules live on the aggregate so every
// entry point (HTTP handler, command handler, test) gets identical behavior.
package cart
