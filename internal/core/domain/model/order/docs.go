// Package order implements the Order aggregate: the immutable snapshot of a
// checked-out cart plus the delivery record and the status state machine that
// drives it from placement to completion.
//
// Lifecycle:
//
//	new ──> assigned ──> delivering ──> delivered
//	 │          │
//	 └──────────┴──> cancelled
//
// Transitions are monotonic; cancellation is legal only from the two earliest
// states. Each transition stamps its own timestamp exactly once. Line prices and
// the order total are captured at creation and never recomputed, so the amount
// charged is preserved even when product prices later change.
package order
