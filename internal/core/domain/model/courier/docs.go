// Package courier implements the Courier aggregate root: a delivery agent
// with an administrative approval gate, operational online/available flags,
// a last-known location, and at most one order in hand.
//
// Availability invariants enforced here:
//   - an offline courier is never available
//   - a courier holding an order is never available
//   - a courier is eligible for dispatch only when approved, online,
//     available, and holding no order
//
// Availability fields are mutated only through MarkBusy/MarkFree and the
// online toggle so the invariants cannot be bypassed.
package courier
