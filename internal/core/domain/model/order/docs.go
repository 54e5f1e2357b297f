// Package order implements the Order aggregate root and its lifecycle
// state machine.
//
// The package includes:
//   - Status: a closed enumeration with one authoritative transition table
//   - Item: an order line with name and price snapshotted at order time
//   - Order: the aggregate root enforcing transitions, timestamps, and the
//     courier-reference invariant
//
// Key business rules:
//   - Placed -> Confirmed -> Assigned -> CourierAccepted -> Preparing ->
//     EnRoute -> Delivered is the happy path
//   - a courier rejection moves the order to CourierRejected and releases
//     the courier; a later dispatch moves it back to Assigned
//   - RestaurantRejected, Delivered, and Cancelled are terminal; a terminal
//     order never changes again
//   - the courier reference is set exactly while the order is in an active
//     courier-held status, and is preserved on Delivered for history
package order
