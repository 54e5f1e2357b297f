// Package kernel contains the shared value objects of the domain model:
// identifiers, geographic coordinates, and currency helpers. Value objects
// are immutable and validate themselves on construction.
package kernel
