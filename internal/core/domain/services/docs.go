// Package services provides the domain services that operate across
// aggregates: the delivery tariff and the dispatch candidate ranking.
//
// The services are pure; claiming a ranked courier is the application
// layer's job because it needs the repository's compare-and-set primitive.
package services
