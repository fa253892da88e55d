// Package sources provides fixture-backed data source adapters.
//
// Implementations:
//   - cityscout / atlastrails: attraction lookups
//   - savora / tavola: restaurant lookups
//
// The fixtures are deterministic per destination so planning runs are
// reproducible; production deployments would swap in live API clients
// behind the same ports.
package sources
