// Package storage provides plan result store implementations.
//
// Implementations:
//   - redis: Redis with JSON serialization and TTL
//   - memory: In-memory for single-process deployments and testing
package storage
