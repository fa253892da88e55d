// Package events provides event bus implementations for plan progress
// notifications.
//
// Implementations:
//   - redis: Redis Streams with consumer groups
//   - memory: In-memory for single-process deployments and testing
package events
