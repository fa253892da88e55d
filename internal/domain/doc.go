// Package domain defines the data model shared across the planner.
//
// It contains:
//   - Trip request and itinerary types (the terminal artifact)
//   - Worker reports produced during information gathering
//   - The closed query union used for cross-worker calls
//
// All types are value types; phases exchange copies, never shared
// mutable state.
package domain
