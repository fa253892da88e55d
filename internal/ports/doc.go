// Package ports defines the interfaces between the planner core and
// its collaborators.
//
// Ports:
//   - Worker: the uniform specialist contract (Process + Handle)
//   - AttractionSource / RestaurantSource: lookup data dependencies
//   - ResultStore: plan result persistence
//   - EventBus: plan progress event publishing
//   - MetricsCollector: planner instrumentation
package ports
