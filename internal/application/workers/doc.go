// Package workers implements the three specialist workers the planner
// coordinates:
//
//   - Explorer: searches attraction sources and optimizes visit routes
//   - Budget: allocates budgets and validates proposed spending
//   - Food: searches restaurant sources and plans daily meals
//
// Every worker satisfies ports.Worker. Process covers a full request;
// Handle answers the typed cross-worker queries used in the later
// pipeline phases. Workers never talk to each other directly.
package workers
