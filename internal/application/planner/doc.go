// Package planner coordinates the four-phase trip planning pipeline:
//
//  1. gathering: all three workers run in parallel, each under its own
//     timeout; a late or failing worker degrades the plan instead of
//     failing it
//  2. validation: the Budget worker checks the Explorer's proposed
//     activity spending and triggers a cheaper re-search when the plan
//     is infeasible
//  3. routing: attractions are split across the days and ordered into
//     timed routes
//  4. synthesis: routes, meals and budget breakdown are merged into the
//     final itinerary
//
// The coordinator always returns a structured PlanResult; callers never
// see a bare error for a submitted plan.
package planner
