// Package harness runs an answering method over benchmark cases, scores the
// answers and aggregates accuracy by category.
//
// Cases are independent. With Parallel > 1 they fan out over a bounded
// worker pool; every finished case is appended to the result sink as one
// JSON line.
package harness
