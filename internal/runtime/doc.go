/*
Package runtime implements the recursive belief decomposer.

A task moves through Identify -> Simplify -> Filter -> (Recurse | Extract).
Each pass removes the outermost agent from the question and keeps only the
story units that agent could know, until the question is about the narrator
and can be answered directly. Oracle calls within a task are sequential.
*/
package runtime
