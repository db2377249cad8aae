// Package dataset reads the HiToM and FANToM benchmark files.
//
// Both benchmarks ship as JSON Lines. Entries get their 1-based line number
// as ID; lines that fail to decode are skipped with a warning.
package dataset
