// Package output reports the progress and results of an analysis run.
//
// Two formats are supported:
//   - text — console output, printed stage by stage (default)
//   - json — one structured document written when the run completes
//
// Use [New] to obtain a [Reporter] for a given format string and destination.
package output
