// Package pipeline runs one analysis end to end.
//
// The backend is queried strictly in sequence (clients, then the first
// client's tasks, then each task's comments). The collected comments are then
// classified concurrently and handed to the reporter in enqueue order.
package pipeline
