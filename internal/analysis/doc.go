// Package analysis builds the comment batch and fans it out to a classifier.
//
// A [Batch] groups comment texts by task title. Comments of tasks that share
// a title end up under the same entry. [Dispatch] runs one goroutine per
// queued comment and writes each answer into the slot matching its queue
// position, so the returned results follow enqueue order.
package analysis
