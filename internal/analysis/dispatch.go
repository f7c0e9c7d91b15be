package analysis

import (
	"context"

	"github.com/dshills/tonecheck/internal/providers"
	"golang.org/x/sync/errgroup"
)

// Item is one (task title, comment) pair queued for classification.
type Item struct {
	Index     int    `json:"index"`
	TaskTitle string `json:"taskTitle"`
	Comment   string `json:"comment"`
}

// Result is the classifier's answer for a single Item.
type Result struct {
	Index     int    `json:"index"`
	TaskTitle string `json:"taskTitle"`
	Comment   string `json:"comment"`
	Text      string `json:"result"`
}

// Dispatch classifies every item concurrently and waits for all of them.
// results[i] always corresponds to items[i], whatever order the calls
// complete in. limit caps the number of in-flight calls; zero or a negative
// value leaves it unbounded.
func Dispatch(ctx context.Context, c providers.Classifier, items []Item, limit int) []Result {
	results := make([]Result, len(items))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, item := range items {
		g.Go(func() error {
			results[i] = Result{
				Index:     item.Index,
				TaskTitle: item.TaskTitle,
				Comment:   item.Comment,
				Text:      c.Classify(ctx, item.TaskTitle, item.Comment),
			}
			return nil
		})
	}

	// Classify never fails, so the group error is always nil.
	_ = g.Wait()
	return results
}
