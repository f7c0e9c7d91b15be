package pipeline

import (
	"context"
	"errors"

	"github.com/dshills/tonecheck/internal/analysis"
	"github.com/dshills/tonecheck/internal/backend"
	"github.com/dshills/tonecheck/internal/output"
	"github.com/dshills/tonecheck/internal/providers"
	"go.uber.org/zap"
)

// ErrNoClients is returned when the backend client list is empty.
var ErrNoClients = errors.New("backend returned no clients")

// Source is the read side of the backend.
type Source interface {
	ListClients(ctx context.Context, search string, limit int) (backend.ClientList, error)
	ListTasksForClient(ctx context.Context, clientID backend.ID, limit int) (backend.TaskList, error)
	ListTaskComments(ctx context.Context, taskID backend.ID) (backend.CommentList, error)
}

// Deps are the collaborators of one run.
type Deps struct {
	Source     Source
	Classifier providers.Classifier
	Reporter   output.Reporter
	Logger     *zap.Logger
}

// Options tune a run.
type Options struct {
	Search      string
	ClientLimit int
	TaskLimit   int
	// Concurrency caps in-flight classifications; zero means unbounded.
	Concurrency int
}

// Run fetches the first client's tasks and their comments, classifies every
// comment and reports the results. Backend errors abort the run;
// classification problems show up as result text.
func Run(ctx context.Context, d Deps, opts Options) error {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	clients, err := d.Source.ListClients(ctx, opts.Search, opts.ClientLimit)
	if err != nil {
		return err
	}
	d.Reporter.Clients(clients)
	if len(clients.Data) == 0 {
		return ErrNoClients
	}

	first := clients.Data[0]
	log.Debug("fetching tasks", zap.Stringer("client", first.ID), zap.Int("limit", opts.TaskLimit))
	tasks, err := d.Source.ListTasksForClient(ctx, first.ID, opts.TaskLimit)
	if err != nil {
		return err
	}
	d.Reporter.Tasks(tasks)

	batch, err := collectComments(ctx, d.Source, tasks.Data, log)
	if err != nil {
		return err
	}

	d.Reporter.CommentCount(batch.Len())

	if batch.Empty() {
		d.Reporter.NothingToAnalyze()
		return d.Reporter.Flush()
	}

	if c, ok := d.Classifier.(interface{ Close() }); ok {
		defer c.Close()
	}
	items := batch.Items()
	log.Debug("classifying comments",
		zap.String("classifier", d.Classifier.Name()),
		zap.Int("count", len(items)),
		zap.Int("concurrency", opts.Concurrency))
	results := analysis.Dispatch(ctx, d.Classifier, items, opts.Concurrency)
	d.Reporter.Results(results)

	return d.Reporter.Flush()
}

// collectComments fetches comments task by task and groups them by the title
// the backend reports for them.
func collectComments(ctx context.Context, src Source, tasks []backend.Task, log *zap.Logger) (*analysis.Batch, error) {
	batch := analysis.NewBatch()
	for _, task := range tasks {
		comments, err := src.ListTaskComments(ctx, task.ID)
		if err != nil {
			return nil, err
		}
		if len(comments.Data) == 0 {
			continue
		}
		title := comments.Meta.TaskTitle
		if title == "" {
			title = task.Title
		}
		if batch.Add(title, comments.Texts()) {
			log.Warn("task title already in batch, merging comments",
				zap.String("title", title), zap.Stringer("task", task.ID))
		}
	}
	return batch, nil
}
