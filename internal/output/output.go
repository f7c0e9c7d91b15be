package output

import (
	"fmt"
	"io"

	"github.com/dshills/tonecheck/internal/analysis"
	"github.com/dshills/tonecheck/internal/backend"
)

// Reporter receives the stages of one run as they happen.
type Reporter interface {
	Clients(list backend.ClientList)
	Tasks(list backend.TaskList)
	CommentCount(n int)
	NothingToAnalyze()
	Results(results []analysis.Result)
	// Flush writes anything still buffered and returns the first write error.
	Flush() error
}

// New returns a reporter for the specified format writing to w.
func New(format string, w io.Writer) (Reporter, error) {
	switch format {
	case "text", "":
		return &TextReporter{ew: &errWriter{w: w}}, nil
	case "json":
		return &JSONReporter{w: w}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
