package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/tonecheck/internal/analysis"
	"github.com/dshills/tonecheck/internal/backend"
)

// Report is the document written by JSONReporter.
type Report struct {
	Clients      json.RawMessage   `json:"clients,omitempty"`
	Tasks        json.RawMessage   `json:"tasks,omitempty"`
	CommentCount int               `json:"commentCount"`
	Results      []analysis.Result `json:"results"`
}

// JSONReporter buffers the run and writes one JSON document on Flush.
type JSONReporter struct {
	w      io.Writer
	report Report
}

func (j *JSONReporter) Clients(list backend.ClientList) { j.report.Clients = list.Raw }

func (j *JSONReporter) Tasks(list backend.TaskList) { j.report.Tasks = list.Raw }

func (j *JSONReporter) CommentCount(n int) { j.report.CommentCount = n }

func (j *JSONReporter) NothingToAnalyze() { j.report.Results = []analysis.Result{} }

func (j *JSONReporter) Results(results []analysis.Result) { j.report.Results = results }

func (j *JSONReporter) Flush() error {
	if j.report.Results == nil {
		j.report.Results = []analysis.Result{}
	}
	data, err := json.MarshalIndent(j.report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = j.w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(j.w)
	return err
}
