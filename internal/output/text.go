package output

import (
	"bytes"
	"encoding/json"

	"github.com/dshills/tonecheck/internal/analysis"
	"github.com/dshills/tonecheck/internal/backend"
)

// TextReporter prints each stage to the console as soon as it is reported.
type TextReporter struct {
	ew *errWriter
}

func (t *TextReporter) Clients(list backend.ClientList) {
	t.ew.printf("Users: %s\n", compact(list.Raw))
}

func (t *TextReporter) Tasks(list backend.TaskList) {
	t.ew.printf("Tasks: %s\n", compact(list.Raw))
}

func (t *TextReporter) CommentCount(n int) {
	t.ew.printf("\nНайдено комментариев для анализа: %d\n", n)
}

func (t *TextReporter) NothingToAnalyze() {
	t.ew.println("Комментарии для анализа не найдены")
}

func (t *TextReporter) Results(results []analysis.Result) {
	t.ew.println("\n=== Результаты анализа ===")
	for i, r := range results {
		t.ew.printf("%d. %s\n", i+1, r.Text)
	}
}

func (t *TextReporter) Flush() error { return t.ew.err }

// compact renders a JSON body on one line, falling back to the raw text.
func compact(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
