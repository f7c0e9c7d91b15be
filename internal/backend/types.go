package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID identifies a backend record. The backend may encode ids as JSON numbers
// or strings; both decode to the same textual form.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// ClientRecord is a customer record from the backend. Only the id is used.
type ClientRecord struct {
	ID ID `json:"id"`
}

// Task belongs to a client.
type Task struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
}

// Comment belongs to a task.
type Comment struct {
	Text string `json:"text"`
}

// Meta is the free-form envelope metadata.
type Meta map[string]json.RawMessage

// ClientList is the envelope returned by GET /clients.
type ClientList struct {
	Data []ClientRecord  `json:"data"`
	Meta Meta            `json:"meta,omitempty"`
	Raw  json.RawMessage `json:"-"`
}

// TaskList is the envelope returned by GET /tasks.
type TaskList struct {
	Data []Task          `json:"data"`
	Meta Meta            `json:"meta,omitempty"`
	Raw  json.RawMessage `json:"-"`
}

// CommentList is the envelope returned by GET /tasks/{id}/comments.
type CommentList struct {
	Data []Comment       `json:"data"`
	Meta CommentMeta     `json:"meta"`
	Raw  json.RawMessage `json:"-"`
}

// CommentMeta carries the title of the task the comments belong to.
type CommentMeta struct {
	TaskTitle string `json:"taskTitle"`
}

// Texts returns the comment texts in backend order.
func (l CommentList) Texts() []string {
	texts := make([]string, len(l.Data))
	for i, c := range l.Data {
		texts[i] = c.Text
	}
	return texts
}
