package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListClients(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/clients" {
			t.Errorf("Path = %q, want %q", r.URL.Path, "/api/v1/clients")
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit = %q, want 5", got)
		}
		if r.URL.Query().Has("search") {
			t.Error("search should be omitted when empty")
		}
		w.Write([]byte(`{"data":[{"id":1,"name":"Acme"},{"id":"c-2","name":"Globex"}]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL+"/api/v1/", server.Client())
	list, err := c.ListClients(context.Background(), "", 5)
	if err != nil {
		t.Fatalf("ListClients error: %v", err)
	}
	if len(list.Data) != 2 {
		t.Fatalf("got %d clients, want 2", len(list.Data))
	}
	if list.Data[0].ID != "1" {
		t.Errorf("ID[0] = %q, want %q", list.Data[0].ID, "1")
	}
	if list.Data[1].ID != "c-2" {
		t.Errorf("ID[1] = %q, want %q", list.Data[1].ID, "c-2")
	}
	if !strings.Contains(string(list.Raw), "Globex") {
		t.Errorf("Raw body not preserved: %s", list.Raw)
	}
}

func TestListClients_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "acme corp" {
			t.Errorf("search = %q, want %q", got, "acme corp")
		}
		if got := r.URL.Query().Get("limit"); got != "2" {
			t.Errorf("limit = %q, want 2", got)
		}
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client())
	list, err := c.ListClients(context.Background(), "acme corp", 2)
	if err != nil {
		t.Fatalf("ListClients error: %v", err)
	}
	if len(list.Data) != 0 {
		t.Errorf("got %d clients, want 0", len(list.Data))
	}
}

func TestListTasksForClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks" {
			t.Errorf("Path = %q, want /tasks", r.URL.Path)
		}
		if got := r.URL.Query().Get("client_id"); got != "1" {
			t.Errorf("client_id = %q, want 1", got)
		}
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("limit = %q, want 10", got)
		}
		w.Write([]byte(`{"data":[{"id":10,"title":"Write docs","status":"done"}]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client())
	list, err := c.ListTasksForClient(context.Background(), "1", 10)
	if err != nil {
		t.Fatalf("ListTasksForClient error: %v", err)
	}
	if len(list.Data) != 1 {
		t.Fatalf("got %d tasks, want 1", len(list.Data))
	}
	task := list.Data[0]
	if task.ID != "10" || task.Title != "Write docs" {
		t.Errorf("task = %+v", task)
	}
}

func TestListTaskComments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks/10/comments" {
			t.Errorf("Path = %q, want /tasks/10/comments", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"text": "Looks good", "author": "ann"}, {"text": "Typo in intro"}},
			"meta": map[string]any{"taskTitle": "Write docs"},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client())
	list, err := c.ListTaskComments(context.Background(), "10")
	if err != nil {
		t.Fatalf("ListTaskComments error: %v", err)
	}
	if list.Meta.TaskTitle != "Write docs" {
		t.Errorf("TaskTitle = %q, want %q", list.Meta.TaskTitle, "Write docs")
	}
	texts := list.Texts()
	if len(texts) != 2 || texts[0] != "Looks good" || texts[1] != "Typo in intro" {
		t.Errorf("Texts() = %v", texts)
	}
}

func TestListTaskComments_EscapesID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/tasks/a%2Fb/comments" {
			t.Errorf("EscapedPath = %q", r.URL.EscapedPath())
		}
		w.Write([]byte(`{"data":[],"meta":{}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client())
	if _, err := c.ListTaskComments(context.Background(), "a/b"); err != nil {
		t.Fatalf("ListTaskComments error: %v", err)
	}
}

func TestGet_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(503)
		w.Write([]byte(`service waking up`))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client())
	_, err := c.ListClients(context.Background(), "", 5)
	if err == nil {
		t.Fatal("Expected error for 503")
	}
	if !strings.Contains(err.Error(), "status 503") {
		t.Errorf("error = %q, want status 503", err)
	}
	if !strings.HasPrefix(err.Error(), "listing clients:") {
		t.Errorf("error = %q, want listing clients prefix", err)
	}
}

func TestGet_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client())
	_, err := c.ListTasksForClient(context.Background(), "1", 10)
	if err == nil {
		t.Fatal("Expected error for malformed JSON")
	}
	if !strings.Contains(err.Error(), "parsing response") {
		t.Errorf("error = %q", err)
	}
}

func TestGet_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewClient(url, nil)
	if _, err := c.ListTaskComments(context.Background(), "1"); err == nil {
		t.Fatal("Expected error when the backend is unreachable")
	}
}

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{`1`, "1", false},
		{`"abc"`, "abc", false},
		{` 42 `, "42", false},
		{`true`, "", true},
	}
	for _, tt := range tests {
		var id ID
		err := json.Unmarshal([]byte(tt.in), &id)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Unmarshal(%s) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unmarshal(%s) error: %v", tt.in, err)
			continue
		}
		if id != tt.want {
			t.Errorf("Unmarshal(%s) = %q, want %q", tt.in, id, tt.want)
		}
	}
}

func TestID_MarshalJSONQuoted(t *testing.T) {
	data, err := json.Marshal([]ID{"7", "007", "x-1"})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `["7","007","x-1"]` {
		t.Errorf("Marshal = %s, want [\"7\",\"007\",\"x-1\"]", data)
	}
	var back []ID
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if len(back) != 3 || back[1] != "007" {
		t.Errorf("round trip = %v", back)
	}
}
