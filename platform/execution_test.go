package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// scriptedExecutions serves GET /executions/{id} from a fixed status
// sequence, holding the last status once the script runs out.
type scriptedExecutions struct {
	mtx      sync.Mutex
	statuses []Status
	polls    int
}

func (s *scriptedExecutions) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mtx.Lock()
		idx := s.polls
		if idx >= len(s.statuses) {
			idx = len(s.statuses) - 1
		}
		status := s.statuses[idx]
		s.polls++
		s.mtx.Unlock()
		fmt.Fprintf(w, `{"id":"exec-1","status":%q}`, status)
	}
}

func (s *scriptedExecutions) count() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.polls
}

func TestCreateExecution(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tasks/task-1/executions" {
			t.Errorf("Expect POST /tasks/task-1/executions, but got %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{"id":"exec-1","task_id":"task-1","status":"queued"}`)
	}))
	defer srv.Close()
	client := NewClient(WithAPIKey("test-key"), WithBaseURL(srv.URL))
	execution, err := client.CreateExecution(context.Background(), "task-1", map[string]any{"city": "Chennai"})
	if err != nil {
		t.Fatalf("Expect no error, but got %v", err)
	}
	if execution.ID != "exec-1" || execution.Status != StatusQueued {
		t.Errorf("Expect queued exec-1, but got %s %s", execution.ID, execution.Status)
	}
	input, _ := gotBody["input"].(map[string]any)
	if input["city"] != "Chennai" {
		t.Errorf("Expect city input, but got %v", gotBody)
	}
}

func TestSubmitToolResult(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/executions/exec-1/tool_results" {
			t.Errorf("Expect /executions/exec-1/tool_results, but got %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{"id":"exec-1","status":"running"}`)
	}))
	defer srv.Close()
	client := NewClient(WithAPIKey("test-key"), WithBaseURL(srv.URL))
	execution, err := client.SubmitToolResult(context.Background(), "exec-1", ToolResult{
		ToolCallID: "call-1",
		Output:     map[string]any{"city": "Chennai"},
	})
	if err != nil {
		t.Fatalf("Expect no error, but got %v", err)
	}
	if execution.Status != StatusRunning {
		t.Errorf("Expect running, but got %s", execution.Status)
	}
	if gotBody["tool_call_id"] != "call-1" {
		t.Errorf("Expect tool_call_id call-1, but got %v", gotBody)
	}
}

func TestPollExecution(t *testing.T) {
	script := &scriptedExecutions{statuses: []Status{StatusQueued, StatusRunning, StatusSucceeded}}
	srv := httptest.NewServer(script.handler(t))
	defer srv.Close()
	client := NewClient(WithAPIKey("test-key"), WithBaseURL(srv.URL), WithPollInterval(time.Millisecond))
	execution, err := client.PollExecution(context.Background(), "exec-1")
	if err != nil {
		t.Fatalf("Expect no error, but got %v", err)
	}
	if execution.Status != StatusSucceeded {
		t.Errorf("Expect succeeded, but got %s", execution.Status)
	}
	if script.count() != 3 {
		t.Errorf("Expect 3 polls, but got %d", script.count())
	}
}

func TestPollExecutionCancelledStatus(t *testing.T) {
	script := &scriptedExecutions{statuses: []Status{StatusRunning, StatusCancelled}}
	srv := httptest.NewServer(script.handler(t))
	defer srv.Close()
	client := NewClient(WithAPIKey("test-key"), WithBaseURL(srv.URL), WithPollInterval(time.Millisecond))
	execution, err := client.PollExecution(context.Background(), "exec-1")
	if err != nil {
		t.Fatalf("Expect no error, but got %v", err)
	}
	if execution.Status != StatusCancelled {
		t.Errorf("Expect cancelled, but got %s", execution.Status)
	}
	if script.count() != 2 {
		t.Errorf("Expect 2 polls, but got %d", script.count())
	}
}

func TestPollExecutionFunc(t *testing.T) {
	script := &scriptedExecutions{statuses: []Status{StatusStarting, StatusRunning, StatusSucceeded}}
	srv := httptest.NewServer(script.handler(t))
	defer srv.Close()
	client := NewClient(WithAPIKey("test-key"), WithBaseURL(srv.URL), WithPollInterval(time.Millisecond))
	var observed []Status
	execution, err := client.PollExecutionFunc(context.Background(), "exec-1", func(_ context.Context, e *Execution) error {
		observed = append(observed, e.Status)
		return nil
	})
	if err != nil {
		t.Fatalf("Expect no error, but got %v", err)
	}
	if execution.Status != StatusSucceeded {
		t.Errorf("Expect succeeded, but got %s", execution.Status)
	}
	if len(observed) != 2 || observed[0] != StatusStarting || observed[1] != StatusRunning {
		t.Errorf("Expect non-terminal observations [starting running], but got %v", observed)
	}
}

func TestPollExecutionFuncStops(t *testing.T) {
	script := &scriptedExecutions{statuses: []Status{StatusRunning}}
	srv := httptest.NewServer(script.handler(t))
	defer srv.Close()
	client := NewClient(WithAPIKey("test-key"), WithBaseURL(srv.URL), WithPollInterval(time.Millisecond))
	wantErr := errors.New("dispatch failed")
	_, err := client.PollExecutionFunc(context.Background(), "exec-1", func(context.Context, *Execution) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("Expect dispatch error to stop polling, but got %v", err)
	}
}

func TestPollExecutionTimeout(t *testing.T) {
	script := &scriptedExecutions{statuses: []Status{StatusRunning}}
	srv := httptest.NewServer(script.handler(t))
	defer srv.Close()
	client := NewClient(WithAPIKey("test-key"), WithBaseURL(srv.URL), WithPollInterval(5*time.Millisecond))
	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()
	_, err := client.PollExecution(ctx, "exec-1")
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Errorf("Expect ErrExecutionTimeout, but got %v", err)
	}
}

func TestPollExecutionContextCancelled(t *testing.T) {
	script := &scriptedExecutions{statuses: []Status{StatusRunning}}
	srv := httptest.NewServer(script.handler(t))
	defer srv.Close()
	client := NewClient(WithAPIKey("test-key"), WithBaseURL(srv.URL), WithPollInterval(5*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := client.PollExecution(ctx, "exec-1")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expect context.Canceled, but got %v", err)
	}
}
