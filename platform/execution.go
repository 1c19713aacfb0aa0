package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Status of an execution reported by the platform
type Status = string

const (
	StatusQueued        Status = "queued"
	StatusStarting      Status = "starting"
	StatusRunning       Status = "running"
	StatusAwaitingInput Status = "awaiting_input"
	StatusSucceeded     Status = "succeeded"
	StatusFailed        Status = "failed"
	StatusCancelled     Status = "cancelled"
)

// Terminal reports whether status is a final state.
func Terminal(status Status) bool {
	switch status {
	case StatusSucceeded, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// DefaultPollInterval paces execution polling unless overridden.
const DefaultPollInterval = time.Second

// ErrExecutionTimeout reports that polling stopped because the context
// deadline elapsed before the execution reached a terminal status.
var ErrExecutionTimeout = errors.New("execution polling timed out")

// ToolCall is a pending tool invocation the platform is waiting on.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolResult answers a pending tool call. Output and Error are mutually
// exclusive.
type ToolResult struct {
	ToolCallID string `json:"tool_call_id"`
	Output     any    `json:"output,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Execution is one run of a task.
type Execution struct {
	ID              string          `json:"id"`
	TaskID          string          `json:"task_id,omitempty"`
	Status          Status          `json:"status"`
	Input           map[string]any  `json:"input,omitempty"`
	Output          json.RawMessage `json:"output,omitempty"`
	Error           string          `json:"error,omitempty"`
	PendingToolCall *ToolCall       `json:"pending_tool_call,omitempty"`
}

// CreateExecution starts a run of the task with the given input.
func (c *Client) CreateExecution(ctx context.Context, taskID string, input map[string]any) (*Execution, error) {
	payload := map[string]any{"input": input}
	execution := new(Execution)
	if err := c.do(ctx, http.MethodPost, "/tasks/"+taskID+"/executions", payload, execution); err != nil {
		return nil, fmt.Errorf("create execution: %w", err)
	}
	return execution, nil
}

// GetExecution fetches the current state of an execution.
func (c *Client) GetExecution(ctx context.Context, executionID string) (*Execution, error) {
	execution := new(Execution)
	if err := c.do(ctx, http.MethodGet, "/executions/"+executionID, nil, execution); err != nil {
		return nil, fmt.Errorf("get execution: %w", err)
	}
	return execution, nil
}

// SubmitToolResult answers a pending tool call on an execution.
func (c *Client) SubmitToolResult(ctx context.Context, executionID string, result ToolResult) (*Execution, error) {
	execution := new(Execution)
	if err := c.do(ctx, http.MethodPost, "/executions/"+executionID+"/tool_results", result, execution); err != nil {
		return nil, fmt.Errorf("submit tool result: %w", err)
	}
	return execution, nil
}

// PollExecution checks the execution at the configured fixed interval until
// it reaches a terminal status. The first check happens immediately. There
// is no deadline unless ctx carries one: with an unresponsive platform and
// no deadline the wait does not end.
func (c *Client) PollExecution(ctx context.Context, executionID string) (*Execution, error) {
	return c.PollExecutionFunc(ctx, executionID, nil)
}

// PollExecutionFunc polls like PollExecution and hands every non-terminal
// observation to fn, which may advance the execution, for example by
// answering a pending tool call. A non-nil error from fn stops the poll.
func (c *Client) PollExecutionFunc(ctx context.Context, executionID string, fn func(context.Context, *Execution) error) (*Execution, error) {
	limiter := rate.NewLimiter(rate.Every(c.pollInterval), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(ctxErr, context.DeadlineExceeded) {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
		}
		execution, err := c.GetExecution(ctx, executionID)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
			}
			return nil, err
		}
		if Terminal(execution.Status) {
			return execution, nil
		}
		if fn != nil {
			if err := fn(ctx, execution); err != nil {
				return nil, err
			}
		}
	}
}
