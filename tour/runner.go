package tour

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bububa/foodie-tour/platform"
	"github.com/bububa/foodie-tour/tools"
)

type Config struct {
	client   *platform.Client
	registry *tools.Registry
	model    string
	logf     func(format string, args ...any)
}

type Option func(*Config)

func WithClient(clt *platform.Client) Option {
	return func(c *Config) {
		c.client = clt
	}
}

// WithRegistry sets the dispatch table pending tool calls are answered
// through. Without one, pending calls are answered with an error result.
func WithRegistry(registry *tools.Registry) Option {
	return func(c *Config) {
		c.registry = registry
	}
}

func WithModel(model string) Option {
	return func(c *Config) {
		c.model = model
	}
}

// WithLogf sets the progress reporter. The default discards progress.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(c *Config) {
		c.logf = logf
	}
}

// Runner registers the foodie tour agent, tools and task with the platform
// and drives executions to completion.
type Runner struct {
	Config
	agent *platform.Agent
	task  *platform.CreatedTask
}

func NewRunner(opts ...Option) *Runner {
	ret := new(Runner)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.model == "" {
		ret.model = DefaultModel
	}
	if ret.logf == nil {
		ret.logf = func(string, ...any) {}
	}
	return ret
}

// Agent returns the platform agent once Setup has created it.
func (r *Runner) Agent() *platform.Agent {
	return r.agent
}

// Task returns the platform task record once Setup has created it.
func (r *Runner) Task() *platform.CreatedTask {
	return r.task
}

// Setup creates the agent, registers the three tool schemas on it, and
// creates the task. Failures here are fatal to the run: they are returned
// as errors, never folded into result objects.
func (r *Runner) Setup(ctx context.Context) error {
	if r.client == nil {
		return errors.New("no platform client configured")
	}
	agent, err := r.client.CreateAgent(ctx, platform.CreateAgentRequest{
		Name:  AgentName,
		Model: r.model,
		About: AgentAbout,
	})
	if err != nil {
		return err
	}
	r.agent = agent
	r.logf("--- Agent Created ---")
	for _, def := range Definitions() {
		tool, err := r.client.CreateTool(ctx, agent.ID, def)
		if err != nil {
			return err
		}
		r.logf("Created tool: %s", tool.Name)
	}
	registered, err := r.client.ListTools(ctx, agent.ID)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(registered))
	for _, tool := range registered {
		names = append(names, tool.Name)
	}
	r.logf("Registered tools: %s", strings.Join(names, ", "))
	task, err := r.client.CreateTask(ctx, agent.ID, Task())
	if err != nil {
		return err
	}
	r.task = task
	r.logf("Task %q created successfully", task.Name)
	return nil
}

// Run submits an execution for city and waits for a terminal status,
// answering platform tool callbacks through the registry along the way.
// The platform interprets the pipeline; Run only observes and responds.
func (r *Runner) Run(ctx context.Context, city string) (*platform.Execution, error) {
	if r.task == nil {
		return nil, errors.New("runner is not set up")
	}
	execution, err := r.client.CreateExecution(ctx, r.task.ID, map[string]any{"city": city})
	if err != nil {
		return nil, err
	}
	r.logf("Execution %s started", execution.ID)
	return r.client.PollExecutionFunc(ctx, execution.ID, r.serviceToolCall)
}

// serviceToolCall answers a pending tool call through the registry.
// Dispatch failures go back to the platform as tool error results, the run
// itself keeps going and the platform decides how to proceed.
func (r *Runner) serviceToolCall(ctx context.Context, execution *platform.Execution) error {
	if execution.Status != platform.StatusAwaitingInput || execution.PendingToolCall == nil {
		return nil
	}
	call := execution.PendingToolCall
	result := platform.ToolResult{ToolCallID: call.ID}
	if r.registry == nil {
		result.Error = fmt.Sprintf("no local dispatch for tool %q", call.Name)
	} else if output, err := r.registry.Invoke(ctx, call.Name, call.Arguments); err != nil {
		result.Error = err.Error()
	} else {
		result.Output = output
	}
	if _, err := r.client.SubmitToolResult(ctx, execution.ID, result); err != nil {
		return err
	}
	return nil
}
