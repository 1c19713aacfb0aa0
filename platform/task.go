package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"gopkg.in/yaml.v3"
)

// Value is a step argument: a literal string, a reference to a field of the
// execution input, or a reference to a prior step's output. References
// render as the platform's template syntax only at the wire boundary.
type Value struct {
	literal string
	input   string
	step    string
}

// String returns a literal argument value.
func String(v string) Value {
	return Value{literal: v}
}

// Input references a field of the execution input.
func Input(field string) Value {
	return Value{input: field}
}

// StepOutput references the output of a named prior step.
func StepOutput(step string) Value {
	return Value{step: step}
}

// Template returns the wire form of the value.
func (v Value) Template() string {
	switch {
	case v.input != "":
		return fmt.Sprintf("{{ inputs.%s }}", v.input)
	case v.step != "":
		return fmt.Sprintf("{{ steps.%s.output }}", v.step)
	default:
		return v.literal
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Template())
}

func (v Value) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Style: yaml.DoubleQuotedStyle,
		Value: v.Template(),
	}, nil
}

// Argument is one named argument of a step.
type Argument struct {
	Key   string
	Value Value
}

// Arguments keep declaration order through marshaling so the rendered
// document is deterministic.
type Arguments []Argument

func (a Arguments) MarshalJSON() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	for idx, arg := range a {
		if idx > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(arg.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := arg.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (a Arguments) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, arg := range a {
		value, err := arg.Value.MarshalYAML()
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: arg.Key},
			value.(*yaml.Node),
		)
	}
	return node, nil
}

// Step invokes a named tool with rendered arguments. Name is optional:
// later steps reference a named step's output by it.
type Step struct {
	Tool      string    `json:"tool" yaml:"tool"`
	Name      string    `json:"name,omitempty" yaml:"name,omitempty"`
	Arguments Arguments `json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

// Task is the declarative pipeline registered with the platform. It is
// interpreted there, never locally.
type Task struct {
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	InheritTools bool   `json:"inherit_tools" yaml:"inherit_tools"`
	Main         []Step `json:"main" yaml:"main"`
}

// Document renders the task as the YAML document form of the pipeline.
func (t Task) Document() (string, error) {
	bs, err := yaml.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("encode task: %w", err)
	}
	return string(bs), nil
}

// CreatedTask is the platform's record of a registered task.
type CreatedTask struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateTask registers the task on the agent.
func (c *Client) CreateTask(ctx context.Context, agentID string, task Task) (*CreatedTask, error) {
	created := new(CreatedTask)
	if err := c.do(ctx, http.MethodPost, "/agents/"+agentID+"/tasks", task, created); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}
