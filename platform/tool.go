package platform

import (
	"context"
	"fmt"
	"net/http"
)

// Parameter describes one argument of a tool schema. The wire form groups
// parameters into a JSON-schema object; this flat form keeps declaration
// order and stays reflection free.
type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
}

// ToolDefinition is the schema a tool is registered under. The platform
// dispatches invocations by Name.
type ToolDefinition struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Parameters  []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Tool is a registered tool as the platform reports it.
type Tool struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type wireTool struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Type        string       `json:"type"`
	Function    wireFunction `json:"function"`
}

type wireFunction struct {
	Parameters wireParameters `json:"parameters"`
}

type wireParameters struct {
	Type       string                  `json:"type"`
	Properties map[string]wireProperty `json:"properties"`
	Required   []string                `json:"required,omitempty"`
}

type wireProperty struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// wire expands the definition into the function schema object the platform
// consumes.
func (d ToolDefinition) wire() wireTool {
	properties := make(map[string]wireProperty, len(d.Parameters))
	var required []string
	for _, param := range d.Parameters {
		properties[param.Name] = wireProperty{
			Type:        param.Type,
			Description: param.Description,
		}
		if param.Required {
			required = append(required, param.Name)
		}
	}
	return wireTool{
		Name:        d.Name,
		Description: d.Description,
		Type:        "function",
		Function: wireFunction{
			Parameters: wireParameters{
				Type:       "object",
				Properties: properties,
				Required:   required,
			},
		},
	}
}

// CreateTool registers a tool schema on the agent.
func (c *Client) CreateTool(ctx context.Context, agentID string, def ToolDefinition) (*Tool, error) {
	tool := new(Tool)
	if err := c.do(ctx, http.MethodPost, "/agents/"+agentID+"/tools", def.wire(), tool); err != nil {
		return nil, fmt.Errorf("create tool %s: %w", def.Name, err)
	}
	return tool, nil
}

// ListTools returns the tools registered on the agent.
func (c *Client) ListTools(ctx context.Context, agentID string) ([]Tool, error) {
	var page struct {
		Items []Tool `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/agents/"+agentID+"/tools", nil, &page); err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	return page.Items, nil
}
