package platform

import (
	"context"
	"fmt"
	"net/http"
)

// Agent is the platform entity that owns tools and tasks.
type Agent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Model string `json:"model"`
	About string `json:"about,omitempty"`
}

// CreateAgentRequest describes the agent to register.
type CreateAgentRequest struct {
	Name  string `json:"name"`
	Model string `json:"model"`
	About string `json:"about,omitempty"`
}

// CreateAgent registers a new agent with the platform.
func (c *Client) CreateAgent(ctx context.Context, req CreateAgentRequest) (*Agent, error) {
	agent := new(Agent)
	if err := c.do(ctx, http.MethodPost, "/agents", req, agent); err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}
	return agent, nil
}
