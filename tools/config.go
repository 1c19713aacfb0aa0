package tools

import "context"

// Config class shared by every tool implementation
type Config struct {
	// title the default title of the tool
	title string
	// description the default description of the tool
	description string
	// startHook called before a dispatched run with the decoded input
	startHook func(context.Context, AnonymousTool, any)
	// endHook called after a dispatched run with the input and output
	endHook func(context.Context, AnonymousTool, any, any)
	// errorHook called when dispatch input cannot be decoded
	errorHook func(context.Context, AnonymousTool, any, error)
}

func (c *Config) SetTitle(v string) {
	c.title = v
}

func (c Config) Title() string {
	return c.title
}

func (c *Config) SetDescription(v string) {
	c.description = v
}

func (c Config) Description() string {
	return c.description
}

func (c *Config) SetStartHook(fn func(context.Context, AnonymousTool, any)) {
	c.startHook = fn
}

func (c *Config) SetEndHook(fn func(context.Context, AnonymousTool, any, any)) {
	c.endHook = fn
}

func (c *Config) SetErrorHook(fn func(context.Context, AnonymousTool, any, error)) {
	c.errorHook = fn
}

// Start fires the start hook if one is set.
func (c Config) Start(ctx context.Context, t AnonymousTool, input any) {
	if c.startHook != nil {
		c.startHook(ctx, t, input)
	}
}

// End fires the end hook if one is set.
func (c Config) End(ctx context.Context, t AnonymousTool, input any, output any) {
	if c.endHook != nil {
		c.endHook(ctx, t, input, output)
	}
}

// Fail fires the error hook if one is set.
func (c Config) Fail(ctx context.Context, t AnonymousTool, input any, err error) {
	if c.errorHook != nil {
		c.errorHook(ctx, t, input, err)
	}
}
