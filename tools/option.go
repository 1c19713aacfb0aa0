package tools

import "context"

type Option func(c *Config)

// WithTitle overrides the tool's default title.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.SetTitle(title)
	}
}

// WithDescription overrides the tool's default description.
func WithDescription(desc string) Option {
	return func(c *Config) {
		c.SetDescription(desc)
	}
}

// WithStartHook installs fn to run before every dispatched invocation,
// after the input has been decoded.
func WithStartHook(fn func(context.Context, AnonymousTool, any)) Option {
	return func(c *Config) {
		c.SetStartHook(fn)
	}
}

// WithEndHook installs fn to run after every dispatched invocation with
// the decoded input and the produced output.
func WithEndHook(fn func(context.Context, AnonymousTool, any, any)) Option {
	return func(c *Config) {
		c.SetEndHook(fn)
	}
}

// WithErrorHook installs fn to run when a dispatched input cannot be
// decoded or fails validation.
func WithErrorHook(fn func(context.Context, AnonymousTool, any, error)) Option {
	return func(c *Config) {
		c.SetErrorHook(fn)
	}
}
