package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

type ITool interface {
	SetTitle(string)
	Title() string
	SetDescription(string)
	Description() string
	SetStartHook(fn func(context.Context, AnonymousTool, any))
	SetEndHook(fn func(context.Context, AnonymousTool, any, any))
	SetErrorHook(fn func(context.Context, AnonymousTool, any, error))
}

// Tool is a typed tool. Run never returns an error: execution failures are
// carried inside the output value so the caller always receives a
// well-formed result it can hand back to the agent platform.
type Tool[I any, O any] interface {
	ITool
	Run(context.Context, *I) O
}

// AnonymousTool is the untyped shape a dispatch table invokes tools
// through. The error return covers undecodable or invalid input only,
// never execution failure.
type AnonymousTool interface {
	ITool
	RunAnonymous(context.Context, any) (any, error)
}

var validate = validator.New()

// DecodeInput coerces a dispatch argument into *I and validates it. It
// accepts a typed value, raw JSON, or any JSON-compatible value such as a
// decoded map.
func DecodeInput[I any](input any) (*I, error) {
	var ret *I
	switch v := input.(type) {
	case nil:
		return nil, errors.New("invalid tool input: nil")
	case *I:
		ret = v
	case I:
		ret = &v
	case json.RawMessage:
		ret = new(I)
		if err := json.Unmarshal(v, ret); err != nil {
			return nil, fmt.Errorf("invalid tool input: %w", err)
		}
	case []byte:
		ret = new(I)
		if err := json.Unmarshal(v, ret); err != nil {
			return nil, fmt.Errorf("invalid tool input: %w", err)
		}
	default:
		bs, err := json.Marshal(input)
		if err != nil {
			return nil, fmt.Errorf("invalid tool input: %w", err)
		}
		ret = new(I)
		if err := json.Unmarshal(bs, ret); err != nil {
			return nil, fmt.Errorf("invalid tool input: %w", err)
		}
	}
	if err := validate.Struct(ret); err != nil {
		return nil, fmt.Errorf("invalid tool input: %w", err)
	}
	return ret, nil
}
