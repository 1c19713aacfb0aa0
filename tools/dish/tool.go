package dish

import (
	"context"
	"fmt"

	"github.com/bububa/foodie-tour/tools"
)

// Input Tool for looking up the iconic dish of a city for a specific meal
// time. The lookup is a fixed table, not a service call.
type Input struct {
	// City The name of the city
	City string `json:"city"`
	// MealTime breakfast, lunch or dinner. Unrecognized values are not
	// rejected, they fall through to the generic dish.
	MealTime MealTime `json:"meal_time"`
}

func NewInput(city string, mealTime MealTime) *Input {
	return &Input{
		City:     city,
		MealTime: mealTime,
	}
}

// Output is the dish name on its own. A bare string keeps a step-output
// reference in a task pipeline usable directly as the next tool's argument.
type Output = string

type Tool struct {
	tools.Config
}

var (
	_ tools.Tool[Input, Output] = (*Tool)(nil)
	_ tools.AnonymousTool       = (*Tool)(nil)
)

func New(opts ...tools.Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("IconicDishTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Gets the iconic dish for a city for a specific meal time")
	}
	return ret
}

// Run returns the iconic dish for the city and meal time. The lookup is
// total: a city or meal time outside the table yields a generic placeholder
// dish, never a failure.
func (t *Tool) Run(_ context.Context, input *Input) Output {
	if dishName, found := cityDishes[input.City][input.MealTime]; found {
		return dishName
	}
	return fmt.Sprintf("Famous %s dish", input.MealTime)
}

// RunAnonymous implements tools.AnonymousTool.
func (t *Tool) RunAnonymous(ctx context.Context, input any) (any, error) {
	in, err := tools.DecodeInput[Input](input)
	if err != nil {
		t.Fail(ctx, t, input, err)
		return nil, err
	}
	t.Start(ctx, t, in)
	out := t.Run(ctx, in)
	t.End(ctx, t, in, out)
	return out, nil
}
