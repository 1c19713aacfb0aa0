// Package tour wires the weather, dish and restaurant tools into the
// declarative one day foodie tour pipeline and drives its execution on the
// external agent platform.
package tour

import (
	"github.com/bububa/foodie-tour/platform"
	"github.com/bububa/foodie-tour/tools"
	"github.com/bububa/foodie-tour/tools/dish"
	"github.com/bububa/foodie-tour/tools/restaurants"
	"github.com/bububa/foodie-tour/tools/weather"
)

// Tool names the platform dispatches on. Pipeline steps and the dispatch
// registry must agree on them.
const (
	WeatherToolName    = "getWeatherDetails"
	DishToolName       = "getIconicDish"
	RestaurantToolName = "findTopRestaurants"
)

const (
	AgentName    = "AI Foodie Tour Agent"
	AgentAbout   = "Foodie Tour Generator Agent"
	DefaultModel = "gpt-4o"
	TaskName     = "Gets One Day Foodie Tour of the City"
)

// Definitions returns the schemas the three tools are registered under.
func Definitions() []platform.ToolDefinition {
	return []platform.ToolDefinition{
		{
			Name:        WeatherToolName,
			Description: "Gets weather details of a city",
			Parameters: []platform.Parameter{
				{Name: "city", Type: "string", Description: "Name of the city", Required: true},
			},
		},
		{
			Name:        DishToolName,
			Description: "Gets the iconic dish for a city for a specific meal time",
			Parameters: []platform.Parameter{
				{Name: "city", Type: "string", Description: "The name of the city"},
				{Name: "meal_time", Type: "string", Description: "The meal time, breakfast, lunch or dinner"},
			},
		},
		{
			Name:        RestaurantToolName,
			Description: "Gets the top restaurants serving a dish in a city",
			Parameters: []platform.Parameter{
				{Name: "city", Type: "string", Description: "The city in which restaurants should be searched", Required: true},
				{Name: "dishName", Type: "string", Description: "The dish to be searched for", Required: true},
			},
		},
	}
}

// NewRegistry builds the dispatch table the tour's tool callbacks are
// answered through.
func NewRegistry(forecast *weather.Forecast, finder *restaurants.Finder, dishes *dish.Tool) *tools.Registry {
	return tools.NewRegistry().
		Register(WeatherToolName, forecast).
		Register(DishToolName, dishes).
		Register(RestaurantToolName, finder)
}

// Task returns the fixed seven step pipeline: one weather lookup, a dish
// per meal time, and a restaurant search fed by each dish step's output.
func Task() platform.Task {
	return platform.Task{
		Name:         TaskName,
		InheritTools: true,
		Main: []platform.Step{
			{Tool: WeatherToolName, Arguments: platform.Arguments{
				{Key: "city", Value: platform.Input("city")},
			}},
			{Tool: DishToolName, Name: "breakfast_dish", Arguments: platform.Arguments{
				{Key: "city", Value: platform.Input("city")},
				{Key: "meal_time", Value: platform.String(dish.Breakfast)},
			}},
			{Tool: DishToolName, Name: "lunch_dish", Arguments: platform.Arguments{
				{Key: "city", Value: platform.Input("city")},
				{Key: "meal_time", Value: platform.String(dish.Lunch)},
			}},
			{Tool: DishToolName, Name: "dinner_dish", Arguments: platform.Arguments{
				{Key: "city", Value: platform.Input("city")},
				{Key: "meal_time", Value: platform.String(dish.Dinner)},
			}},
			{Tool: RestaurantToolName, Name: "breakfast_spots", Arguments: platform.Arguments{
				{Key: "city", Value: platform.Input("city")},
				{Key: "dishName", Value: platform.StepOutput("breakfast_dish")},
			}},
			{Tool: RestaurantToolName, Name: "lunch_spots", Arguments: platform.Arguments{
				{Key: "city", Value: platform.Input("city")},
				{Key: "dishName", Value: platform.StepOutput("lunch_dish")},
			}},
			{Tool: RestaurantToolName, Name: "dinner_spots", Arguments: platform.Arguments{
				{Key: "city", Value: platform.Input("city")},
				{Key: "dishName", Value: platform.StepOutput("dinner_dish")},
			}},
		},
	}
}
