package restaurants

import (
	"context"
	"encoding/json"
	"fmt"

	"googlemaps.github.io/maps"

	"github.com/bububa/foodie-tour/tools"
)

const (
	// AddressNotAvailable fills in for places reported without an address.
	AddressNotAvailable = "Address not available"
	// RatingNotAvailable fills in for unrated places.
	RatingNotAvailable = "N/A"
)

// Input Schema for input to a tool for finding the top restaurants serving
// a dish in a city through the Google Maps Places text search.
type Input struct {
	// City The city in which restaurants should be searched
	City string `json:"city" validate:"required"`
	// DishName The dish to be searched for
	DishName string `json:"dishName" validate:"required"`
}

func NewInput(city, dishName string) *Input {
	return &Input{
		City:     city,
		DishName: dishName,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Restaurant is a single place hit reduced to presentation fields.
type Restaurant struct {
	// Name The name of the place
	Name string `json:"name"`
	// Rating The place rating, or "N/A" for unrated places
	Rating any `json:"rating"`
	// Address The formatted address of the place
	Address string `json:"address"`
}

// Output represents the output of the restaurant finder tool. Restaurants
// and Error are mutually exclusive.
type Output struct {
	// Restaurants Top places serving the dish, best first
	Restaurants []Restaurant `json:"restaurants,omitempty"`
	// Error Failure description when the search failed
	Error string `json:"error,omitempty"`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Query returns the free text places query for a dish in a city.
func Query(dishName, city string) string {
	return fmt.Sprintf("Best authentic %s restaurants in %s", dishName, city)
}

type Config struct {
	tools.Config
	apiKey     string
	language   string
	maxResults int
	client     *maps.Client
}

// Finder is a tool for finding the top restaurants serving a dish in a
// city.
type Finder struct {
	Config
}

var (
	_ tools.Tool[Input, *Output] = (*Finder)(nil)
	_ tools.AnonymousTool        = (*Finder)(nil)
)

func New(opts ...Option) *Finder {
	ret := new(Finder)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("RestaurantFinderTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Gets the top restaurants serving a dish in a city")
	}
	if ret.language == "" {
		ret.language = "en"
	}
	if ret.maxResults == 0 {
		ret.maxResults = 3
	}
	return ret
}

// Run searches for restaurants serving input.DishName in input.City and
// keeps at most the top maxResults hits in ranking order. It never returns
// an error: failures come back in Output.Error.
func (t *Finder) Run(ctx context.Context, input *Input) *Output {
	client := t.client
	if client == nil {
		// Client construction stays inside the never-fail envelope so a
		// missing key surfaces as a result error, not a crash.
		var err error
		if client, err = maps.NewClient(maps.WithAPIKey(t.apiKey)); err != nil {
			return &Output{Error: fmt.Sprintf("unexpected error from the maps service: %v", err)}
		}
	}
	resp, err := client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    Query(input.DishName, input.City),
		Language: t.language,
	})
	if err != nil {
		return &Output{Error: fmt.Sprintf("unexpected error from the maps service: %v", err)}
	}
	if len(resp.Results) == 0 {
		return &Output{Error: fmt.Sprintf("no results found for %q in %s", input.DishName, input.City)}
	}
	results := resp.Results
	if len(results) > t.maxResults {
		results = results[:t.maxResults]
	}
	out := &Output{Restaurants: make([]Restaurant, 0, len(results))}
	for _, place := range results {
		restaurant := Restaurant{
			Name:    place.Name,
			Rating:  RatingNotAvailable,
			Address: AddressNotAvailable,
		}
		if place.Rating > 0 {
			restaurant.Rating = place.Rating
		}
		if place.FormattedAddress != "" {
			restaurant.Address = place.FormattedAddress
		}
		out.Restaurants = append(out.Restaurants, restaurant)
	}
	return out
}

// RunAnonymous implements tools.AnonymousTool.
func (t *Finder) RunAnonymous(ctx context.Context, input any) (any, error) {
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
