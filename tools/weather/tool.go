package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/bububa/foodie-tour/tools"
)

// DefaultBaseURL is the forecast service endpoint used unless overridden.
const DefaultBaseURL = "http://api.openweathermap.org"

// Meal window hour bounds. An entry belongs to a window when its local hour
// is within [start, end). Hour 17 and hour 23 fall in no window.
const (
	morningStartHour = 7
	morningEndHour   = 12
	lunchStartHour   = 12
	lunchEndHour     = 17
	eveningStartHour = 18
	eveningEndHour   = 23
)

// Input Schema for input to a tool for fetching the weather forecast of a
// city bucketed into morning, lunch and evening windows of the next 24
// hours.
type Input struct {
	// City Name of the city
	City string `json:"city" validate:"required"`
}

func NewInput(city string) *Input {
	return &Input{City: city}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Slot is the forecast summary for one meal window.
type Slot struct {
	// TemperatureCelsius Rounded temperature in degrees Celsius
	TemperatureCelsius int `json:"temperature_celsius"`
	// Condition Short weather condition description
	Condition string `json:"condition"`
}

// Output represents the output of the weather forecast tool. A zero Output
// means the service answered with a non-200 body status: no data, not a
// failure. An Output with Error set means the lookup itself failed.
type Output struct {
	// City Resolved name of the city
	City string `json:"city,omitempty"`
	// Morning Forecast for the morning window
	Morning *Slot `json:"morning,omitempty"`
	// Lunch Forecast for the lunch window
	Lunch *Slot `json:"lunch,omitempty"`
	// Evening Forecast for the evening window
	Evening *Slot `json:"evening,omitempty"`
	// Error Failure description when the lookup failed
	Error string `json:"error,omitempty"`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// statusCode is the "cod" field of a forecast body. The service emits it as
// a string on forecast replies and as a bare number on some error replies.
// Both forms normalize to the decimal string.
type statusCode string

func (c *statusCode) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*c = statusCode(asString)
		return nil
	}
	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err != nil {
		return fmt.Errorf("unexpected cod value %s", string(data))
	}
	*c = statusCode(asNumber.String())
	return nil
}

// forecastResponse represents the forecast service reply.
type forecastResponse struct {
	Cod  statusCode      `json:"cod"`
	City forecastCity    `json:"city"`
	List []forecastEntry `json:"list"`
}

type forecastCity struct {
	Name string `json:"name"`
}

type forecastEntry struct {
	Dt      int64               `json:"dt"`
	Main    forecastMain        `json:"main"`
	Weather []forecastCondition `json:"weather"`
}

type forecastMain struct {
	Temp float64 `json:"temp"`
}

type forecastCondition struct {
	Description string `json:"description"`
}

type Config struct {
	tools.Config
	apiKey     string
	baseURL    string
	httpClient *http.Client
	clock      func() time.Time
}

// Forecast is a tool for fetching tomorrow's meal-time weather of a city.
type Forecast struct {
	Config
}

var (
	_ tools.Tool[Input, *Output] = (*Forecast)(nil)
	_ tools.AnonymousTool        = (*Forecast)(nil)
)

func New(opts ...Option) *Forecast {
	ret := new(Forecast)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("WeatherForecastTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Gets weather details of a city")
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	if ret.clock == nil {
		ret.clock = time.Now
	}
	return ret
}

// Run fetches the next-24h forecast for input.City and reduces it to one
// slot per meal window, first matching entry wins. It never returns an
// error: failures come back in Output.Error.
func (t *Forecast) Run(ctx context.Context, input *Input) *Output {
	forecast, err := t.fetchForecast(ctx, input.City)
	if err != nil {
		return &Output{Error: err.Error()}
	}
	if forecast.Cod != "200" {
		return new(Output)
	}
	return t.summarize(forecast)
}

// RunAnonymous implements tools.AnonymousTool.
func (t *Forecast) RunAnonymous(ctx context.Context, input any) (any, error) {
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

// fetchForecast queries the forecast service and returns the parsed reply.
func (t *Forecast) fetchForecast(ctx context.Context, city string) (*forecastResponse, error) {
	values := url.Values{}
	values.Set("appid", t.apiKey)
	values.Set("q", city)
	values.Set("units", "metric")
	forecastURL := fmt.Sprintf("%s/data/2.5/forecast?%s", t.baseURL, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, forecastURL, nil)
	if err != nil {
		return nil, fmt.Errorf("unexpected error: %v", err)
	}

	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error connecting to weather service: %v", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error connecting to weather service: unexpected status %d", httpResp.StatusCode)
	}

	var forecast forecastResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("unexpected data format from weather service: %v", err)
	}
	return &forecast, nil
}

// summarize buckets forecast entries into the meal windows of the next 24
// hours, strictly after now and strictly before now+24h.
func (t *Forecast) summarize(forecast *forecastResponse) *Output {
	if forecast.City.Name == "" {
		return &Output{Error: "unexpected data format from weather service: missing city name"}
	}
	now := t.clock()
	horizon := now.Add(24 * time.Hour)
	var morning, lunch, evening *forecastEntry
	for idx := range forecast.List {
		entry := &forecast.List[idx]
		entryTime := time.Unix(entry.Dt, 0)
		if !entryTime.After(now) || !entryTime.Before(horizon) {
			continue
		}
		hour := entryTime.Hour()
		switch {
		case hour >= morningStartHour && hour < morningEndHour && morning == nil:
			morning = entry
		case hour >= lunchStartHour && hour < lunchEndHour && lunch == nil:
			lunch = entry
		case hour >= eveningStartHour && hour < eveningEndHour && evening == nil:
			evening = entry
		}
	}
	out := &Output{City: forecast.City.Name}
	for _, window := range []struct {
		entry *forecastEntry
		slot  **Slot
	}{
		{morning, &out.Morning},
		{lunch, &out.Lunch},
		{evening, &out.Evening},
	} {
		slot, err := slotFromEntry(window.entry)
		if err != nil {
			return &Output{Error: fmt.Sprintf("unexpected data format from weather service: %v", err)}
		}
		*window.slot = slot
	}
	return out
}

// slotFromEntry reduces a selected forecast entry to its slot summary.
func slotFromEntry(entry *forecastEntry) (*Slot, error) {
	if entry == nil {
		return nil, nil
	}
	if len(entry.Weather) == 0 {
		return nil, errors.New("missing weather condition")
	}
	return &Slot{
		TemperatureCelsius: int(math.Round(entry.Main.Temp)),
		Condition:          entry.Weather[0].Description,
	}, nil
}
