package restaurants

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"googlemaps.github.io/maps"
)

func startPlacesServer(t *testing.T, queries *[]string, body string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/maps/api/place/textsearch/json", func(w http.ResponseWriter, r *http.Request) {
		if queries != nil {
			*queries = append(*queries, r.URL.Query().Get("query"))
		}
		if got := r.URL.Query().Get("language"); got != "en" {
			t.Errorf("Expect language en, but got %s", got)
		}
		io.WriteString(w, body)
	})
	return httptest.NewServer(mux)
}

func placesClient(t *testing.T, srv *httptest.Server) *maps.Client {
	t.Helper()
	client, err := maps.NewClient(maps.WithAPIKey("test-key"), maps.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("Error building places client: %v", err)
	}
	return client
}

func TestFinderTopResults(t *testing.T) {
	mockBody := `{
		"html_attributions": [],
		"results": [
			{"name": "Murugan Idli Shop", "formatted_address": "77 G.N.T. Road, Chennai", "rating": 4.6},
			{"name": "Ratna Cafe", "formatted_address": "255 Triplicane High Road, Chennai", "rating": 4.3},
			{"name": "Mami Tiffin Stall", "formatted_address": "1 Kutchery Road, Chennai", "rating": 4.2},
			{"name": "Fourth Place", "formatted_address": "4 Fourth Street, Chennai", "rating": 4.0},
			{"name": "Fifth Place", "formatted_address": "5 Fifth Street, Chennai", "rating": 3.9}
		],
		"status": "OK"
	}`
	var queries []string
	srv := startPlacesServer(t, &queries, mockBody)
	defer srv.Close()
	tool := New(WithMapsClient(placesClient(t, srv)))
	result := tool.Run(context.Background(), NewInput("Chennai", "Idli"))
	if result.Error != "" {
		t.Fatalf("Expect no error, but got %s", result.Error)
	}
	if len(result.Restaurants) != 3 {
		t.Fatalf("Expect 3 restaurants, but got %d", len(result.Restaurants))
	}
	expectNames := []string{"Murugan Idli Shop", "Ratna Cafe", "Mami Tiffin Stall"}
	for idx, restaurant := range result.Restaurants {
		if restaurant.Name != expectNames[idx] {
			t.Errorf("Expect name %s, but got %s", expectNames[idx], restaurant.Name)
		}
	}
	first := result.Restaurants[0]
	if rating, ok := first.Rating.(float32); !ok || rating != 4.6 {
		t.Errorf("Expect rating 4.6, but got %v", first.Rating)
	}
	if first.Address != "77 G.N.T. Road, Chennai" {
		t.Errorf("Expect address 77 G.N.T. Road, Chennai, but got %s", first.Address)
	}
	if len(queries) != 1 || queries[0] != "Best authentic Idli restaurants in Chennai" {
		t.Errorf("Expect places query for Idli in Chennai, but got %v", queries)
	}
}

func TestFinderMissingFields(t *testing.T) {
	mockBody := `{
		"html_attributions": [],
		"results": [
			{"name": "Unrated Corner", "formatted_address": "9 Side Street, Mumbai"},
			{"name": "Hidden Kitchen", "rating": 4.1}
		],
		"status": "OK"
	}`
	srv := startPlacesServer(t, nil, mockBody)
	defer srv.Close()
	tool := New(WithMapsClient(placesClient(t, srv)))
	result := tool.Run(context.Background(), NewInput("Mumbai", "Vada Pav"))
	if result.Error != "" {
		t.Fatalf("Expect no error, but got %s", result.Error)
	}
	if len(result.Restaurants) != 2 {
		t.Fatalf("Expect 2 restaurants, but got %d", len(result.Restaurants))
	}
	if rating := result.Restaurants[0].Rating; rating != RatingNotAvailable {
		t.Errorf("Expect rating %s, but got %v", RatingNotAvailable, rating)
	}
	if address := result.Restaurants[1].Address; address != AddressNotAvailable {
		t.Errorf("Expect address %s, but got %s", AddressNotAvailable, address)
	}
}

func TestFinderNoResults(t *testing.T) {
	mockBody := `{"html_attributions": [], "results": [], "status": "ZERO_RESULTS"}`
	srv := startPlacesServer(t, nil, mockBody)
	defer srv.Close()
	tool := New(WithMapsClient(placesClient(t, srv)))
	result := tool.Run(context.Background(), NewInput("Atlantis", "Haleem"))
	if len(result.Restaurants) != 0 {
		t.Fatalf("Expect no restaurants, but got %d", len(result.Restaurants))
	}
	if !strings.Contains(result.Error, "Haleem") || !strings.Contains(result.Error, "Atlantis") {
		t.Errorf("Expect error naming the dish and city, but got %s", result.Error)
	}
}

func TestFinderAPIError(t *testing.T) {
	mockBody := `{"html_attributions": [], "results": [], "status": "REQUEST_DENIED", "error_message": "The provided API key is invalid"}`
	srv := startPlacesServer(t, nil, mockBody)
	defer srv.Close()
	tool := New(WithMapsClient(placesClient(t, srv)))
	result := tool.Run(context.Background(), NewInput("Delhi", "Butter Chicken"))
	if !strings.Contains(result.Error, "unexpected error from the maps service") {
		t.Errorf("Expect maps service error, but got %s", result.Error)
	}
}

func TestFinderMissingCredentials(t *testing.T) {
	tool := New()
	result := tool.Run(context.Background(), NewInput("Delhi", "Butter Chicken"))
	if !strings.Contains(result.Error, "unexpected error from the maps service") {
		t.Errorf("Expect credential error, but got %s", result.Error)
	}
}

func ExampleQuery() {
	fmt.Println(Query("Pesarattu", "Hyderabad"))
	// Output:
	// Best authentic Pesarattu restaurants in Hyderabad
}
