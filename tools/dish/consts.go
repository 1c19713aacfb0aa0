package dish

// MealTime of a day the tour plans a dish for
type MealTime = string

const (
	Breakfast MealTime = "breakfast"
	Lunch     MealTime = "lunch"
	Dinner    MealTime = "dinner"
)

var cityDishes = map[string]map[MealTime]string{
	"Hyderabad": {
		Breakfast: "Pesarattu",
		Lunch:     "Hyderabadi Biryani",
		Dinner:    "Haleem",
	},
	"Mumbai": {
		Breakfast: "Vada Pav",
		Lunch:     "Bombay Sandwich",
		Dinner:    "Pav Bhaji",
	},
	"Delhi": {
		Breakfast: "Chole Bhature",
		Lunch:     "Butter Chicken",
		Dinner:    "Rajma Chawal",
	},
	"Chennai": {
		Breakfast: "Idli",
		Lunch:     "Sambar Rice",
		Dinner:    "Dosa",
	},
}
