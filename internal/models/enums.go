package models

// DayOfWeek is one of the seven English weekday names, Monday first.
type DayOfWeek string

const (
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
	Sunday    DayOfWeek = "Sunday"
)

// DaysOfWeek lists the valid days in calendar order.
var DaysOfWeek = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Valid reports whether d is one of DaysOfWeek.
func (d DayOfWeek) Valid() bool {
	for _, day := range DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// MealType is the slot of the day a meal plan item fills.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// Valid reports whether m is a known meal type.
func (m MealType) Valid() bool {
	switch m {
	case Breakfast, Lunch, Dinner, Snack:
		return true
	}
	return false
}

// Units accepted for recipe ingredient quantities.
var Units = map[string]bool{
	"g": true, "kg": true, "mg": true,
	"ml": true, "l": true,
	"tsp": true, "tbsp": true, "cup": true,
	"oz": true, "lb": true,
	"piece": true, "slice": true, "clove": true, "pinch": true,
}

// ValidUnit reports whether unit is in Units.
func ValidUnit(unit string) bool {
	return Units[unit]
}
