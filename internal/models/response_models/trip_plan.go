package response_models

// Location is a WGS-84 style coordinate pair. The zero value (0,0) marks an
// attraction whose position has not been resolved yet.
type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

func (l Location) IsZero() bool {
	return l.Longitude == 0 && l.Latitude == 0
}

type Attraction struct {
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Location      Location `json:"location"`
	VisitDuration int      `json:"visitDuration"` // minutes
	Description   string   `json:"description"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
	Category      string   `json:"category,omitempty"`
}

const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

type Meal struct {
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	Location    *Location `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
}

type DayPlan struct {
	Date           string       `json:"date"`
	DayIndex       int          `json:"dayIndex"`
	Attractions    []Attraction `json:"attractions"`
	Meals          []Meal       `json:"meals"`
	Transportation string       `json:"transportation"`
	Accommodation  string       `json:"accommodation"`
	Description    string       `json:"description"`
}

// WeatherInfo is populated by the weather integration, not by plan
// generation; it is carried here so the plan stays a single payload.
type WeatherInfo struct {
	Date          string `json:"date"`
	DayWeather    string `json:"dayWeather"`
	NightWeather  string `json:"nightWeather"`
	DayTemp       int    `json:"dayTemp"`
	NightTemp     int    `json:"nightTemp"`
	WindDirection string `json:"winddirection"`
	WindPower     string `json:"windpower"`
}

type TripPlan struct {
	City               string        `json:"city"`
	StartDate          string        `json:"startDate"`
	EndDate            string        `json:"endDate"`
	Days               []DayPlan     `json:"days"`
	WeatherInfo        []WeatherInfo `json:"weatherInfo"`
	OverallSuggestions string        `json:"overallSuggestions"`
}

// Generation result statuses. Anything other than ResultSuccess means the
// caller received a degraded plan and should surface a warning.
const (
	ResultSuccess             = "success"
	ResultFallback            = "fallback"
	ResultFallbackParseFailed = "fallback-parse-failed"
)

type GenerationResult struct {
	Result   string   `json:"result"`
	TripPlan TripPlan `json:"tripPlan"`
}
