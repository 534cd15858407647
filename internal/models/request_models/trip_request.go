package request_models

// TripFormData is the structured request produced by the planner form.
// StartDate and EndDate are ISO dates (YYYY-MM-DD).
type TripFormData struct {
	City           string   `json:"city" binding:"required"`
	StartDate      string   `json:"startDate" binding:"required"`
	EndDate        string   `json:"endDate"`
	TravelDays     int      `json:"travelDays" binding:"required"`
	Transportation string   `json:"transportation"`
	Accommodation  string   `json:"accommodation"`
	Preferences    []string `json:"preferences"`
	FreeTextInput  string   `json:"freeTextInput"`
}

// AttractionQuery pairs an attraction name with the city it should be
// resolved in.
type AttractionQuery struct {
	Name string `json:"name" binding:"required"`
	City string `json:"city" binding:"required"`
}

type BatchPoiRequest struct {
	Attractions []AttractionQuery `json:"attractions" binding:"required"`
}
