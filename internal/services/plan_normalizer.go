package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"miaoyou/internal/models/request_models"
	"miaoyou/internal/models/response_models"
	"miaoyou/pkg/utils"
)

const (
	defaultVisitDurationMinutes = 120
	defaultAttractionCategory   = "景点"

	defaultOverallSuggestions = "根据您的偏好和日程安排，我们为您精心设计了行程。建议提前查看各景点的开放时间，并根据天气情况适当调整行程。"
)

// planDocument is the union of the two response schemas the model is known
// to return. Exactly one of the fields is expected to be set; neither being
// set is the unknown shape.
type planDocument struct {
	TripPlan   *response_models.TripPlan `json:"tripPlan"`
	TravelPlan *legacyTravelPlan         `json:"travel_plan"`
}

type planShape int

const (
	shapeUnknown planShape = iota
	shapeCanonical
	shapeLegacy
)

func (d *planDocument) shape() planShape {
	switch {
	case d.TripPlan != nil:
		return shapeCanonical
	case d.TravelPlan != nil:
		return shapeLegacy
	default:
		return shapeUnknown
	}
}

// legacyTravelPlan mirrors the alternate "travel_plan" schema some
// completions produce instead of the canonical tripPlan shape.
type legacyTravelPlan struct {
	Destination        string      `json:"destination"`
	StartDate          string      `json:"start_date"`
	EndDate            string      `json:"end_date"`
	OverallSuggestions string      `json:"overallSuggestions"`
	Days               []legacyDay `json:"days"`
}

type legacyDay struct {
	Day        int              `json:"day"`
	Date       string           `json:"date"`
	Activities []legacyActivity `json:"activities"`
	Meals      *legacyMeals     `json:"meals"`
}

type legacyActivity struct {
	Type              string                    `json:"type"`
	Name              string                    `json:"name"`
	Description       string                    `json:"description"`
	Address           string                    `json:"address"`
	Location          *response_models.Location `json:"location"`
	SuggestedDuration flexibleHours             `json:"suggested_duration"`
	Tips              string                    `json:"tips"`
}

type legacyMeals struct {
	Breakfast flexibleMeal `json:"breakfast"`
	Lunch     flexibleMeal `json:"lunch"`
	Dinner    flexibleMeal `json:"dinner"`
}

// flexibleMeal accepts either a bare suggestion string or a structured
// {name, description} entry.
type flexibleMeal struct {
	Present     bool
	Name        string
	Description string
}

func (m *flexibleMeal) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.TrimSpace(s) != "" {
			m.Present = true
			m.Description = s
		}
		return nil
	}
	var obj struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// tolerate junk here; the assembler synthesizes the meal later
		return nil
	}
	if obj.Name != "" || obj.Description != "" {
		m.Present = true
		m.Name = obj.Name
		m.Description = obj.Description
	}
	return nil
}

// flexibleHours accepts 2, "2" or "2小时" as a suggested visit duration.
type flexibleHours struct {
	Hours float64
	Valid bool
}

func (h *flexibleHours) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		h.Hours = f
		h.Valid = f > 0
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	if f, ok := leadingFloat(s); ok {
		h.Hours = f
		h.Valid = f > 0
	}
	return nil
}

func leadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	if end == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// NormalizeTripPlan reconciles a recovered response document into the
// canonical TripPlan. Canonical input passes through unchanged; the legacy
// travel_plan shape is translated; an unknown shape is reported as
// ErrPlanMissing so the caller can fall back with a degraded status.
func NormalizeTripPlan(raw json.RawMessage, form request_models.TripFormData, logger *zap.Logger) (*response_models.TripPlan, error) {
	var doc planDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrPlanMissing, err)
	}

	switch doc.shape() {
	case shapeCanonical:
		return doc.TripPlan, nil
	case shapeLegacy:
		logger.Info("translating travel_plan response into canonical shape",
			zap.Int("days", len(doc.TravelPlan.Days)))
		return convertLegacyPlan(doc.TravelPlan, form, logger), nil
	default:
		logger.Warn("response matches no known plan shape")
		return nil, fmt.Errorf("%w: no tripPlan or travel_plan key", utils.ErrPlanMissing)
	}
}

func convertLegacyPlan(tp *legacyTravelPlan, form request_models.TripFormData, logger *zap.Logger) *response_models.TripPlan {
	suggestions := tp.OverallSuggestions
	if suggestions == "" {
		suggestions = defaultOverallSuggestions
	}

	plan := &response_models.TripPlan{
		City:               form.City,
		StartDate:          form.StartDate,
		EndDate:            form.EndDate,
		Days:               make([]response_models.DayPlan, 0, len(tp.Days)),
		WeatherInfo:        []response_models.WeatherInfo{},
		OverallSuggestions: suggestions,
	}

	for i, src := range tp.Days {
		date := src.Date
		if date == "" {
			date = utils.AddDaysISO(form.StartDate, i)
		}
		day := response_models.DayPlan{
			Date:           date,
			DayIndex:       i,
			Description:    fmt.Sprintf("第%d天行程安排", i+1),
			Transportation: form.Transportation,
			Accommodation:  form.Accommodation,
			Attractions:    []response_models.Attraction{},
			Meals:          []response_models.Meal{},
		}

		for _, act := range src.Activities {
			if !isAttractionActivity(act.Type) {
				continue
			}
			day.Attractions = append(day.Attractions, convertLegacyActivity(act, form.City, logger))
		}

		if src.Meals != nil {
			day.Meals = append(day.Meals, convertLegacyMeals(src.Meals)...)
		}

		plan.Days = append(plan.Days, day)
	}

	return plan
}

func isAttractionActivity(activityType string) bool {
	return activityType == defaultAttractionCategory || strings.EqualFold(activityType, "attraction")
}

func convertLegacyActivity(act legacyActivity, city string, logger *zap.Logger) response_models.Attraction {
	address := act.Address
	if address == "" {
		address = city
	}

	// Temporary anchor from the city table; the enrichment pipeline
	// replaces it with a provider-resolved coordinate later.
	location := response_models.Location{}
	if act.Location != nil && !act.Location.IsZero() {
		location = *act.Location
	} else {
		loc, known := GetCityCoordinates(city)
		if !known {
			logger.Warn("city missing from coordinate table, using default reference point",
				zap.String("city", city))
		}
		location = loc
	}

	duration := defaultVisitDurationMinutes
	if act.SuggestedDuration.Valid {
		duration = int(act.SuggestedDuration.Hours * 60)
	}

	description := act.Description
	if description == "" {
		description = fmt.Sprintf("%s是%s的著名景点", act.Name, city)
	}

	category := act.Type
	if category == "" {
		category = defaultAttractionCategory
	}

	return response_models.Attraction{
		Name:          act.Name,
		Address:       address,
		Location:      location,
		VisitDuration: duration,
		Description:   description,
		Category:      category,
	}
}

func convertLegacyMeals(meals *legacyMeals) []response_models.Meal {
	labels := []struct {
		mealType string
		label    string
		src      flexibleMeal
	}{
		{response_models.MealTypeBreakfast, "早餐推荐", meals.Breakfast},
		{response_models.MealTypeLunch, "午餐推荐", meals.Lunch},
		{response_models.MealTypeDinner, "晚餐推荐", meals.Dinner},
	}

	out := make([]response_models.Meal, 0, 3)
	for _, entry := range labels {
		if !entry.src.Present {
			continue
		}
		name := entry.src.Name
		if name == "" {
			name = entry.label
		}
		description := entry.src.Description
		if description == "" {
			description = name
		}
		out = append(out, response_models.Meal{
			Type:        entry.mealType,
			Name:        name,
			Description: description,
		})
	}
	return out
}
