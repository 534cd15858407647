package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"miaoyou/internal/models/request_models"
	"miaoyou/internal/models/response_models"
	"miaoyou/pkg/utils"
)

// AssembleTripPlan turns a normalized plan into a complete itinerary:
// trip-level fields are backfilled from the request, the day list is fitted
// to the requested length, every day gets dates, meals and defaults, and
// attraction positions are resolved through the POI pipeline.
func AssembleTripPlan(ctx context.Context, plan *response_models.TripPlan, form request_models.TripFormData, pois POIServiceInterface, logger *zap.Logger) *response_models.TripPlan {
	if plan.City == "" {
		plan.City = form.City
	}
	if plan.StartDate == "" {
		plan.StartDate = form.StartDate
	}
	if plan.EndDate == "" {
		if form.EndDate != "" {
			plan.EndDate = form.EndDate
		} else {
			plan.EndDate = utils.AddDaysISO(plan.StartDate, form.TravelDays-1)
		}
	}
	if plan.OverallSuggestions == "" {
		plan.OverallSuggestions = defaultOverallSuggestions
	}
	if plan.WeatherInfo == nil {
		plan.WeatherInfo = []response_models.WeatherInfo{}
	}
	if plan.Days == nil {
		plan.Days = []response_models.DayPlan{}
	}

	// source dayIndex values are not trusted; days keep their document
	// order and are renumbered by position below
	plan.Days = fitDayCount(plan.Days, form.TravelDays, logger)

	for i := range plan.Days {
		day := &plan.Days[i]
		day.DayIndex = i
		if day.Date == "" {
			day.Date = utils.AddDaysISO(plan.StartDate, i)
		}
		if day.Description == "" {
			day.Description = fmt.Sprintf("第%d天行程安排", i+1)
		}
		if day.Transportation == "" {
			day.Transportation = form.Transportation
		}
		if day.Accommodation == "" {
			day.Accommodation = form.Accommodation
		}
		if day.Attractions == nil {
			day.Attractions = []response_models.Attraction{}
		}
		for j := range day.Attractions {
			coerceAttraction(&day.Attractions[j], plan.City)
		}
		day.Meals = ensureMeals(day.Meals, i+1)
	}

	enrichAttractions(ctx, plan, pois, logger)

	return plan
}

// fitDayCount pads or trims the day list so its length matches the
// requested number of travel days.
func fitDayCount(days []response_models.DayPlan, travelDays int, logger *zap.Logger) []response_models.DayPlan {
	switch {
	case len(days) > travelDays:
		logger.Warn("plan has more days than requested, trimming",
			zap.Int("got", len(days)),
			zap.Int("want", travelDays))
		return days[:travelDays]
	case len(days) < travelDays:
		logger.Warn("plan has fewer days than requested, padding",
			zap.Int("got", len(days)),
			zap.Int("want", travelDays))
		for len(days) < travelDays {
			days = append(days, response_models.DayPlan{
				DayIndex:    len(days),
				Attractions: []response_models.Attraction{},
				Meals:       []response_models.Meal{},
			})
		}
		return days
	default:
		return days
	}
}

func coerceAttraction(a *response_models.Attraction, city string) {
	if a.VisitDuration <= 0 {
		a.VisitDuration = defaultVisitDurationMinutes
	}
	if a.Category == "" {
		a.Category = defaultAttractionCategory
	}
	if a.Address == "" {
		a.Address = city
	}
	if a.Description == "" {
		a.Description = fmt.Sprintf("%s是%s的著名景点", a.Name, city)
	}
}

// ensureMeals guarantees exactly one breakfast, lunch and dinner per day.
// Duplicates keep the first occurrence, snacks pass through untouched, and
// missing staples are synthesized with day-numbered placeholders.
func ensureMeals(meals []response_models.Meal, dayNumber int) []response_models.Meal {
	staples := []struct {
		mealType    string
		name        string
		description string
	}{
		{
			response_models.MealTypeBreakfast,
			fmt.Sprintf("第%d天 当地特色早餐", dayNumber),
			fmt.Sprintf("第%d天 推荐尝试当地的早餐小吃，开启美好的一天", dayNumber),
		},
		{
			response_models.MealTypeLunch,
			fmt.Sprintf("第%d天 午餐推荐", dayNumber),
			fmt.Sprintf("第%d天 在游览景点附近的餐厅享用午餐，补充能量", dayNumber),
		},
		{
			response_models.MealTypeDinner,
			fmt.Sprintf("第%d天 晚餐推荐", dayNumber),
			fmt.Sprintf("第%d天 品尝当地特色美食，结束一天的行程", dayNumber),
		},
	}

	seen := make(map[string]response_models.Meal, 3)
	var snacks []response_models.Meal
	for _, m := range meals {
		switch m.Type {
		case response_models.MealTypeBreakfast, response_models.MealTypeLunch, response_models.MealTypeDinner:
			if _, ok := seen[m.Type]; !ok {
				seen[m.Type] = m
			}
		default:
			snacks = append(snacks, m)
		}
	}

	out := make([]response_models.Meal, 0, len(staples)+len(snacks))
	for _, staple := range staples {
		if m, ok := seen[staple.mealType]; ok {
			out = append(out, m)
			continue
		}
		out = append(out, response_models.Meal{
			Type:        staple.mealType,
			Name:        staple.name,
			Description: staple.description,
		})
	}
	return append(out, snacks...)
}

// enrichAttractions resolves every attraction in the plan through one batch
// POI lookup and copies the resolved fields back positionally.
func enrichAttractions(ctx context.Context, plan *response_models.TripPlan, pois POIServiceInterface, logger *zap.Logger) {
	var queries []request_models.AttractionQuery
	type slot struct{ day, idx int }
	var slots []slot
	for d := range plan.Days {
		for a := range plan.Days[d].Attractions {
			queries = append(queries, request_models.AttractionQuery{
				Name: plan.Days[d].Attractions[a].Name,
				City: plan.City,
			})
			slots = append(slots, slot{day: d, idx: a})
		}
	}
	if len(queries) == 0 {
		return
	}

	logger.Info("enriching attractions",
		zap.String("city", plan.City),
		zap.Int("count", len(queries)))

	results := pois.BatchGetAttractionPOIInfo(ctx, queries)
	for i, r := range results {
		target := &plan.Days[slots[i].day].Attractions[slots[i].idx]
		if !r.Location.IsZero() {
			target.Location = r.Location
		}
		if r.Address != "" {
			target.Address = r.Address
		}
		if r.Rating > 0 {
			target.Rating = r.Rating
		}
		if r.Category != "" {
			target.Category = r.Category
		}
	}
}
