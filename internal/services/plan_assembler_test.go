package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"miaoyou/internal/infra"
	"miaoyou/internal/models/request_models"
	"miaoyou/internal/models/response_models"
)

// fakePOIService resolves every query deterministically so enrichment can be
// asserted positionally.
type fakePOIService struct {
	batchCalls [][]request_models.AttractionQuery
}

func (f *fakePOIService) BatchGetAttractionPOIInfo(ctx context.Context, queries []request_models.AttractionQuery) []response_models.PoiQueryResult {
	f.batchCalls = append(f.batchCalls, queries)
	results := make([]response_models.PoiQueryResult, len(queries))
	for i, q := range queries {
		results[i] = response_models.PoiQueryResult{
			Name:     q.Name,
			Address:  fmt.Sprintf("%s市%s路%d号", q.City, q.Name, i+1),
			Location: response_models.Location{Longitude: 116 + float64(i)*0.01, Latitude: 39 + float64(i)*0.01},
			Rating:   4.5,
			Category: "景点",
		}
	}
	return results
}

func (f *fakePOIService) GetAttractionPOIInfo(ctx context.Context, name, city string) response_models.PoiQueryResult {
	return f.BatchGetAttractionPOIInfo(ctx, []request_models.AttractionQuery{{Name: name, City: city}})[0]
}

func (f *fakePOIService) SearchPOIByKeyword(ctx context.Context, keyword, city string) (*infra.AMapSearchResponse, error) {
	return &infra.AMapSearchResponse{Status: infra.AMapStatusOK}, nil
}

func (f *fakePOIService) GetPOIByID(ctx context.Context, id string) (*infra.AMapDetailResponse, error) {
	return &infra.AMapDetailResponse{Status: infra.AMapStatusOK}, nil
}

func TestAssembleTripPlanBackfillsAndRenumbers(t *testing.T) {
	form := testForm()
	plan := &response_models.TripPlan{
		Days: []response_models.DayPlan{
			{DayIndex: 7, Attractions: []response_models.Attraction{{Name: "故宫"}}},
			{DayIndex: 2, Attractions: []response_models.Attraction{{Name: "颐和园"}}},
		},
	}

	out := AssembleTripPlan(context.Background(), plan, form, &fakePOIService{}, zap.NewNop())

	assert.Equal(t, "北京", out.City)
	assert.Equal(t, "2024-06-01", out.StartDate)
	assert.Equal(t, "2024-06-03", out.EndDate)
	assert.NotEmpty(t, out.OverallSuggestions)

	require.Len(t, out.Days, 3, "days are padded to the requested length")
	assert.Equal(t, "故宫", out.Days[0].Attractions[0].Name, "document order wins over source day indices")
	assert.Equal(t, "颐和园", out.Days[1].Attractions[0].Name)

	for i, day := range out.Days {
		assert.Equal(t, i, day.DayIndex)
		assert.Equal(t, "2024-06-0"+string(rune('1'+i)), day.Date)
		assert.Equal(t, "地铁", day.Transportation)
		assert.Equal(t, "市中心酒店", day.Accommodation)
		assert.NotEmpty(t, day.Description)
		assert.NotNil(t, day.Attractions)
	}
}

func TestAssembleTripPlanTrimsExtraDays(t *testing.T) {
	form := testForm()
	form.TravelDays = 1
	plan := &response_models.TripPlan{
		Days: []response_models.DayPlan{
			{DayIndex: 0}, {DayIndex: 1}, {DayIndex: 2},
		},
	}

	out := AssembleTripPlan(context.Background(), plan, form, &fakePOIService{}, zap.NewNop())

	require.Len(t, out.Days, 1)
}

func TestAssembleTripPlanSynthesizesMissingMeals(t *testing.T) {
	form := testForm()
	form.TravelDays = 1
	plan := &response_models.TripPlan{
		Days: []response_models.DayPlan{{
			DayIndex: 0,
			Meals: []response_models.Meal{
				{Type: response_models.MealTypeLunch, Name: "烤鸭店"},
				{Type: response_models.MealTypeLunch, Name: "第二家午餐"},
				{Type: response_models.MealTypeSnack, Name: "糖葫芦"},
			},
		}},
	}

	out := AssembleTripPlan(context.Background(), plan, form, &fakePOIService{}, zap.NewNop())

	meals := out.Days[0].Meals
	require.Len(t, meals, 4)
	assert.Equal(t, response_models.MealTypeBreakfast, meals[0].Type)
	assert.Contains(t, meals[0].Name, "第1天")
	assert.Equal(t, "烤鸭店", meals[1].Name, "first lunch wins over the duplicate")
	assert.Equal(t, response_models.MealTypeDinner, meals[2].Type)
	assert.Contains(t, meals[2].Description, "第1天")
	assert.Equal(t, "糖葫芦", meals[3].Name, "snacks pass through")
}

func TestAssembleTripPlanEnrichesAttractionsPositionally(t *testing.T) {
	form := testForm()
	form.TravelDays = 2
	plan := &response_models.TripPlan{
		Days: []response_models.DayPlan{
			{DayIndex: 0, Attractions: []response_models.Attraction{{Name: "天坛"}, {Name: "前门大街"}}},
			{DayIndex: 1, Attractions: []response_models.Attraction{{Name: "雍和宫"}}},
		},
	}
	pois := &fakePOIService{}

	out := AssembleTripPlan(context.Background(), plan, form, pois, zap.NewNop())

	require.Len(t, pois.batchCalls, 1, "all attractions go through a single batch")
	require.Len(t, pois.batchCalls[0], 3)
	assert.Equal(t, "天坛", pois.batchCalls[0][0].Name)
	assert.Equal(t, "北京", pois.batchCalls[0][0].City)

	assert.InDelta(t, 116.00, out.Days[0].Attractions[0].Location.Longitude, 0.001)
	assert.InDelta(t, 116.01, out.Days[0].Attractions[1].Location.Longitude, 0.001)
	assert.InDelta(t, 116.02, out.Days[1].Attractions[0].Location.Longitude, 0.001)
	assert.Equal(t, 4.5, out.Days[0].Attractions[0].Rating)
	assert.Contains(t, out.Days[0].Attractions[0].Address, "天坛")
}

func TestAssembleTripPlanFillsAttractionDefaults(t *testing.T) {
	form := testForm()
	form.TravelDays = 1
	plan := &response_models.TripPlan{
		Days: []response_models.DayPlan{{
			DayIndex:    0,
			Attractions: []response_models.Attraction{{Name: "某景点"}},
		}},
	}

	out := AssembleTripPlan(context.Background(), plan, form, &fakePOIService{}, zap.NewNop())

	a := out.Days[0].Attractions[0]
	assert.Equal(t, defaultVisitDurationMinutes, a.VisitDuration)
	assert.NotEmpty(t, a.Description)
	assert.NotEmpty(t, a.Category)
}
