package services

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"miaoyou/internal/infra"
	"miaoyou/internal/models/request_models"
	"miaoyou/internal/models/response_models"
	"miaoyou/pkg/utils"
)

const (
	scenicSpotTypes  = "风景名胜"
	searchPageSize   = 10
	batchConcurrency = 8

	cityCenterKeyPrefix = "city_center_"
)

// dayPrefixPattern strips planner artifacts like "第1天景点: " from names
// before they are used as search keywords.
var dayPrefixPattern = regexp.MustCompile(`^第\d+天景点[:：]\s*`)

type POIServiceInterface interface {
	// BatchGetAttractionPOIInfo resolves every query to a result. The
	// returned slice always has the same length and order as the input;
	// queries that cannot be resolved against the provider degrade to
	// synthesized results instead of being dropped.
	BatchGetAttractionPOIInfo(ctx context.Context, queries []request_models.AttractionQuery) []response_models.PoiQueryResult
	GetAttractionPOIInfo(ctx context.Context, name, city string) response_models.PoiQueryResult
	SearchPOIByKeyword(ctx context.Context, keyword, city string) (*infra.AMapSearchResponse, error)
	GetPOIByID(ctx context.Context, id string) (*infra.AMapDetailResponse, error)
}

type PoiService struct {
	amap   infra.AMapClient
	cache  *POICache
	retry  utils.RetryConfig
	logger *zap.Logger
}

func NewPoiService(amap infra.AMapClient, cache *POICache, retry utils.RetryConfig, logger *zap.Logger) POIServiceInterface {
	return &PoiService{
		amap:   amap,
		cache:  cache,
		retry:  retry,
		logger: logger,
	}
}

func (s *PoiService) BatchGetAttractionPOIInfo(ctx context.Context, queries []request_models.AttractionQuery) []response_models.PoiQueryResult {
	results := make([]response_models.PoiQueryResult, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, q := range queries {
		g.Go(func() error {
			results[i] = s.GetAttractionPOIInfo(gctx, q.Name, q.City)
			return nil
		})
	}
	// workers never return errors; degraded lookups synthesize a result
	_ = g.Wait()

	return results
}

func (s *PoiService) GetAttractionPOIInfo(ctx context.Context, name, city string) response_models.PoiQueryResult {
	cleanName := cleanAttractionName(name)
	cacheKey := cleanName + "_" + city

	if cached, ok := s.cache.Get(cacheKey); ok {
		if result, ok := s.resultFromCache(cached, cleanName, city); ok {
			return result
		}
	}

	resp, err := s.searchWithRetry(ctx, cleanName, city, infra.SearchOptions{
		Types:     scenicSpotTypes,
		CityLimit: true,
		Offset:    searchPageSize,
		Page:      1,
	})
	if err != nil {
		s.logger.Warn("poi search failed, synthesizing location",
			zap.String("name", cleanName),
			zap.String("city", city),
			zap.Error(err))
		return s.syntheticResult(cleanName, city, cacheKey)
	}
	s.cache.Set(cacheKey, resp)
	if result, ok := resultFromSearch(resp, cleanName); ok {
		return result
	}

	// scenic-spot filter came back empty, retry without the type filter
	resp, err = s.searchWithRetry(ctx, cleanName, city, infra.SearchOptions{
		CityLimit: true,
		Offset:    searchPageSize,
		Page:      1,
	})
	if err == nil {
		s.cache.Set(cacheKey, resp)
		if result, ok := resultFromSearch(resp, cleanName); ok {
			return result
		}
	}

	if loc, ok := s.cityCenter(ctx, city); ok {
		result := response_models.PoiQueryResult{
			Name:     cleanName,
			Address:  fmt.Sprintf("%s市%s", city, cleanName),
			Location: loc,
			Rating:   synthesizeRating(),
			Category: defaultAttractionCategory,
		}
		s.cache.Set(cacheKey, result)
		return result
	}

	return s.syntheticResult(cleanName, city, cacheKey)
}

func (s *PoiService) SearchPOIByKeyword(ctx context.Context, keyword, city string) (*infra.AMapSearchResponse, error) {
	cleaned := cleanAttractionName(keyword)
	cacheKey := cleaned + "_" + city

	if cached, ok := s.cache.Get(cacheKey); ok {
		if resp, ok := cached.(*infra.AMapSearchResponse); ok {
			return resp, nil
		}
	}

	resp, err := s.searchWithRetry(ctx, cleaned, city, infra.SearchOptions{
		CityLimit: true,
		Offset:    searchPageSize,
		Page:      1,
	})
	if err != nil {
		return nil, err
	}
	s.cache.Set(cacheKey, resp)
	return resp, nil
}

func (s *PoiService) GetPOIByID(ctx context.Context, id string) (*infra.AMapDetailResponse, error) {
	if cached, ok := s.cache.Get(id); ok {
		if resp, ok := cached.(*infra.AMapDetailResponse); ok {
			return resp, nil
		}
	}

	resp, err := utils.Retry(ctx, s.retry, s.logger, func(ctx context.Context) (*infra.AMapDetailResponse, error) {
		return s.amap.PlaceDetail(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	s.cache.Set(id, resp)
	return resp, nil
}

func (s *PoiService) searchWithRetry(ctx context.Context, keyword, city string, opts infra.SearchOptions) (*infra.AMapSearchResponse, error) {
	return utils.Retry(ctx, s.retry, s.logger, func(ctx context.Context) (*infra.AMapSearchResponse, error) {
		return s.amap.SearchText(ctx, keyword, city, opts)
	})
}

// cityCenter resolves the geographic centroid of a city through geocoding,
// memoized per city so a whole batch costs at most one geocode call.
func (s *PoiService) cityCenter(ctx context.Context, city string) (response_models.Location, bool) {
	key := cityCenterKeyPrefix + city
	if cached, ok := s.cache.Get(key); ok {
		if loc, ok := cached.(response_models.Location); ok {
			return loc, true
		}
	}

	resp, err := utils.Retry(ctx, s.retry, s.logger, func(ctx context.Context) (*infra.AMapGeocodeResponse, error) {
		return s.amap.Geocode(ctx, city, city)
	})
	if err != nil || resp.Status != infra.AMapStatusOK || len(resp.Geocodes) == 0 {
		return response_models.Location{}, false
	}
	loc, ok := infra.ParseAMapLocation(resp.Geocodes[0].Location)
	if !ok {
		return response_models.Location{}, false
	}
	s.cache.Set(key, loc)
	return loc, true
}

// syntheticResult is the last resort: a coordinate near the city reference
// point with a small jitter so stacked attractions stay distinguishable on
// a map.
func (s *PoiService) syntheticResult(name, city, cacheKey string) response_models.PoiQueryResult {
	base, known := GetCityCoordinates(city)
	if !known {
		s.logger.Warn("city missing from coordinate table, using default reference point",
			zap.String("city", city))
	}

	result := response_models.PoiQueryResult{
		Name:    name,
		Address: fmt.Sprintf("%s市%s", city, name),
		Location: response_models.Location{
			Longitude: base.Longitude + jitter(),
			Latitude:  base.Latitude + jitter(),
		},
		Rating:   synthesizeRating(),
		Category: defaultAttractionCategory,
	}
	s.cache.Set(cacheKey, result)
	return result
}

func (s *PoiService) resultFromCache(cached interface{}, name, city string) (response_models.PoiQueryResult, bool) {
	switch v := cached.(type) {
	case response_models.PoiQueryResult:
		return v, true
	case *infra.AMapSearchResponse:
		return resultFromSearch(v, name)
	default:
		return response_models.PoiQueryResult{}, false
	}
}

func resultFromSearch(resp *infra.AMapSearchResponse, name string) (response_models.PoiQueryResult, bool) {
	if resp == nil || resp.Status != infra.AMapStatusOK || len(resp.POIs) == 0 {
		return response_models.PoiQueryResult{}, false
	}
	poi := resp.POIs[0]

	loc, ok := infra.ParseAMapLocation(poi.Location)
	if !ok {
		return response_models.PoiQueryResult{}, false
	}

	address := poi.Address
	if address == "" {
		address = poi.PName + poi.CityName + poi.AdName + poi.Name
	}

	rating := synthesizeRating()
	if r, err := strconv.ParseFloat(poi.Rating, 64); err == nil && r > 0 {
		rating = r
	}

	category := poi.Type
	if category == "" {
		category = defaultAttractionCategory
	}

	// the plan's own name is kept; the provider may canonicalize it
	return response_models.PoiQueryResult{
		Name:     name,
		Address:  address,
		Location: loc,
		Rating:   rating,
		Category: category,
	}, true
}

func cleanAttractionName(name string) string {
	return strings.TrimSpace(dayPrefixPattern.ReplaceAllString(name, ""))
}

// jitter spreads synthesized coordinates within roughly a kilometer of the
// reference point.
func jitter() float64 {
	return (rand.Float64() - 0.5) * 0.02
}

func synthesizeRating() float64 {
	return float64(int((4+rand.Float64())*10)) / 10
}
