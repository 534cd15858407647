package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"miaoyou/internal/infra"
	"miaoyou/internal/models/request_models"
	"miaoyou/internal/models/response_models"
	"miaoyou/pkg/utils"
)

type searchCall struct {
	keyword string
	city    string
	opts    infra.SearchOptions
}

// fakeAMapClient scripts provider behavior per call site.
type fakeAMapClient struct {
	mu           sync.Mutex
	searchCalls  []searchCall
	geocodeCalls int
	detailCalls  int

	searchFn  func(keyword, city string, opts infra.SearchOptions) (*infra.AMapSearchResponse, error)
	geocodeFn func(address, city string) (*infra.AMapGeocodeResponse, error)
	detailFn  func(id string) (*infra.AMapDetailResponse, error)
}

func (f *fakeAMapClient) SearchText(ctx context.Context, keyword, city string, opts infra.SearchOptions) (*infra.AMapSearchResponse, error) {
	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, searchCall{keyword: keyword, city: city, opts: opts})
	f.mu.Unlock()
	if f.searchFn == nil {
		return &infra.AMapSearchResponse{Status: infra.AMapStatusOK}, nil
	}
	return f.searchFn(keyword, city, opts)
}

func (f *fakeAMapClient) Geocode(ctx context.Context, address, city string) (*infra.AMapGeocodeResponse, error) {
	f.mu.Lock()
	f.geocodeCalls++
	f.mu.Unlock()
	if f.geocodeFn == nil {
		return &infra.AMapGeocodeResponse{Status: infra.AMapStatusOK}, nil
	}
	return f.geocodeFn(address, city)
}

func (f *fakeAMapClient) PlaceDetail(ctx context.Context, id string) (*infra.AMapDetailResponse, error) {
	f.mu.Lock()
	f.detailCalls++
	f.mu.Unlock()
	if f.detailFn == nil {
		return &infra.AMapDetailResponse{Status: infra.AMapStatusOK}, nil
	}
	return f.detailFn(id)
}

func newTestPoiService(amap infra.AMapClient) POIServiceInterface {
	return NewPoiService(amap, NewPOICache(), utils.RetryConfig{MaxRetries: 0, Delay: time.Millisecond}, zap.NewNop())
}

func scenicPOI(name string) infra.AMapPOI {
	return infra.AMapPOI{
		ID:       "B000A7BD6C",
		Name:     name,
		Type:     "风景名胜;公园广场",
		Address:  "景山前街4号",
		Location: "116.397128,39.916527",
		Rating:   "4.9",
	}
}

func TestGetAttractionPOIInfoUsesScenicSearch(t *testing.T) {
	amap := &fakeAMapClient{
		searchFn: func(keyword, city string, opts infra.SearchOptions) (*infra.AMapSearchResponse, error) {
			return &infra.AMapSearchResponse{Status: infra.AMapStatusOK, POIs: []infra.AMapPOI{scenicPOI(keyword)}}, nil
		},
	}
	svc := newTestPoiService(amap)

	result := svc.GetAttractionPOIInfo(context.Background(), "故宫", "北京")

	assert.Equal(t, "故宫", result.Name)
	assert.Equal(t, "景山前街4号", result.Address)
	assert.InDelta(t, 116.397128, result.Location.Longitude, 0.000001)
	assert.Equal(t, 4.9, result.Rating)

	require.Len(t, amap.searchCalls, 1)
	assert.Equal(t, "风景名胜", amap.searchCalls[0].opts.Types)
	assert.True(t, amap.searchCalls[0].opts.CityLimit)
}

func TestGetAttractionPOIInfoStripsDayPrefix(t *testing.T) {
	amap := &fakeAMapClient{
		searchFn: func(keyword, city string, opts infra.SearchOptions) (*infra.AMapSearchResponse, error) {
			return &infra.AMapSearchResponse{Status: infra.AMapStatusOK, POIs: []infra.AMapPOI{scenicPOI(keyword)}}, nil
		},
	}
	svc := newTestPoiService(amap)

	svc.GetAttractionPOIInfo(context.Background(), "第1天景点: 故宫", "北京")
	svc.GetAttractionPOIInfo(context.Background(), "第12天景点：颐和园", "北京")

	require.Len(t, amap.searchCalls, 2)
	assert.Equal(t, "故宫", amap.searchCalls[0].keyword)
	assert.Equal(t, "颐和园", amap.searchCalls[1].keyword)
}

func TestGetAttractionPOIInfoCachesSearches(t *testing.T) {
	amap := &fakeAMapClient{
		searchFn: func(keyword, city string, opts infra.SearchOptions) (*infra.AMapSearchResponse, error) {
			return &infra.AMapSearchResponse{Status: infra.AMapStatusOK, POIs: []infra.AMapPOI{scenicPOI(keyword)}}, nil
		},
	}
	svc := newTestPoiService(amap)

	first := svc.GetAttractionPOIInfo(context.Background(), "故宫", "北京")
	second := svc.GetAttractionPOIInfo(context.Background(), "故宫", "北京")

	assert.Equal(t, first, second)
	assert.Len(t, amap.searchCalls, 1, "second lookup is served from cache")
}

func TestGetAttractionPOIInfoKeepsQueryName(t *testing.T) {
	amap := &fakeAMapClient{
		searchFn: func(keyword, city string, opts infra.SearchOptions) (*infra.AMapSearchResponse, error) {
			return &infra.AMapSearchResponse{Status: infra.AMapStatusOK, POIs: []infra.AMapPOI{scenicPOI("故宫博物院")}}, nil
		},
	}
	svc := newTestPoiService(amap)

	result := svc.GetAttractionPOIInfo(context.Background(), "故宫", "北京")

	assert.Equal(t, "故宫", result.Name, "canonicalized provider name does not replace the plan's")
}

func TestSearchPOIByKeywordCachesResponses(t *testing.T) {
	amap := &fakeAMapClient{
		searchFn: func(keyword, city string, opts infra.SearchOptions) (*infra.AMapSearchResponse, error) {
			return &infra.AMapSearchResponse{Status: infra.AMapStatusOK, POIs: []infra.AMapPOI{scenicPOI(keyword)}}, nil
		},
	}
	svc := newTestPoiService(amap)

	first, err := svc.SearchPOIByKeyword(context.Background(), "故宫", "北京")
	require.NoError(t, err)
	second, err := svc.SearchPOIByKeyword(context.Background(), "故宫", "北京")
	require.NoError(t, err)

	assert.Same(t, first, second, "second lookup is served from cache")
	assert.Len(t, amap.searchCalls, 1)
}

func TestSearchPOIByKeywordDoesNotCacheFailures(t *testing.T) {
	amap := &fakeAMapClient{
		searchFn: func(keyword, city string, opts infra.SearchOptions) (*infra.AMapSearchResponse, error) {
			return nil, utils.NewProviderError("amap", 400, "invalid key")
		},
	}
	svc := newTestPoiService(amap)

	_, err := svc.SearchPOIByKeyword(context.Background(), "故宫", "北京")
	require.Error(t, err)
	_, err = svc.SearchPOIByKeyword(context.Background(), "故宫", "北京")
	require.Error(t, err)

	assert.Len(t, amap.searchCalls, 2, "errors are not memoized")
}

func TestGetPOIByIDCachesLookups(t *testing.T) {
	amap := &fakeAMapClient{
		detailFn: func(id string) (*infra.AMapDetailResponse, error) {
			return &infra.AMapDetailResponse{Status: infra.AMapStatusOK, POIs: []infra.AMapPOI{{ID: id, Name: "故宫"}}}, nil
		},
	}
	svc := newTestPoiService(amap)

	first, err := svc.GetPOIByID(context.Background(), "B01")
	require.NoError(t, err)
	second, err := svc.GetPOIByID(context.Background(), "B01")
	require.NoError(t, err)

	assert.Same(t, first, second, "second lookup is served from cache")
	assert.Equal(t, 1, amap.detailCalls)

	_, err = svc.GetPOIByID(context.Background(), "B02")
	require.NoError(t, err)
	assert.Equal(t, 2, amap.detailCalls, "distinct ids miss the cache")
}

func TestGetAttractionPOIInfoFallsBackToUnfilteredSearch(t *testing.T) {
	amap := &fakeAMapClient{
		searchFn: func(keyword, city string, opts infra.SearchOptions) (*infra.AMapSearchResponse, error) {
			if opts.Types != "" {
				return &infra.AMapSearchResponse{Status: infra.AMapStatusOK}, nil
			}
			return &infra.AMapSearchResponse{Status: infra.AMapStatusOK, POIs: []infra.AMapPOI{scenicPOI(keyword)}}, nil
		},
	}
	svc := newTestPoiService(amap)

	result := svc.GetAttractionPOIInfo(context.Background(), "798艺术区", "北京")

	assert.Equal(t, "798艺术区", result.Name)
	require.Len(t, amap.searchCalls, 2)
	assert.Empty(t, amap.searchCalls[1].opts.Types)
}

func TestGetAttractionPOIInfoFallsBackToCityCenter(t *testing.T) {
	amap := &fakeAMapClient{
		searchFn: func(keyword, city string, opts infra.SearchOptions) (*infra.AMapSearchResponse, error) {
			return &infra.AMapSearchResponse{Status: infra.AMapStatusOK}, nil
		},
		geocodeFn: func(address, city string) (*infra.AMapGeocodeResponse, error) {
			return &infra.AMapGeocodeResponse{
				Status:   infra.AMapStatusOK,
				Geocodes: []infra.AMapGeocode{{Location: "120.153576,30.287459"}},
			}, nil
		},
	}
	svc := newTestPoiService(amap)

	first := svc.GetAttractionPOIInfo(context.Background(), "西湖", "杭州")
	second := svc.GetAttractionPOIInfo(context.Background(), "灵隐寺", "杭州")

	assert.InDelta(t, 120.153576, first.Location.Longitude, 0.000001)
	assert.InDelta(t, 30.287459, first.Location.Latitude, 0.000001)
	assert.InDelta(t, 120.153576, second.Location.Longitude, 0.000001)
	assert.Contains(t, first.Address, "杭州市")
	assert.GreaterOrEqual(t, first.Rating, 4.0)

	assert.Equal(t, 1, amap.geocodeCalls, "city centroid is memoized per city")
}

func TestGetAttractionPOIInfoSynthesizesWhenProviderDown(t *testing.T) {
	amap := &fakeAMapClient{
		searchFn: func(keyword, city string, opts infra.SearchOptions) (*infra.AMapSearchResponse, error) {
			return nil, utils.NewProviderError("amap", 400, "invalid key")
		},
	}
	svc := newTestPoiService(amap)

	result := svc.GetAttractionPOIInfo(context.Background(), "故宫", "北京")

	assert.Equal(t, "故宫", result.Name)
	assert.False(t, result.Location.IsZero())
	assert.InDelta(t, 116.4074, result.Location.Longitude, 0.02, "jitter stays near the city anchor")
	assert.InDelta(t, 39.9042, result.Location.Latitude, 0.02)
	assert.GreaterOrEqual(t, result.Rating, 4.0)
	assert.LessOrEqual(t, result.Rating, 5.0)
	assert.Equal(t, "景点", result.Category)

	assert.Equal(t, 0, amap.geocodeCalls, "transport failure skips straight to synthesis")
}

func TestBatchGetAttractionPOIInfoPreservesOrderAndLength(t *testing.T) {
	amap := &fakeAMapClient{
		searchFn: func(keyword, city string, opts infra.SearchOptions) (*infra.AMapSearchResponse, error) {
			return nil, utils.NewProviderError("amap", 500, "unavailable")
		},
		geocodeFn: func(address, city string) (*infra.AMapGeocodeResponse, error) {
			return nil, utils.NewProviderError("amap", 500, "unavailable")
		},
	}
	svc := newTestPoiService(amap)

	queries := []request_models.AttractionQuery{
		{Name: "天安门广场", City: "北京"},
		{Name: "故宫", City: "北京"},
		{Name: "颐和园", City: "北京"},
	}
	results := svc.BatchGetAttractionPOIInfo(context.Background(), queries)

	require.Len(t, results, len(queries))
	for i, r := range results {
		assert.Equal(t, queries[i].Name, r.Name)
		assert.False(t, r.Location.IsZero())
	}
}

func TestBatchGetAttractionPOIInfoEmptyInput(t *testing.T) {
	svc := newTestPoiService(&fakeAMapClient{})

	results := svc.BatchGetAttractionPOIInfo(context.Background(), nil)

	assert.Empty(t, results)
}

func TestPOICacheConcurrentAccess(t *testing.T) {
	cache := NewPOICache()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			cache.Set("shared", response_models.PoiQueryResult{Name: "x"})
			cache.Get("shared")
		}(i)
	}
	wg.Wait()

	_, ok := cache.Get("shared")
	assert.True(t, ok)
}
