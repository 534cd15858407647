package infra

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"miaoyou/pkg/utils"
)

func newTestAMapClient(t *testing.T, handler http.HandlerFunc) AMapClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAMapClient(AMapConfig{
		Key:     "test-key",
		BaseURL: server.URL,
		Timeout: time.Second,
	}, zap.NewNop())
}

func TestSearchTextSendsExpectedParams(t *testing.T) {
	var gotQuery map[string]string
	client := newTestAMapClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v5/place/text", r.URL.Path)
		gotQuery = map[string]string{
			"key":       r.URL.Query().Get("key"),
			"keywords":  r.URL.Query().Get("keywords"),
			"city":      r.URL.Query().Get("city"),
			"types":     r.URL.Query().Get("types"),
			"citylimit": r.URL.Query().Get("citylimit"),
			"offset":    r.URL.Query().Get("offset"),
			"page":      r.URL.Query().Get("page"),
		}
		w.Write([]byte(`{"status":"1","info":"OK","count":"1","pois":[{"id":"B01","name":"故宫","type":"风景名胜","address":"景山前街4号","location":"116.397128,39.916527","rating":"4.9"}]}`))
	})

	resp, err := client.SearchText(context.Background(), "故宫", "北京", SearchOptions{
		Types:     "风景名胜",
		CityLimit: true,
		Offset:    10,
		Page:      1,
	})

	require.NoError(t, err)
	assert.Equal(t, "test-key", gotQuery["key"])
	assert.Equal(t, "故宫", gotQuery["keywords"])
	assert.Equal(t, "北京", gotQuery["city"])
	assert.Equal(t, "风景名胜", gotQuery["types"])
	assert.Equal(t, "true", gotQuery["citylimit"])
	assert.Equal(t, "10", gotQuery["offset"])
	assert.Equal(t, "1", gotQuery["page"])

	assert.Equal(t, AMapStatusOK, resp.Status)
	require.Len(t, resp.POIs, 1)
	assert.Equal(t, "故宫", resp.POIs[0].Name)
	assert.Equal(t, "116.397128,39.916527", resp.POIs[0].Location)
}

func TestGeocodeParsesResponse(t *testing.T) {
	client := newTestAMapClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/geocode/geo", r.URL.Path)
		assert.Equal(t, "杭州", r.URL.Query().Get("address"))
		w.Write([]byte(`{"status":"1","info":"OK","geocodes":[{"location":"120.153576,30.287459"}]}`))
	})

	resp, err := client.Geocode(context.Background(), "杭州", "杭州")

	require.NoError(t, err)
	require.Len(t, resp.Geocodes, 1)

	loc, ok := ParseAMapLocation(resp.Geocodes[0].Location)
	require.True(t, ok)
	assert.InDelta(t, 120.153576, loc.Longitude, 0.000001)
	assert.InDelta(t, 30.287459, loc.Latitude, 0.000001)
}

func TestPlaceDetailByID(t *testing.T) {
	client := newTestAMapClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v5/place/detail", r.URL.Path)
		assert.Equal(t, "B01", r.URL.Query().Get("id"))
		w.Write([]byte(`{"status":"1","info":"OK","pois":[{"id":"B01","name":"故宫"}]}`))
	})

	resp, err := client.PlaceDetail(context.Background(), "B01")

	require.NoError(t, err)
	require.Len(t, resp.POIs, 1)
	assert.Equal(t, "B01", resp.POIs[0].ID)
}

func TestNon2xxBecomesProviderError(t *testing.T) {
	client := newTestAMapClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.SearchText(context.Background(), "故宫", "北京", SearchOptions{})

	var pe *utils.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "amap", pe.Provider)
	assert.Equal(t, http.StatusBadGateway, pe.StatusCode)
}

func TestParseAMapLocationRejectsGarbage(t *testing.T) {
	cases := []string{"", "116.4", "a,b", "116.4,39.9,50"}
	for _, c := range cases {
		_, ok := ParseAMapLocation(c)
		assert.False(t, ok, c)
	}
}
