package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"miaoyou/internal/models/response_models"
	"miaoyou/pkg/utils"
)

const (
	DefaultAMapBaseURL = "https://restapi.amap.com"
	DefaultAMapTimeout = 10 * time.Second

	// AMapStatusOK is the application-level success marker in AMap payloads.
	AMapStatusOK = "1"
)

type AMapConfig struct {
	Key     string
	BaseURL string
	Timeout time.Duration
}

type AMapPOI struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Address  string `json:"address"`
	Location string `json:"location"` // "lon,lat"
	PName    string `json:"pname"`
	CityName string `json:"cityname"`
	AdName   string `json:"adname"`
	Rating   string `json:"rating,omitempty"`
}

type AMapSearchResponse struct {
	Status string    `json:"status"`
	Info   string    `json:"info"`
	Count  string    `json:"count"`
	POIs   []AMapPOI `json:"pois"`
}

type AMapGeocode struct {
	Location string `json:"location"` // "lon,lat"
}

type AMapGeocodeResponse struct {
	Status   string        `json:"status"`
	Info     string        `json:"info"`
	Geocodes []AMapGeocode `json:"geocodes"`
}

type AMapDetailResponse struct {
	Status string    `json:"status"`
	Info   string    `json:"info"`
	POIs   []AMapPOI `json:"pois"`
}

type SearchOptions struct {
	Types     string
	CityLimit bool
	Offset    int
	Page      int
}

type AMapClient interface {
	SearchText(ctx context.Context, keyword, city string, opts SearchOptions) (*AMapSearchResponse, error)
	Geocode(ctx context.Context, address, city string) (*AMapGeocodeResponse, error)
	PlaceDetail(ctx context.Context, id string) (*AMapDetailResponse, error)
}

type amapClient struct {
	http   *http.Client
	cfg    AMapConfig
	logger *zap.Logger
}

func NewAMapClient(cfg AMapConfig, logger *zap.Logger) AMapClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAMapBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultAMapTimeout
	}
	return &amapClient{
		http:   &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: logger,
	}
}

func (c *amapClient) SearchText(ctx context.Context, keyword, city string, opts SearchOptions) (*AMapSearchResponse, error) {
	q := url.Values{}
	q.Set("key", c.cfg.Key)
	q.Set("keywords", keyword)
	q.Set("city", city)
	if opts.CityLimit {
		q.Set("citylimit", "true")
	}
	if opts.Types != "" {
		q.Set("types", opts.Types)
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}

	var resp AMapSearchResponse
	if err := c.get(ctx, "/v5/place/text", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *amapClient) Geocode(ctx context.Context, address, city string) (*AMapGeocodeResponse, error) {
	q := url.Values{}
	q.Set("key", c.cfg.Key)
	q.Set("address", address)
	q.Set("city", city)

	var resp AMapGeocodeResponse
	if err := c.get(ctx, "/v3/geocode/geo", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *amapClient) PlaceDetail(ctx context.Context, id string) (*AMapDetailResponse, error) {
	q := url.Values{}
	q.Set("key", c.cfg.Key)
	q.Set("id", id)

	var resp AMapDetailResponse
	if err := c.get(ctx, "/v5/place/detail", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *amapClient) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	reqURL := c.cfg.BaseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("amap build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		c.logger.Warn("amap request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return utils.NewProviderError("amap", resp.StatusCode, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("amap decode response: %w", err)
	}
	return nil
}

// ParseAMapLocation splits AMap's authoritative "lon,lat" wire format into a
// coordinate pair.
func ParseAMapLocation(s string) (response_models.Location, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return response_models.Location{}, false
	}
	lon, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lat, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return response_models.Location{}, false
	}
	return response_models.Location{Longitude: lon, Latitude: lat}, true
}
