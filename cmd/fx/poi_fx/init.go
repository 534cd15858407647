// cmd/fx/poi_fx/init.go
package poi_fx

import (
	"fmt"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"miaoyou/internal/api/controllers"
	"miaoyou/internal/infra"
	"miaoyou/internal/services"
	"miaoyou/pkg/utils"
)

var Module = fx.Provide(
	ProvideAMapClient,
	ProvidePOICache,
	ProvidePOIService,
	ProvidePOIController,
)

// ProvideAMapClient reads AMap credentials from environment variables
func ProvideAMapClient(logger *zap.Logger) (infra.AMapClient, error) {
	key := os.Getenv("AMAP_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("AMAP_API_KEY is required")
	}

	cfg := infra.AMapConfig{
		Key:     key,
		BaseURL: getEnvWithDefault("AMAP_BASE_URL", infra.DefaultAMapBaseURL),
		Timeout: infra.DefaultAMapTimeout,
	}
	return infra.NewAMapClient(cfg, logger), nil
}

func ProvidePOICache() *services.POICache {
	return services.NewPOICache()
}

// ProvidePOIService creates the POI service with all dependencies
func ProvidePOIService(
	amap infra.AMapClient,
	cache *services.POICache,
	logger *zap.Logger,
) services.POIServiceInterface {
	return services.NewPoiService(amap, cache, utils.DefaultRetryConfig(), logger)
}

// ProvidePOIController creates the POI controller
func ProvidePOIController(
	poiService services.POIServiceInterface,
) *controllers.POIController {
	return controllers.NewPOIController(poiService)
}

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
