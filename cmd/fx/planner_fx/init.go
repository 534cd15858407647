// cmd/fx/planner_fx/init.go
package planner_fx

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"miaoyou/internal/api/controllers"
	"miaoyou/internal/infra"
	"miaoyou/internal/services"
	"miaoyou/pkg/utils"
)

var Module = fx.Provide(
	ProvideCompletionClient,
	ProvidePlannerConfig,
	ProvidePlanService,
	ProvidePlanController,
)

// ProvideCompletionClient creates a completion client based on environment variables
func ProvideCompletionClient(logger *zap.Logger) (infra.CompletionClient, error) {
	cfg := getCompletionConfig()
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s provider requires an API key", cfg.Provider)
	}

	logger.Info("initializing completion client",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model))

	return infra.NewCompletionClient(cfg, logger)
}

func ProvidePlannerConfig() services.PlannerConfig {
	return services.PlannerConfig{
		FallbackEnabled: getEnvWithDefault("FALLBACK_ENABLED", "true") != "false",
		Retry:           utils.DefaultRetryConfig(),
	}
}

// ProvidePlanService creates the plan service with all dependencies
func ProvidePlanService(
	completion infra.CompletionClient,
	poiService services.POIServiceInterface,
	cfg services.PlannerConfig,
	logger *zap.Logger,
) services.PlanServiceInterface {
	return services.NewPlanService(completion, poiService, cfg, logger)
}

// ProvidePlanController creates the plan controller
func ProvidePlanController(
	planService services.PlanServiceInterface,
) *controllers.PlanController {
	return controllers.NewPlanController(planService)
}

// getCompletionConfig reads configuration from environment variables
func getCompletionConfig() infra.CompletionConfig {
	provider := getEnvWithDefault("COMPLETION_PROVIDER", "openai")

	var apiKey, baseURL, model string
	switch strings.ToLower(provider) {
	case "gemini":
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = getEnvWithDefault("GEMINI_MODEL", infra.DefaultGeminiModel)
	default:
		apiKey = os.Getenv("COMPLETION_API_KEY")
		baseURL = getEnvWithDefault("COMPLETION_BASE_URL", infra.DefaultCompletionBaseURL)
		model = getEnvWithDefault("COMPLETION_MODEL", infra.DefaultCompletionModel)
	}

	return infra.CompletionConfig{
		Provider: provider,
		APIKey:   apiKey,
		BaseURL:  baseURL,
		Model:    model,
		Timeout:  infra.DefaultCompletionTimeout,
	}
}

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
