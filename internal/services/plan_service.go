package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"miaoyou/internal/infra"
	"miaoyou/internal/models/request_models"
	"miaoyou/internal/models/response_models"
	"miaoyou/pkg/utils"
)

const planSystemPrompt = `你是一位专业的旅行规划师。请根据用户的需求生成详细的旅行计划。
你必须只返回一个合法的JSON对象，不要输出任何其他文字。JSON结构如下：
{
  "travel_plan": {
    "destination": "城市名",
    "start_date": "YYYY-MM-DD",
    "end_date": "YYYY-MM-DD",
    "overallSuggestions": "整体建议",
    "days": [
      {
        "day": 1,
        "date": "YYYY-MM-DD",
        "activities": [
          {
            "type": "景点",
            "name": "景点名称",
            "description": "景点介绍",
            "address": "详细地址",
            "suggested_duration": "2小时",
            "tips": "游览提示"
          }
        ],
        "meals": {
          "breakfast": "早餐建议",
          "lunch": "午餐建议",
          "dinner": "晚餐建议"
        }
      }
    ]
  }
}
每天安排2到4个景点，景点必须真实存在于目的地城市。`

type PlanServiceInterface interface {
	GenerateTripPlan(ctx context.Context, form request_models.TripFormData) (*response_models.GenerationResult, error)
}

type PlannerConfig struct {
	// FallbackEnabled serves the built-in sample itinerary when the
	// provider fails or the response cannot be parsed. When disabled the
	// original error is returned instead.
	FallbackEnabled bool
	Retry           utils.RetryConfig
}

type PlanService struct {
	completion infra.CompletionClient
	pois       POIServiceInterface
	cfg        PlannerConfig
	logger     *zap.Logger
}

func NewPlanService(completion infra.CompletionClient, pois POIServiceInterface, cfg PlannerConfig, logger *zap.Logger) PlanServiceInterface {
	return &PlanService{
		completion: completion,
		pois:       pois,
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *PlanService) GenerateTripPlan(ctx context.Context, form request_models.TripFormData) (*response_models.GenerationResult, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}

	content, err := utils.Retry(ctx, s.cfg.Retry, s.logger, func(ctx context.Context) (string, error) {
		return s.completion.CreateJSONCompletion(ctx, planSystemPrompt, buildUserPrompt(form))
	})
	if err != nil {
		s.logProviderFailure(err)
		if !s.cfg.FallbackEnabled {
			return nil, err
		}
		return &response_models.GenerationResult{
			Result:   response_models.ResultFallback,
			TripPlan: *reshapeSamplePlan(form),
		}, nil
	}

	plan, err := s.parsePlanContent(content, form)
	if err != nil {
		s.logger.Warn("completion content could not be parsed into a plan",
			zap.Error(err),
			zap.Int("content_length", len(content)))
		if !s.cfg.FallbackEnabled {
			return nil, err
		}
		return &response_models.GenerationResult{
			Result:   response_models.ResultFallbackParseFailed,
			TripPlan: *reshapeSamplePlan(form),
		}, nil
	}

	assembled := AssembleTripPlan(ctx, plan, form, s.pois, s.logger)
	return &response_models.GenerationResult{
		Result:   response_models.ResultSuccess,
		TripPlan: *assembled,
	}, nil
}

func validateForm(form request_models.TripFormData) error {
	if strings.TrimSpace(form.City) == "" {
		return fmt.Errorf("%w: city is required", utils.ErrInvalidInput)
	}
	if form.TravelDays < 1 {
		return fmt.Errorf("%w: travelDays must be at least 1", utils.ErrInvalidInput)
	}
	if !utils.ValidISODate(form.StartDate) {
		return fmt.Errorf("%w: startDate must be YYYY-MM-DD", utils.ErrInvalidInput)
	}
	return nil
}

func buildUserPrompt(form request_models.TripFormData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "请帮我规划一次%s旅行，共%d天", form.City, form.TravelDays)
	fmt.Fprintf(&b, "，从%s开始", form.StartDate)
	if form.EndDate != "" {
		fmt.Fprintf(&b, "，到%s结束", form.EndDate)
	}
	b.WriteString("。")
	if form.Transportation != "" {
		fmt.Fprintf(&b, "出行方式：%s。", form.Transportation)
	}
	if form.Accommodation != "" {
		fmt.Fprintf(&b, "住宿偏好：%s。", form.Accommodation)
	}
	if len(form.Preferences) > 0 {
		fmt.Fprintf(&b, "旅行偏好：%s。", strings.Join(form.Preferences, "、"))
	}
	if form.FreeTextInput != "" {
		fmt.Fprintf(&b, "其他要求：%s。", form.FreeTextInput)
	}
	return b.String()
}

// parsePlanContent recovers the JSON document from raw model output and
// normalizes it. When recovery fails outright, a legacy cleanup pass strips
// common escape noise and retries a direct unmarshal before giving up.
func (s *PlanService) parsePlanContent(content string, form request_models.TripFormData) (*response_models.TripPlan, error) {
	raw, err := utils.RecoverJSON(content)
	if err == nil {
		return NormalizeTripPlan(raw, form, s.logger)
	}

	cleaned := strings.TrimSpace(content)
	cleaned = strings.ReplaceAll(cleaned, "\n", "")
	cleaned = strings.ReplaceAll(cleaned, `\n`, "")
	cleaned = strings.ReplaceAll(cleaned, `\"`, `"`)
	var doc struct {
		TripPlan *response_models.TripPlan `json:"tripPlan"`
	}
	if jsonErr := json.Unmarshal([]byte(cleaned), &doc); jsonErr == nil && doc.TripPlan != nil {
		s.logger.Info("recovered plan through legacy cleanup pass")
		return doc.TripPlan, nil
	}

	return nil, err
}

func (s *PlanService) logProviderFailure(err error) {
	var pe *utils.ProviderError
	if !errors.As(err, &pe) {
		s.logger.Error("plan generation failed", zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.String("provider", pe.Provider),
		zap.Int("status", pe.StatusCode),
		zap.String("message", pe.Message),
	}
	switch {
	case pe.StatusCode == 400:
		s.logger.Error("provider rejected the request", fields...)
	case pe.StatusCode == 401 || pe.StatusCode == 403:
		s.logger.Error("provider authentication failed, check the API key", fields...)
	case pe.StatusCode == 429:
		s.logger.Error("provider rate limit exhausted", fields...)
	case pe.StatusCode >= 500:
		s.logger.Error("provider server error", fields...)
	case pe.StatusCode == 0:
		s.logger.Error("no response from provider, likely timeout or network failure", fields...)
	default:
		s.logger.Error("provider request failed", fields...)
	}
}
