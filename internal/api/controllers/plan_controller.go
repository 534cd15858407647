package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"miaoyou/internal/models/request_models"
	"miaoyou/internal/services"
	"miaoyou/pkg/utils"
)

type PlanController struct {
	planService services.PlanServiceInterface
}

func NewPlanController(planService services.PlanServiceInterface) *PlanController {
	return &PlanController{
		planService: planService,
	}
}

// GenerateTripPlan godoc
// @Summary Generate a trip plan
// @Description Generate a multi-day itinerary for the requested city
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body request_models.TripFormData true "Trip planning payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /plans/generate [post]
func (p *PlanController) GenerateTripPlan(c *gin.Context) {
	var req request_models.TripFormData
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := p.planService.GenerateTripPlan(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Trip plan generated successfully")
}
