package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"miaoyou/internal/models/request_models"
	"miaoyou/internal/services"
	"miaoyou/pkg/utils"
)

type POIController struct {
	poiService services.POIServiceInterface
}

func NewPOIController(poiService services.POIServiceInterface) *POIController {
	return &POIController{
		poiService: poiService,
	}
}

// BatchQuery godoc
// @Summary Resolve a batch of attractions
// @Description Resolve names to addresses, coordinates and ratings
// @Tags POIs
// @Accept json
// @Produce json
// @Param request body request_models.BatchPoiRequest true "Attraction queries"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /pois/batch [post]
func (p *POIController) BatchQuery(c *gin.Context) {
	var req request_models.BatchPoiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if len(req.Attractions) == 0 {
		utils.RespondError(c, http.StatusBadRequest, "At least one attraction is required")
		return
	}

	results := p.poiService.BatchGetAttractionPOIInfo(c.Request.Context(), req.Attractions)
	utils.RespondSuccess(c, results, "Attractions resolved successfully")
}

// Search godoc
// @Summary Search POIs by keyword
// @Description Keyword search within a city
// @Tags POIs
// @Produce json
// @Param keyword query string true "Search keyword"
// @Param city query string true "City name"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /pois/search [get]
func (p *POIController) Search(c *gin.Context) {
	keyword := c.Query("keyword")
	city := c.Query("city")
	if keyword == "" || city == "" {
		utils.RespondError(c, http.StatusBadRequest, "keyword and city are required")
		return
	}

	resp, err := p.poiService.SearchPOIByKeyword(c.Request.Context(), keyword, city)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Search completed successfully")
}

// Detail godoc
// @Summary Get POI detail
// @Description Look up a single POI by provider id
// @Tags POIs
// @Produce json
// @Param id path string true "POI id"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /pois/{id} [get]
func (p *POIController) Detail(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.RespondError(c, http.StatusBadRequest, "id is required")
		return
	}

	resp, err := p.poiService.GetPOIByID(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "POI detail fetched successfully")
}
