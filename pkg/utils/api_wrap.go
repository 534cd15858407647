package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceIDFrom(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceIDFrom(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDFrom(c),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	var pe *ProviderError
	switch {
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid trip form data")
	case errors.Is(err, ErrUnparsableResponse), errors.Is(err, ErrPlanMissing):
		RespondError(c, http.StatusBadGateway, "Model response could not be parsed")
	case errors.Is(err, ErrEmptyCompletion):
		RespondError(c, http.StatusBadGateway, "Model returned an empty completion")
	case errors.As(err, &pe):
		RespondError(c, http.StatusBadGateway, "Upstream provider request failed")
	default:
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
