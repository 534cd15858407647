package infra

import (
	"errors"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"miaoyou/pkg/utils"
)

func TestTranslateOpenAIError(t *testing.T) {
	err := translateOpenAIError(&openai.APIError{
		HTTPStatusCode: http.StatusServiceUnavailable,
		Message:        "overloaded",
	})

	var pe *utils.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusServiceUnavailable, pe.StatusCode)
	assert.True(t, utils.IsRetryable(err))

	err = translateOpenAIError(&openai.APIError{
		HTTPStatusCode: http.StatusUnauthorized,
		Message:        "bad key",
	})
	assert.False(t, utils.IsRetryable(err))
}

func TestTranslateGeminiError(t *testing.T) {
	err := translateGeminiError(&googleapi.Error{
		Code:    http.StatusInternalServerError,
		Message: "backend error",
	})

	var pe *utils.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "gemini", pe.Provider)
	assert.Equal(t, http.StatusInternalServerError, pe.StatusCode)
	assert.True(t, utils.IsRetryable(err), "server errors stay retryable across providers")

	err = translateGeminiError(&googleapi.Error{
		Code:    http.StatusBadRequest,
		Message: "invalid argument",
	})
	assert.False(t, utils.IsRetryable(err))
}

func TestTranslateErrorsPassThroughUnknown(t *testing.T) {
	sentinel := errors.New("dial tcp: connection refused")
	assert.Same(t, sentinel, translateOpenAIError(sentinel))
	assert.Same(t, sentinel, translateGeminiError(sentinel))
}
