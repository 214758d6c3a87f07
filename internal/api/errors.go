package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pet-catalog-api/pkg/apperrors"
	"github.com/rs/zerolog"
)

// errorBody is the JSON shape of every failed response
type errorBody struct {
	StatusCode int            `json:"statusCode"`
	Error      apperrors.Kind `json:"error"`
	Message    string         `json:"message"`
	Details    any            `json:"details,omitempty"`
	Path       string         `json:"path"`
	Method     string         `json:"method"`
	Timestamp  string         `json:"timestamp"`
}

// respondError renders err and aborts the chain. Untyped errors become INTERNAL_ERROR
// with a generic message; their text never reaches the client.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.Internal(err, "Internal server error")
	}

	status := appErr.Kind.HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("kind", string(appErr.Kind)).
			Msg("Request failed")
	}

	c.AbortWithStatusJSON(status, errorBody{
		StatusCode: status,
		Error:      appErr.Kind,
		Message:    appErr.Message,
		Details:    appErr.Details,
		Path:       c.Request.URL.Path,
		Method:     c.Request.Method,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// bindError turns a gin binding failure into a VALIDATION_ERROR
func bindError(err error, message string) error {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return apperrors.Validation("Request body too large", nil)
	}
	return apperrors.Validation(message, []map[string]string{{"reason": err.Error()}})
}
