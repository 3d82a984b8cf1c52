package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-service/internal/apperr"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/utils"
	"github.com/MKhiriev/go-user-service/models"
)

var kindStatusMap = map[apperr.Kind]int{
	apperr.KindValidation: http.StatusBadRequest,
	apperr.KindAuth:       http.StatusUnauthorized,
	apperr.KindNotFound:   http.StatusNotFound,
	apperr.KindConflict:   http.StatusConflict,
	apperr.KindInternal:   http.StatusInternalServerError,
}

// statusFromError returns the HTTP status and the client-safe message of err.
// Errors that are not *apperr.Error are rendered as 500.
func statusFromError(err error) (int, string) {
	appErr, ok := apperr.As(err)
	if !ok {
		return http.StatusInternalServerError, apperr.MsgInternalServerError
	}

	status, ok := kindStatusMap[appErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	return status, appErr.Message
}

// writeError renders err in the failure envelope. Causes are logged, never
// written to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFromError(err)

	event := logger.FromRequest(r).Info()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Int("status", status).Msg(message)

	if _, writeErr := utils.WriteJSON(w, models.NewAPIError(status, message), status); writeErr != nil {
		logger.FromRequest(r).Err(writeErr).Msg("error writing failure envelope")
	}
}

// writeSuccess renders data in the success envelope.
func writeSuccess(w http.ResponseWriter, r *http.Request, status int, data any, message string) {
	if _, err := utils.WriteJSON(w, models.NewAPIResponse(status, data, message), status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response envelope")
	}
}
