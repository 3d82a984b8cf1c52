package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-user-service/internal/apperr"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", apperr.Validation(apperr.MsgAllFieldsRequired), http.StatusBadRequest, apperr.MsgAllFieldsRequired},
		{"auth", apperr.Auth(apperr.MsgInvalidCredentials, nil), http.StatusUnauthorized, apperr.MsgInvalidCredentials},
		{"not found", apperr.NotFound(apperr.MsgUserDoesNotExist), http.StatusNotFound, apperr.MsgUserDoesNotExist},
		{"conflict", apperr.Conflict(apperr.MsgUserAlreadyExists, nil), http.StatusConflict, apperr.MsgUserAlreadyExists},
		{"internal", apperr.Internal("", errors.New("secret cause")), http.StatusInternalServerError, apperr.MsgInternalServerError},
		{"wrapped", fmt.Errorf("ctx: %w", apperr.NotFound(apperr.MsgUserNotFound)), http.StatusNotFound, apperr.MsgUserNotFound},
		{"unknown kind", &apperr.Error{Kind: apperr.Kind(42), Message: "odd"}, http.StatusInternalServerError, "odd"},
		{"foreign", errors.New("secret cause"), http.StatusInternalServerError, apperr.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := statusFromError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestWriteError_HidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), apperr.Internal("", errors.New("pq: password authentication failed")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"statusCode":500,"message":"Internal Server Error","success":false}`, rec.Body.String())
}
