package http

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-user-service/internal/apperr"
	"github.com/MKhiriev/go-user-service/internal/utils"
	"github.com/MKhiriev/go-user-service/models"
)

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "valid Bearer token", header: "Bearer my-jwt", wantToken: "my-jwt"},
		{name: "lower-case scheme", header: "bearer my-jwt", wantToken: "my-jwt"},
		{name: "missing token part", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "other scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidAuthorizationHeader},
		{name: "blank token", header: "Bearer    ", wantErr: ErrInvalidAuthorizationHeader},
		{name: "token padded with spaces", header: "Bearer  my-jwt ", wantToken: "my-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestAuthenticate_Middleware(t *testing.T) {
	tests := []struct {
		name       string
		cookie     string
		header     string
		setup      func(m serviceMocks)
		wantStatus int
		wantMsg    string
	}{
		{
			name:   "cookie wins over header",
			cookie: "from-cookie",
			header: "Bearer from-header",
			setup: func(m serviceMocks) {
				m.auth.EXPECT().Authenticate(gomock.Any(), "from-cookie").Return(ana, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "bearer header",
			header: "Bearer from-header",
			setup: func(m serviceMocks) {
				m.auth.EXPECT().Authenticate(gomock.Any(), "from-header").Return(ana, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "no token",
			setup: func(m serviceMocks) {
				m.auth.EXPECT().Authenticate(gomock.Any(), "").Return(models.User{}, apperr.Auth(apperr.MsgUnauthorizedRequest, nil))
			},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    apperr.MsgUnauthorizedRequest,
		},
		{
			name:       "malformed header never reaches the service",
			header:     "Token abc",
			setup:      func(serviceMocks) {},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    apperr.MsgUnauthorizedRequest,
		},
		{
			name:   "invalid token",
			cookie: "bad",
			setup: func(m serviceMocks) {
				m.auth.EXPECT().Authenticate(gomock.Any(), "bad").Return(models.User{}, apperr.Auth(apperr.MsgInvalidAccessToken, errors.New("signature")))
			},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    apperr.MsgInvalidAccessToken,
		},
		{
			name:   "non-auth failure is still 401",
			cookie: "tok",
			setup: func(m serviceMocks) {
				m.auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(models.User{}, errors.New("store down"))
			},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    apperr.MsgInvalidAccessToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t, testConfig(t))
			tt.setup(m)

			var nextCalled bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				user, ok := utils.GetUserFromContext(r.Context())
				require.True(t, ok)
				assert.Equal(t, ana.ID, user.ID)

				userID, ok := utils.GetUserIDFromContext(r.Context())
				require.True(t, ok)
				assert.Equal(t, ana.ID, userID)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, nextCalled)
			if tt.wantMsg != "" {
				env := decodeEnvelope(t, rec)
				assert.False(t, env.Success)
				assert.Equal(t, tt.wantMsg, env.Message)
			}
		})
	}
}

func TestAuthenticate_AddsUserIDToRequestLogger(t *testing.T) {
	h, m := newTestHandler(t, testConfig(t))
	m.auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(ana, nil)

	var buf bytes.Buffer
	base := zerolog.New(&buf)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("inside")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(base.WithContext(req.Context()))
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "tok"})
	h.authenticate(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"user_id":"`+ana.ID+`"`)
}
