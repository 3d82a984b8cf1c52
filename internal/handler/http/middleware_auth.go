package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-user-service/internal/apperr"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/utils"
)

// authenticate is an HTTP middleware that enforces JWT-based authentication.
//
// The access token is read from the "accessToken" cookie and, when the cookie
// is absent, from an "Authorization: Bearer <token>" header. The token is
// verified by [service.AuthService.Authenticate]; on success the sanitized
// user is stored in the request context ([utils.WithUser]) and its ID is
// added to the request logger as "user_id".
//
// Every failure is answered with 401 in the failure envelope.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := cookieValue(r, accessTokenCookie)
		if token == "" {
			if authHeader := r.Header.Get("Authorization"); authHeader != "" {
				var err error
				if token, err = getTokenFromAuthHeader(authHeader); err != nil {
					writeError(w, r, apperr.Auth(apperr.MsgUnauthorizedRequest, err))
					return
				}
			}
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authenticate(ctx, token)
		if err != nil {
			if !apperr.IsKind(err, apperr.KindAuth) {
				err = apperr.Auth(apperr.MsgInvalidAccessToken, err)
			}
			writeError(w, r, err)
			return
		}

		ctx = utils.WithUser(ctx, user)
		ctx = logger.WithUserID(ctx, user.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the token of a "Bearer <token>" header
// value. The scheme is matched case-insensitively.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	return strings.TrimSpace(token), nil
}
