// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-user-service/internal/utils"
	"github.com/MKhiriev/go-user-service/models"
)

// CheckHTTPMethod returns a handler to register as the router's
// MethodNotAllowed handler. A known path requested with an unregistered
// method is answered with 404 in the failure envelope instead of chi's 405,
// so that route existence is not leaked.
//
// Routes are matched by exact pattern; the user routes carry no URL
// parameters.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := chi.NewRouteContext()
		if router.Match(ctx, r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		utils.WriteJSON(w, models.NewAPIError(http.StatusNotFound, http.StatusText(http.StatusNotFound)), http.StatusNotFound)
	}
}
