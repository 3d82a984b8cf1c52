package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	if h.server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.server.RequestTimeout))
	}

	router.Get("/api/version", h.getServerVersion)

	router.Route("/api/v1/users", func(r chi.Router) {
		// credential endpoints, rate limited per client IP
		r.Group(func(r chi.Router) {
			r.Use(h.rateLimit())
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Post("/refresh-token", h.refreshToken)
		})

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)
			r.Post("/logout", h.logout)
			r.Get("/current-user", h.currentUser)
			r.Post("/change-password", h.changePassword)
			r.Patch("/update-account", h.updateAccount)
			r.Patch("/avatar", h.updateAvatar)
			r.Patch("/cover-image", h.updateCoverImage)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
