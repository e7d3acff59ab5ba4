package api

import (
	"github.com/go-chi/chi/v5"

	"Courier/internal/config"
	"Courier/internal/session"
)

// ApiDependencies содержит зависимости для обработчиков API.
type ApiDependencies struct {
	Config    *config.Config
	SecretKey string
	Sessions  *session.Manager
}

// SetupRoutes настраивает все маршруты Mini App API.
func SetupRoutes(r *chi.Mux, deps ApiDependencies) {
	r.Get("/health", HealthHandler)

	r.Group(func(r chi.Router) {
		r.Get("/api/client-config", deps.GetClientConfig)
	})

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(deps.SecretKey))

		// --- Маршруты для курьера ---
		r.Route("/api/driver", func(r chi.Router) {
			r.Get("/profile", deps.GetDriverProfile)
			r.Get("/orders", deps.GetDriverOrders)
			r.Get("/order/{id}", deps.GetDriverOrderDetails)
			r.Post("/order/{id}/accept", deps.AcceptDriverOrder)
			r.Post("/order/{id}/status", deps.UpdateDriverOrderStatus)
		})
	})
}
