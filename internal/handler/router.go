package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/seo-optimizer/backend/internal/auth"
	"github.com/seo-optimizer/backend/internal/handler/chat"
	middlewarePkg "github.com/seo-optimizer/backend/internal/middleware"
	chatService "github.com/seo-optimizer/backend/internal/service/chat"
	"github.com/seo-optimizer/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(chatSvc *chatService.Service, jwtSecret string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatHandler := chat.New(chatSvc)

	r.Route("/api", func(api chi.Router) {
		// Liveness probe stays outside the auth boundary.
		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		api.Group(func(authed chi.Router) {
			authed.Use(auth.Middleware(jwtSecret))
			chatHandler.RegisterRoutes(authed)
		})
	})

	return r
}
