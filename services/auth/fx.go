package auth

import (
	"refermark-server/internal/server"

	"go.uber.org/fx"
)

var Module = fx.Module("auth.module",
	fx.Provide(NewService, NewHandler),
	fx.Invoke(RegisterRoutes),
)

// Login sits outside the authenticated group; it is the one /api route a
// caller can reach without a token.
func RegisterRoutes(r *server.Router, h *Handler) {
	r.Engine.POST("/api/login", h.Login)
}
