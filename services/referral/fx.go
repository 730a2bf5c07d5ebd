package referral

import (
	"refermark-server/internal/server"

	"go.uber.org/fx"
)

var Module = fx.Module("referral.module",
	fx.Provide(NewService, NewHandler),
	fx.Invoke(RegisterRoutes),
)

func RegisterRoutes(r *server.Router, h *Handler) {
	g := r.API.Group("/referrals")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.UpdateStatus)
	g.DELETE("/:id", h.Delete)
}
