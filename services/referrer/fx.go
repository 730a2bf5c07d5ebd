package referrer

import (
	"refermark-server/internal/server"

	"go.uber.org/fx"
)

var Module = fx.Module("referrer.module",
	fx.Provide(NewService, NewHandler),
	fx.Invoke(RegisterRoutes),
)

func RegisterRoutes(r *server.Router, h *Handler) {
	g := r.API.Group("/referrers")
	g.GET("", h.List)
	g.GET("/count", h.Count)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
