package campaign

import (
	"refermark-server/pkg/errutil"
	"refermark-server/pkg/httpapi"
	"refermark-server/pkg/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) List(c *gin.Context) {
	campaigns, err := h.svc.List(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	httpapi.List(c, len(campaigns), campaigns)
}

func (h *Handler) Get(c *gin.Context) {
	campaign, err := h.svc.Get(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	httpapi.OK(c, campaign)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errutil.BadRequest("Invalid request body", errutil.WithErr(err)))
		return
	}

	campaign, err := h.svc.Create(c.Request.Context(), middleware.Principal(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	httpapi.Created(c, campaign)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errutil.BadRequest("Invalid request body", errutil.WithErr(err)))
		return
	}

	campaign, err := h.svc.Update(c.Request.Context(), middleware.Principal(c), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	httpapi.OK(c, campaign)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	httpapi.Deleted(c)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	httpapi.OK(c, stats)
}
