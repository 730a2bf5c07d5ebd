package referral

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
	filter := ListFilter{
		Status:   c.Query("status"),
		Campaign: c.Query("campaign"),
	}

	referrals, err := h.svc.List(c.Request.Context(), middleware.Principal(c), filter)
	if err != nil {
		c.Error(err)
		return
	}
	httpapi.List(c, len(referrals), referrals)
}

func (h *Handler) Get(c *gin.Context) {
	referral, err := h.svc.Get(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	httpapi.OK(c, referral)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errutil.BadRequest("Invalid request body", errutil.WithErr(err)))
		return
	}

	referral, err := h.svc.Create(c.Request.Context(), middleware.Principal(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	httpapi.Created(c, referral)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errutil.BadRequest("Invalid request body", errutil.WithErr(err)))
		return
	}

	referral, err := h.svc.UpdateStatus(c.Request.Context(), middleware.Principal(c), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	httpapi.OK(c, referral)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	httpapi.Deleted(c)
}
