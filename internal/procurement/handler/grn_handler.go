package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/service"
)

// GRNHandler goods-received note endpoint.
type GRNHandler struct {
	svc *service.GRNService
}

func NewGRNHandler(svc *service.GRNService) *GRNHandler {
	return &GRNHandler{svc: svc}
}

// ProcessGRN applies a received-quantity batch to a PO, all or nothing.
// POST /api/v1/grn
func (h *GRNHandler) ProcessGRN(c *gin.Context) {
	var req service.GRNRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.svc.Process(c.Request.Context(), GetUserID(c), GetUserName(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, result)
}
