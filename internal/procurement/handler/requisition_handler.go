package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/service"
)

type RequisitionHandler struct {
	svc      *service.RequisitionService
	approval *service.ApprovalService
}

func NewRequisitionHandler(svc *service.RequisitionService, approval *service.ApprovalService) *RequisitionHandler {
	return &RequisitionHandler{svc: svc, approval: approval}
}

// ListRequisitions GET /api/v1/requisitions
func (h *RequisitionHandler) ListRequisitions(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"status":  c.Query("status"),
		"site_id": c.Query("site_id"),
		"search":  c.Query("search"),
	}

	reqs, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}
	paginate(c, reqs, page, pageSize, total)
}

// GetRequisition GET /api/v1/requisitions/:id
func (h *RequisitionHandler) GetRequisition(c *gin.Context) {
	req, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, req)
}

// CreateRequisition POST /api/v1/requisitions
func (h *RequisitionHandler) CreateRequisition(c *gin.Context) {
	var body service.CreateRequisitionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	req, err := h.svc.Create(c.Request.Context(), GetUserID(c), &body)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, req)
}

// UpdateRequisition PUT /api/v1/requisitions/:id
func (h *RequisitionHandler) UpdateRequisition(c *gin.Context) {
	var body service.UpdateRequisitionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	req, err := h.svc.Update(c.Request.Context(), c.Param("id"), &body)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, req)
}

// SubmitRequisition POST /api/v1/requisitions/:id/submit
func (h *RequisitionHandler) SubmitRequisition(c *gin.Context) {
	req, err := h.approval.SubmitRequisition(c.Request.Context(), c.Param("id"), GetUserID(c), GetUserName(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, req)
}

// ApproveRequisition POST /api/v1/requisitions/:id/approve
func (h *RequisitionHandler) ApproveRequisition(c *gin.Context) {
	req, err := h.approval.ApproveRequisition(c.Request.Context(), c.Param("id"), GetUserID(c), GetUserName(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, req)
}

// RejectRequisition POST /api/v1/requisitions/:id/reject
func (h *RequisitionHandler) RejectRequisition(c *gin.Context) {
	var body service.RejectReason
	_ = c.ShouldBindJSON(&body)

	req, err := h.approval.RejectRequisition(c.Request.Context(), c.Param("id"), GetUserID(c), GetUserName(c), body.Reason)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, req)
}
