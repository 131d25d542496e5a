package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/service"
)

type QuoteHandler struct {
	svc      *service.QuoteService
	approval *service.ApprovalService
}

func NewQuoteHandler(svc *service.QuoteService, approval *service.ApprovalService) *QuoteHandler {
	return &QuoteHandler{svc: svc, approval: approval}
}

// ListQuotes GET /api/v1/quotes
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"status": c.Query("status"),
		"search": c.Query("search"),
	}

	quotes, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}
	paginate(c, quotes, page, pageSize, total)
}

// GetQuote GET /api/v1/quotes/:id
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, quote)
}

// CreateQuote POST /api/v1/quotes
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req service.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	quote, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, quote)
}

// UpdateQuote PUT /api/v1/quotes/:id
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	var req service.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	quote, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, quote)
}

// SubmitQuote POST /api/v1/quotes/:id/submit
func (h *QuoteHandler) SubmitQuote(c *gin.Context) {
	quote, err := h.approval.SubmitQuote(c.Request.Context(), c.Param("id"), GetUserID(c), GetUserName(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, quote)
}

// ApproveQuote POST /api/v1/quotes/:id/approve
func (h *QuoteHandler) ApproveQuote(c *gin.Context) {
	quote, err := h.approval.ApproveQuote(c.Request.Context(), c.Param("id"), GetUserID(c), GetUserName(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, quote)
}

// RejectQuote POST /api/v1/quotes/:id/reject
func (h *QuoteHandler) RejectQuote(c *gin.Context) {
	var body service.RejectReason
	_ = c.ShouldBindJSON(&body)

	quote, err := h.approval.RejectQuote(c.Request.Context(), c.Param("id"), GetUserID(c), GetUserName(c), body.Reason)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, quote)
}
