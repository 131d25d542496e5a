package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/service"
)

type SupplierHandler struct {
	svc *service.SupplierService
}

func NewSupplierHandler(svc *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

// ListSuppliers GET /api/v1/suppliers
func (h *SupplierHandler) ListSuppliers(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"status":   c.Query("status"),
		"category": c.Query("category"),
		"search":   c.Query("search"),
	}

	suppliers, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}
	paginate(c, suppliers, page, pageSize, total)
}

// GetSupplier GET /api/v1/suppliers/:id
func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	supplier, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, supplier)
}

// CreateSupplier POST /api/v1/suppliers
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req service.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	supplier, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, supplier)
}

// UpdateSupplier PUT /api/v1/suppliers/:id
func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	var req service.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	supplier, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, supplier)
}

// DeleteSupplier DELETE /api/v1/suppliers/:id
func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, nil)
}
