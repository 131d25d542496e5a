package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/service"
)

type SiteHandler struct {
	svc *service.SiteService
}

func NewSiteHandler(svc *service.SiteService) *SiteHandler {
	return &SiteHandler{svc: svc}
}

// ListSites GET /api/v1/sites
func (h *SiteHandler) ListSites(c *gin.Context) {
	sites, err := h.svc.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, sites)
}

// GetSite GET /api/v1/sites/:id
func (h *SiteHandler) GetSite(c *gin.Context) {
	site, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, site)
}

// CreateSite POST /api/v1/sites
func (h *SiteHandler) CreateSite(c *gin.Context) {
	var req service.SiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	site, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, site)
}

// UpdateSite PUT /api/v1/sites/:id
func (h *SiteHandler) UpdateSite(c *gin.Context) {
	var req service.SiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	site, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, site)
}

// DeleteSite DELETE /api/v1/sites/:id
func (h *SiteHandler) DeleteSite(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, nil)
}
