package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/repository"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/service"
)

type DashboardHandler struct {
	svc          *service.DashboardService
	activityRepo *repository.ActivityLogRepository
}

func NewDashboardHandler(svc *service.DashboardService, activityRepo *repository.ActivityLogRepository) *DashboardHandler {
	return &DashboardHandler{svc: svc, activityRepo: activityRepo}
}

// GetStats GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.svc.GetStats(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, stats)
}

// GetMonthlySpend GET /api/v1/charts/monthly-spend?year=
func (h *DashboardHandler) GetMonthlySpend(c *gin.Context) {
	rows, err := h.svc.GetMonthlySpend(c.Request.Context(), queryYear(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, rows)
}

// GetPOStatusCounts GET /api/v1/charts/po-status
func (h *DashboardHandler) GetPOStatusCounts(c *gin.Context) {
	rows, err := h.svc.GetPOStatusCounts(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, rows)
}

// GetSiteSpend GET /api/v1/charts/site-spend?year=
func (h *DashboardHandler) GetSiteSpend(c *gin.Context) {
	rows, err := h.svc.GetSiteSpend(c.Request.Context(), queryYear(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, rows)
}

// ListActivity GET /api/v1/activity-log?entity_type=&entity_id=
func (h *DashboardHandler) ListActivity(c *gin.Context) {
	page, pageSize := GetPagination(c)

	logs, total, err := h.activityRepo.FindAll(c.Request.Context(),
		c.Query("entity_type"), c.Query("entity_id"), page, pageSize)
	if err != nil {
		RespondError(c, err)
		return
	}
	paginate(c, logs, page, pageSize, total)
}

func queryYear(c *gin.Context) int {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		return time.Now().Year()
	}
	return year
}
