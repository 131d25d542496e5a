package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/entity"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/repository"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/service"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/testutil"
)

func setupDashboardTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svcs := service.NewServices(repos, db, nil)
	h := NewHandlers(svcs, repos.ActivityLog)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/dashboard/stats", h.Dashboard.GetStats)
	api.GET("/charts/monthly-spend", h.Dashboard.GetMonthlySpend)
	api.GET("/charts/po-status", h.Dashboard.GetPOStatusCounts)
	api.GET("/charts/site-spend", h.Dashboard.GetSiteSpend)
	api.GET("/activity-log", h.Dashboard.ListActivity)

	return router, db
}

func TestDashboardStats(t *testing.T) {
	router, db := setupDashboardTest(t)
	token := testutil.DefaultTestToken()

	supplier := testutil.SeedSupplier(t, db, "SUP-0001", "Acme Industrial")
	testutil.SeedPO(t, db, "PO-2026-0001", supplier.ID, entity.POStatusApproved, []entity.POItem{
		{Description: "Bearing", Quantity: 10, UnitPrice: 5},
	})
	testutil.SeedPO(t, db, "PO-2026-0002", supplier.ID, entity.POStatusDraft, []entity.POItem{
		{Description: "Gasket", Quantity: 20, UnitPrice: 2},
	})

	w := testutil.DoRequest(router, "GET", "/api/v1/dashboard/stats", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	byStatus := data["pos_by_status"].(map[string]interface{})
	if byStatus[entity.POStatusApproved].(float64) != 1 {
		t.Errorf("Expected 1 approved PO, got %v", byStatus[entity.POStatusApproved])
	}
	if byStatus[entity.POStatusDraft].(float64) != 1 {
		t.Errorf("Expected 1 draft PO, got %v", byStatus[entity.POStatusDraft])
	}
}

func TestMonthlySpendExcludesDraftAndRejected(t *testing.T) {
	router, db := setupDashboardTest(t)
	token := testutil.DefaultTestToken()

	supplier := testutil.SeedSupplier(t, db, "SUP-0001", "Acme Industrial")
	testutil.SeedPO(t, db, "PO-2026-0001", supplier.ID, entity.POStatusApproved, []entity.POItem{
		{Description: "Bearing", Quantity: 10, UnitPrice: 5},
	})
	testutil.SeedPO(t, db, "PO-2026-0002", supplier.ID, entity.POStatusDraft, []entity.POItem{
		{Description: "Gasket", Quantity: 100, UnitPrice: 2},
	})

	year := time.Now().Year()
	w := testutil.DoRequest(router, "GET", fmt.Sprintf("/api/v1/charts/monthly-spend?year=%d", year), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	rows := resp["data"].([]interface{})

	var total float64
	for _, r := range rows {
		total += r.(map[string]interface{})["total"].(float64)
	}
	if total != 50 {
		t.Errorf("Expected spend 50 (approved only), got %v", total)
	}
}

func TestActivityLogFiltersByEntity(t *testing.T) {
	router, db := setupDashboardTest(t)
	token := testutil.DefaultTestToken()

	ctx := context.Background()
	repos := repository.NewRepositories(db)
	repos.ActivityLog.LogActivity(ctx, "po", "po-1", "PO-2026-0001", entity.ActionSubmit,
		entity.POStatusDraft, entity.POStatusPending, "", "test-user-001", "Test Admin")
	repos.ActivityLog.LogActivity(ctx, "quote", "q-1", "CQ-2026-0001", entity.ActionSubmit,
		entity.POStatusDraft, entity.POStatusPending, "", "test-user-001", "Test Admin")

	w := testutil.DoRequest(router, "GET", "/api/v1/activity-log?entity_type=po&entity_id=po-1", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 log row for the PO, got %d", len(items))
	}
	row := items[0].(map[string]interface{})
	if row["entity_code"] != "PO-2026-0001" {
		t.Errorf("Expected entity_code PO-2026-0001, got %v", row["entity_code"])
	}
}
