package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/entity"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/repository"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/service"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/testutil"
)

func setupGRNTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svcs := service.NewServices(repos, db, nil)
	h := NewHandlers(svcs, repos.ActivityLog)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.POST("/grn", h.GRN.ProcessGRN)

	testutil.SeedUser(t, db, "test-user-001", "Test Admin", entity.RoleAdmin)

	return router, db
}

func seedApprovedPO(t *testing.T, db *gorm.DB, items []entity.POItem) *entity.PurchaseOrder {
	t.Helper()
	supplier := testutil.SeedSupplier(t, db, "SUP-0001", "Acme Industrial")
	return testutil.SeedPO(t, db, "PO-2026-0001", supplier.ID, entity.POStatusApproved, items)
}

func grnBody(poID string, items []map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"po_id":                poID,
		"delivery_note_number": "DN-1001",
		"items":                items,
	}
}

func reloadPO(t *testing.T, db *gorm.DB, id string) *entity.PurchaseOrder {
	t.Helper()
	var po entity.PurchaseOrder
	if err := db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("sort_order ASC")
	}).First(&po, "id = ?", id).Error; err != nil {
		t.Fatalf("Failed to reload PO: %v", err)
	}
	return &po
}

func TestGRNFullReceipt(t *testing.T) {
	router, db := setupGRNTest(t)
	token := testutil.DefaultTestToken()

	po := seedApprovedPO(t, db, []entity.POItem{
		{Description: "Bearing", Quantity: 10, UnitPrice: 5},
	})

	w := testutil.DoRequest(router, "POST", "/api/v1/grn", grnBody(po.ID, []map[string]interface{}{
		{"po_item_id": po.Items[0].ID, "quantity_received_now": 10},
	}), token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["new_po_status"] != entity.POStatusCompleted {
		t.Errorf("Expected new_po_status completed, got %v", data["new_po_status"])
	}
	grnNumber, _ := data["grn_number"].(string)
	if len(grnNumber) == 0 {
		t.Error("Expected a GRN number")
	}

	got := reloadPO(t, db, po.ID)
	if got.Status != entity.POStatusCompleted {
		t.Errorf("Expected PO completed, got %s", got.Status)
	}
	if got.Items[0].ReceivedQty != 10 {
		t.Errorf("Expected received_qty 10, got %v", got.Items[0].ReceivedQty)
	}
	if got.Items[0].Status != entity.POItemStatusReceived {
		t.Errorf("Expected item status received, got %s", got.Items[0].Status)
	}
}

func TestGRNPartialReceipt(t *testing.T) {
	router, db := setupGRNTest(t)
	token := testutil.DefaultTestToken()

	po := seedApprovedPO(t, db, []entity.POItem{
		{Description: "Bearing", Quantity: 10, UnitPrice: 5},
	})

	w := testutil.DoRequest(router, "POST", "/api/v1/grn", grnBody(po.ID, []map[string]interface{}{
		{"po_item_id": po.Items[0].ID, "quantity_received_now": 4},
	}), token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	got := reloadPO(t, db, po.ID)
	if got.Status != entity.POStatusPartial {
		t.Errorf("Expected PO partially_received, got %s", got.Status)
	}
	if got.Items[0].Status != entity.POItemStatusPartial {
		t.Errorf("Expected item status partial, got %s", got.Items[0].Status)
	}
	if got.Items[0].ReceivedQty != 4 {
		t.Errorf("Expected received_qty 4, got %v", got.Items[0].ReceivedQty)
	}
}

func TestGRNAccumulatesToCompleted(t *testing.T) {
	router, db := setupGRNTest(t)
	token := testutil.DefaultTestToken()

	po := seedApprovedPO(t, db, []entity.POItem{
		{Description: "Bearing", Quantity: 10, UnitPrice: 5},
	})

	for _, qty := range []float64{4, 6} {
		w := testutil.DoRequest(router, "POST", "/api/v1/grn", grnBody(po.ID, []map[string]interface{}{
			{"po_item_id": po.Items[0].ID, "quantity_received_now": qty},
		}), token)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	}

	got := reloadPO(t, db, po.ID)
	if got.Status != entity.POStatusCompleted {
		t.Errorf("Expected PO completed after two receipts, got %s", got.Status)
	}
	if got.Items[0].ReceivedQty != 10 {
		t.Errorf("Expected received_qty 10, got %v", got.Items[0].ReceivedQty)
	}
}

func TestGRNOverReceiptRollsBackBatch(t *testing.T) {
	router, db := setupGRNTest(t)
	token := testutil.DefaultTestToken()

	po := seedApprovedPO(t, db, []entity.POItem{
		{Description: "Bearing", Quantity: 10, UnitPrice: 5},
		{Description: "Gasket", Quantity: 20, UnitPrice: 2},
	})

	// Second line over-requests; the valid first line must roll back too.
	w := testutil.DoRequest(router, "POST", "/api/v1/grn", grnBody(po.ID, []map[string]interface{}{
		{"po_item_id": po.Items[0].ID, "quantity_received_now": 5},
		{"po_item_id": po.Items[1].ID, "quantity_received_now": 25},
	}), token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}

	got := reloadPO(t, db, po.ID)
	if got.Status != entity.POStatusApproved {
		t.Errorf("Expected PO unchanged (approved), got %s", got.Status)
	}
	for _, item := range got.Items {
		if item.ReceivedQty != 0 {
			t.Errorf("Expected item %s untouched, got received_qty %v", item.Description, item.ReceivedQty)
		}
		if item.Status != entity.POItemStatusPending {
			t.Errorf("Expected item %s pending, got %s", item.Description, item.Status)
		}
	}

	var auditCount int64
	db.Model(&entity.ActivityLog{}).Where("action = ?", entity.ActionGRNReceive).Count(&auditCount)
	if auditCount != 0 {
		t.Errorf("Expected no audit rows after rollback, got %d", auditCount)
	}
}

func TestGRNMixedItemsLeavePOPartial(t *testing.T) {
	router, db := setupGRNTest(t)
	token := testutil.DefaultTestToken()

	po := seedApprovedPO(t, db, []entity.POItem{
		{Description: "Bearing", Quantity: 10, UnitPrice: 5},
		{Description: "Gasket", Quantity: 20, UnitPrice: 2},
	})

	w := testutil.DoRequest(router, "POST", "/api/v1/grn", grnBody(po.ID, []map[string]interface{}{
		{"po_item_id": po.Items[0].ID, "quantity_received_now": 10},
	}), token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	got := reloadPO(t, db, po.ID)
	if got.Status != entity.POStatusPartial {
		t.Errorf("Expected PO partially_received, got %s", got.Status)
	}
	if got.Items[0].Status != entity.POItemStatusReceived {
		t.Errorf("Expected first item received, got %s", got.Items[0].Status)
	}
	if got.Items[1].Status != entity.POItemStatusPending {
		t.Errorf("Expected second item pending, got %s", got.Items[1].Status)
	}
}

func TestGRNAgainstDraftPORejected(t *testing.T) {
	router, db := setupGRNTest(t)
	token := testutil.DefaultTestToken()

	supplier := testutil.SeedSupplier(t, db, "SUP-0002", "Beta Supplies")
	po := testutil.SeedPO(t, db, "PO-2026-0002", supplier.ID, entity.POStatusDraft, []entity.POItem{
		{Description: "Bearing", Quantity: 10, UnitPrice: 5},
	})

	w := testutil.DoRequest(router, "POST", "/api/v1/grn", grnBody(po.ID, []map[string]interface{}{
		{"po_item_id": po.Items[0].ID, "quantity_received_now": 5},
	}), token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}

	got := reloadPO(t, db, po.ID)
	if got.Status != entity.POStatusDraft || got.Items[0].ReceivedQty != 0 {
		t.Errorf("Expected draft PO untouched, got status %s received %v", got.Status, got.Items[0].ReceivedQty)
	}
}

func TestGRNUnknownItemNotFound(t *testing.T) {
	router, db := setupGRNTest(t)
	token := testutil.DefaultTestToken()

	po := seedApprovedPO(t, db, []entity.POItem{
		{Description: "Bearing", Quantity: 10, UnitPrice: 5},
	})

	w := testutil.DoRequest(router, "POST", "/api/v1/grn", grnBody(po.ID, []map[string]interface{}{
		{"po_item_id": "no-such-item", "quantity_received_now": 5},
	}), token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGRNUnknownPONotFound(t *testing.T) {
	router, _ := setupGRNTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/grn", grnBody("no-such-po", []map[string]interface{}{
		{"po_item_id": "whatever", "quantity_received_now": 5},
	}), token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGRNMissingDeliveryNoteRejected(t *testing.T) {
	router, db := setupGRNTest(t)
	token := testutil.DefaultTestToken()

	po := seedApprovedPO(t, db, []entity.POItem{
		{Description: "Bearing", Quantity: 10, UnitPrice: 5},
	})

	body := map[string]interface{}{
		"po_id": po.ID,
		"items": []map[string]interface{}{
			{"po_item_id": po.Items[0].ID, "quantity_received_now": 5},
		},
	}
	w := testutil.DoRequest(router, "POST", "/api/v1/grn", body, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGRNZeroQuantityLinesSkipped(t *testing.T) {
	router, db := setupGRNTest(t)
	token := testutil.DefaultTestToken()

	po := seedApprovedPO(t, db, []entity.POItem{
		{Description: "Bearing", Quantity: 10, UnitPrice: 5},
		{Description: "Gasket", Quantity: 20, UnitPrice: 2},
	})

	w := testutil.DoRequest(router, "POST", "/api/v1/grn", grnBody(po.ID, []map[string]interface{}{
		{"po_item_id": po.Items[0].ID, "quantity_received_now": 0},
		{"po_item_id": po.Items[1].ID, "quantity_received_now": 20},
	}), token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	got := reloadPO(t, db, po.ID)
	if got.Items[0].ReceivedQty != 0 || got.Items[0].Status != entity.POItemStatusPending {
		t.Errorf("Expected skipped item untouched, got received %v status %s",
			got.Items[0].ReceivedQty, got.Items[0].Status)
	}
	if got.Items[1].Status != entity.POItemStatusReceived {
		t.Errorf("Expected second item received, got %s", got.Items[1].Status)
	}
	if got.Status != entity.POStatusPartial {
		t.Errorf("Expected PO partially_received, got %s", got.Status)
	}
}

func TestGRNWritesAuditEntry(t *testing.T) {
	router, db := setupGRNTest(t)
	token := testutil.DefaultTestToken()

	po := seedApprovedPO(t, db, []entity.POItem{
		{Description: "Bearing", Quantity: 10, UnitPrice: 5},
	})

	w := testutil.DoRequest(router, "POST", "/api/v1/grn", grnBody(po.ID, []map[string]interface{}{
		{"po_item_id": po.Items[0].ID, "quantity_received_now": 10},
	}), token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var logs []entity.ActivityLog
	if err := db.Where("entity_id = ? AND action = ?", po.ID, entity.ActionGRNReceive).Find(&logs).Error; err != nil {
		t.Fatalf("Failed to query activity log: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("Expected 1 audit row, got %d", len(logs))
	}
	if logs[0].OperatorID != "test-user-001" {
		t.Errorf("Expected operator test-user-001, got %s", logs[0].OperatorID)
	}
	if logs[0].ToStatus != entity.POStatusCompleted {
		t.Errorf("Expected to_status completed, got %s", logs[0].ToStatus)
	}
}
