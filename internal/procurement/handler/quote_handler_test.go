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

func setupQuoteTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svcs := service.NewServices(repos, db, nil)
	h := NewHandlers(svcs, repos.ActivityLog)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")

	quotes := api.Group("/quotes")
	quotes.GET("", h.Quote.ListQuotes)
	quotes.GET("/:id", h.Quote.GetQuote)
	quotes.POST("", h.Quote.CreateQuote)
	quotes.PUT("/:id", h.Quote.UpdateQuote)
	quotes.POST("/:id/submit", h.Quote.SubmitQuote)
	quotes.POST("/:id/approve", h.Quote.ApproveQuote)
	quotes.POST("/:id/reject", h.Quote.RejectQuote)

	reqs := api.Group("/requisitions")
	reqs.POST("", h.Requisition.CreateRequisition)
	reqs.PUT("/:id", h.Requisition.UpdateRequisition)
	reqs.POST("/:id/submit", h.Requisition.SubmitRequisition)
	reqs.POST("/:id/approve", h.Requisition.ApproveRequisition)
	reqs.POST("/:id/reject", h.Requisition.RejectRequisition)

	testutil.SeedUser(t, db, "test-user-001", "Test Admin", entity.RoleAdmin)

	return router, db
}

func createQuote(t *testing.T, router *gin.Engine, token string) map[string]interface{} {
	t.Helper()
	w := testutil.DoRequest(router, "POST", "/api/v1/quotes", map[string]interface{}{
		"client_name":  "Vulcan Mining",
		"total_amount": 12500.0,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	return resp["data"].(map[string]interface{})
}

func TestQuoteWorkflow(t *testing.T) {
	router, db := setupQuoteTest(t)
	token := testutil.DefaultTestToken()

	quote := createQuote(t, router, token)
	quoteID := quote["id"].(string)

	code, _ := quote["quote_code"].(string)
	if len(code) == 0 || code[:3] != "CQ-" {
		t.Errorf("Expected CQ- code, got %v", quote["quote_code"])
	}
	if quote["status"] != entity.POStatusDraft {
		t.Errorf("Expected draft, got %v", quote["status"])
	}

	w := testutil.DoRequest(router, "POST", "/api/v1/quotes/"+quoteID+"/submit", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on submit, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "POST", "/api/v1/quotes/"+quoteID+"/approve", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on approve, got %d: %s", w.Code, w.Body.String())
	}

	var got entity.ClientQuote
	db.First(&got, "id = ?", quoteID)
	if got.Status != entity.POStatusApproved {
		t.Errorf("Expected approved, got %s", got.Status)
	}
	if got.ApprovedBy == nil || *got.ApprovedBy != "test-user-001" {
		t.Errorf("Expected approved_by test-user-001, got %v", got.ApprovedBy)
	}
}

func TestQuoteRejectLogsReason(t *testing.T) {
	router, db := setupQuoteTest(t)
	token := testutil.DefaultTestToken()

	quote := createQuote(t, router, token)
	quoteID := quote["id"].(string)

	testutil.DoRequest(router, "POST", "/api/v1/quotes/"+quoteID+"/submit", nil, token)

	w := testutil.DoRequest(router, "POST", "/api/v1/quotes/"+quoteID+"/reject",
		map[string]string{"reason": "pricing out of date"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on reject, got %d: %s", w.Code, w.Body.String())
	}

	var got entity.ClientQuote
	db.First(&got, "id = ?", quoteID)
	if got.Status != entity.POStatusRejected {
		t.Errorf("Expected rejected, got %s", got.Status)
	}

	// Reason lives in the audit trail, not on the quote row.
	var logs []entity.ActivityLog
	db.Where("entity_id = ? AND action = ?", quoteID, entity.ActionReject).Find(&logs)
	if len(logs) != 1 {
		t.Fatalf("Expected 1 reject audit row, got %d", len(logs))
	}
	if logs[0].Content == "" {
		t.Error("Expected reject reason recorded in the audit entry")
	}
}

func TestQuoteUpdateGuardedToDraft(t *testing.T) {
	router, _ := setupQuoteTest(t)
	token := testutil.DefaultTestToken()

	quote := createQuote(t, router, token)
	quoteID := quote["id"].(string)

	testutil.DoRequest(router, "POST", "/api/v1/quotes/"+quoteID+"/submit", nil, token)

	w := testutil.DoRequest(router, "PUT", "/api/v1/quotes/"+quoteID,
		map[string]interface{}{"total_amount": 9999.0}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 editing submitted quote, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequisitionWorkflow(t *testing.T) {
	router, db := setupQuoteTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/requisitions", map[string]interface{}{
		"purpose":      "Spare parts restock",
		"total_amount": 430.0,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	reqID := data["id"].(string)

	code, _ := data["req_code"].(string)
	if len(code) == 0 || code[:3] != "RQ-" {
		t.Errorf("Expected RQ- code, got %v", data["req_code"])
	}

	w = testutil.DoRequest(router, "POST", "/api/v1/requisitions/"+reqID+"/submit", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on submit, got %d: %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(router, "POST", "/api/v1/requisitions/"+reqID+"/approve", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on approve, got %d: %s", w.Code, w.Body.String())
	}

	var got entity.Requisition
	db.First(&got, "id = ?", reqID)
	if got.Status != entity.POStatusApproved {
		t.Errorf("Expected approved, got %s", got.Status)
	}
	if got.RequestedBy != "test-user-001" {
		t.Errorf("Expected requested_by test-user-001, got %s", got.RequestedBy)
	}
}

func TestRequisitionDoubleSubmitRejected(t *testing.T) {
	router, _ := setupQuoteTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/requisitions", map[string]interface{}{
		"purpose": "Consumables",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	reqID := resp["data"].(map[string]interface{})["id"].(string)

	testutil.DoRequest(router, "POST", "/api/v1/requisitions/"+reqID+"/submit", nil, token)

	w = testutil.DoRequest(router, "POST", "/api/v1/requisitions/"+reqID+"/submit", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 on second submit, got %d: %s", w.Code, w.Body.String())
	}
}
