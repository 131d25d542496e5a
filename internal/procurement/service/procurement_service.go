package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/entity"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/repository"
	"gorm.io/gorm"
)

// ProcurementService owns purchase order CRUD. Approval transitions live in
// ApprovalService, receiving in GRNService.
type ProcurementService struct {
	poRepo       *repository.PORepository
	activityRepo *repository.ActivityLogRepository
	db           *gorm.DB
}

func NewProcurementService(poRepo *repository.PORepository, activityRepo *repository.ActivityLogRepository, db *gorm.DB) *ProcurementService {
	return &ProcurementService{
		poRepo:       poRepo,
		activityRepo: activityRepo,
		db:           db,
	}
}

func (s *ProcurementService) ListPOs(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseOrder, int64, error) {
	return s.poRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *ProcurementService) GetPO(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return s.poRepo.FindByID(ctx, id)
}

func (s *ProcurementService) ListPOItems(ctx context.Context, id string) ([]entity.POItem, error) {
	// Confirm the PO exists so an unknown id reads as 404, not empty list.
	if _, err := s.poRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.poRepo.ListItems(ctx, id)
}

// CreatePORequest creates a draft PO with its items.
type CreatePORequest struct {
	SupplierID string         `json:"supplier_id" binding:"required"`
	SiteID     *string        `json:"site_id"`
	Currency   string         `json:"currency"`
	TaxRate    float64        `json:"tax_rate"`
	Notes      string         `json:"notes"`
	Items      []CreatePOItem `json:"items" binding:"required"`
}

type CreatePOItem struct {
	PartNumber  string  `json:"part_number"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
	Notes       string  `json:"notes"`
}

func (s *ProcurementService) CreatePO(ctx context.Context, userID, userName string, req *CreatePORequest) (*entity.PurchaseOrder, error) {
	code, err := s.poRepo.GenerateCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate po code: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	po := &entity.PurchaseOrder{
		ID:         uuid.New().String()[:32],
		POCode:     code,
		SupplierID: req.SupplierID,
		SiteID:     req.SiteID,
		Status:     entity.POStatusDraft,
		Currency:   currency,
		CreatedBy:  userID,
		Notes:      req.Notes,
	}
	po.Items = buildItems(po.ID, req.Items)
	applyTotals(po, req.TaxRate)

	if err := s.poRepo.Create(ctx, po); err != nil {
		return nil, err
	}

	s.activityRepo.LogActivity(ctx, "po", po.ID, po.POCode, entity.ActionCreate,
		"", po.Status, fmt.Sprintf("%d item(s)", len(po.Items)), userID, userName)
	return po, nil
}

// ReplacePORequest replaces the PO header and its entire item set.
type ReplacePORequest struct {
	SupplierID string         `json:"supplier_id" binding:"required"`
	SiteID     *string        `json:"site_id"`
	Currency   string         `json:"currency"`
	TaxRate    float64        `json:"tax_rate"`
	Notes      string         `json:"notes"`
	Items      []CreatePOItem `json:"items" binding:"required"`
}

// ReplacePO swaps the header fields and item set in one transaction. Only
// pre-approval orders may be edited; item receipt history would be lost
// otherwise.
func (s *ProcurementService) ReplacePO(ctx context.Context, id, userID, userName string, req *ReplacePORequest) (*entity.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po.Status != entity.POStatusDraft && po.Status != entity.POStatusPending {
		return nil, &InvalidStateError{
			EntityType: "purchase order",
			EntityID:   po.POCode,
			Status:     po.Status,
			Action:     "edit",
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = po.Currency
	}

	po.SupplierID = req.SupplierID
	po.SiteID = req.SiteID
	po.Currency = currency
	po.Notes = req.Notes
	po.Items = buildItems(po.ID, req.Items)
	applyTotals(po, req.TaxRate)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("po_id = ?", po.ID).Delete(&entity.POItem{}).Error; err != nil {
			return err
		}
		header := map[string]interface{}{
			"supplier_id":  po.SupplierID,
			"site_id":      po.SiteID,
			"currency":     po.Currency,
			"notes":        po.Notes,
			"subtotal":     po.Subtotal,
			"tax_amount":   po.TaxAmount,
			"total_amount": po.TotalAmount,
		}
		if err := tx.Model(&entity.PurchaseOrder{}).Where("id = ?", po.ID).Updates(header).Error; err != nil {
			return err
		}
		return tx.Create(&po.Items).Error
	})
	if err != nil {
		return nil, err
	}

	s.activityRepo.LogActivity(ctx, "po", po.ID, po.POCode, entity.ActionUpdate,
		po.Status, po.Status, fmt.Sprintf("replaced with %d item(s)", len(po.Items)), userID, userName)
	return po, nil
}

// DeletePO removes a draft PO and its items.
func (s *ProcurementService) DeletePO(ctx context.Context, id, userID, userName string) error {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if po.Status != entity.POStatusDraft {
		return &InvalidStateError{
			EntityType: "purchase order",
			EntityID:   po.POCode,
			Status:     po.Status,
			Action:     "delete",
		}
	}

	if err := s.poRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.activityRepo.LogActivity(ctx, "po", po.ID, po.POCode, entity.ActionDelete,
		po.Status, "", "", userID, userName)
	return nil
}

func buildItems(poID string, lines []CreatePOItem) []entity.POItem {
	items := make([]entity.POItem, 0, len(lines))
	for i, line := range lines {
		unit := line.Unit
		if unit == "" {
			unit = "pcs"
		}
		items = append(items, entity.POItem{
			ID:          uuid.New().String()[:32],
			POID:        poID,
			PartNumber:  line.PartNumber,
			Description: line.Description,
			Category:    line.Category,
			Quantity:    line.Quantity,
			Unit:        unit,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.UnitPrice * line.Quantity,
			Status:      entity.POItemStatusPending,
			SortOrder:   i + 1,
			Notes:       line.Notes,
		})
	}
	return items
}

func applyTotals(po *entity.PurchaseOrder, taxRate float64) {
	var subtotal float64
	for _, item := range po.Items {
		subtotal += item.LineTotal
	}
	po.Subtotal = subtotal
	po.TaxAmount = subtotal * taxRate
	po.TotalAmount = subtotal + po.TaxAmount
}
