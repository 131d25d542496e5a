package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GRNService applies goods-received notes to purchase orders. A GRN is not
// persisted as its own row; its effect lands on the PO items and one audit
// entry, all inside a single transaction.
type GRNService struct {
	db *gorm.DB
}

func NewGRNService(db *gorm.DB) *GRNService {
	return &GRNService{db: db}
}

// GRNRequest is one goods-received submission against a PO.
type GRNRequest struct {
	POID               string     `json:"po_id" binding:"required"`
	GRNDate            *time.Time `json:"grn_date"`
	DeliveryNoteNumber string     `json:"delivery_note_number" binding:"required"`
	OverallGRNNotes    string     `json:"overall_grn_notes"`
	ReceivedByUserID   string     `json:"received_by_user_id"`
	Items              []GRNItem  `json:"items" binding:"required"`
}

type GRNItem struct {
	POItemID            string  `json:"po_item_id" binding:"required"`
	QuantityReceivedNow float64 `json:"quantity_received_now"`
}

// GRNResult is returned to the caller after a committed GRN.
type GRNResult struct {
	GRNNumber   string `json:"grn_number"`
	POID        string `json:"po_id"`
	NewPOStatus string `json:"new_po_status"`
}

// Process applies the whole batch or none of it. The PO row and its items
// are locked FOR UPDATE for the duration, so concurrent GRNs against the
// same PO serialize. Any failure rolls back every change including the
// audit entry.
func (s *GRNService) Process(ctx context.Context, operatorID, operatorName string, req *GRNRequest) (*GRNResult, error) {
	if len(req.Items) == 0 {
		return nil, &ValidationError{Msg: "items must not be empty"}
	}

	result := &GRNResult{POID: req.POID}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var po entity.PurchaseOrder
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", req.POID).
			First(&po).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("purchase order %s: %w", req.POID, ErrNotFound)
			}
			return err
		}

		if po.Status != entity.POStatusApproved && po.Status != entity.POStatusPartial {
			return &InvalidStateError{
				EntityType: "purchase order",
				EntityID:   po.POCode,
				Status:     po.Status,
				Action:     "receive goods",
			}
		}

		var items []entity.POItem
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("po_id = ?", po.ID).
			Order("sort_order ASC").
			Find(&items).Error
		if err != nil {
			return err
		}

		byID := make(map[string]*entity.POItem, len(items))
		for i := range items {
			byID[items[i].ID] = &items[i]
		}

		received := 0
		for _, line := range req.Items {
			item, ok := byID[line.POItemID]
			if !ok {
				return fmt.Errorf("po item %s: %w", line.POItemID, ErrNotFound)
			}
			if line.QuantityReceivedNow <= 0 {
				// no-op line, skip
				continue
			}
			if line.QuantityReceivedNow > item.Outstanding() {
				return &OverReceiptError{
					POItemID:    item.ID,
					Requested:   line.QuantityReceivedNow,
					Outstanding: item.Outstanding(),
				}
			}

			item.ReceivedQty += line.QuantityReceivedNow
			if item.ReceivedQty >= item.Quantity {
				item.Status = entity.POItemStatusReceived
			} else if item.ReceivedQty > 0 {
				item.Status = entity.POItemStatusPartial
			}

			if err := tx.Save(item).Error; err != nil {
				return err
			}
			received++
		}

		fromStatus := po.Status
		newStatus := recomputePOStatus(po.Status, items)
		if newStatus != po.Status {
			po.Status = newStatus
			if err := tx.Save(&po).Error; err != nil {
				return err
			}
		}

		grnNumber, err := nextGRNNumber(tx)
		if err != nil {
			return err
		}

		audit := &entity.ActivityLog{
			ID:         uuid.New().String()[:32],
			EntityType: "po",
			EntityID:   po.ID,
			EntityCode: po.POCode,
			Action:     entity.ActionGRNReceive,
			FromStatus: fromStatus,
			ToStatus:   newStatus,
			Content:    fmt.Sprintf("GRN %s: delivery note %s, %d item(s) received. %s", grnNumber, req.DeliveryNoteNumber, received, req.OverallGRNNotes),
			Metadata: entity.JSONB{
				"grn_number":           grnNumber,
				"delivery_note_number": req.DeliveryNoteNumber,
				"items_received":       received,
				"received_by":          req.ReceivedByUserID,
			},
			OperatorID:   operatorID,
			OperatorName: operatorName,
		}
		if req.GRNDate != nil {
			audit.Metadata["grn_date"] = req.GRNDate.Format("2006-01-02")
		}
		if err := tx.Create(audit).Error; err != nil {
			return err
		}

		result.GRNNumber = grnNumber
		result.NewPOStatus = newStatus
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// recomputePOStatus derives the order status from its items: completed when
// every item is fully received, partially_received when anything has
// arrived, otherwise unchanged.
func recomputePOStatus(current string, items []entity.POItem) string {
	if len(items) == 0 {
		return current
	}
	allReceived := true
	anyReceived := false
	for i := range items {
		if items[i].Status != entity.POItemStatusReceived {
			allReceived = false
		}
		if items[i].ReceivedQty > 0 {
			anyReceived = true
		}
	}
	switch {
	case allReceived:
		return entity.POStatusCompleted
	case anyReceived:
		return entity.POStatusPartial
	default:
		return current
	}
}

// nextGRNNumber mints GRN-{yyyymmdd}-{seq} from the count of GRN audit rows
// written today. GRNs against the same PO serialize on the PO row lock;
// across different POs the sequence is best-effort.
func nextGRNNumber(tx *gorm.DB) (string, error) {
	today := time.Now().Format("20060102")
	startOfDay, _ := time.ParseInLocation("20060102", today, time.Local)

	var n int64
	err := tx.Model(&entity.ActivityLog{}).
		Where("action = ? AND created_at >= ?", entity.ActionGRNReceive, startOfDay).
		Count(&n).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("GRN-%s-%04d", today, n+1), nil
}
