package entity

import "time"

// PurchaseOrder is a commitment to buy the listed items from a supplier.
type PurchaseOrder struct {
	ID         string  `json:"id" gorm:"primaryKey;size:32"`
	POCode     string  `json:"po_code" gorm:"size:32;uniqueIndex;not null"`
	SupplierID string  `json:"supplier_id" gorm:"size:32;not null;index"`
	SiteID     *string `json:"site_id" gorm:"size:32;index"`
	Status     string  `json:"status" gorm:"size:30;default:draft"` // draft/pending_approval/approved/rejected/partially_received/completed

	// Amounts
	Subtotal    float64 `json:"subtotal" gorm:"type:decimal(15,2);default:0"`
	TaxAmount   float64 `json:"tax_amount" gorm:"type:decimal(15,2);default:0"`
	TotalAmount float64 `json:"total_amount" gorm:"type:decimal(15,2);default:0"`
	Currency    string  `json:"currency" gorm:"size:10;default:USD"`

	// Workflow
	CreatedBy       string     `json:"created_by" gorm:"size:32"`
	ApprovedBy      *string    `json:"approved_by" gorm:"size:32"`
	ApprovedAt      *time.Time `json:"approved_at"`
	RejectionReason *string    `json:"rejection_reason" gorm:"size:500"`

	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Items    []POItem  `json:"items,omitempty" gorm:"foreignKey:POID"`
	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Site     *Site     `json:"site,omitempty" gorm:"foreignKey:SiteID"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PO status
const (
	POStatusDraft     = "draft"
	POStatusPending   = "pending_approval"
	POStatusApproved  = "approved"
	POStatusRejected  = "rejected"
	POStatusPartial   = "partially_received"
	POStatusCompleted = "completed"
)

// ValidPOTransitions lists the reachable statuses from each PO status.
// approved/partially_received advance only through GRN processing;
// rejected and completed are terminal.
var ValidPOTransitions = map[string][]string{
	POStatusDraft:     {POStatusPending},
	POStatusPending:   {POStatusApproved, POStatusRejected},
	POStatusApproved:  {POStatusPartial, POStatusCompleted},
	POStatusPartial:   {POStatusPartial, POStatusCompleted},
	POStatusRejected:  {},
	POStatusCompleted: {},
}

// CanTransition reports whether a PO may move from one status to another.
func CanTransition(from, to string) bool {
	for _, s := range ValidPOTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// POItem is one line of a purchase order. Items are owned by their order
// and are deleted and recreated together when the order is edited.
type POItem struct {
	ID          string  `json:"id" gorm:"primaryKey;size:32"`
	POID        string  `json:"po_id" gorm:"size:32;not null;index"`
	PartNumber  string  `json:"part_number" gorm:"size:50"`
	Description string  `json:"description" gorm:"size:200;not null"`
	Category    string  `json:"category" gorm:"size:50"`

	Quantity  float64 `json:"quantity" gorm:"type:decimal(10,2);not null"`
	Unit      string  `json:"unit" gorm:"size:20;default:pcs"`
	UnitPrice float64 `json:"unit_price" gorm:"type:decimal(12,4);default:0"`
	LineTotal float64 `json:"line_total" gorm:"type:decimal(15,2);default:0"`

	// Receiving. ReceivedQty never exceeds Quantity.
	ReceivedQty float64 `json:"received_qty" gorm:"type:decimal(10,2);default:0"`
	Status      string  `json:"status" gorm:"size:20;default:pending"` // pending/partial/received

	SortOrder int       `json:"sort_order" gorm:"default:0"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (POItem) TableName() string {
	return "po_items"
}

// POItem status
const (
	POItemStatusPending  = "pending"
	POItemStatusPartial  = "partial"
	POItemStatusReceived = "received"
)

// Outstanding returns the quantity still to be received for this line.
func (i POItem) Outstanding() float64 {
	return i.Quantity - i.ReceivedQty
}
