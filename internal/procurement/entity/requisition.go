package entity

import "time"

// Requisition is an internal request to purchase, raised before a PO exists.
type Requisition struct {
	ID          string  `json:"id" gorm:"primaryKey;size:32"`
	ReqCode     string  `json:"req_code" gorm:"size:32;uniqueIndex;not null"`
	RequestedBy string  `json:"requested_by" gorm:"size:32;not null"`
	SiteID      *string `json:"site_id" gorm:"size:32;index"`
	Purpose     string  `json:"purpose" gorm:"size:500"`
	Status      string  `json:"status" gorm:"size:30;default:draft"` // draft/pending_approval/approved/rejected

	TotalAmount float64 `json:"total_amount" gorm:"type:decimal(15,2);default:0"`
	Currency    string  `json:"currency" gorm:"size:10;default:USD"`

	ApprovedBy *string    `json:"approved_by" gorm:"size:32"`
	ApprovedAt *time.Time `json:"approved_at"`

	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Site *Site `json:"site,omitempty" gorm:"foreignKey:SiteID"`
}

func (Requisition) TableName() string {
	return "requisitions"
}
