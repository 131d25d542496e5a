package entity

import "time"

// ClientQuote is a priced offer issued to a client. It shares the
// submit/approve/reject workflow with purchase orders and requisitions.
type ClientQuote struct {
	ID         string  `json:"id" gorm:"primaryKey;size:32"`
	QuoteCode  string  `json:"quote_code" gorm:"size:32;uniqueIndex;not null"`
	ClientName string  `json:"client_name" gorm:"size:200;not null"`
	SiteID     *string `json:"site_id" gorm:"size:32;index"`
	Status     string  `json:"status" gorm:"size:30;default:draft"` // draft/pending_approval/approved/rejected

	TotalAmount float64 `json:"total_amount" gorm:"type:decimal(15,2);default:0"`
	Currency    string  `json:"currency" gorm:"size:10;default:USD"`

	CreatedBy  string     `json:"created_by" gorm:"size:32"`
	ApprovedBy *string    `json:"approved_by" gorm:"size:32"`
	ApprovedAt *time.Time `json:"approved_at"`

	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Site *Site `json:"site,omitempty" gorm:"foreignKey:SiteID"`
}

func (ClientQuote) TableName() string {
	return "client_quotes"
}
