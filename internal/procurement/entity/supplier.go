package entity

import "time"

// Supplier record kept thin: the procurement core only references it.
type Supplier struct {
	ID        string `json:"id" gorm:"primaryKey;size:32"`
	Code      string `json:"code" gorm:"size:32;uniqueIndex;not null"`
	Name      string `json:"name" gorm:"size:200;not null"`
	Category  string `json:"category" gorm:"size:50"`
	Status    string `json:"status" gorm:"size:20;default:active"` // active/inactive

	ContactName  string `json:"contact_name" gorm:"size:100"`
	ContactEmail string `json:"contact_email" gorm:"size:200"`
	ContactPhone string `json:"contact_phone" gorm:"size:50"`
	Address      string `json:"address" gorm:"size:500"`
	PaymentTerms string `json:"payment_terms" gorm:"size:100"`

	CreatedBy string    `json:"created_by" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

const (
	SupplierStatusActive   = "active"
	SupplierStatusInactive = "inactive"
)
