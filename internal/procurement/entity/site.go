package entity

import "time"

// Site is a delivery/cost location a PO or requisition can be booked against.
type Site struct {
	ID       string `json:"id" gorm:"primaryKey;size:32"`
	Code     string `json:"code" gorm:"size:32;uniqueIndex;not null"`
	Name     string `json:"name" gorm:"size:200;not null"`
	Location string `json:"location" gorm:"size:200"`
	Status   string `json:"status" gorm:"size:20;default:active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Site) TableName() string {
	return "sites"
}
