package entity

import "time"

// User account. Authentication happens at the middleware; this row exists
// for creator/approver/receiver references and the user admin screens.
type User struct {
	ID     string `json:"id" gorm:"primaryKey;size:32"`
	Name   string `json:"name" gorm:"size:100;not null"`
	Email  string `json:"email" gorm:"size:200;uniqueIndex;not null"`
	Role   string `json:"role" gorm:"size:30;default:requester"` // admin/approver/requester
	Status string `json:"status" gorm:"size:20;default:active"`

	SiteID *string `json:"site_id" gorm:"size:32"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

const (
	RoleAdmin     = "admin"
	RoleApprover  = "approver"
	RoleRequester = "requester"
)
