package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONB jsonb column type
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan JSONB: %v", value)
	}
	return json.Unmarshal(bytes, j)
}

// ActivityLog is an append-only audit record. Rows are written once per
// committed GRN or approval action and never mutated.
type ActivityLog struct {
	ID         string `json:"id" gorm:"primaryKey;size:32"`
	EntityType string `json:"entity_type" gorm:"size:50;not null;index:idx_activity_entity"` // po/quote/requisition/supplier/site/user
	EntityID   string `json:"entity_id" gorm:"size:32;not null;index:idx_activity_entity"`
	EntityCode string `json:"entity_code" gorm:"size:50"`

	Action     string `json:"action" gorm:"size:50;not null"` // create/submit/approve/reject/grn_receive/update/delete
	FromStatus string `json:"from_status" gorm:"size:30"`
	ToStatus   string `json:"to_status" gorm:"size:30"`

	Content  string `json:"content" gorm:"type:text"`
	Metadata JSONB  `json:"metadata" gorm:"type:jsonb"`

	OperatorID   string    `json:"operator_id" gorm:"size:32"`
	OperatorName string    `json:"operator_name" gorm:"size:100"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

// Activity actions
const (
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionSubmit     = "submit"
	ActionApprove    = "approve"
	ActionReject     = "reject"
	ActionGRNReceive = "grn_receive"
)
