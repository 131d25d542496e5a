package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/entity"
	"gorm.io/gorm"
)

// ActivityLogRepository data access for the append-only audit trail.
type ActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

func (r *ActivityLogRepository) Create(ctx context.Context, log *entity.ActivityLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()[:32]
	}
	return r.db.WithContext(ctx).Create(log).Error
}

// FindAll lists audit rows, optionally scoped to one entity.
func (r *ActivityLogRepository) FindAll(ctx context.Context, entityType, entityID string, page, pageSize int) ([]entity.ActivityLog, int64, error) {
	var items []entity.ActivityLog
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ActivityLog{})
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}
	if entityID != "" {
		query = query.Where("entity_id = ?", entityID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// LogActivity writes a best-effort audit row outside any transaction.
// Errors are ignored; audit rows that must commit with a mutation are
// created through the mutation's own transaction instead.
func (r *ActivityLogRepository) LogActivity(ctx context.Context, entityType, entityID, entityCode, action, fromStatus, toStatus, content, operatorID, operatorName string) {
	log := &entity.ActivityLog{
		ID:           uuid.New().String()[:32],
		EntityType:   entityType,
		EntityID:     entityID,
		EntityCode:   entityCode,
		Action:       action,
		FromStatus:   fromStatus,
		ToStatus:     toStatus,
		Content:      content,
		OperatorID:   operatorID,
		OperatorName: operatorName,
	}
	r.db.WithContext(ctx).Create(log)
}
