package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/entity"
	"gorm.io/gorm"
)

// RequisitionRepository data access for requisitions.
type RequisitionRepository struct {
	db *gorm.DB
}

func NewRequisitionRepository(db *gorm.DB) *RequisitionRepository {
	return &RequisitionRepository{db: db}
}

func (r *RequisitionRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Requisition, int64, error) {
	var items []entity.Requisition
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Requisition{})

	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if siteID := filters["site_id"]; siteID != "" {
		query = query.Where("site_id = ?", siteID)
	}
	if requestedBy := filters["requested_by"]; requestedBy != "" {
		query = query.Where("requested_by = ?", requestedBy)
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

func (r *RequisitionRepository) FindByID(ctx context.Context, id string) (*entity.Requisition, error) {
	var req entity.Requisition
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequisitionRepository) Create(ctx context.Context, req *entity.Requisition) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequisitionRepository) Update(ctx context.Context, req *entity.Requisition) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// GenerateCode produces the next requisition code, RQ-{year}-{seq}.
func (r *RequisitionRepository) GenerateCode(ctx context.Context) (string, error) {
	year := time.Now().Format("2006")
	prefix := fmt.Sprintf("RQ-%s-", year)

	var maxCode string
	err := r.db.WithContext(ctx).
		Model(&entity.Requisition{}).
		Select("COALESCE(MAX(req_code), '')").
		Where("req_code LIKE ?", prefix+"%").
		Scan(&maxCode).Error
	if err != nil {
		return "", err
	}

	var seq int
	if maxCode != "" {
		fmt.Sscanf(maxCode, "RQ-"+year+"-%04d", &seq)
	}
	seq++
	return fmt.Sprintf("RQ-%s-%04d", year, seq), nil
}
