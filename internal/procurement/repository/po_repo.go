package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/entity"
	"gorm.io/gorm"
)

// PORepository data access for purchase orders and their items.
type PORepository struct {
	db *gorm.DB
}

func NewPORepository(db *gorm.DB) *PORepository {
	return &PORepository{db: db}
}

// FindAll lists purchase orders with optional filters and pagination.
func (r *PORepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseOrder, int64, error) {
	var items []entity.PurchaseOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{})

	if supplierID := filters["supplier_id"]; supplierID != "" {
		query = query.Where("supplier_id = ?", supplierID)
	}
	if siteID := filters["site_id"]; siteID != "" {
		query = query.Where("site_id = ?", siteID)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("po_code ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Supplier").
		Preload("Items").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindByID loads a purchase order with its items in line order.
func (r *PORepository) FindByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Site").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &po, nil
}

// ListItems returns the line items of a purchase order.
func (r *PORepository) ListItems(ctx context.Context, poID string) ([]entity.POItem, error) {
	var items []entity.POItem
	err := r.db.WithContext(ctx).
		Where("po_id = ?", poID).
		Order("sort_order ASC").
		Find(&items).Error
	return items, err
}

func (r *PORepository) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(po).Error
}

func (r *PORepository) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	return r.db.WithContext(ctx).Save(po).Error
}

// Delete removes a purchase order together with its items.
func (r *PORepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("po_id = ?", id).Delete(&entity.POItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.PurchaseOrder{}).Error
	})
}

// GenerateCode produces the next PO code, PO-{year}-{seq}.
func (r *PORepository) GenerateCode(ctx context.Context) (string, error) {
	year := time.Now().Format("2006")
	prefix := fmt.Sprintf("PO-%s-", year)

	var maxCode string
	err := r.db.WithContext(ctx).
		Model(&entity.PurchaseOrder{}).
		Select("COALESCE(MAX(po_code), '')").
		Where("po_code LIKE ?", prefix+"%").
		Scan(&maxCode).Error
	if err != nil {
		return "", err
	}

	var seq int
	if maxCode != "" {
		fmt.Sscanf(maxCode, "PO-"+year+"-%04d", &seq)
	}
	seq++
	return fmt.Sprintf("PO-%s-%04d", year, seq), nil
}
