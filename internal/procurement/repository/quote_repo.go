package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/entity"
	"gorm.io/gorm"
)

// QuoteRepository data access for client quotes.
type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.ClientQuote, int64, error) {
	var items []entity.ClientQuote
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ClientQuote{})

	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if siteID := filters["site_id"]; siteID != "" {
		query = query.Where("site_id = ?", siteID)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("quote_code ILIKE ? OR client_name ILIKE ?", "%"+search+"%", "%"+search+"%")
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

func (r *QuoteRepository) FindByID(ctx context.Context, id string) (*entity.ClientQuote, error) {
	var quote entity.ClientQuote
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&quote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &quote, nil
}

func (r *QuoteRepository) Create(ctx context.Context, quote *entity.ClientQuote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *QuoteRepository) Update(ctx context.Context, quote *entity.ClientQuote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

// GenerateCode produces the next quote code, CQ-{year}-{seq}.
func (r *QuoteRepository) GenerateCode(ctx context.Context) (string, error) {
	year := time.Now().Format("2006")
	prefix := fmt.Sprintf("CQ-%s-", year)

	var maxCode string
	err := r.db.WithContext(ctx).
		Model(&entity.ClientQuote{}).
		Select("COALESCE(MAX(quote_code), '')").
		Where("quote_code LIKE ?", prefix+"%").
		Scan(&maxCode).Error
	if err != nil {
		return "", err
	}

	var seq int
	if maxCode != "" {
		fmt.Sscanf(maxCode, "CQ-"+year+"-%04d", &seq)
	}
	seq++
	return fmt.Sprintf("CQ-%s-%04d", year, seq), nil
}
