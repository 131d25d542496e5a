package repository

import (
	"context"
	"errors"

	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/entity"
	"gorm.io/gorm"
)

// SiteRepository data access for sites.
type SiteRepository struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

func (r *SiteRepository) FindAll(ctx context.Context) ([]entity.Site, error) {
	var items []entity.Site
	err := r.db.WithContext(ctx).Order("code ASC").Find(&items).Error
	return items, err
}

func (r *SiteRepository) FindByID(ctx context.Context, id string) (*entity.Site, error) {
	var site entity.Site
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&site).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &site, nil
}

func (r *SiteRepository) Create(ctx context.Context, site *entity.Site) error {
	return r.db.WithContext(ctx).Create(site).Error
}

func (r *SiteRepository) Update(ctx context.Context, site *entity.Site) error {
	return r.db.WithContext(ctx).Save(site).Error
}

func (r *SiteRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Site{}).Error
}
