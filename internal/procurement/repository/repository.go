package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories bundles the procurement data access layer.
type Repositories struct {
	PO          *PORepository
	Quote       *QuoteRepository
	Requisition *RequisitionRepository
	Supplier    *SupplierRepository
	Site        *SiteRepository
	User        *UserRepository
	ActivityLog *ActivityLogRepository
}

// NewRepositories wires every repository to the shared gorm handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		PO:          NewPORepository(db),
		Quote:       NewQuoteRepository(db),
		Requisition: NewRequisitionRepository(db),
		Supplier:    NewSupplierRepository(db),
		Site:        NewSiteRepository(db),
		User:        NewUserRepository(db),
		ActivityLog: NewActivityLogRepository(db),
	}
}
