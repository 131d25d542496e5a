package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/entity"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services bundles the procurement business layer.
type Services struct {
	Procurement *ProcurementService
	GRN         *GRNService
	Approval    *ApprovalService
	Dashboard   *DashboardService
	Supplier    *SupplierService
	Site        *SiteService
	User        *UserService
	Quote       *QuoteService
	Requisition *RequisitionService
}

// NewServices wires every service to the repositories and shared handles.
func NewServices(repos *repository.Repositories, db *gorm.DB, rdb *redis.Client) *Services {
	return &Services{
		Procurement: NewProcurementService(repos.PO, repos.ActivityLog, db),
		GRN:         NewGRNService(db),
		Approval:    NewApprovalService(repos),
		Dashboard:   NewDashboardService(db, rdb),
		Supplier:    NewSupplierService(repos.Supplier, repos.ActivityLog),
		Site:        NewSiteService(repos.Site),
		User:        NewUserService(repos.User),
		Quote:       NewQuoteService(repos.Quote),
		Requisition: NewRequisitionService(repos.Requisition),
	}
}

// === Suppliers ===

type SupplierService struct {
	repo         *repository.SupplierRepository
	activityRepo *repository.ActivityLogRepository
}

func NewSupplierService(repo *repository.SupplierRepository, activityRepo *repository.ActivityLogRepository) *SupplierService {
	return &SupplierService{repo: repo, activityRepo: activityRepo}
}

type CreateSupplierRequest struct {
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
	PaymentTerms string `json:"payment_terms"`
}

type UpdateSupplierRequest struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	Status       *string `json:"status"`
	ContactName  *string `json:"contact_name"`
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
	Address      *string `json:"address"`
	PaymentTerms *string `json:"payment_terms"`
}

func (s *SupplierService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Supplier, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *SupplierService) Get(ctx context.Context, id string) (*entity.Supplier, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SupplierService) Create(ctx context.Context, userID string, req *CreateSupplierRequest) (*entity.Supplier, error) {
	code, err := s.repo.GenerateCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate supplier code: %w", err)
	}

	supplier := &entity.Supplier{
		ID:           uuid.New().String()[:32],
		Code:         code,
		Name:         req.Name,
		Category:     req.Category,
		Status:       entity.SupplierStatusActive,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
		PaymentTerms: req.PaymentTerms,
		CreatedBy:    userID,
	}

	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) Update(ctx context.Context, id string, req *UpdateSupplierRequest) (*entity.Supplier, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.Category != nil {
		supplier.Category = *req.Category
	}
	if req.Status != nil {
		supplier.Status = *req.Status
	}
	if req.ContactName != nil {
		supplier.ContactName = *req.ContactName
	}
	if req.ContactEmail != nil {
		supplier.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		supplier.ContactPhone = *req.ContactPhone
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	if req.PaymentTerms != nil {
		supplier.PaymentTerms = *req.PaymentTerms
	}

	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// === Sites ===

type SiteService struct {
	repo *repository.SiteRepository
}

func NewSiteService(repo *repository.SiteRepository) *SiteService {
	return &SiteService{repo: repo}
}

type SiteRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

func (s *SiteService) List(ctx context.Context) ([]entity.Site, error) {
	return s.repo.FindAll(ctx)
}

func (s *SiteService) Get(ctx context.Context, id string) (*entity.Site, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SiteService) Create(ctx context.Context, req *SiteRequest) (*entity.Site, error) {
	status := req.Status
	if status == "" {
		status = "active"
	}
	site := &entity.Site{
		ID:       uuid.New().String()[:32],
		Code:     req.Code,
		Name:     req.Name,
		Location: req.Location,
		Status:   status,
	}
	if err := s.repo.Create(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *SiteService) Update(ctx context.Context, id string, req *SiteRequest) (*entity.Site, error) {
	site, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	site.Code = req.Code
	site.Name = req.Name
	site.Location = req.Location
	if req.Status != "" {
		site.Status = req.Status
	}
	if err := s.repo.Update(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *SiteService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// === Users ===

type UserService struct {
	repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

type CreateUserRequest struct {
	Name   string  `json:"name" binding:"required"`
	Email  string  `json:"email" binding:"required,email"`
	Role   string  `json:"role"`
	SiteID *string `json:"site_id"`
}

type UpdateUserRequest struct {
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	Status *string `json:"status"`
	SiteID *string `json:"site_id"`
}

func (s *UserService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.User, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, req *CreateUserRequest) (*entity.User, error) {
	role := req.Role
	if role == "" {
		role = entity.RoleRequester
	}
	user := &entity.User{
		ID:     uuid.New().String()[:32],
		Name:   req.Name,
		Email:  req.Email,
		Role:   role,
		Status: "active",
		SiteID: req.SiteID,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, req *UpdateUserRequest) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.SiteID != nil {
		user.SiteID = req.SiteID
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
