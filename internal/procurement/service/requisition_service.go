package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/entity"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/repository"
)

// RequisitionService requisition CRUD; workflow lives in ApprovalService.
type RequisitionService struct {
	repo *repository.RequisitionRepository
}

func NewRequisitionService(repo *repository.RequisitionRepository) *RequisitionService {
	return &RequisitionService{repo: repo}
}

type CreateRequisitionRequest struct {
	SiteID      *string `json:"site_id"`
	Purpose     string  `json:"purpose" binding:"required"`
	TotalAmount float64 `json:"total_amount"`
	Currency    string  `json:"currency"`
	Notes       string  `json:"notes"`
}

type UpdateRequisitionRequest struct {
	SiteID      *string  `json:"site_id"`
	Purpose     *string  `json:"purpose"`
	TotalAmount *float64 `json:"total_amount"`
	Notes       *string  `json:"notes"`
}

func (s *RequisitionService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Requisition, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *RequisitionService) Get(ctx context.Context, id string) (*entity.Requisition, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *RequisitionService) Create(ctx context.Context, userID string, req *CreateRequisitionRequest) (*entity.Requisition, error) {
	code, err := s.repo.GenerateCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate requisition code: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	requisition := &entity.Requisition{
		ID:          uuid.New().String()[:32],
		ReqCode:     code,
		RequestedBy: userID,
		SiteID:      req.SiteID,
		Purpose:     req.Purpose,
		Status:      entity.POStatusDraft,
		TotalAmount: req.TotalAmount,
		Currency:    currency,
		Notes:       req.Notes,
	}

	if err := s.repo.Create(ctx, requisition); err != nil {
		return nil, err
	}
	return requisition, nil
}

func (s *RequisitionService) Update(ctx context.Context, id string, req *UpdateRequisitionRequest) (*entity.Requisition, error) {
	requisition, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if requisition.Status != entity.POStatusDraft {
		return nil, &InvalidStateError{
			EntityType: "requisition",
			EntityID:   requisition.ReqCode,
			Status:     requisition.Status,
			Action:     "edit",
		}
	}

	if req.SiteID != nil {
		requisition.SiteID = req.SiteID
	}
	if req.Purpose != nil {
		requisition.Purpose = *req.Purpose
	}
	if req.TotalAmount != nil {
		requisition.TotalAmount = *req.TotalAmount
	}
	if req.Notes != nil {
		requisition.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, requisition); err != nil {
		return nil, err
	}
	return requisition, nil
}
