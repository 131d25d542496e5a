package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/entity"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/repository"
)

// QuoteService client quote CRUD; workflow lives in ApprovalService.
type QuoteService struct {
	repo *repository.QuoteRepository
}

func NewQuoteService(repo *repository.QuoteRepository) *QuoteService {
	return &QuoteService{repo: repo}
}

type CreateQuoteRequest struct {
	ClientName  string  `json:"client_name" binding:"required"`
	SiteID      *string `json:"site_id"`
	TotalAmount float64 `json:"total_amount"`
	Currency    string  `json:"currency"`
	Notes       string  `json:"notes"`
}

type UpdateQuoteRequest struct {
	ClientName  *string  `json:"client_name"`
	SiteID      *string  `json:"site_id"`
	TotalAmount *float64 `json:"total_amount"`
	Notes       *string  `json:"notes"`
}

func (s *QuoteService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.ClientQuote, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *QuoteService) Get(ctx context.Context, id string) (*entity.ClientQuote, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *QuoteService) Create(ctx context.Context, userID string, req *CreateQuoteRequest) (*entity.ClientQuote, error) {
	code, err := s.repo.GenerateCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate quote code: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	quote := &entity.ClientQuote{
		ID:          uuid.New().String()[:32],
		QuoteCode:   code,
		ClientName:  req.ClientName,
		SiteID:      req.SiteID,
		Status:      entity.POStatusDraft,
		TotalAmount: req.TotalAmount,
		Currency:    currency,
		CreatedBy:   userID,
		Notes:       req.Notes,
	}

	if err := s.repo.Create(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

// Update edits a quote that has not entered the workflow yet.
func (s *QuoteService) Update(ctx context.Context, id string, req *UpdateQuoteRequest) (*entity.ClientQuote, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.Status != entity.POStatusDraft {
		return nil, &InvalidStateError{
			EntityType: "quote",
			EntityID:   quote.QuoteCode,
			Status:     quote.Status,
			Action:     "edit",
		}
	}

	if req.ClientName != nil {
		quote.ClientName = *req.ClientName
	}
	if req.SiteID != nil {
		quote.SiteID = req.SiteID
	}
	if req.TotalAmount != nil {
		quote.TotalAmount = *req.TotalAmount
	}
	if req.Notes != nil {
		quote.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}
