package service

import (
	"context"
	"time"

	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/entity"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/repository"
)

// ApprovalService runs the submit/approve/reject workflow. The same state
// machine is instantiated independently for purchase orders, client quotes
// and requisitions: draft -> pending_approval -> approved | rejected, with
// approved and rejected terminal for the workflow.
type ApprovalService struct {
	poRepo       *repository.PORepository
	quoteRepo    *repository.QuoteRepository
	reqRepo      *repository.RequisitionRepository
	activityRepo *repository.ActivityLogRepository
}

func NewApprovalService(repos *repository.Repositories) *ApprovalService {
	return &ApprovalService{
		poRepo:       repos.PO,
		quoteRepo:    repos.Quote,
		reqRepo:      repos.Requisition,
		activityRepo: repos.ActivityLog,
	}
}

// guard returns an InvalidStateError unless the document sits in the status
// the action requires. The error carries enough context for a 400 body.
func guard(entityType, code, status, required, action string) error {
	if status == required {
		return nil
	}
	return &InvalidStateError{
		EntityType: entityType,
		EntityID:   code,
		Status:     status,
		Action:     action,
	}
}

// === Purchase orders ===

func (s *ApprovalService) SubmitPO(ctx context.Context, id, userID, userName string) (*entity.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guard("purchase order", po.POCode, po.Status, entity.POStatusDraft, "submit"); err != nil {
		return nil, err
	}

	po.Status = entity.POStatusPending
	if err := s.poRepo.Update(ctx, po); err != nil {
		return nil, err
	}

	s.activityRepo.LogActivity(ctx, "po", po.ID, po.POCode, entity.ActionSubmit,
		entity.POStatusDraft, po.Status, "", userID, userName)
	return po, nil
}

func (s *ApprovalService) ApprovePO(ctx context.Context, id, userID, userName string) (*entity.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guard("purchase order", po.POCode, po.Status, entity.POStatusPending, "approve"); err != nil {
		return nil, err
	}

	now := time.Now()
	po.Status = entity.POStatusApproved
	po.ApprovedBy = &userID
	po.ApprovedAt = &now
	if err := s.poRepo.Update(ctx, po); err != nil {
		return nil, err
	}

	s.activityRepo.LogActivity(ctx, "po", po.ID, po.POCode, entity.ActionApprove,
		entity.POStatusPending, po.Status, "", userID, userName)
	return po, nil
}

func (s *ApprovalService) RejectPO(ctx context.Context, id, userID, userName, reason string) (*entity.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guard("purchase order", po.POCode, po.Status, entity.POStatusPending, "reject"); err != nil {
		return nil, err
	}

	po.Status = entity.POStatusRejected
	if reason != "" {
		po.RejectionReason = &reason
	}
	if err := s.poRepo.Update(ctx, po); err != nil {
		return nil, err
	}

	s.activityRepo.LogActivity(ctx, "po", po.ID, po.POCode, entity.ActionReject,
		entity.POStatusPending, po.Status, reason, userID, userName)
	return po, nil
}

// === Client quotes ===
// The reject reason is accepted but only reaches the activity log for
// quotes and requisitions; it is not stored on the row. TODO: add a
// rejection_reason column once the quote review screens need it.

func (s *ApprovalService) SubmitQuote(ctx context.Context, id, userID, userName string) (*entity.ClientQuote, error) {
	quote, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guard("quote", quote.QuoteCode, quote.Status, entity.POStatusDraft, "submit"); err != nil {
		return nil, err
	}

	quote.Status = entity.POStatusPending
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}

	s.activityRepo.LogActivity(ctx, "quote", quote.ID, quote.QuoteCode, entity.ActionSubmit,
		entity.POStatusDraft, quote.Status, "", userID, userName)
	return quote, nil
}

func (s *ApprovalService) ApproveQuote(ctx context.Context, id, userID, userName string) (*entity.ClientQuote, error) {
	quote, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guard("quote", quote.QuoteCode, quote.Status, entity.POStatusPending, "approve"); err != nil {
		return nil, err
	}

	now := time.Now()
	quote.Status = entity.POStatusApproved
	quote.ApprovedBy = &userID
	quote.ApprovedAt = &now
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}

	s.activityRepo.LogActivity(ctx, "quote", quote.ID, quote.QuoteCode, entity.ActionApprove,
		entity.POStatusPending, quote.Status, "", userID, userName)
	return quote, nil
}

func (s *ApprovalService) RejectQuote(ctx context.Context, id, userID, userName, reason string) (*entity.ClientQuote, error) {
	quote, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guard("quote", quote.QuoteCode, quote.Status, entity.POStatusPending, "reject"); err != nil {
		return nil, err
	}

	quote.Status = entity.POStatusRejected
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}

	s.activityRepo.LogActivity(ctx, "quote", quote.ID, quote.QuoteCode, entity.ActionReject,
		entity.POStatusPending, quote.Status, reason, userID, userName)
	return quote, nil
}

// === Requisitions ===

func (s *ApprovalService) SubmitRequisition(ctx context.Context, id, userID, userName string) (*entity.Requisition, error) {
	req, err := s.reqRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guard("requisition", req.ReqCode, req.Status, entity.POStatusDraft, "submit"); err != nil {
		return nil, err
	}

	req.Status = entity.POStatusPending
	if err := s.reqRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	s.activityRepo.LogActivity(ctx, "requisition", req.ID, req.ReqCode, entity.ActionSubmit,
		entity.POStatusDraft, req.Status, "", userID, userName)
	return req, nil
}

func (s *ApprovalService) ApproveRequisition(ctx context.Context, id, userID, userName string) (*entity.Requisition, error) {
	req, err := s.reqRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guard("requisition", req.ReqCode, req.Status, entity.POStatusPending, "approve"); err != nil {
		return nil, err
	}

	now := time.Now()
	req.Status = entity.POStatusApproved
	req.ApprovedBy = &userID
	req.ApprovedAt = &now
	if err := s.reqRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	s.activityRepo.LogActivity(ctx, "requisition", req.ID, req.ReqCode, entity.ActionApprove,
		entity.POStatusPending, req.Status, "", userID, userName)
	return req, nil
}

func (s *ApprovalService) RejectRequisition(ctx context.Context, id, userID, userName, reason string) (*entity.Requisition, error) {
	req, err := s.reqRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guard("requisition", req.ReqCode, req.Status, entity.POStatusPending, "reject"); err != nil {
		return nil, err
	}

	req.Status = entity.POStatusRejected
	if err := s.reqRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	s.activityRepo.LogActivity(ctx, "requisition", req.ID, req.ReqCode, entity.ActionReject,
		entity.POStatusPending, req.Status, reason, userID, userName)
	return req, nil
}

// RejectReason is shared by every reject endpoint body.
type RejectReason struct {
	Reason string `json:"reason"`
}
