package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/repository"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/service"
)

// Handlers bundles the HTTP layer.
type Handlers struct {
	PO          *POHandler
	GRN         *GRNHandler
	Quote       *QuoteHandler
	Requisition *RequisitionHandler
	Supplier    *SupplierHandler
	Site        *SiteHandler
	User        *UserHandler
	Dashboard   *DashboardHandler
}

func NewHandlers(svcs *service.Services, activityRepo *repository.ActivityLogRepository) *Handlers {
	return &Handlers{
		PO:          NewPOHandler(svcs.Procurement, svcs.Approval),
		GRN:         NewGRNHandler(svcs.GRN),
		Quote:       NewQuoteHandler(svcs.Quote, svcs.Approval),
		Requisition: NewRequisitionHandler(svcs.Requisition, svcs.Approval),
		Supplier:    NewSupplierHandler(svcs.Supplier),
		Site:        NewSiteHandler(svcs.Site),
		User:        NewUserHandler(svcs.User),
		Dashboard:   NewDashboardHandler(svcs.Dashboard, activityRepo),
	}
}

// === Response helpers ===

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Details string      `json:"details,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// InternalErrorDetail is for transaction/commit failures: the message stays
// human-readable and the raw cause travels in details.
func InternalErrorDetail(c *gin.Context, message, details string) {
	c.JSON(500, Response{
		Code:    50000,
		Message: message,
		Details: details,
	})
}

// RespondError maps the service error taxonomy onto HTTP statuses:
// not-found 404, validation/state/over-receipt 400, everything else 500.
func RespondError(c *gin.Context, err error) {
	var (
		validationErr *service.ValidationError
		stateErr      *service.InvalidStateError
		receiptErr    *service.OverReceiptError
	)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, err.Error())
	case errors.As(err, &validationErr),
		errors.As(err, &stateErr),
		errors.As(err, &receiptErr):
		BadRequest(c, err.Error())
	default:
		InternalErrorDetail(c, "request failed", err.Error())
	}
}

func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

func GetUserName(c *gin.Context) string {
	userName, _ := c.Get("user_name")
	if name, ok := userName.(string); ok {
		return name
	}
	return ""
}

func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}

func paginate(c *gin.Context, items interface{}, page, pageSize int, total int64) {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	Success(c, ListResponse{
		Items: items,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages,
		},
	})
}
