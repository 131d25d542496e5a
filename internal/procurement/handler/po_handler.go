package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/service"
	"github.com/xuri/excelize/v2"
)

// POHandler purchase order endpoints.
type POHandler struct {
	svc      *service.ProcurementService
	approval *service.ApprovalService
}

func NewPOHandler(svc *service.ProcurementService, approval *service.ApprovalService) *POHandler {
	return &POHandler{svc: svc, approval: approval}
}

// ListPOs
// GET /api/v1/purchase-orders?supplier_id=&site_id=&status=&search=
func (h *POHandler) ListPOs(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"supplier_id": c.Query("supplier_id"),
		"site_id":     c.Query("site_id"),
		"status":      c.Query("status"),
		"search":      c.Query("search"),
	}

	items, total, err := h.svc.ListPOs(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}
	paginate(c, items, page, pageSize, total)
}

// GetPO
// GET /api/v1/purchase-orders/:id
func (h *POHandler) GetPO(c *gin.Context) {
	id := c.Param("id")
	po, err := h.svc.GetPO(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, po)
}

// ListItems
// GET /api/v1/purchase-orders/:id/items
func (h *POHandler) ListItems(c *gin.Context) {
	id := c.Param("id")
	items, err := h.svc.ListPOItems(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, items)
}

// CreatePO
// POST /api/v1/purchase-orders
func (h *POHandler) CreatePO(c *gin.Context) {
	var req service.CreatePORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	po, err := h.svc.CreatePO(c.Request.Context(), GetUserID(c), GetUserName(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, po)
}

// ReplacePO replaces the header and item set atomically.
// PUT /api/v1/purchase-orders/:id
func (h *POHandler) ReplacePO(c *gin.Context) {
	id := c.Param("id")
	var req service.ReplacePORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	po, err := h.svc.ReplacePO(c.Request.Context(), id, GetUserID(c), GetUserName(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, po)
}

// DeletePO
// DELETE /api/v1/purchase-orders/:id
func (h *POHandler) DeletePO(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeletePO(c.Request.Context(), id, GetUserID(c), GetUserName(c)); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, nil)
}

// SubmitPO
// POST /api/v1/purchase-orders/:id/submit
func (h *POHandler) SubmitPO(c *gin.Context) {
	po, err := h.approval.SubmitPO(c.Request.Context(), c.Param("id"), GetUserID(c), GetUserName(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, po)
}

// ApprovePO
// POST /api/v1/purchase-orders/:id/approve
func (h *POHandler) ApprovePO(c *gin.Context) {
	po, err := h.approval.ApprovePO(c.Request.Context(), c.Param("id"), GetUserID(c), GetUserName(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, po)
}

// RejectPO
// POST /api/v1/purchase-orders/:id/reject
func (h *POHandler) RejectPO(c *gin.Context) {
	var body service.RejectReason
	// body is optional
	_ = c.ShouldBindJSON(&body)

	po, err := h.approval.RejectPO(c.Request.Context(), c.Param("id"), GetUserID(c), GetUserName(c), body.Reason)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, po)
}

var poExportHeaders = []string{
	"PO Code", "Supplier", "Site", "Status", "Currency",
	"Subtotal", "Tax", "Total", "Created By", "Created At",
}

// ExportPOs streams the filtered PO list as xlsx.
// GET /api/v1/purchase-orders/export
func (h *POHandler) ExportPOs(c *gin.Context) {
	filters := map[string]string{
		"supplier_id": c.Query("supplier_id"),
		"site_id":     c.Query("site_id"),
		"status":      c.Query("status"),
		"search":      c.Query("search"),
	}

	pos, _, err := h.svc.ListPOs(c.Request.Context(), 1, 1000, filters)
	if err != nil {
		RespondError(c, err)
		return
	}

	f := excelize.NewFile()
	sheet := "Purchase Orders"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, header := range poExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, po := range pos {
		row := rowIdx + 2
		supplierName := ""
		if po.Supplier != nil {
			supplierName = po.Supplier.Name
		}
		siteID := ""
		if po.SiteID != nil {
			siteID = *po.SiteID
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), po.POCode)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), supplierName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), siteID)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), po.Status)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), po.Currency)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), po.Subtotal)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), po.TaxAmount)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), po.TotalAmount)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), po.CreatedBy)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), po.CreatedAt.Format("2006-01-02"))
	}

	filename := fmt.Sprintf("purchase-orders-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}
