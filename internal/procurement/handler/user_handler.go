package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// ListUsers GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"role":    c.Query("role"),
		"status":  c.Query("status"),
		"site_id": c.Query("site_id"),
		"search":  c.Query("search"),
	}

	users, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}
	paginate(c, users, page, pageSize, total)
}

// GetUser GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, user)
}

// CreateUser POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, user)
}

// UpdateUser PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, user)
}

// DeleteUser DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, nil)
}
