package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/service"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/pkg/response"
)

// AdminHandler 管理员模块 HTTP 处理器
type AdminHandler struct {
	adminSvc service.AdminService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

// ApproveUser 审核通过注册账号
// PUT /api/v1/admin/users/:id/approve
func (h *AdminHandler) ApproveUser(c *gin.Context) {
	result, err := h.adminSvc.ApproveUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 40202, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// DeleteUser 删除用户账号
// DELETE /api/v1/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.adminSvc.DeleteUser(c.Request.Context(), c.Param("id"), actorID); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 40202, "用户不存在")
		case errors.Is(err, service.ErrCannotDeleteSelf):
			response.Conflict(c, 40702, "不能删除当前登录的管理员账号")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// Stats 预约统计概览
// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminSvc.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}
