package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/dto"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/service"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/pkg/response"
)

// SlotHandler 空闲时段模块 HTTP 处理器
type SlotHandler struct {
	slotSvc service.SlotService
}

// NewSlotHandler 创建 SlotHandler
func NewSlotHandler(slotSvc service.SlotService) *SlotHandler {
	return &SlotHandler{slotSvc: slotSvc}
}

// Create 教师发布空闲时段
// POST /api/v1/slots
func (h *SlotHandler) Create(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.slotSvc.Create(c.Request.Context(), &req, teacherID)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			response.BadRequest(c, 10001, "所有字段均为必填")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// ListByTeacher 查询某教师发布的空闲时段
// GET /api/v1/slots?teacher_id=xxx
func (h *SlotHandler) ListByTeacher(c *gin.Context) {
	var req dto.SlotListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "teacher_id 不能为空")
		return
	}

	list, err := h.slotSvc.ListByTeacher(c.Request.Context(), req.TeacherID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// Delete 教师删除自己发布的时段
// DELETE /api/v1/slots/:id
func (h *SlotHandler) Delete(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.slotSvc.Delete(c.Request.Context(), c.Param("id"), teacherID); err != nil {
		switch {
		case errors.Is(err, service.ErrSlotNotFound):
			response.NotFound(c, 40501, "时段不存在")
		case errors.Is(err, service.ErrNotOwner):
			response.Forbidden(c, 40301, "无权操作该记录")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
