package dto

// ── 空闲时段模块 DTO ──

// CreateSlotRequest 教师发布空闲时段请求
type CreateSlotRequest struct {
	Date      string `json:"date"       binding:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" binding:"required,datetime=15:04"`
	EndTime   string `json:"end_time"   binding:"required,datetime=15:04"`
}

// SlotListRequest 空闲时段查询参数
type SlotListRequest struct {
	TeacherID string `form:"teacher_id" binding:"required,uuid"`
}

// SlotResponse 空闲时段响应
type SlotResponse struct {
	ID        string `json:"id"`
	TeacherID string `json:"teacher_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
