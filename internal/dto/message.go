package dto

// ── 留言模块 DTO ──

// PostMessageRequest 发送留言请求
type PostMessageRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// MessageResponse 留言响应
type MessageResponse struct {
	ID            string `json:"id"`
	AppointmentID string `json:"appointment_id"`
	SenderID      string `json:"sender_id"`
	SenderName    string `json:"sender_name"`
	Content       string `json:"content"`
	Timestamp     string `json:"timestamp"`
}
