package model

// Message 预约留言表 — 对应 messages
// 只追加：不提供编辑和单条删除；预约被取消时随预约一并删除
type Message struct {
	MessageID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"message_id"`
	AppointmentID string `gorm:"type:uuid;not null;index:idx_messages_appointment" json:"appointment_id"`
	SenderID      string `gorm:"type:uuid;not null"                             json:"sender_id"`
	SenderName    string `gorm:"type:varchar(100);not null"                     json:"sender_name"`
	Content       string `gorm:"type:text;not null"                             json:"content"`
	BaseModel
}

// TableName 指定表名
func (Message) TableName() string { return "messages" }
