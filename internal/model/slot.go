package model

// AvailableSlot 教师空闲时段表 — 对应 available_slots
// 仅作展示用途：预约不消耗时段，也不校验是否落在时段内
type AvailableSlot struct {
	SlotID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"slot_id"`
	TeacherID string `gorm:"type:uuid;not null;index"                       json:"teacher_id"`
	Date      string `gorm:"type:varchar(10);not null"                      json:"date"`       // YYYY-MM-DD
	StartTime string `gorm:"type:varchar(5);not null"                       json:"start_time"` // HH:MM
	EndTime   string `gorm:"type:varchar(5);not null"                       json:"end_time"`   // HH:MM
	BaseModel
}

// TableName 指定表名
func (AvailableSlot) TableName() string { return "available_slots" }
