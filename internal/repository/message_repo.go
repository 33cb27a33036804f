package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/model"
)

// MessageRepository 留言数据访问接口（只追加）
type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	ListByAppointment(ctx context.Context, appointmentID string) ([]model.Message, error)
}

// messageRepo MessageRepository 的 GORM 实现
type messageRepo struct {
	db *gorm.DB
}

// NewMessageRepo 创建 MessageRepository 实例
func NewMessageRepo(db *gorm.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListByAppointment 按时间升序返回某预约的全部留言
func (r *messageRepo) ListByAppointment(ctx context.Context, appointmentID string) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}
