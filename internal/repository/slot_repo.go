package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/model"
)

// SlotRepository 空闲时段数据访问接口
type SlotRepository interface {
	Create(ctx context.Context, slot *model.AvailableSlot) error
	GetByID(ctx context.Context, id string) (*model.AvailableSlot, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]model.AvailableSlot, error)
	Delete(ctx context.Context, id string) error
}

// slotRepo SlotRepository 的 GORM 实现
type slotRepo struct {
	db *gorm.DB
}

// NewSlotRepo 创建 SlotRepository 实例
func NewSlotRepo(db *gorm.DB) SlotRepository {
	return &slotRepo{db: db}
}

func (r *slotRepo) Create(ctx context.Context, slot *model.AvailableSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *slotRepo) GetByID(ctx context.Context, id string) (*model.AvailableSlot, error) {
	var slot model.AvailableSlot
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepo) ListByTeacher(ctx context.Context, teacherID string) ([]model.AvailableSlot, error) {
	var slots []model.AvailableSlot
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("date ASC, start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("slot_id = ?", id).
		Delete(&model.AvailableSlot{}).Error
}
