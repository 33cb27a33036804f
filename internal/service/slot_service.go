package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/dto"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/model"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/repository"
)

// ── 空闲时段模块业务错误 ──

var (
	ErrSlotNotFound = errors.New("时段不存在")
)

// SlotService 空闲时段业务接口
// 展示性登记：发布与预约互不约束，时段之间也不做重叠校验
type SlotService interface {
	Create(ctx context.Context, req *dto.CreateSlotRequest, teacherID string) (*dto.SlotResponse, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]dto.SlotResponse, error)
	Delete(ctx context.Context, id string, actorID string) error
}

type slotService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSlotService 创建 SlotService 实例
func NewSlotService(repo *repository.Repository, logger *zap.Logger) SlotService {
	return &slotService{repo: repo, logger: logger}
}

func (s *slotService) Create(ctx context.Context, req *dto.CreateSlotRequest, teacherID string) (*dto.SlotResponse, error) {
	if req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		return nil, ErrValidation
	}

	slot := &model.AvailableSlot{
		TeacherID: teacherID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := s.repo.Slot.Create(ctx, slot); err != nil {
		s.logger.Error("创建时段失败", zap.Error(err))
		return nil, err
	}

	return toSlotResponse(slot), nil
}

func (s *slotService) ListByTeacher(ctx context.Context, teacherID string) ([]dto.SlotResponse, error) {
	slots, err := s.repo.Slot.ListByTeacher(ctx, teacherID)
	if err != nil {
		s.logger.Error("查询时段列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		result = append(result, *toSlotResponse(&slots[i]))
	}
	return result, nil
}

func (s *slotService) Delete(ctx context.Context, id string, actorID string) error {
	slot, err := s.repo.Slot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("查询时段失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 仅归属教师可删除
	if slot.TeacherID != actorID {
		return ErrNotOwner
	}

	if err := s.repo.Slot.Delete(ctx, id); err != nil {
		s.logger.Error("删除时段失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

func toSlotResponse(slot *model.AvailableSlot) *dto.SlotResponse {
	return &dto.SlotResponse{
		ID:        slot.SlotID,
		TeacherID: slot.TeacherID,
		Date:      slot.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
	}
}
