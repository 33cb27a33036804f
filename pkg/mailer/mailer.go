package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/config"
)

// Mailer SMTP 邮件发送封装
// 当前仅用于密码重置链接；未配置 SMTP 时降级为仅记录日志
type Mailer struct {
	cfg    *config.MailConfig
	logger *zap.Logger
}

// NewMailer 创建 Mailer 实例
func NewMailer(cfg *config.MailConfig, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// SendPasswordReset 发送密码重置链接
func (m *Mailer) SendPasswordReset(to, resetURL string) error {
	if m.cfg.SMTPHost == "" {
		// 开发环境未配置 SMTP：记录链接便于本地调试
		m.logger.Info("SMTP 未配置，跳过发送密码重置邮件",
			zap.String("to", to),
			zap.String("reset_url", resetURL),
		)
		return nil
	}

	subject := "密码重置"
	body := fmt.Sprintf("请在 30 分钟内通过以下链接重置密码：\r\n\r\n%s\r\n\r\n如非本人操作请忽略本邮件。", resetURL)

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("发送密码重置邮件失败: %w", err)
	}

	return nil
}
