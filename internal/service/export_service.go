package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/repository"
)

// 预约默认时长（预约只记录起始时间点，导出日历时需要一个结束时间）
const appointmentDuration = 30 * time.Minute

// ExportService 导出业务接口
//
// 设计说明：
//   - 管理员导出预约台账为 Excel (.xlsx)
//   - 教师导出个人已确认日程为 iCalendar (.ics)，可直接订阅到日历客户端
//   - 均以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportAppointments 导出全量预约台账为 Excel
	ExportAppointments(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportTeacherSchedule 导出某教师的已确认预约为 iCalendar
	ExportTeacherSchedule(ctx context.Context, teacherID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ────────────────────── ExportAppointments ──────────────────────

func (s *exportService) ExportAppointments(ctx context.Context) (*bytes.Buffer, string, error) {
	appts, _, err := s.repo.Appointment.ListAll(ctx, "", 0, 0)
	if err != nil {
		s.logger.Error("查询预约全量失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Appointments"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"预约ID", "教师", "学生", "日期", "时间", "事由", "状态", "创建时间"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, appt := range appts {
		values := []interface{}{
			appt.AppointmentID,
			appt.TeacherName,
			appt.StudentName,
			appt.Date,
			appt.Time,
			appt.Purpose,
			appt.Status,
			appt.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 失败", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("appointments-%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ────────────────────── ExportTeacherSchedule ──────────────────────

func (s *exportService) ExportTeacherSchedule(ctx context.Context, teacherID string) (*bytes.Buffer, string, error) {
	appts, err := s.repo.Appointment.ListApprovedByTeacher(ctx, teacherID)
	if err != nil {
		s.logger.Error("查询教师已确认预约失败", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//appointment-system//schedule//CN")

	for i := range appts {
		appt := &appts[i]

		startAt, err := time.ParseInLocation("2006-01-02 15:04", appt.Date+" "+appt.Time, time.Local)
		if err != nil {
			// 历史数据格式异常时跳过该条而不是整体失败
			s.logger.Warn("预约时间格式异常，跳过导出",
				zap.String("id", appt.AppointmentID),
				zap.String("date", appt.Date),
				zap.String("time", appt.Time),
			)
			continue
		}

		event := cal.AddEvent(appt.AppointmentID)
		event.SetCreatedTime(appt.CreatedAt)
		event.SetStartAt(startAt)
		event.SetEndAt(startAt.Add(appointmentDuration))
		event.SetSummary(fmt.Sprintf("预约：%s", appt.StudentName))
		event.SetDescription(appt.Purpose)
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("schedule-%s.ics", time.Now().Format("20060102"))
	return buf, filename, nil
}
