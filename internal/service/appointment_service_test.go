package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/dto"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/model"
)

// ── 测试辅助 ──

func setupTestAppointmentService() (AppointmentService, *mockUserRepo, *mockAppointmentRepo, *mockMessageRepo) {
	repo, userRepo, apptRepo, _, msgRepo := newMockRepository()
	svc := NewAppointmentService(repo, zap.NewNop())
	return svc, userRepo, apptRepo, msgRepo
}

func seedAppointment(apptRepo *mockAppointmentRepo, id, teacherID, studentID, date, timeOfDay, status string) *model.Appointment {
	appt := &model.Appointment{
		AppointmentID: id,
		TeacherID:     teacherID,
		TeacherName:   "王老师",
		StudentID:     studentID,
		StudentName:   "张三",
		Date:          date,
		Time:          timeOfDay,
		Purpose:       "毕业设计指导",
		Status:        status,
		BaseModel:     model.BaseModel{CreatedAt: time.Now()},
	}
	apptRepo.appts[id] = appt
	return appt
}

// ── Book 测试 ──

func TestAppointmentService_Book_Success(t *testing.T) {
	svc, userRepo, _, _ := setupTestAppointmentService()
	createTestUser(userRepo, "t-001", "王老师", "teacher@test.com", model.RoleTeacher, true)
	createTestUser(userRepo, "s-001", "张三", "student@test.com", model.RoleStudent, true)

	resp, err := svc.Book(context.Background(), &dto.BookAppointmentRequest{
		TeacherID: "t-001",
		Date:      "2026-09-10",
		Time:      "14:30",
		Purpose:   "毕业设计指导",
	}, "s-001")
	if err != nil {
		t.Fatalf("Book 应成功: %v", err)
	}
	if resp.Status != model.StatusPending {
		t.Errorf("新预约状态应为 pending，实际=%s", resp.Status)
	}
	if resp.TeacherName != "王老师" || resp.StudentName != "张三" {
		t.Error("应写入双方姓名快照")
	}
}

func TestAppointmentService_Book_TeacherNotApproved(t *testing.T) {
	svc, userRepo, _, _ := setupTestAppointmentService()
	createTestUser(userRepo, "t-001", "王老师", "teacher@test.com", model.RoleTeacher, false)
	createTestUser(userRepo, "s-001", "张三", "student@test.com", model.RoleStudent, true)

	_, err := svc.Book(context.Background(), &dto.BookAppointmentRequest{
		TeacherID: "t-001",
		Date:      "2026-09-10",
		Time:      "14:30",
		Purpose:   "毕业设计指导",
	}, "s-001")
	if !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("期望 ErrTeacherNotFound，实际: %v", err)
	}
}

func TestAppointmentService_Book_TargetNotTeacher(t *testing.T) {
	svc, userRepo, _, _ := setupTestAppointmentService()
	createTestUser(userRepo, "s-001", "张三", "student1@test.com", model.RoleStudent, true)
	createTestUser(userRepo, "s-002", "李四", "student2@test.com", model.RoleStudent, true)

	// 预约对象是学生而不是教师
	_, err := svc.Book(context.Background(), &dto.BookAppointmentRequest{
		TeacherID: "s-002",
		Date:      "2026-09-10",
		Time:      "14:30",
		Purpose:   "毕业设计指导",
	}, "s-001")
	if !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("期望 ErrTeacherNotFound，实际: %v", err)
	}
}

func TestAppointmentService_Book_TimeConflict(t *testing.T) {
	svc, userRepo, apptRepo, _ := setupTestAppointmentService()
	createTestUser(userRepo, "t-001", "王老师", "teacher@test.com", model.RoleTeacher, true)
	createTestUser(userRepo, "s-001", "张三", "student1@test.com", model.RoleStudent, true)
	createTestUser(userRepo, "s-002", "李四", "student2@test.com", model.RoleStudent, true)
	seedAppointment(apptRepo, "appt-x", "t-001", "s-001", "2026-09-10", "14:30", model.StatusPending)

	_, err := svc.Book(context.Background(), &dto.BookAppointmentRequest{
		TeacherID: "t-001",
		Date:      "2026-09-10",
		Time:      "14:30",
		Purpose:   "选课咨询",
	}, "s-002")
	if !errors.Is(err, ErrTimeConflict) {
		t.Errorf("期望 ErrTimeConflict，实际: %v", err)
	}
}

// 已拒绝的预约释放时间点，可被再次预约
func TestAppointmentService_Book_RejectedSlotReleased(t *testing.T) {
	svc, userRepo, apptRepo, _ := setupTestAppointmentService()
	createTestUser(userRepo, "t-001", "王老师", "teacher@test.com", model.RoleTeacher, true)
	createTestUser(userRepo, "s-001", "张三", "student1@test.com", model.RoleStudent, true)
	createTestUser(userRepo, "s-002", "李四", "student2@test.com", model.RoleStudent, true)
	seedAppointment(apptRepo, "appt-x", "t-001", "s-001", "2026-09-10", "14:30", model.StatusRejected)

	_, err := svc.Book(context.Background(), &dto.BookAppointmentRequest{
		TeacherID: "t-001",
		Date:      "2026-09-10",
		Time:      "14:30",
		Purpose:   "选课咨询",
	}, "s-002")
	if err != nil {
		t.Fatalf("已拒绝时段应允许再次预约: %v", err)
	}
}

func TestAppointmentService_Book_BlankPurpose(t *testing.T) {
	svc, userRepo, _, _ := setupTestAppointmentService()
	createTestUser(userRepo, "t-001", "王老师", "teacher@test.com", model.RoleTeacher, true)
	createTestUser(userRepo, "s-001", "张三", "student@test.com", model.RoleStudent, true)

	_, err := svc.Book(context.Background(), &dto.BookAppointmentRequest{
		TeacherID: "t-001",
		Date:      "2026-09-10",
		Time:      "14:30",
		Purpose:   "   ",
	}, "s-001")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("期望 ErrValidation，实际: %v", err)
	}
}

// ── SetStatus 测试 ──

func TestAppointmentService_SetStatus_Approve(t *testing.T) {
	svc, _, apptRepo, _ := setupTestAppointmentService()
	seedAppointment(apptRepo, "appt-1", "t-001", "s-001", "2026-09-10", "14:30", model.StatusPending)

	resp, err := svc.SetStatus(context.Background(), "appt-1", &dto.SetStatusRequest{Status: model.StatusApproved}, "t-001")
	if err != nil {
		t.Fatalf("SetStatus 应成功: %v", err)
	}
	if resp.Status != model.StatusApproved {
		t.Errorf("期望 status=approved，实际=%s", resp.Status)
	}
}

// 状态单向流转：终态之后的第二次审批必须失败
func TestAppointmentService_SetStatus_TerminalIsFinal(t *testing.T) {
	svc, _, apptRepo, _ := setupTestAppointmentService()
	seedAppointment(apptRepo, "appt-1", "t-001", "s-001", "2026-09-10", "14:30", model.StatusPending)

	if _, err := svc.SetStatus(context.Background(), "appt-1", &dto.SetStatusRequest{Status: model.StatusRejected}, "t-001"); err != nil {
		t.Fatalf("首次审批应成功: %v", err)
	}
	if _, err := svc.SetStatus(context.Background(), "appt-1", &dto.SetStatusRequest{Status: model.StatusApproved}, "t-001"); !errors.Is(err, ErrNotPending) {
		t.Errorf("期望 ErrNotPending，实际: %v", err)
	}
	// 状态保持首次审批结果
	if apptRepo.appts["appt-1"].Status != model.StatusRejected {
		t.Errorf("状态应保持 rejected，实际=%s", apptRepo.appts["appt-1"].Status)
	}
}

func TestAppointmentService_SetStatus_NotOwner(t *testing.T) {
	svc, _, apptRepo, _ := setupTestAppointmentService()
	seedAppointment(apptRepo, "appt-1", "t-001", "s-001", "2026-09-10", "14:30", model.StatusPending)

	_, err := svc.SetStatus(context.Background(), "appt-1", &dto.SetStatusRequest{Status: model.StatusApproved}, "t-999")
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("期望 ErrNotOwner，实际: %v", err)
	}
}

func TestAppointmentService_SetStatus_NotFound(t *testing.T) {
	svc, _, _, _ := setupTestAppointmentService()

	_, err := svc.SetStatus(context.Background(), "missing", &dto.SetStatusRequest{Status: model.StatusApproved}, "t-001")
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("期望 ErrAppointmentNotFound，实际: %v", err)
	}
}

// ── Cancel 测试 ──

func TestAppointmentService_Cancel_DeletesMessages(t *testing.T) {
	svc, _, apptRepo, msgRepo := setupTestAppointmentService()
	seedAppointment(apptRepo, "appt-1", "t-001", "s-001", "2026-09-10", "14:30", model.StatusPending)
	msgRepo.msgs["appt-1"] = []*model.Message{
		{MessageID: "msg-1", AppointmentID: "appt-1", SenderID: "s-001", Content: "老师您好"},
	}

	if err := svc.Cancel(context.Background(), "appt-1", "s-001"); err != nil {
		t.Fatalf("Cancel 应成功: %v", err)
	}
	if _, ok := apptRepo.appts["appt-1"]; ok {
		t.Error("取消后预约应被删除")
	}
	if _, ok := msgRepo.msgs["appt-1"]; ok {
		t.Error("取消预约应连带删除其留言")
	}
}

func TestAppointmentService_Cancel_ApprovedForbidden(t *testing.T) {
	svc, _, apptRepo, _ := setupTestAppointmentService()
	seedAppointment(apptRepo, "appt-1", "t-001", "s-001", "2026-09-10", "14:30", model.StatusApproved)

	if err := svc.Cancel(context.Background(), "appt-1", "s-001"); !errors.Is(err, ErrNotPending) {
		t.Errorf("期望 ErrNotPending，实际: %v", err)
	}
}

func TestAppointmentService_Cancel_NotOwner(t *testing.T) {
	svc, _, apptRepo, _ := setupTestAppointmentService()
	seedAppointment(apptRepo, "appt-1", "t-001", "s-001", "2026-09-10", "14:30", model.StatusPending)

	if err := svc.Cancel(context.Background(), "appt-1", "s-999"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("期望 ErrNotOwner，实际: %v", err)
	}
}

// ── List 测试 ──

func TestAppointmentService_List_RoleScoped(t *testing.T) {
	svc, _, apptRepo, _ := setupTestAppointmentService()
	seedAppointment(apptRepo, "appt-1", "t-001", "s-001", "2026-09-10", "14:30", model.StatusPending)
	seedAppointment(apptRepo, "appt-2", "t-001", "s-002", "2026-09-11", "10:00", model.StatusApproved)
	seedAppointment(apptRepo, "appt-3", "t-002", "s-001", "2026-09-12", "09:00", model.StatusPending)

	// 学生只看到自己发起的
	list, total, err := svc.List(context.Background(), &dto.AppointmentListRequest{}, "s-001", model.RoleStudent)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Errorf("学生视角期望 2 条，实际=%d", len(list))
	}

	// 教师只看到自己名下的
	list, _, err = svc.List(context.Background(), &dto.AppointmentListRequest{}, "t-001", model.RoleTeacher)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("教师视角期望 2 条，实际=%d", len(list))
	}

	// 管理员看到全量
	list, total, err = svc.List(context.Background(), &dto.AppointmentListRequest{}, "admin-1", model.RoleAdmin)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 3 || len(list) != 3 {
		t.Errorf("管理员视角期望 3 条，实际=%d", len(list))
	}
}

func TestAppointmentService_List_StatusFilter(t *testing.T) {
	svc, _, apptRepo, _ := setupTestAppointmentService()
	seedAppointment(apptRepo, "appt-1", "t-001", "s-001", "2026-09-10", "14:30", model.StatusPending)
	seedAppointment(apptRepo, "appt-2", "t-001", "s-001", "2026-09-11", "10:00", model.StatusApproved)

	list, _, err := svc.List(context.Background(), &dto.AppointmentListRequest{Status: model.StatusApproved}, "s-001", model.RoleStudent)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 1 || list[0].Status != model.StatusApproved {
		t.Errorf("期望仅返回 approved 记录，实际=%d 条", len(list))
	}
}

// 用户被删除后历史预约仍可读（悬挂 ID + 快照名）
func TestAppointmentService_List_SurvivesUserDeletion(t *testing.T) {
	svc, userRepo, apptRepo, _ := setupTestAppointmentService()
	createTestUser(userRepo, "s-001", "张三", "student@test.com", model.RoleStudent, true)
	seedAppointment(apptRepo, "appt-1", "t-001", "s-001", "2026-09-10", "14:30", model.StatusApproved)

	delete(userRepo.users, "s-001")

	list, _, err := svc.List(context.Background(), &dto.AppointmentListRequest{}, "t-001", model.RoleTeacher)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("期望 1 条，实际=%d", len(list))
	}
	if list[0].StudentName != "张三" {
		t.Errorf("快照名应保留，实际=%s", list[0].StudentName)
	}
}
