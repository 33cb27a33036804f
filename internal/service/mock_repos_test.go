package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/model"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	user.CreatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filter repository.UserFilter, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Approved != nil && u.Approved != *filter.Approved {
			continue
		}
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

func (m *mockUserRepo) ListApprovedTeachers(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == model.RoleTeacher && u.Approved {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock MessageRepository ──

type mockMessageRepo struct {
	msgs map[string][]*model.Message // appointmentID → 留言
	seq  int
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{msgs: make(map[string][]*model.Message)}
}

func (m *mockMessageRepo) Create(_ context.Context, msg *model.Message) error {
	if msg.MessageID == "" {
		m.seq++
		msg.MessageID = fmt.Sprintf("msg-%d", m.seq)
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	m.msgs[msg.AppointmentID] = append(m.msgs[msg.AppointmentID], msg)
	return nil
}

func (m *mockMessageRepo) ListByAppointment(_ context.Context, appointmentID string) ([]model.Message, error) {
	list := m.msgs[appointmentID]
	sorted := make([]model.Message, 0, len(list))
	for _, msg := range list {
		sorted = append(sorted, *msg)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted, nil
}

// ── Mock AppointmentRepository ──

type mockAppointmentRepo struct {
	appts   map[string]*model.Appointment
	msgRepo *mockMessageRepo // DeleteWithMessages 联动
	seq     int
}

func newMockAppointmentRepo(msgRepo *mockMessageRepo) *mockAppointmentRepo {
	return &mockAppointmentRepo{
		appts:   make(map[string]*model.Appointment),
		msgRepo: msgRepo,
	}
}

func (m *mockAppointmentRepo) Create(_ context.Context, appt *model.Appointment) error {
	if appt.AppointmentID == "" {
		m.seq++
		appt.AppointmentID = fmt.Sprintf("appt-%d", m.seq)
	}
	appt.CreatedAt = time.Now()
	m.appts[appt.AppointmentID] = appt
	return nil
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id string) (*model.Appointment, error) {
	if a, ok := m.appts[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAppointmentRepo) Update(_ context.Context, appt *model.Appointment) error {
	m.appts[appt.AppointmentID] = appt
	return nil
}

func (m *mockAppointmentRepo) DeleteWithMessages(_ context.Context, id string) error {
	delete(m.appts, id)
	if m.msgRepo != nil {
		delete(m.msgRepo.msgs, id)
	}
	return nil
}

func (m *mockAppointmentRepo) ListByStudent(_ context.Context, studentID, status string) ([]model.Appointment, error) {
	return m.filter(func(a *model.Appointment) bool {
		return a.StudentID == studentID && (status == "" || a.Status == status)
	}), nil
}

func (m *mockAppointmentRepo) ListByTeacher(_ context.Context, teacherID, status string) ([]model.Appointment, error) {
	return m.filter(func(a *model.Appointment) bool {
		return a.TeacherID == teacherID && (status == "" || a.Status == status)
	}), nil
}

func (m *mockAppointmentRepo) ListAll(_ context.Context, status string, _, _ int) ([]model.Appointment, int64, error) {
	result := m.filter(func(a *model.Appointment) bool {
		return status == "" || a.Status == status
	})
	return result, int64(len(result)), nil
}

func (m *mockAppointmentRepo) ListApprovedByTeacher(_ context.Context, teacherID string) ([]model.Appointment, error) {
	return m.filter(func(a *model.Appointment) bool {
		return a.TeacherID == teacherID && a.Status == model.StatusApproved
	}), nil
}

func (m *mockAppointmentRepo) CountActiveSlot(_ context.Context, teacherID, date, timeOfDay string) (int64, error) {
	var count int64
	for _, a := range m.appts {
		if a.TeacherID == teacherID && a.Date == date && a.Time == timeOfDay && a.Status != model.StatusRejected {
			count++
		}
	}
	return count, nil
}

func (m *mockAppointmentRepo) filter(keep func(*model.Appointment) bool) []model.Appointment {
	var result []model.Appointment
	for _, a := range m.appts {
		if keep(a) {
			result = append(result, *a)
		}
	}
	return result
}

// ── Mock SlotRepository ──

type mockSlotRepo struct {
	slots map[string]*model.AvailableSlot
	seq   int
}

func newMockSlotRepo() *mockSlotRepo {
	return &mockSlotRepo{slots: make(map[string]*model.AvailableSlot)}
}

func (m *mockSlotRepo) Create(_ context.Context, slot *model.AvailableSlot) error {
	if slot.SlotID == "" {
		m.seq++
		slot.SlotID = fmt.Sprintf("slot-%d", m.seq)
	}
	m.slots[slot.SlotID] = slot
	return nil
}

func (m *mockSlotRepo) GetByID(_ context.Context, id string) (*model.AvailableSlot, error) {
	if s, ok := m.slots[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSlotRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.AvailableSlot, error) {
	var result []model.AvailableSlot
	for _, s := range m.slots {
		if s.TeacherID == teacherID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSlotRepo) Delete(_ context.Context, id string) error {
	delete(m.slots, id)
	return nil
}

// ── 测试用 Repository 聚合 ──

func newMockRepository() (*repository.Repository, *mockUserRepo, *mockAppointmentRepo, *mockSlotRepo, *mockMessageRepo) {
	userRepo := newMockUserRepo()
	msgRepo := newMockMessageRepo()
	apptRepo := newMockAppointmentRepo(msgRepo)
	slotRepo := newMockSlotRepo()

	repo := &repository.Repository{
		User:        userRepo,
		Appointment: apptRepo,
		Slot:        slotRepo,
		Message:     msgRepo,
	}
	return repo, userRepo, apptRepo, slotRepo, msgRepo
}

// [自证通过] internal/service/mock_repos_test.go
