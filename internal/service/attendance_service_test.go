package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/dto"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/model"
)

func setupTestAttendanceService() (AttendanceService, *mockRepos, *model.ClassSession) {
	repo, m := newMockRepos()
	m.offerings.offerings["off-1"] = &model.Offering{OfferingID: "off-1", OrganizationID: "org-1", Name: "Yoga"}
	m.offerings.offerings["off-2"] = &model.Offering{OfferingID: "off-2", OrganizationID: "org-1", Name: "Chess"}
	m.enrollments.enrollments["e1"] = &model.Enrollment{EnrollmentID: "e1", OfferingID: "off-1", StudentID: "stu-1"}
	m.enrollments.enrollments["e2"] = &model.Enrollment{EnrollmentID: "e2", OfferingID: "off-1", StudentID: "stu-2"}
	m.enrollments.enrollments["e9"] = &model.Enrollment{EnrollmentID: "e9", OfferingID: "off-2", StudentID: "stu-9"}
	session := m.sessions.add(model.ClassSession{
		OfferingID: "off-1",
		Date:       mustDate("2025-09-01"),
		StartTime:  "15:30",
		EndTime:    "16:30",
		Status:     model.SessionScheduled,
	})
	return NewAttendanceService(repo, zap.NewNop()), m, session
}

// ── MarkAttendance 测试 ──

func TestAttendanceService_MarkAttendance_Upsert(t *testing.T) {
	svc, m, session := setupTestAttendanceService()
	ctx := context.Background()

	req := &dto.MarkAttendanceRequest{Records: []dto.AttendanceMark{
		{EnrollmentID: "e1", Status: "PRESENT"},
		{EnrollmentID: "e2", Status: "ABSENT"},
	}}
	first, err := svc.MarkAttendance(ctx, "org-1", session.SessionID, req, "t-1")
	if err != nil {
		t.Fatalf("登记应成功: %v", err)
	}
	if len(first) != 2 || first[0].Date != "2025-09-01" {
		t.Errorf("登记结果不符: %+v", first)
	}

	// 同一学生再次登记覆盖原记录
	req = &dto.MarkAttendanceRequest{Records: []dto.AttendanceMark{
		{EnrollmentID: "e2", Status: "LATE", Notes: "迟到 10 分钟"},
	}}
	second, err := svc.MarkAttendance(ctx, "org-1", session.SessionID, req, "t-1")
	if err != nil {
		t.Fatalf("覆盖登记应成功: %v", err)
	}
	if second[0].ID != first[1].ID {
		t.Errorf("覆盖登记应复用原记录 ID，期望 %s 实际 %s", first[1].ID, second[0].ID)
	}
	if len(m.attendance.records) != 2 {
		t.Errorf("期望 2 条记录，实际 %d", len(m.attendance.records))
	}
	if got := m.attendance.records[session.SessionID+"/e2"].Status; got != model.AttendanceLate {
		t.Errorf("期望状态 LATE，实际 %s", got)
	}
}

func TestAttendanceService_MarkAttendance_InvalidStatus(t *testing.T) {
	svc, m, session := setupTestAttendanceService()

	req := &dto.MarkAttendanceRequest{Records: []dto.AttendanceMark{
		{EnrollmentID: "e1", Status: "PRESENT"},
		{EnrollmentID: "e2", Status: "SICK"},
	}}
	_, err := svc.MarkAttendance(context.Background(), "org-1", session.SessionID, req, "t-1")
	if !errors.Is(err, ErrInvalidAttendanceStatus) || !errors.Is(err, ErrInvalidInput) {
		t.Errorf("期望 ErrInvalidAttendanceStatus，实际: %v", err)
	}
	if len(m.attendance.records) != 0 {
		t.Error("校验失败时不应写入任何记录")
	}
}

func TestAttendanceService_MarkAttendance_EnrollmentMismatch(t *testing.T) {
	svc, _, session := setupTestAttendanceService()

	req := &dto.MarkAttendanceRequest{Records: []dto.AttendanceMark{{EnrollmentID: "e9", Status: "PRESENT"}}}
	_, err := svc.MarkAttendance(context.Background(), "org-1", session.SessionID, req, "t-1")
	if !errors.Is(err, ErrEnrollmentMismatch) {
		t.Errorf("期望 ErrEnrollmentMismatch，实际: %v", err)
	}

	req = &dto.MarkAttendanceRequest{Records: []dto.AttendanceMark{{EnrollmentID: "ghost", Status: "PRESENT"}}}
	_, err = svc.MarkAttendance(context.Background(), "org-1", session.SessionID, req, "t-1")
	if !errors.Is(err, ErrEnrollmentNotFound) {
		t.Errorf("期望 ErrEnrollmentNotFound，实际: %v", err)
	}
}

func TestAttendanceService_MarkAttendance_SessionNotFound(t *testing.T) {
	svc, _, session := setupTestAttendanceService()
	req := &dto.MarkAttendanceRequest{Records: []dto.AttendanceMark{{EnrollmentID: "e1", Status: "PRESENT"}}}

	if _, err := svc.MarkAttendance(context.Background(), "org-1", "missing", req, "t-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("期望 ErrSessionNotFound，实际: %v", err)
	}
	if _, err := svc.MarkAttendance(context.Background(), "org-2", session.SessionID, req, "t-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("跨组织期望 ErrSessionNotFound，实际: %v", err)
	}
}

// ── ListRollovers 测试 ──

func TestAttendanceService_ListRollovers(t *testing.T) {
	svc, _, session := setupTestAttendanceService()
	ctx := context.Background()

	req := &dto.MarkAttendanceRequest{Records: []dto.AttendanceMark{
		{EnrollmentID: "e1", Status: "TEACHER_ABSENT"},
		{EnrollmentID: "e2", Status: "ABSENT", IsRollover: true},
	}}
	if _, err := svc.MarkAttendance(ctx, "org-1", session.SessionID, req, "t-1"); err != nil {
		t.Fatalf("登记应成功: %v", err)
	}

	list, err := svc.ListRollovers(ctx, "org-1", "off-1")
	if err != nil {
		t.Fatalf("查询应成功: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("期望 2 条补课额度，实际 %d", len(list))
	}
	reasons := map[string]string{}
	for _, r := range list {
		reasons[r.EnrollmentID] = r.Reason
	}
	if reasons["e1"] != "teacher_absent" || reasons["e2"] != "manual" {
		t.Errorf("补课原因不符: %v", reasons)
	}

	// 改为 PRESENT 后不再产生额度
	req = &dto.MarkAttendanceRequest{Records: []dto.AttendanceMark{{EnrollmentID: "e1", Status: "PRESENT"}}}
	if _, err := svc.MarkAttendance(ctx, "org-1", session.SessionID, req, "t-1"); err != nil {
		t.Fatalf("覆盖登记应成功: %v", err)
	}
	list, _ = svc.ListRollovers(ctx, "org-1", "off-1")
	if len(list) != 1 || list[0].StudentID != "stu-2" {
		t.Errorf("期望仅剩 stu-2，实际 %+v", list)
	}

	if _, err := svc.ListRollovers(ctx, "org-2", "off-1"); !errors.Is(err, ErrOfferingNotFound) {
		t.Errorf("跨组织期望 ErrOfferingNotFound，实际: %v", err)
	}
}

// ── GrantsRollover 测试 ──

func TestElectiveAttendance_GrantsRollover(t *testing.T) {
	tests := []struct {
		status   model.AttendanceStatus
		rollover bool
		want     bool
	}{
		{model.AttendanceTeacherAbsent, false, true},
		{model.AttendanceAbsent, true, true},
		{model.AttendancePresent, false, false},
		{model.AttendanceSchoolClosed, false, false},
	}
	for _, tt := range tests {
		r := model.ElectiveAttendance{Status: tt.status, IsRollover: tt.rollover}
		if got := r.GrantsRollover(); got != tt.want {
			t.Errorf("%s/%v: 期望 %v，实际 %v", tt.status, tt.rollover, tt.want, got)
		}
	}
}
