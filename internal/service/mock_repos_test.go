package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/model"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/repository"
	apperrors "github.com/jvpatel1702/vedicroots-attendance-system-sub001/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	err   error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, organizationID, id string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.users[id]; ok && u.OrganizationID == organizationID {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock OfferingRepository ──

type mockOfferingRepo struct {
	offerings map[string]*model.Offering
	err       error
}

func newMockOfferingRepo() *mockOfferingRepo {
	return &mockOfferingRepo{offerings: make(map[string]*model.Offering)}
}

func (m *mockOfferingRepo) GetByID(_ context.Context, organizationID, id string) (*model.Offering, error) {
	if o, ok := m.offerings[id]; ok && o.OrganizationID == organizationID {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOfferingRepo) List(_ context.Context, organizationID, teacherID string) ([]model.Offering, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Offering
	for _, o := range m.offerings {
		if o.OrganizationID != organizationID {
			continue
		}
		if teacherID != "" && o.TeacherID != teacherID {
			continue
		}
		result = append(result, *o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments map[string]*model.Enrollment
}

func newMockEnrollmentRepo() *mockEnrollmentRepo {
	return &mockEnrollmentRepo{enrollments: make(map[string]*model.Enrollment)}
}

func (m *mockEnrollmentRepo) GetByID(_ context.Context, id string) (*model.Enrollment, error) {
	if e, ok := m.enrollments[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock ClassSessionRepository ──

type mockSessionRepo struct {
	sessions   map[string]*model.ClassSession
	offerings  *mockOfferingRepo   // 模拟 Preload("Offering")
	attendance *mockAttendanceRepo // 模拟 NOT EXISTS 考勤子查询
	nextID     int
	createErr  error
	staleCount bool // 模拟存在性检查之后才提交的并发写入
}

func newMockSessionRepo(offerings *mockOfferingRepo) *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.ClassSession), offerings: offerings}
}

func (m *mockSessionRepo) add(s model.ClassSession) *model.ClassSession {
	if s.SessionID == "" {
		m.nextID++
		s.SessionID = fmt.Sprintf("session-%03d", m.nextID)
	}
	if s.OriginalDate.IsZero() {
		s.OriginalDate = s.Date
	}
	m.sessions[s.SessionID] = &s
	return &s
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.ClassSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	cp.Offering = m.offerings.offerings[s.OfferingID]
	return &cp, nil
}

func (m *mockSessionRepo) CreateBatch(_ context.Context, sessions []model.ClassSession) error {
	if m.createErr != nil {
		return m.createErr
	}
	// uk_class_sessions_offering_occurrence
	for _, s := range sessions {
		for _, existing := range m.sessions {
			if existing.OfferingID == s.OfferingID && existing.OriginalDate.Equal(s.OriginalDate) {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	for _, s := range sessions {
		m.add(s)
	}
	return nil
}

func (m *mockSessionRepo) CountInRange(_ context.Context, offeringID string, from, to time.Time) (int64, error) {
	if m.staleCount {
		return 0, nil
	}
	var n int64
	for _, s := range m.sessions {
		if s.OfferingID == offeringID && !s.Date.Before(from) && !s.Date.After(to) {
			n++
		}
	}
	return n, nil
}

func (m *mockSessionRepo) ListByOffering(_ context.Context, offeringID string, from, to *time.Time) ([]model.ClassSession, error) {
	var result []model.ClassSession
	for _, s := range m.sessions {
		if s.OfferingID != offeringID {
			continue
		}
		if from != nil && s.Date.Before(*from) {
			continue
		}
		if to != nil && s.Date.After(*to) {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockSessionRepo) Update(_ context.Context, session *model.ClassSession) error {
	cp := *session
	cp.Offering = nil
	m.sessions[session.SessionID] = &cp
	return nil
}

func (m *mockSessionRepo) DeleteScheduledFrom(_ context.Context, offeringID string, from time.Time) (int64, error) {
	var n int64
	for id, s := range m.sessions {
		if s.OfferingID == offeringID && !s.Date.Before(from) && s.Status == model.SessionScheduled {
			if m.attendance != nil && m.attendance.hasSession(id) {
				continue
			}
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// ── Mock PayPeriodRepository ──

type mockPayPeriodRepo struct {
	periods    map[string]*model.PayPeriod
	nextID     int
	staleCount bool // 模拟存在性检查之后才提交的并发写入
}

func newMockPayPeriodRepo() *mockPayPeriodRepo {
	return &mockPayPeriodRepo{periods: make(map[string]*model.PayPeriod)}
}

func (m *mockPayPeriodRepo) CountByYear(_ context.Context, organizationID string, year int) (int64, error) {
	if m.staleCount {
		return 0, nil
	}
	var n int64
	for _, p := range m.periods {
		if p.OrganizationID == organizationID && p.StartDate.Year() == year {
			n++
		}
	}
	return n, nil
}

func (m *mockPayPeriodRepo) CreateBatch(_ context.Context, periods []model.PayPeriod) error {
	// uk_pay_periods_org_start
	for _, p := range periods {
		for _, existing := range m.periods {
			if existing.OrganizationID == p.OrganizationID && existing.StartDate.Equal(p.StartDate) {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	for _, p := range periods {
		m.nextID++
		p.PayPeriodID = fmt.Sprintf("pp-%03d", m.nextID)
		cp := p
		m.periods[cp.PayPeriodID] = &cp
	}
	return nil
}

func (m *mockPayPeriodRepo) ListByYear(_ context.Context, organizationID string, year int) ([]model.PayPeriod, error) {
	var result []model.PayPeriod
	for _, p := range m.periods {
		if p.OrganizationID == organizationID && p.StartDate.Year() == year {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (m *mockPayPeriodRepo) GetByID(_ context.Context, organizationID, id string) (*model.PayPeriod, error) {
	if p, ok := m.periods[id]; ok && p.OrganizationID == organizationID {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPayPeriodRepo) UpdateStatus(_ context.Context, id string, status model.PayPeriodStatus, _ string) error {
	if p, ok := m.periods[id]; ok {
		p.Status = status
	}
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records     map[string]*model.ElectiveAttendance // key: sessionID/enrollmentID
	enrollments *mockEnrollmentRepo                  // 模拟 Joins("Enrollment")
	nextID      int
	listErr     error
}

func newMockAttendanceRepo(enrollments *mockEnrollmentRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[string]*model.ElectiveAttendance), enrollments: enrollments}
}

func (m *mockAttendanceRepo) Upsert(_ context.Context, record *model.ElectiveAttendance) error {
	key := record.SessionID + "/" + record.EnrollmentID
	if existing, ok := m.records[key]; ok {
		record.AttendanceID = existing.AttendanceID
	} else {
		m.nextID++
		record.AttendanceID = fmt.Sprintf("att-%03d", m.nextID)
	}
	cp := *record
	m.records[key] = &cp
	return nil
}

func (m *mockAttendanceRepo) withEnrollment(r model.ElectiveAttendance) model.ElectiveAttendance {
	r.Enrollment = m.enrollments.enrollments[r.EnrollmentID]
	return r
}

func (m *mockAttendanceRepo) ListByOfferingsInRange(_ context.Context, offeringIDs []string, start, end time.Time) ([]model.ElectiveAttendance, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	wanted := make(map[string]bool, len(offeringIDs))
	for _, id := range offeringIDs {
		wanted[id] = true
	}
	var result []model.ElectiveAttendance
	for _, r := range m.records {
		rec := m.withEnrollment(*r)
		if rec.Enrollment == nil || !wanted[rec.Enrollment.OfferingID] {
			continue
		}
		if rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListRollovers(_ context.Context, offeringID string) ([]model.ElectiveAttendance, error) {
	var result []model.ElectiveAttendance
	for _, r := range m.records {
		rec := m.withEnrollment(*r)
		if rec.Enrollment == nil || rec.Enrollment.OfferingID != offeringID {
			continue
		}
		if rec.Status == model.AttendanceTeacherAbsent || rec.IsRollover {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockAttendanceRepo) MoveSessionDate(_ context.Context, sessionID string, date time.Time, _ string) (int64, error) {
	var n int64
	for _, r := range m.records {
		if r.SessionID == sessionID {
			r.Date = date
			n++
		}
	}
	return n, nil
}

func (m *mockAttendanceRepo) hasSession(sessionID string) bool {
	for _, r := range m.records {
		if r.SessionID == sessionID {
			return true
		}
	}
	return false
}

// ── Mock Locker ──

type mockLocker struct {
	held  map[string]bool
	calls []string
}

func newMockLocker() *mockLocker {
	return &mockLocker{held: make(map[string]bool)}
}

func (m *mockLocker) Lock(_ context.Context, key string, _ time.Duration) (func(), error) {
	m.calls = append(m.calls, key)
	if m.held[key] {
		return nil, apperrors.ErrLockNotAcquired
	}
	m.held[key] = true
	return func() { delete(m.held, key) }, nil
}

// ── 测试仓储聚合 ──

type mockRepos struct {
	users       *mockUserRepo
	offerings   *mockOfferingRepo
	enrollments *mockEnrollmentRepo
	sessions    *mockSessionRepo
	payPeriods  *mockPayPeriodRepo
	attendance  *mockAttendanceRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		users:       newMockUserRepo(),
		offerings:   newMockOfferingRepo(),
		enrollments: newMockEnrollmentRepo(),
		payPeriods:  newMockPayPeriodRepo(),
	}
	m.sessions = newMockSessionRepo(m.offerings)
	m.attendance = newMockAttendanceRepo(m.enrollments)
	m.sessions.attendance = m.attendance

	repo := &repository.Repository{
		User:       m.users,
		Offering:   m.offerings,
		Enrollment: m.enrollments,
		Session:    m.sessions,
		PayPeriod:  m.payPeriods,
		Attendance: m.attendance,
	}
	return repo, m
}

func mustDate(s string) time.Time {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
