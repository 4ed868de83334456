package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/dto"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/model"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/repository"
)

// ── 考勤模块业务错误 ──

var (
	ErrInvalidAttendanceStatus = fmt.Errorf("%w: 未知的考勤状态", ErrInvalidInput)
	ErrEnrollmentMismatch      = fmt.Errorf("%w: 选课记录不属于该课次的开课", ErrInvalidInput)
	ErrEnrollmentNotFound      = errors.New("选课记录不存在")
)

// AttendanceService 兴趣课考勤业务接口
type AttendanceService interface {
	// MarkAttendance 批量登记某课次的考勤，同一学生重复登记时覆盖
	MarkAttendance(ctx context.Context, organizationID, sessionID string, req *dto.MarkAttendanceRequest, callerID string) ([]dto.AttendanceResponse, error)
	// ListRollovers 列出开课下可补课的考勤记录
	ListRollovers(ctx context.Context, organizationID, offeringID string) ([]dto.RolloverResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

// ────────────────────── Mark ──────────────────────

func (s *attendanceService) MarkAttendance(ctx context.Context, organizationID, sessionID string, req *dto.MarkAttendanceRequest, callerID string) ([]dto.AttendanceResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询课次失败", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	if session.Offering == nil || session.Offering.OrganizationID != organizationID {
		return nil, ErrSessionNotFound
	}

	// 先整体校验再写入，避免部分成功
	records := make([]model.ElectiveAttendance, 0, len(req.Records))
	for _, mark := range req.Records {
		status := model.AttendanceStatus(mark.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAttendanceStatus, mark.Status)
		}

		enrollment, err := s.repo.Enrollment.GetByID(ctx, mark.EnrollmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEnrollmentNotFound
			}
			s.logger.Error("查询选课失败", zap.String("enrollment_id", mark.EnrollmentID), zap.Error(err))
			return nil, err
		}
		if enrollment.OfferingID != session.OfferingID {
			return nil, ErrEnrollmentMismatch
		}

		record := model.ElectiveAttendance{
			SessionID:    session.SessionID,
			EnrollmentID: enrollment.EnrollmentID,
			Date:         model.Date(session.Date),
			Status:       status,
			IsRollover:   mark.IsRollover,
			Notes:        mark.Notes,
		}
		record.CreatedBy = &callerID
		record.UpdatedBy = &callerID
		records = append(records, record)
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		for i := range records {
			if err := tx.Attendance.Upsert(ctx, &records[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("登记考勤失败", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		result = append(result, toAttendanceResponse(&records[i]))
	}
	return result, nil
}

// ────────────────────── Rollovers ──────────────────────

func (s *attendanceService) ListRollovers(ctx context.Context, organizationID, offeringID string) ([]dto.RolloverResponse, error) {
	if _, err := loadOffering(ctx, s.repo, s.logger, organizationID, offeringID); err != nil {
		return nil, err
	}

	records, err := s.repo.Attendance.ListRollovers(ctx, offeringID)
	if err != nil {
		s.logger.Error("查询补课额度失败", zap.String("offering_id", offeringID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.RolloverResponse, 0, len(records))
	for i := range records {
		r := &records[i]
		if !r.GrantsRollover() {
			continue
		}
		item := dto.RolloverResponse{
			AttendanceID: r.AttendanceID,
			SessionID:    r.SessionID,
			EnrollmentID: r.EnrollmentID,
			Date:         r.Date.Format(model.DateLayout),
			Reason:       "manual",
		}
		if r.Status == model.AttendanceTeacherAbsent {
			item.Reason = "teacher_absent"
		}
		if r.Enrollment != nil {
			item.StudentID = r.Enrollment.StudentID
		}
		result = append(result, item)
	}
	return result, nil
}

// ── 内部辅助方法 ──

func toAttendanceResponse(r *model.ElectiveAttendance) dto.AttendanceResponse {
	return dto.AttendanceResponse{
		ID:           r.AttendanceID,
		SessionID:    r.SessionID,
		EnrollmentID: r.EnrollmentID,
		Date:         r.Date.Format(model.DateLayout),
		Status:       string(r.Status),
		IsRollover:   r.IsRollover,
		Notes:        r.Notes,
	}
}
