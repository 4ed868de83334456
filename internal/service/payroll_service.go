package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/dto"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/model"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/repository"
)

// ── 课时费模块业务错误 ──

var (
	ErrInvalidPayRange = fmt.Errorf("%w: 日期区间无效", ErrInvalidInput)
)

// PayrollService 教师课时费计算接口
type PayrollService interface {
	// CalculateTeacherPay 计算教师在 [startDate, endDate] 内的课时费（日期格式 YYYY-MM-DD，两端包含）。
	// 任一查询失败都整体返回 ErrPayrollLookup，不返回部分结果。
	CalculateTeacherPay(ctx context.Context, organizationID, teacherID, startDate, endDate string) (*dto.TeacherPayResponse, error)
}

type payrollService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPayrollService 创建 PayrollService 实例
func NewPayrollService(repo *repository.Repository, logger *zap.Logger) PayrollService {
	return &payrollService{repo: repo, logger: logger}
}

func (s *payrollService) CalculateTeacherPay(ctx context.Context, organizationID, teacherID, startDate, endDate string) (*dto.TeacherPayResponse, error) {
	// 1. 日期区间
	start, err := model.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date %q", ErrInvalidPayRange, startDate)
	}
	end, err := model.ParseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date %q", ErrInvalidPayRange, endDate)
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: start_date 晚于 end_date", ErrInvalidPayRange)
	}

	// 2. 教师
	if _, err := s.repo.User.GetByID(ctx, organizationID, teacherID); err != nil {
		return nil, s.lookupFailed("查询教师失败", teacherID, err)
	}

	// 3. 教师名下开课
	offerings, err := s.repo.Offering.List(ctx, organizationID, teacherID)
	if err != nil {
		return nil, s.lookupFailed("查询开课失败", teacherID, err)
	}

	var records []model.ElectiveAttendance
	if len(offerings) > 0 {
		ids := make([]string, 0, len(offerings))
		for i := range offerings {
			ids = append(ids, offerings[i].OfferingID)
		}

		// 4. 区间内考勤
		records, err = s.repo.Attendance.ListByOfferingsInRange(ctx, ids, start, end)
		if err != nil {
			return nil, s.lookupFailed("查询考勤失败", teacherID, err)
		}
	}

	// 5. 汇总
	result := AggregatePay(offerings, records)
	result.TeacherID = teacherID
	result.StartDate = start.Format(model.DateLayout)
	result.EndDate = end.Format(model.DateLayout)
	return &result, nil
}

func (s *payrollService) lookupFailed(msg, teacherID string, err error) error {
	s.logger.Error(msg, zap.String("teacher_id", teacherID), zap.Error(err))
	return fmt.Errorf("%w: %v", ErrPayrollLookup, err)
}
