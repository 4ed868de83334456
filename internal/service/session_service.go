package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/config"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/dto"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/model"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/repository"
	apperrors "github.com/jvpatel1702/vedicroots-attendance-system-sub001/pkg/errors"
)

// ── 课次模块业务错误 ──

var (
	ErrSessionNotFound   = errors.New("课次不存在")
	ErrSessionsExist     = errors.New("该开课在规则日期范围内已生成课次，如需覆盖请使用重新生成")
	ErrGenerationLocked  = errors.New("课次正在生成中，请稍后重试")
	ErrSessionImmutable  = errors.New("已完成的课次不可修改")
	ErrOfferingInactive  = errors.New("开课已停用，不能生成课次")
	ErrInvalidDateFilter = fmt.Errorf("%w: 日期格式应为 YYYY-MM-DD", ErrInvalidInput)
)

// SessionService 课次业务接口
type SessionService interface {
	// GenerateSessions 按开课规则首次批量生成课次
	GenerateSessions(ctx context.Context, organizationID, offeringID, callerID string) (*dto.GenerateSessionsResponse, error)
	// RegenerateSessions 删除今天及以后仍为 SCHEDULED 的课次并按当前规则重建
	RegenerateSessions(ctx context.Context, organizationID, offeringID, callerID string) (*dto.GenerateSessionsResponse, error)
	ListSessions(ctx context.Context, organizationID, offeringID string, req *dto.ListSessionsRequest) ([]dto.SessionResponse, error)
	CancelSession(ctx context.Context, organizationID, sessionID string, req *dto.CancelSessionRequest, callerID string) (*dto.SessionResponse, error)
	RescheduleSession(ctx context.Context, organizationID, sessionID string, req *dto.RescheduleSessionRequest, callerID string) (*dto.SessionResponse, error)
	// ExportCalendar 导出开课课表为 iCalendar，返回内容与建议文件名
	ExportCalendar(ctx context.Context, organizationID, offeringID string) ([]byte, string, error)
}

type sessionService struct {
	repo    *repository.Repository
	locker  Locker
	lockTTL time.Duration
	loc     *time.Location
	now     func() time.Time
	logger  *zap.Logger
}

// NewSessionService 创建 SessionService 实例
func NewSessionService(repo *repository.Repository, locker Locker, cfg *config.PayrollConfig, logger *zap.Logger) SessionService {
	return &sessionService{
		repo:    repo,
		locker:  locker,
		lockTTL: cfg.LockTTL,
		loc:     cfg.Location(),
		now:     time.Now,
		logger:  logger,
	}
}

// ────────────────────── Generate ──────────────────────

func (s *sessionService) GenerateSessions(ctx context.Context, organizationID, offeringID, callerID string) (*dto.GenerateSessionsResponse, error) {
	offering, err := loadOffering(ctx, s.repo, s.logger, organizationID, offeringID)
	if err != nil {
		return nil, err
	}
	if !offering.IsActive {
		return nil, ErrOfferingInactive
	}

	rule := RuleFromOffering(offering)
	seq, err := GenerateSessionDrafts(offering.OfferingID, rule)
	if err != nil {
		return nil, err
	}

	var created int
	err = withLock(ctx, s.locker, sessionLockKey(offering.OfferingID), s.lockTTL, func() error {
		return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
			existing, err := tx.Session.CountInRange(ctx, offering.OfferingID, model.Date(rule.StartDate), model.Date(rule.EndDate))
			if err != nil {
				return err
			}
			if existing > 0 {
				return ErrSessionsExist
			}

			drafts := collectDrafts(seq, callerID, nil)
			created = len(drafts)
			return tx.Session.CreateBatch(ctx, drafts)
		})
	})
	if err != nil {
		return nil, s.mapGenerateError(err, offering.OfferingID)
	}

	s.logger.Info("课次生成完成",
		zap.String("offering_id", offering.OfferingID),
		zap.Int("count", created),
	)
	return &dto.GenerateSessionsResponse{OfferingID: offering.OfferingID, Count: created}, nil
}

// ────────────────────── Regenerate ──────────────────────

func (s *sessionService) RegenerateSessions(ctx context.Context, organizationID, offeringID, callerID string) (*dto.GenerateSessionsResponse, error) {
	offering, err := loadOffering(ctx, s.repo, s.logger, organizationID, offeringID)
	if err != nil {
		return nil, err
	}
	if !offering.IsActive {
		return nil, ErrOfferingInactive
	}

	today := model.Date(s.now().In(s.loc))
	rule := RuleFromOffering(offering)
	if rule.StartDate.Before(today) {
		rule.StartDate = today
	}
	seq, err := GenerateSessionDrafts(offering.OfferingID, rule)
	if err != nil {
		return nil, err
	}

	var created, removed int
	err = withLock(ctx, s.locker, sessionLockKey(offering.OfferingID), s.lockTTL, func() error {
		return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
			// 已有考勤的课次不删除，考勤是薪资计算依据
			n, err := tx.Session.DeleteScheduledFrom(ctx, offering.OfferingID, today)
			if err != nil {
				return err
			}
			removed = int(n)

			// 保留下来的课次按规则原始日期占位，调课到其他日期的课次同样占住原日期
			kept, err := tx.Session.ListByOffering(ctx, offering.OfferingID, nil, nil)
			if err != nil {
				return err
			}
			occupied := make(map[time.Time]struct{}, len(kept))
			for i := range kept {
				occupied[model.Date(kept[i].OriginalDate)] = struct{}{}
			}

			drafts := collectDrafts(seq, callerID, occupied)
			created = len(drafts)
			return tx.Session.CreateBatch(ctx, drafts)
		})
	})
	if err != nil {
		return nil, s.mapGenerateError(err, offering.OfferingID)
	}

	s.logger.Info("课次重新生成完成",
		zap.String("offering_id", offering.OfferingID),
		zap.Int("removed", removed),
		zap.Int("count", created),
	)
	return &dto.GenerateSessionsResponse{OfferingID: offering.OfferingID, Count: created, Removed: removed}, nil
}

// ────────────────────── List ──────────────────────

func (s *sessionService) ListSessions(ctx context.Context, organizationID, offeringID string, req *dto.ListSessionsRequest) ([]dto.SessionResponse, error) {
	if _, err := loadOffering(ctx, s.repo, s.logger, organizationID, offeringID); err != nil {
		return nil, err
	}

	from, err := parseOptionalDate(req.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		return nil, err
	}

	sessions, err := s.repo.Session.ListByOffering(ctx, offeringID, from, to)
	if err != nil {
		s.logger.Error("列出课次失败", zap.String("offering_id", offeringID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, *toSessionResponse(&sessions[i]))
	}
	return result, nil
}

// ────────────────────── Cancel / Reschedule ──────────────────────

func (s *sessionService) CancelSession(ctx context.Context, organizationID, sessionID string, req *dto.CancelSessionRequest, callerID string) (*dto.SessionResponse, error) {
	session, err := s.loadMutableSession(ctx, organizationID, sessionID)
	if err != nil {
		return nil, err
	}

	session.Status = model.SessionCancelled
	session.CancelReason = req.Reason
	session.UpdatedBy = &callerID

	if err := s.repo.Session.Update(ctx, session); err != nil {
		s.logger.Error("取消课次失败", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	return toSessionResponse(session), nil
}

func (s *sessionService) RescheduleSession(ctx context.Context, organizationID, sessionID string, req *dto.RescheduleSessionRequest, callerID string) (*dto.SessionResponse, error) {
	date, err := model.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDateFilter
	}
	startTime, endTime, err := normalizeTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	session, err := s.loadMutableSession(ctx, organizationID, sessionID)
	if err != nil {
		return nil, err
	}

	// 调课后日期不再受开课星期约束
	session.Date = date
	session.StartTime = startTime
	session.EndTime = endTime
	session.Status = model.SessionRescheduled
	session.UpdatedBy = &callerID

	// 已记录的考勤随课次改到新日期，薪资按实际上课日期归属发薪周期
	var moved int64
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Session.Update(ctx, session); err != nil {
			return err
		}
		n, err := tx.Attendance.MoveSessionDate(ctx, sessionID, date, callerID)
		moved = n
		return err
	})
	if err != nil {
		s.logger.Error("调课失败", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	if moved > 0 {
		s.logger.Info("调课同步考勤日期",
			zap.String("session_id", sessionID),
			zap.Int64("attendance", moved),
		)
	}
	return toSessionResponse(session), nil
}

// ────────────────────── Calendar ──────────────────────

func (s *sessionService) ExportCalendar(ctx context.Context, organizationID, offeringID string) ([]byte, string, error) {
	offering, err := loadOffering(ctx, s.repo, s.logger, organizationID, offeringID)
	if err != nil {
		return nil, "", err
	}

	sessions, err := s.repo.Session.ListByOffering(ctx, offeringID, nil, nil)
	if err != nil {
		s.logger.Error("查询课次失败", zap.String("offering_id", offeringID), zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//VedicRoots//Electives//EN")
	cal.SetXWRCalName(offering.Name)
	cal.SetXWRTimezone(s.loc.String())

	stamp := s.now().UTC()
	for i := range sessions {
		cs := &sessions[i]
		start, err := sessionClock(cs.Date, cs.StartTime, s.loc)
		if err != nil {
			return nil, "", err
		}
		end, err := sessionClock(cs.Date, cs.EndTime, s.loc)
		if err != nil {
			return nil, "", err
		}

		event := cal.AddEvent(cs.SessionID + "@vedicroots")
		event.SetDtStampTime(stamp)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(offering.Name)
		switch cs.Status {
		case model.SessionCancelled:
			event.SetStatus(ics.ObjectStatusCancelled)
			if cs.CancelReason != "" {
				event.SetDescription(cs.CancelReason)
			}
		default:
			event.SetStatus(ics.ObjectStatusConfirmed)
		}
	}

	filename := fmt.Sprintf("%s.ics", offering.Name)
	return []byte(cal.Serialize()), filename, nil
}

// ── 内部辅助方法 ──

func sessionLockKey(offeringID string) string {
	return "lock:sessions:" + offeringID
}

func (s *sessionService) mapGenerateError(err error, offeringID string) error {
	switch {
	case errors.Is(err, apperrors.ErrLockNotAcquired):
		return ErrGenerationLocked
	case errors.Is(err, ErrSessionsExist):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		// 无锁降级时并发生成，存在性检查之后被另一请求抢先写入
		return ErrSessionsExist
	default:
		s.logger.Error("写入课次失败", zap.String("offering_id", offeringID), zap.Error(err))
		return err
	}
}

// loadMutableSession 加载课次并确认可被修改（所属组织一致且未完成）
func (s *sessionService) loadMutableSession(ctx context.Context, organizationID, sessionID string) (*model.ClassSession, error) {
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
	if session.Status == model.SessionCompleted {
		return nil, ErrSessionImmutable
	}
	return session, nil
}

// collectDrafts 物化草稿序列，跳过 skip 中已占用的日期
func collectDrafts(seq iter.Seq[model.ClassSession], callerID string, skip map[time.Time]struct{}) []model.ClassSession {
	var drafts []model.ClassSession
	for draft := range seq {
		if _, taken := skip[draft.Date]; taken {
			continue
		}
		draft.CreatedBy = &callerID
		draft.UpdatedBy = &callerID
		drafts = append(drafts, draft)
	}
	return slices.Clip(drafts)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil, ErrInvalidDateFilter
	}
	return &d, nil
}

// sessionClock 将日历日期与 HH:MM 组合为 loc 时区下的时刻
func sessionClock(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	t, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

func toSessionResponse(cs *model.ClassSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:           cs.SessionID,
		OfferingID:   cs.OfferingID,
		Date:         cs.Date.Format(model.DateLayout),
		OriginalDate: cs.OriginalDate.Format(model.DateLayout),
		StartTime:    trimSeconds(cs.StartTime),
		EndTime:      trimSeconds(cs.EndTime),
		Status:       string(cs.Status),
		CancelReason: cs.CancelReason,
	}
}

// trimSeconds time 列读回为 HH:MM:SS，响应统一为 HH:MM
func trimSeconds(clock string) string {
	if t, err := parseClock(clock); err == nil {
		return t.Format(model.TimeLayout)
	}
	return clock
}
