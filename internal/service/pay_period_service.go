package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/config"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/dto"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/model"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/repository"
	apperrors "github.com/jvpatel1702/vedicroots-attendance-system-sub001/pkg/errors"
)

// ── 发薪周期模块业务错误 ──

var (
	ErrPayPeriodsExist   = errors.New("该年度发薪周期已存在")
	ErrPayPeriodNotFound = errors.New("发薪周期不存在")
	ErrPayPeriodClosed   = errors.New("发薪周期已关闭")
)

// PayPeriodService 发薪周期业务接口
type PayPeriodService interface {
	CreatePayPeriods(ctx context.Context, organizationID string, req *dto.CreatePayPeriodsRequest, callerID string) (*dto.CreatePayPeriodsResponse, error)
	ListPayPeriods(ctx context.Context, organizationID string, year int) ([]dto.PayPeriodResponse, error)
	ClosePayPeriod(ctx context.Context, organizationID, id, callerID string) (*dto.PayPeriodResponse, error)
}

type payPeriodService struct {
	repo    *repository.Repository
	locker  Locker
	lockTTL time.Duration
	logger  *zap.Logger
}

// NewPayPeriodService 创建 PayPeriodService 实例
func NewPayPeriodService(repo *repository.Repository, locker Locker, cfg *config.PayrollConfig, logger *zap.Logger) PayPeriodService {
	return &payPeriodService{repo: repo, locker: locker, lockTTL: cfg.LockTTL, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *payPeriodService) CreatePayPeriods(ctx context.Context, organizationID string, req *dto.CreatePayPeriodsRequest, callerID string) (*dto.CreatePayPeriodsResponse, error) {
	freq, err := ParsePayFrequency(req.Frequency)
	if err != nil {
		return nil, err
	}
	seq, err := GeneratePayPeriodDrafts(organizationID, req.Year, freq)
	if err != nil {
		return nil, err
	}

	var periods []model.PayPeriod
	lockKey := fmt.Sprintf("lock:pay-periods:%s:%d", organizationID, req.Year)
	err = withLock(ctx, s.locker, lockKey, s.lockTTL, func() error {
		return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
			existing, err := tx.PayPeriod.CountByYear(ctx, organizationID, req.Year)
			if err != nil {
				return err
			}
			if existing > 0 {
				return ErrPayPeriodsExist
			}

			for p := range seq {
				p.CreatedBy = &callerID
				p.UpdatedBy = &callerID
				periods = append(periods, p)
			}
			return tx.PayPeriod.CreateBatch(ctx, slices.Clip(periods))
		})
	})
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrLockNotAcquired):
		return nil, ErrGenerationLocked
	case errors.Is(err, ErrPayPeriodsExist):
		return nil, err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return nil, ErrPayPeriodsExist
	default:
		s.logger.Error("创建发薪周期失败",
			zap.String("organization_id", organizationID),
			zap.Int("year", req.Year),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("发薪周期创建完成",
		zap.String("organization_id", organizationID),
		zap.Int("year", req.Year),
		zap.String("frequency", string(freq)),
		zap.Int("count", len(periods)),
	)
	return &dto.CreatePayPeriodsResponse{Year: req.Year, Frequency: string(freq), Count: len(periods)}, nil
}

// ────────────────────── List ──────────────────────

func (s *payPeriodService) ListPayPeriods(ctx context.Context, organizationID string, year int) ([]dto.PayPeriodResponse, error) {
	periods, err := s.repo.PayPeriod.ListByYear(ctx, organizationID, year)
	if err != nil {
		s.logger.Error("列出发薪周期失败", zap.Int("year", year), zap.Error(err))
		return nil, err
	}

	result := make([]dto.PayPeriodResponse, 0, len(periods))
	for i := range periods {
		result = append(result, *toPayPeriodResponse(&periods[i]))
	}
	return result, nil
}

// ────────────────────── Close ──────────────────────

func (s *payPeriodService) ClosePayPeriod(ctx context.Context, organizationID, id, callerID string) (*dto.PayPeriodResponse, error) {
	period, err := s.repo.PayPeriod.GetByID(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPayPeriodNotFound
		}
		s.logger.Error("查询发薪周期失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if period.Status == model.PayPeriodClosed {
		return nil, ErrPayPeriodClosed
	}

	if err := s.repo.PayPeriod.UpdateStatus(ctx, id, model.PayPeriodClosed, callerID); err != nil {
		s.logger.Error("关闭发薪周期失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	period.Status = model.PayPeriodClosed
	return toPayPeriodResponse(period), nil
}

// ── 内部辅助方法 ──

func toPayPeriodResponse(p *model.PayPeriod) *dto.PayPeriodResponse {
	return &dto.PayPeriodResponse{
		ID:        p.PayPeriodID,
		Name:      p.Name,
		StartDate: p.StartDate.Format(model.DateLayout),
		EndDate:   p.EndDate.Format(model.DateLayout),
		Frequency: string(p.Frequency),
		Status:    string(p.Status),
	}
}
