package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/dto"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/model"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/repository"
)

// ── 开课模块业务错误 ──

var (
	ErrOfferingNotFound = errors.New("开课不存在")
)

// OfferingService 开课查询接口（开课的增删改由教务系统负责）
type OfferingService interface {
	GetByID(ctx context.Context, organizationID, id string) (*dto.OfferingResponse, error)
	List(ctx context.Context, organizationID string, req *dto.ListOfferingsRequest) ([]dto.OfferingResponse, error)
}

type offeringService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewOfferingService 创建 OfferingService 实例
func NewOfferingService(repo *repository.Repository, logger *zap.Logger) OfferingService {
	return &offeringService{repo: repo, logger: logger}
}

func (s *offeringService) GetByID(ctx context.Context, organizationID, id string) (*dto.OfferingResponse, error) {
	o, err := loadOffering(ctx, s.repo, s.logger, organizationID, id)
	if err != nil {
		return nil, err
	}
	return toOfferingResponse(o), nil
}

func (s *offeringService) List(ctx context.Context, organizationID string, req *dto.ListOfferingsRequest) ([]dto.OfferingResponse, error) {
	offerings, err := s.repo.Offering.List(ctx, organizationID, req.TeacherID)
	if err != nil {
		s.logger.Error("列出开课失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.OfferingResponse, 0, len(offerings))
	for i := range offerings {
		result = append(result, *toOfferingResponse(&offerings[i]))
	}
	return result, nil
}

// ── 内部辅助方法 ──

// loadOffering 按组织加载开课，不存在时返回 ErrOfferingNotFound
func loadOffering(ctx context.Context, repo *repository.Repository, logger *zap.Logger, organizationID, id string) (*model.Offering, error) {
	o, err := repo.Offering.GetByID(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferingNotFound
		}
		logger.Error("查询开课失败", zap.String("offering_id", id), zap.Error(err))
		return nil, err
	}
	return o, nil
}

func toOfferingResponse(o *model.Offering) *dto.OfferingResponse {
	return &dto.OfferingResponse{
		ID:             o.OfferingID,
		TeacherID:      o.TeacherID,
		Name:           o.Name,
		CostPerSession: o.CostPerSession.StringFixed(2),
		DayOfWeek:      o.DayOfWeek,
		StartDate:      o.StartDate.Format(model.DateLayout),
		EndDate:        o.EndDate.Format(model.DateLayout),
		StartTime:      o.StartTime,
		EndTime:        o.EndTime,
		IsActive:       o.IsActive,
	}
}
