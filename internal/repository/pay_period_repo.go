package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/model"
)

// PayPeriodRepository 发薪周期数据访问接口
type PayPeriodRepository interface {
	// CountByYear 统计组织在某年内开始的发薪周期数量
	CountByYear(ctx context.Context, organizationID string, year int) (int64, error)
	CreateBatch(ctx context.Context, periods []model.PayPeriod) error
	ListByYear(ctx context.Context, organizationID string, year int) ([]model.PayPeriod, error)
	GetByID(ctx context.Context, organizationID, id string) (*model.PayPeriod, error)
	UpdateStatus(ctx context.Context, id string, status model.PayPeriodStatus, updatedBy string) error
}

type payPeriodRepo struct {
	db *gorm.DB
}

// NewPayPeriodRepo 创建 PayPeriodRepository 实例
func NewPayPeriodRepo(db *gorm.DB) PayPeriodRepository {
	return &payPeriodRepo{db: db}
}

func yearBounds(year int) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

func (r *payPeriodRepo) CountByYear(ctx context.Context, organizationID string, year int) (int64, error) {
	first, last := yearBounds(year)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PayPeriod{}).
		Where("organization_id = ? AND start_date BETWEEN ? AND ?", organizationID, first, last).
		Count(&count).Error
	return count, err
}

func (r *payPeriodRepo) CreateBatch(ctx context.Context, periods []model.PayPeriod) error {
	if len(periods) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&periods).Error
}

func (r *payPeriodRepo) ListByYear(ctx context.Context, organizationID string, year int) ([]model.PayPeriod, error) {
	first, last := yearBounds(year)
	var periods []model.PayPeriod
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND start_date BETWEEN ? AND ?", organizationID, first, last).
		Order("start_date ASC").
		Find(&periods).Error
	return periods, err
}

func (r *payPeriodRepo) GetByID(ctx context.Context, organizationID, id string) (*model.PayPeriod, error) {
	var period model.PayPeriod
	err := r.db.WithContext(ctx).
		Where("pay_period_id = ? AND organization_id = ?", id, organizationID).
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *payPeriodRepo) UpdateStatus(ctx context.Context, id string, status model.PayPeriodStatus, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.PayPeriod{}).
		Where("pay_period_id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}
