package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/model"
)

// OfferingRepository 开课数据访问接口
type OfferingRepository interface {
	GetByID(ctx context.Context, organizationID, id string) (*model.Offering, error)
	// List teacherID 为空时返回组织内全部开课
	List(ctx context.Context, organizationID, teacherID string) ([]model.Offering, error)
}

type offeringRepo struct {
	db *gorm.DB
}

// NewOfferingRepo 创建 OfferingRepository 实例
func NewOfferingRepo(db *gorm.DB) OfferingRepository {
	return &offeringRepo{db: db}
}

func (r *offeringRepo) GetByID(ctx context.Context, organizationID, id string) (*model.Offering, error) {
	var offering model.Offering
	err := r.db.WithContext(ctx).
		Where("offering_id = ? AND organization_id = ?", id, organizationID).
		First(&offering).Error
	if err != nil {
		return nil, err
	}
	return &offering, nil
}

func (r *offeringRepo) List(ctx context.Context, organizationID, teacherID string) ([]model.Offering, error) {
	var offerings []model.Offering
	db := r.db.WithContext(ctx).Where("organization_id = ?", organizationID)
	if teacherID != "" {
		db = db.Where("teacher_id = ?", teacherID)
	}
	err := db.Order("name ASC").Find(&offerings).Error
	return offerings, err
}
