package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/model"
)

// EnrollmentRepository 选课数据访问接口
type EnrollmentRepository interface {
	GetByID(ctx context.Context, id string) (*model.Enrollment, error)
}

type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo 创建 EnrollmentRepository 实例
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) GetByID(ctx context.Context, id string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.WithContext(ctx).
		Where("enrollment_id = ?", id).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}
