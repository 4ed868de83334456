package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByID(ctx context.Context, organizationID, id string) (*model.User, error)
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, organizationID, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND organization_id = ?", id, organizationID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
