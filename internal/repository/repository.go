package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User       UserRepository
	Offering   OfferingRepository
	Enrollment EnrollmentRepository
	Session    ClassSessionRepository
	PayPeriod  PayPeriodRepository
	Attendance AttendanceRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		User:       NewUserRepo(db),
		Offering:   NewOfferingRepo(db),
		Enrollment: NewEnrollmentRepo(db),
		Session:    NewClassSessionRepo(db),
		PayPeriod:  NewPayPeriodRepo(db),
		Attendance: NewAttendanceRepo(db),
	}
}

// Transaction 在同一事务中执行 fn，fn 返回错误或 panic 时回滚。
// 未绑定数据库连接时（单元测试使用 mock 仓储）直接以当前聚合执行。
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
