package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/config"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/repository"
)

// ── 通用业务错误 ──
// 各模块的具体错误通过 %w 包装这些基础错误，handler 用 errors.Is 归类

var (
	ErrInvalidInput  = errors.New("参数无效")
	ErrPayrollLookup = errors.New("课时费数据查询失败")
)

// Locker 分布式互斥锁，*redis.Client 实现了该接口。
// 返回的 unlock 只释放自己持有的锁。
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (unlock func(), err error)
}

// Service 所有 Service 的聚合入口
type Service struct {
	Offering   OfferingService
	Session    SessionService
	Attendance AttendanceService
	PayPeriod  PayPeriodService
	Payroll    PayrollService
	Export     ExportService
}

// NewService 创建 Service 聚合
// locker 为 nil 时生成类操作不加分布式锁（Redis 不可用时降级）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	locker Locker,
	logger *zap.Logger,
) *Service {
	payroll := NewPayrollService(repo, logger)
	return &Service{
		Offering:   NewOfferingService(repo, logger),
		Session:    NewSessionService(repo, locker, &cfg.Payroll, logger),
		Attendance: NewAttendanceService(repo, logger),
		PayPeriod:  NewPayPeriodService(repo, locker, &cfg.Payroll, logger),
		Payroll:    payroll,
		Export:     NewExportService(payroll, &cfg.Payroll, logger),
	}
}

// withLock 在持有 key 锁期间执行 fn；locker 为 nil 时直接执行
func withLock(ctx context.Context, locker Locker, key string, ttl time.Duration, fn func() error) error {
	if locker == nil {
		return fn()
	}
	unlock, err := locker.Lock(ctx, key, ttl)
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}
