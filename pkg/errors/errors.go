package errors

import "errors"

// ErrLockNotAcquired 分布式锁被其他请求持有
var ErrLockNotAcquired = errors.New("操作正在进行中，请稍后重试")
