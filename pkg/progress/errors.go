package progress

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveBar 注册表中没有进度条
	ErrNoActiveBar = errors.New("no progress bar")
	// ErrBarPanicked 进度条操作过程中发生 panic
	ErrBarPanicked = errors.New("progress bar panicked")
)

// Error 是注册表操作失败时返回的错误
type Error struct {
	Op    string
	Cause error
}

// Error 实现error接口
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Unable to %s (%s)", e.Op, e.Cause.Error())
	}
	return fmt.Sprintf("Unable to %s", e.Op)
}

// Unwrap 支持error chain
func (e *Error) Unwrap() error {
	return e.Cause
}
