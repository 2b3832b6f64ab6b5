// Package errors 提供统一错误辅助，不依赖 internal
package errors

import (
	"errors"
	"fmt"
)

// 常用哨兵错误（可按需扩展错误码）
var (
	ErrNotFound   = errors.New("not found")
	ErrInvalidArg = errors.New("invalid argument")
	// ErrBackendUnavailable 后端存储不可达（连接拒绝或超时），页面层渲染错误视图而非 5xx
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// BackendError 携带后端地址的不可达错误，errors.Is(err, ErrBackendUnavailable) 为真
type BackendError struct {
	Addr string
	Err  error
}

func (e *BackendError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("can't connect to %s", e.Addr)
	}
	return fmt.Sprintf("can't connect to %s: %v", e.Addr, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Is 使 BackendError 与 ErrBackendUnavailable 等价
func (e *BackendError) Is(target error) bool {
	return target == ErrBackendUnavailable
}

// Unavailable 构造 BackendError
func Unavailable(addr string, cause error) error {
	return &BackendError{Addr: addr, Err: cause}
}

// BackendAddr 从错误链中取出后端地址，没有则返回空串
func BackendAddr(err error) string {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Addr
	}
	return ""
}

// Is 转发标准库 errors.Is，避免调用方同时引入两个 errors 包
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Wrap 包装错误并附加消息
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf 带格式的 Wrap
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
