package analysis

import (
	"errors"
	"fmt"
)

// 错误分类，调用方使用 errors.Is 判断
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrProviderConfiguration = errors.New("provider not configured")
	ErrProviderUnavailable   = errors.New("provider unavailable")
	ErrEmptyProviderResponse = errors.New("empty provider response")
	ErrMalformedResponse     = errors.New("malformed response")
	ErrIncompleteResponse    = errors.New("incomplete response")
	ErrPersistence           = errors.New("persistence error")
	ErrNotFound              = errors.New("not found")
)

// ResponseError 模型回复解析失败，Raw 保留原始文本仅用于日志排查
type ResponseError struct {
	Kind   error
	Reason string
	Raw    string
	Err    error
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Reason)
}

// Is 使 errors.Is(err, ErrMalformedResponse) 等判断成立
func (e *ResponseError) Is(target error) bool {
	return target == e.Kind
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

func malformed(raw, reason string, err error) error {
	return &ResponseError{Kind: ErrMalformedResponse, Reason: reason, Raw: raw, Err: err}
}

func incomplete(raw, reason string) error {
	return &ResponseError{Kind: ErrIncompleteResponse, Reason: reason, Raw: raw}
}

// InvalidInputf 构造输入校验错误
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
