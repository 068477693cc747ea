// Package types 定义账户授权的基础类型
//
// 本文件定义所有公共错误类型。
package types

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength 定长字段长度不符
	ErrInvalidLength = errors.New("invalid length")

	// ErrInvalidHex 十六进制字符串无效
	ErrInvalidHex = errors.New("invalid hex string")
)

// LengthError 定长字段长度错误
//
// 通过 errors.Is(err, ErrInvalidLength) 判断。
type LengthError struct {
	// Field 字段名（identity / signature / payload ...）
	Field string

	// Want 期望长度
	Want int

	// Got 实际长度
	Got int
}

// Error 实现 error 接口
func (e *LengthError) Error() string {
	return fmt.Sprintf("invalid %s length: want %d bytes, got %d", e.Field, e.Want, e.Got)
}

// Is 使 LengthError 匹配 ErrInvalidLength
func (e *LengthError) Is(target error) bool {
	return target == ErrInvalidLength
}

// checkLength 校验长度
func checkLength(field string, want int, b []byte) error {
	if len(b) != want {
		return &LengthError{Field: field, Want: want, Got: len(b)}
	}
	return nil
}
