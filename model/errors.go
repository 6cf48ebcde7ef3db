package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration 配置错误，总是在时间循环开始前返回
	ErrConfiguration = errors.New("configuration error")
	// ErrState 调用顺序错误
	ErrState = errors.New("state error")
)

// ConfigurationError 缺少或非法的配置参数，未知的名称会附带可选值
type ConfigurationError struct {
	Component string
	Key       string
	Reason    string
	Valid     []string
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Component)
	if e.Key != "" {
		fmt.Fprintf(&b, ": %s", e.Key)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if len(e.Valid) > 0 {
		fmt.Fprintf(&b, " (valid: %s)", strings.Join(e.Valid, ", "))
	}
	return b.String()
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// StateError 使用方式错误，例如推进未配置完成的相
type StateError struct {
	Phase  string
	Op     string
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("phase %q: %s: %s", e.Phase, e.Op, e.Reason)
}

func (e *StateError) Is(target error) bool {
	return target == ErrState
}
