package calculator

import (
	"errors"

	"tes/model"
)

type (
	ConfigurationError = model.ConfigurationError
	StateError         = model.StateError
)

var (
	ErrConfiguration = model.ErrConfiguration
	ErrState         = model.ErrState
	// ErrStopped 计算被 CalcHub 在两个时间步之间停止
	ErrStopped = errors.New("simulation stopped")
)

func configError(component, key, reason string, valid ...string) error {
	return &ConfigurationError{Component: component, Key: key, Reason: reason, Valid: valid}
}

func stateError(phase, op, reason string) error {
	return &StateError{Phase: phase, Op: op, Reason: reason}
}
