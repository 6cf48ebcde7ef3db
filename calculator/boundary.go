package calculator

import (
	"strings"
)

// Position 边界位置
type Position int

const (
	First Position = iota
	Last
)

var positionNames = [...]string{First: "first", Last: "last"}

func (p Position) String() string { return positionNames[p] }

func ParsePosition(name string) (Position, error) {
	for i, n := range positionNames {
		if strings.EqualFold(n, name) {
			return Position(i), nil
		}
	}
	return 0, configError("boundary condition", name, "unknown position", positionNames[:]...)
}

// BCKind 边界条件类型
type BCKind int

const (
	FixedValue BCKind = iota
	ZeroGradient
)

var bcKindNames = [...]string{FixedValue: "fixed_value", ZeroGradient: "zero_gradient"}

func (k BCKind) String() string { return bcKindNames[k] }

func ParseBCKind(name string) (BCKind, error) {
	for i, n := range bcKindNames {
		if strings.EqualFold(n, name) {
			return BCKind(i), nil
		}
	}
	return 0, configError("boundary condition", name, "unknown kind", bcKindNames[:]...)
}

// BoundaryCondition 第一类边界给定温度（可随时间变化），零梯度边界为绝热/自由出流
type BoundaryCondition struct {
	Kind     BCKind
	Position Position
	Value    float64
	table    *timeTable
}

// ValueAt t 时刻的边界温度
func (bc BoundaryCondition) ValueAt(t float64) float64 {
	if bc.table != nil {
		return bc.table.At(t)
	}
	return bc.Value
}
