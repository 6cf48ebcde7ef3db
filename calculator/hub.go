package calculator

import (
	"sync"

	"tes/model"
)

// CalcHub 计算协程与推送协程之间的信号
type CalcHub struct {
	// 计算停止信号，只在两个时间步之间检查
	Stop chan struct{}
	// 快照推送
	PeriodCalcResult chan model.Snapshot

	stopOnce *sync.Once
}

func NewCalcHub() *CalcHub {
	ch := &CalcHub{
		PeriodCalcResult: make(chan model.Snapshot, 64),
	}
	ch.StartSignal()
	return ch
}

// PushSignal 推送快照，计算已停止时放弃推送并返回 false
func (ch *CalcHub) PushSignal(s model.Snapshot) bool {
	select {
	case ch.PeriodCalcResult <- s:
		return true
	case <-ch.Stop:
		return false
	}
}

// StopSignal 可以重复调用
func (ch *CalcHub) StopSignal() {
	ch.stopOnce.Do(func() {
		close(ch.Stop)
	})
}

func (ch *CalcHub) StartSignal() {
	ch.Stop = make(chan struct{})
	ch.stopOnce = &sync.Once{}
}

func (ch *CalcHub) Stopped() bool {
	select {
	case <-ch.Stop:
		return true
	default:
		return false
	}
}
