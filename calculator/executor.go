package calculator

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// 互相独立的计算任务，在 worker 之间分配
type task struct {
	index int
	sim   *Simulation
}

type executor struct {
	dispatchChan chan task
	workers      int
	wg           sync.WaitGroup
}

func newExecutor(workers int) *executor {
	if workers < 1 {
		workers = 1
	}
	return &executor{
		dispatchChan: make(chan task, workers),
		workers:      workers,
	}
}

func (e *executor) run(errs []error) {
	for i := 0; i < e.workers; i++ {
		e.wg.Add(1)
		go func(i int) {
			defer e.wg.Done()
			for t := range e.dispatchChan {
				start := time.Now()
				errs[t.index] = t.sim.Run()
				log.WithFields(log.Fields{
					"worker":   i,
					"task":     t.index,
					"duration": time.Since(start),
				}).Debug("batch task finished")
			}
		}(i)
	}
}

// RunBatch 并发运行相互独立的计算，单个计算内部仍是串行的。返回的错误与 sims 一一对应
func RunBatch(sims []*Simulation, workers int) []error {
	errs := make([]error, len(sims))
	e := newExecutor(workers)
	e.run(errs)
	for i, s := range sims {
		e.dispatchChan <- task{index: i, sim: s}
	}
	close(e.dispatchChan)
	e.wg.Wait()
	return errs
}
