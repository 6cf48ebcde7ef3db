package server

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"tes/calculator"
	"tes/config"
	"tes/deque"
	"tes/model"
	"tes/store"
)

// Hub 一个 websocket 连接的会话，同一时刻最多运行一个计算
type Hub struct {
	id   uuid.UUID
	conn *websocket.Conn
	db   *store.DB

	// request
	msg chan model.Msg
	// response
	reply chan model.Msg
	done  chan struct{}

	mu      sync.Mutex
	calcHub *calculator.CalcHub
	nodePos map[string][]float64
	history *deque.ArrDeque[model.Msg]

	closeOnce sync.Once
}

func NewHub(conn *websocket.Conn, db *store.DB, historyLen int) *Hub {
	return &Hub{
		id:      uuid.New(),
		conn:    conn,
		db:      db,
		msg:     make(chan model.Msg, 10),
		reply:   make(chan model.Msg, 10),
		done:    make(chan struct{}),
		history: deque.NewArrDeque[model.Msg](historyLen),
	}
}

func (h *Hub) logger() *log.Entry {
	return log.WithField("session", h.id)
}

// close 停止正在运行的计算并关闭连接，阻塞在读取上的 serveWs 随之返回
func (h *Hub) close() {
	h.closeOnce.Do(func() {
		close(h.done)
		h.conn.Close()
		h.mu.Lock()
		if h.calcHub != nil {
			h.calcHub.StopSignal()
		}
		h.mu.Unlock()
	})
}

func (h *Hub) send(reply model.Msg) {
	select {
	case h.reply <- reply:
	case <-h.done:
	}
}

func (h *Hub) sendError(err error) {
	h.logger().WithError(err).Warn("request failed")
	h.send(model.Msg{Type: model.MsgError, Content: err.Error()})
}

func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.reply:
			if err := h.conn.WriteJSON(&reply); err != nil {
				h.logger().WithError(err).Warn("write")
				h.close()
				return
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleRequest() {
	for {
		select {
		case msg := <-h.msg:
			switch msg.Type {
			case model.MsgStart:
				h.start(msg.Content)
			case model.MsgStop:
				h.stop()
			case model.MsgHistory:
				h.replay(msg.Content)
			default:
				h.sendError(errors.New("no such type: " + msg.Type))
			}
		case <-h.done:
			return
		}
	}
}

// start content 为 ini 格式的计算配置
func (h *Hub) start(content string) {
	h.mu.Lock()
	running := h.calcHub != nil
	h.mu.Unlock()
	if running {
		h.sendError(&model.StateError{Phase: "simulation", Op: "start", Reason: "a simulation is already running"})
		return
	}

	cfg, err := config.Parse([]byte(content))
	if err != nil {
		h.sendError(err)
		return
	}
	sim, err := cfg.Build()
	if err != nil {
		h.sendError(err)
		return
	}

	runID := uuid.New()
	if h.db != nil {
		if runID, err = h.db.CreateRun(sim.Name, content); err != nil {
			h.sendError(err)
			return
		}
	}

	ch := calculator.NewCalcHub()
	sim.SetHub(ch)
	nodePos := make(map[string][]float64)
	for _, p := range sim.Phases() {
		nodePos[p.Name] = p.Grid().NodePos
	}
	h.mu.Lock()
	h.calcHub = ch
	h.nodePos = nodePos
	h.history.Clear()
	h.mu.Unlock()

	h.logger().WithFields(log.Fields{
		"run":   runID,
		"steps": sim.TotalSteps(),
	}).Info("simulation started")
	h.send(model.Msg{Type: model.MsgStarted, Content: runID.String()})
	go h.run(sim, runID)
}

// run 计算协程结束前把剩余的快照推送完
func (h *Hub) run(sim *calculator.Simulation, runID uuid.UUID) {
	ch := sim.GetCalcHub()
	done := make(chan error, 1)
	go func() {
		done <- sim.Run()
	}()

	var err error
loop:
	for {
		select {
		case snap := <-ch.PeriodCalcResult:
			h.push(snap)
		case err = <-done:
			break loop
		}
	}
	for drained := false; !drained; {
		select {
		case snap := <-ch.PeriodCalcResult:
			h.push(snap)
		default:
			drained = true
		}
	}

	status, reply := store.StatusFinished, model.Msg{Type: model.MsgFinished, Content: runID.String()}
	switch {
	case errors.Is(err, calculator.ErrStopped):
		status, reply = store.StatusStopped, model.Msg{Type: model.MsgStopped, Content: runID.String()}
	case err != nil:
		status, reply = store.StatusFailed, model.Msg{Type: model.MsgError, Content: err.Error()}
	}
	if h.db != nil {
		h.save(sim, runID, status)
	}

	h.mu.Lock()
	h.calcHub = nil
	h.mu.Unlock()
	ch.StopSignal()
	h.send(reply)
}

func (h *Hub) save(sim *calculator.Simulation, runID uuid.UUID, status string) {
	var snaps []model.Snapshot
	for _, p := range sim.Phases() {
		snaps = append(snaps, p.Snapshots()...)
	}
	if err := h.db.SaveSnapshots(runID, snaps); err != nil {
		h.logger().WithError(err).Error("save snapshots")
	}
	if err := h.db.FinishRun(runID, status, sim.Steps()); err != nil {
		h.logger().WithError(err).Error("finish run")
	}
}

func (h *Hub) push(snap model.Snapshot) {
	h.mu.Lock()
	data := model.SnapshotPushData{Snapshot: snap, NodePos: h.nodePos[snap.Phase]}
	h.mu.Unlock()
	content, err := json.Marshal(data)
	if err != nil {
		h.logger().WithError(err).Error("marshal snapshot")
		return
	}
	msg := model.Msg{Type: model.MsgSnapshot, Content: string(content)}
	h.mu.Lock()
	h.history.Push(msg)
	h.mu.Unlock()
	h.send(msg)
}

func (h *Hub) stop() {
	h.mu.Lock()
	ch := h.calcHub
	h.mu.Unlock()
	if ch == nil {
		h.sendError(&model.StateError{Phase: "simulation", Op: "stop", Reason: "no running simulation"})
		return
	}
	// 计算在下一个时间步之前停止，由 run 回复 stopped
	ch.StopSignal()
}

// replay 重新发送最近 n 个快照，content 为空时发送全部
func (h *Hub) replay(content string) {
	n := historyLength
	if s := strings.TrimSpace(content); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			h.sendError(errors.New("history: content must be a non-negative count"))
			return
		}
		n = v
	}
	h.mu.Lock()
	msgs := h.history.Last(n)
	h.mu.Unlock()
	for _, msg := range msgs {
		h.send(model.Msg{Type: model.MsgHistory, Content: msg.Content})
	}
}
