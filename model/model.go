package model

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 消息类型
const (
	MsgStart    = "start"
	MsgStop     = "stop"
	MsgHistory  = "history"
	MsgStarted  = "started"
	MsgStopped  = "stopped"
	MsgFinished = "finished"
	MsgSnapshot = "snapshot"
	MsgError    = "error"
)

// Snapshot 某一时刻某个相的一个场的快照
type Snapshot struct {
	Phase  string    `json:"phase"`
	Time   float64   `json:"time"`
	Field  string    `json:"field"`
	Tracks int       `json:"tracks"`
	Nodes  int       `json:"nodes"`
	Data   []float64 `json:"data"`
}

// 推送给前端的快照数据，附带节点坐标
type SnapshotPushData struct {
	Snapshot
	NodePos []float64 `json:"node_pos"`
}

const (
	ZeroCelsius = 273.15 // 0℃ 对应的开尔文温度
)
