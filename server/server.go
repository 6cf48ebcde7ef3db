package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"tes/model"
	"tes/store"
)

// 每个连接保留的快照消息数
const historyLength = 256

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	db       *store.DB
}

// NewServer db 为 nil 时不保存计算结果
func NewServer(addr string, upgrader websocket.Upgrader, db *store.DB) *Server {
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		db:       db,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("upgrade")
		return
	}
	defer conn.Close()
	hub := NewHub(conn, s.db, historyLength)
	defer hub.close()
	go hub.handleRequest()
	go hub.handleResponse()
	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithField("session", hub.id).WithError(err).Warn("read")
			}
			return
		}
		select {
		case hub.msg <- msg:
		case <-hub.done:
			return
		}
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("listen")
	return http.ListenAndServe(s.addr, s.Handler())
}
