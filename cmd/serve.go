package cmd

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"tes/server"
	"tes/store"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve simulations over websocket.",
	Long: `serve listens on --addr and accepts websocket connections on /ws. A client
sends {"type": "start", "content": "<ini text>"} and receives the output
snapshots as they are produced, followed by "finished". "stop" stops the
running simulation between two time steps and "history" replays the last
snapshots.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var db *store.DB
		if dbPath != "" {
			var err error
			if db, err = store.Open(dbPath); err != nil {
				return err
			}
			defer db.Close()
		}
		upgrader := websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		}
		return server.NewServer(addr, upgrader, db).Serve()
	},
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", ":9000", "listen address")
	serveCmd.Flags().StringVar(&dbPath, "db", "", "SQLite file to save runs and snapshots to")
}
