// Package store 把计算记录和输出快照保存到 SQLite
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"tes/model"
)

// 计算状态
const (
	StatusRunning  = "running"
	StatusFinished = "finished"
	StatusStopped  = "stopped"
	StatusFailed   = "failed"
)

type DB struct {
	conn *sqlx.DB
}

// Run 一次计算的记录，Config 为原始 ini 文本
type Run struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Config    string `db:"config"`
	Status    string `db:"status"`
	Steps     int    `db:"steps"`
	CreatedAt string `db:"created_at"`
}

type snapshotRow struct {
	Phase    string  `db:"phase"`
	Time     float64 `db:"time"`
	Field    string  `db:"field"`
	Tracks   int     `db:"tracks"`
	Nodes    int     `db:"nodes"`
	DataJSON string  `db:"data_json"`
}

// Open 打开或创建数据库
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		config TEXT NOT NULL,
		status TEXT NOT NULL,
		steps INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		phase TEXT NOT NULL,
		time REAL NOT NULL,
		field TEXT NOT NULL,
		tracks INTEGER NOT NULL,
		nodes INTEGER NOT NULL,
		data_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_run ON snapshots(run_id, phase, time);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// CreateRun 新建一条计算记录
func (db *DB) CreateRun(name, config string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.conn.Exec(
		"INSERT INTO runs (id, name, config, status, steps, created_at) VALUES (?, ?, ?, ?, 0, ?)",
		id.String(), name, config, StatusRunning, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create run: %w", err)
	}
	return id, nil
}

// FinishRun 更新计算状态和完成的步数
func (db *DB) FinishRun(id uuid.UUID, status string, steps int) error {
	res, err := db.conn.Exec("UPDATE runs SET status = ?, steps = ? WHERE id = ?", status, steps, id.String())
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("finish run: unknown run %s", id)
	}
	return nil
}

func (db *DB) Run(id uuid.UUID) (Run, error) {
	var r Run
	err := db.conn.Get(&r, "SELECT id, name, config, status, steps, created_at FROM runs WHERE id = ?", id.String())
	return r, err
}

// Runs 按创建时间倒序
func (db *DB) Runs(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs,
		"SELECT id, name, config, status, steps, created_at FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	return runs, err
}

// SaveSnapshots 在一个事务中写入
func (db *DB) SaveSnapshots(id uuid.UUID, snapshots []model.Snapshot) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT INTO snapshots
		(run_id, phase, time, field, tracks, nodes, data_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	var size int
	for _, s := range snapshots {
		data, err := json.Marshal(s.Data)
		if err != nil {
			return fmt.Errorf("marshal snapshot %s/%s at %g: %w", s.Phase, s.Field, s.Time, err)
		}
		size += len(data)
		if _, err := stmt.Exec(id.String(), s.Phase, s.Time, s.Field, s.Tracks, s.Nodes, string(data)); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"run":       id,
		"snapshots": len(snapshots),
		"size":      humanize.Bytes(uint64(size)),
	}).Info("save snapshots")
	return nil
}

// Snapshots 某个相按时间排序的快照，phase 为空时返回所有相
func (db *DB) Snapshots(id uuid.UUID, phase string) ([]model.Snapshot, error) {
	var rows []snapshotRow
	query := "SELECT phase, time, field, tracks, nodes, data_json FROM snapshots WHERE run_id = ?"
	args := []interface{}{id.String()}
	if phase != "" {
		query += " AND phase = ?"
		args = append(args, phase)
	}
	query += " ORDER BY time, id"
	if err := db.conn.Select(&rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]model.Snapshot, len(rows))
	for i, r := range rows {
		out[i] = model.Snapshot{Phase: r.Phase, Time: r.Time, Field: r.Field, Tracks: r.Tracks, Nodes: r.Nodes}
		if err := json.Unmarshal([]byte(r.DataJSON), &out[i].Data); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot %s/%s at %g: %w", r.Phase, r.Field, r.Time, err)
		}
	}
	return out, nil
}
