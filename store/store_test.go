package store

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"tes/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "tes.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRuns(t *testing.T) {
	db := openTestDB(t)
	id, err := db.CreateRun("packed bed", "[simulation]\ndt = 0.1\n")
	if err != nil {
		t.Fatal(err)
	}
	r, err := db.Run(id)
	if err != nil {
		t.Fatal(err)
	}
	if r.Name != "packed bed" || r.Status != StatusRunning || r.Config != "[simulation]\ndt = 0.1\n" {
		t.Errorf("run: %+v", r)
	}
	if err := db.FinishRun(id, StatusFinished, 3600); err != nil {
		t.Fatal(err)
	}
	if r, _ = db.Run(id); r.Status != StatusFinished || r.Steps != 3600 {
		t.Errorf("finished run: %+v", r)
	}
	if err := db.FinishRun(uuid.New(), StatusFailed, 0); err == nil {
		t.Error("finishing an unknown run should fail")
	}

	if _, err := db.CreateRun("second", ""); err != nil {
		t.Fatal(err)
	}
	runs, err := db.Runs(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].Name != "second" {
		t.Errorf("runs: %+v", runs)
	}
}

func TestSnapshots(t *testing.T) {
	db := openTestDB(t)
	id, err := db.CreateRun("sphere", "")
	if err != nil {
		t.Fatal(err)
	}
	snaps := []model.Snapshot{
		{Phase: "bed", Time: 10, Field: "T", Tracks: 1, Nodes: 3, Data: []float64{300, 310, 320}},
		{Phase: "fluid", Time: 0, Field: "T", Tracks: 1, Nodes: 2, Data: []float64{773.15, 300}},
		{Phase: "bed", Time: 0, Field: "T", Tracks: 1, Nodes: 3, Data: []float64{300, 300, 300}},
	}
	if err := db.SaveSnapshots(id, snaps); err != nil {
		t.Fatal(err)
	}

	bed, err := db.Snapshots(id, "bed")
	if err != nil {
		t.Fatal(err)
	}
	if len(bed) != 2 || bed[0].Time != 0 || bed[1].Time != 10 {
		t.Fatalf("bed snapshots: %+v", bed)
	}
	if bed[1].Data[2] != 320 || bed[1].Nodes != 3 || bed[1].Field != "T" {
		t.Errorf("bed snapshot: %+v", bed[1])
	}

	all, err := db.Snapshots(id, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("%d snapshots, want 3", len(all))
	}

	other, err := db.Snapshots(uuid.New(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Errorf("unknown run has %d snapshots", len(other))
	}
}
