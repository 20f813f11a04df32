package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"registro/internal/store"
)

var testTable = store.Table{
	Name:    "horas",
	Columns: []string{"ID", "Data", "Horas", "Pago"},
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, dir
}

func TestLoadAbsentFileCreatesEmptyLedger(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	rows, err := s.Load(ctx, testTable)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}

	// The file now exists with the header so the schema is pinned.
	data, err := os.ReadFile(filepath.Join(dir, "horas.csv"))
	if err != nil {
		t.Fatalf("read created file: %v", err)
	}
	if string(data) != "ID,Data,Horas,Pago\n" {
		t.Errorf("created file = %q, want header only", string(data))
	}
}

func TestAppendAndReload(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	row := store.Record{"ID": "a1", "Data": "2025-03-10", "Horas": "8", "Pago": "Sim"}
	if err := s.Append(ctx, testTable, row); err != nil {
		t.Fatalf("Append: %v", err)
	}

	// Drop the cache and read from disk.
	s.Invalidate(testTable)
	rows, err := s.Load(ctx, testTable)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0]["ID"] != "a1" || rows[0]["Horas"] != "8" {
		t.Errorf("row = %v", rows[0])
	}
}

func TestSchemaBackfill(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	// Legacy file missing the Pago column.
	legacy := "ID,Data,Horas\nb1,2025-03-10,8\n"
	if err := os.WriteFile(filepath.Join(dir, "horas.csv"), []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := s.Load(ctx, testTable)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if got, ok := rows[0]["Pago"]; !ok || got != "" {
		t.Errorf("backfilled Pago = %q (present=%v), want empty present", got, ok)
	}

	// The rewrite pinned the full schema on disk.
	f, err := os.Open(filepath.Join(dir, "horas.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	header, err := csv.NewReader(f).Read()
	if err != nil {
		t.Fatal(err)
	}
	if len(header) != len(testTable.Columns) {
		t.Errorf("header = %v, want %v", header, testTable.Columns)
	}
}

func TestSaveRewritesWholeFile(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := s.Append(ctx, testTable, store.Record{"ID": id}); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.Save(ctx, testTable, []store.Record{{"ID": "only"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s.Invalidate(testTable)
	rows, err := s.Load(ctx, testTable)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0]["ID"] != "only" {
		t.Errorf("rows = %v, want single row 'only'", rows)
	}
}

func TestSaveWriteFailureRestoresSnapshot(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		if err := s.Append(ctx, testTable, store.Record{"ID": id}); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(dir, "horas.csv")
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	createFile = func(string) (*os.File, error) {
		return nil, errors.New("disk full")
	}
	t.Cleanup(func() { createFile = os.Create })

	err = s.Append(ctx, testTable, store.Record{"ID": "c"})
	if err == nil {
		t.Fatal("Append with failing write should error")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(after) != string(before) {
		t.Errorf("file after failed write = %q, want snapshot %q", after, before)
	}

	// The cache was dropped, so once writes work again the store serves the
	// rows that are actually on disk.
	createFile = os.Create
	rows, err := s.Load(ctx, testTable)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d rows after restore, want 2", len(rows))
	}
}

func TestSaveVerificationFailureRestoresSnapshot(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	if err := s.Append(ctx, testTable, store.Record{"ID": "a"}); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "horas.csv")
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// Make the read-back see an empty file so the row count never matches.
	decoy := filepath.Join(dir, "decoy.csv")
	if err := os.WriteFile(decoy, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	openFile = func(string) (*os.File, error) {
		return os.Open(decoy)
	}
	t.Cleanup(func() { openFile = os.Open })

	err = s.Save(ctx, testTable, []store.Record{{"ID": "a"}, {"ID": "b"}})
	if !errors.Is(err, store.ErrWriteVerification) {
		t.Fatalf("Save = %v, want ErrWriteVerification", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(after) != string(before) {
		t.Errorf("file after failed verification = %q, want snapshot %q", after, before)
	}

	openFile = os.Open
	rows, err := s.Load(ctx, testTable)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0]["ID"] != "a" {
		t.Errorf("rows after restore = %v, want the snapshotted row", rows)
	}
}

func TestDeleteByID(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		if err := s.Append(ctx, testTable, store.Record{"ID": id}); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.DeleteByID(ctx, testTable, "a"); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	rows, err := s.Load(ctx, testTable)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0]["ID"] != "b" {
		t.Errorf("rows after delete = %v", rows)
	}

	if err := s.DeleteByID(ctx, testTable, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("delete missing = %v, want ErrNotFound", err)
	}
}

func TestLoadReturnsClones(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.Append(ctx, testTable, store.Record{"ID": "a", "Horas": "8"}); err != nil {
		t.Fatal(err)
	}
	rows, err := s.Load(ctx, testTable)
	if err != nil {
		t.Fatal(err)
	}
	rows[0]["Horas"] = "mutated"

	again, err := s.Load(ctx, testTable)
	if err != nil {
		t.Fatal(err)
	}
	if again[0]["Horas"] != "8" {
		t.Error("caller mutation leaked into the store")
	}
}
