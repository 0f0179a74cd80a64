package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/code-and-relax/studio/internal/config"
	"github.com/code-and-relax/studio/internal/store"
	"github.com/code-and-relax/studio/internal/task"

	_ "github.com/code-and-relax/studio/internal/schema"
)

// ----------------------------------------------------------------------------
// Fake store
// ----------------------------------------------------------------------------

type fakeStore struct {
	mu        sync.Mutex
	records   []task.Record
	insertErr error
}

func (f *fakeStore) Insert(_ context.Context, t task.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.records = append(f.records, t)
	return nil
}

func (f *fakeStore) InsertAll(_ context.Context, ts []task.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.records = append(f.records, ts...)
	return nil
}

func (f *fakeStore) List(_ context.Context) ([]task.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]task.Record, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, id uuid.UUID) (task.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return task.Record{}, store.ErrNotFound
}

func (f *fakeStore) Update(_ context.Context, t task.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.records {
		if r.ID == t.ID {
			f.records[i] = t
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.records {
		if r.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) CountByStatus(_ context.Context) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[string]int64)
	for _, r := range f.records {
		counts[r.Status.String()]++
	}
	return counts, nil
}

func newTestService(fs *fakeStore) *Service {
	return New(fs, config.ImportConfig{
		MaxFileSize:   1 << 20,
		MaxConcurrent: 2,
		MaxWaitTime:   time.Second,
	})
}

const sampleFile = "#TERMINI,#DOCUMENTS/ACCIONS,#DATA A FER\n" +
	"7,Submit report,15/03/2024\n" +
	",Call client,#VALUE!\n" +
	"3,,01/04/2024\n"

// ----------------------------------------------------------------------------
// Import Tests
// ----------------------------------------------------------------------------

func TestImportFile(t *testing.T) {
	fs := &fakeStore{}
	svc := newTestService(fs)

	report, err := svc.ImportFile(context.Background(), "studio", "tasks.csv", []byte(sampleFile))
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}

	if report.Imported != 2 {
		t.Errorf("Imported = %d, want 2", report.Imported)
	}
	if report.TotalRows != 3 {
		t.Errorf("TotalRows = %d, want 3", report.TotalRows)
	}
	if len(report.Skipped) != 1 {
		t.Fatalf("Skipped = %d rows, want 1", len(report.Skipped))
	}
	if report.Skipped[0].Line != 4 {
		t.Errorf("skipped line = %d, want 4", report.Skipped[0].Line)
	}
	if len(fs.records) != 2 {
		t.Fatalf("stored %d records, want 2", len(fs.records))
	}

	first := fs.records[0]
	if first.Content != "Submit report" {
		t.Errorf("Content = %q", first.Content)
	}
	if first.Status != task.StatusPending {
		t.Errorf("Status = %v, want pending", first.Status)
	}

	// The empty termini cell takes the profile fallback.
	second := fs.records[1]
	if second.Termini != "No aplica" {
		t.Errorf("Termini = %q, want fallback", second.Termini)
	}
	if second.OriginalDue.IsConcrete() {
		t.Error("#VALUE! must materialize as a placeholder date")
	}
}

func TestImportFile_UnknownProfile(t *testing.T) {
	svc := newTestService(&fakeStore{})
	if _, err := svc.ImportFile(context.Background(), "nope", "f.csv", []byte(sampleFile)); err == nil {
		t.Error("unknown profile must fail")
	}
}

func TestImportFile_TooLarge(t *testing.T) {
	svc := New(&fakeStore{}, config.ImportConfig{MaxFileSize: 8, MaxConcurrent: 1})
	_, err := svc.ImportFile(context.Background(), "studio", "f.csv", []byte(sampleFile))
	if err != ErrFileTooLarge {
		t.Errorf("error = %v, want ErrFileTooLarge", err)
	}
}

func TestImportFile_MissingHeader(t *testing.T) {
	svc := newTestService(&fakeStore{})
	_, err := svc.ImportFile(context.Background(), "studio", "f.csv", []byte("a,b,c\n1,2,3\n"))
	if err == nil {
		t.Fatal("file without headers must fail")
	}
}

func TestImportFile_StoreFailure(t *testing.T) {
	fs := &fakeStore{insertErr: fmt.Errorf("connection reset")}
	svc := newTestService(fs)
	_, err := svc.ImportFile(context.Background(), "studio", "f.csv", []byte(sampleFile))
	if err == nil || !strings.Contains(err.Error(), "store import") {
		t.Errorf("error = %v, want store import failure", err)
	}
	// A failed import commits nothing.
	if len(fs.records) != 0 {
		t.Errorf("stored %d records after failed import, want 0", len(fs.records))
	}
}

// ----------------------------------------------------------------------------
// Export Tests
// ----------------------------------------------------------------------------

func TestExportCSV_RoundTrip(t *testing.T) {
	fs := &fakeStore{}
	svc := newTestService(fs)

	if _, err := svc.ImportFile(context.Background(), "studio", "f.csv", []byte(sampleFile)); err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}

	out, err := svc.ExportCSV(context.Background(), "studio")
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if lines[0] != "#TERMINI,#DOCUMENTS/ACCIONS,#DATA A FER" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("exported %d lines, want 3", len(lines))
	}
	if lines[1] != "7,Submit report,15/03/2024" {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != "No aplica,Call client,#VALUE!" {
		t.Errorf("row 2 = %q", lines[2])
	}
}

// ----------------------------------------------------------------------------
// CRUD Tests
// ----------------------------------------------------------------------------

func TestCreateTask(t *testing.T) {
	fs := &fakeStore{}
	svc := newTestService(fs)

	rec, err := svc.CreateTask(context.Background(), CreateParams{
		Content: "Review contract",
		DueDate: "2024-06-01",
	})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if !rec.OriginalDue.IsConcrete() {
		t.Error("ISO date must normalize to a concrete date")
	}
	if rec.OriginalDue.Render() != "01/06/2024" {
		t.Errorf("Render() = %q, want 01/06/2024", rec.OriginalDue.Render())
	}
	if len(fs.records) != 1 {
		t.Fatalf("stored %d records, want 1", len(fs.records))
	}
}

func TestCreateTask_EmptyContent(t *testing.T) {
	svc := newTestService(&fakeStore{})
	if _, err := svc.CreateTask(context.Background(), CreateParams{DueDate: "-"}); err == nil {
		t.Error("empty content must fail")
	}
}

func TestUpdateTask(t *testing.T) {
	fs := &fakeStore{}
	svc := newTestService(fs)

	rec, err := svc.CreateTask(context.Background(), CreateParams{
		Content: "Review contract",
		DueDate: "01/06/2024",
	})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	newDue := "15/06/2024"
	newStatus := "in_progress"
	updated, err := svc.UpdateTask(context.Background(), rec.ID, UpdateParams{
		AdjustedDue: &newDue,
		Status:      &newStatus,
	})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}

	if updated.AdjustedDue.Render() != "15/06/2024" {
		t.Errorf("AdjustedDue = %q", updated.AdjustedDue.Render())
	}
	if updated.OriginalDue.Render() != "01/06/2024" {
		t.Error("original due date must not move when the adjusted date changes")
	}
	if updated.Status != task.StatusInProgress {
		t.Errorf("Status = %v", updated.Status)
	}
	if updated.Content != "Review contract" {
		t.Error("untouched fields must survive a partial update")
	}
}

func TestUpdateTask_InvalidStatus(t *testing.T) {
	fs := &fakeStore{}
	svc := newTestService(fs)
	rec, _ := svc.CreateTask(context.Background(), CreateParams{Content: "x", DueDate: "-"})

	bad := "done"
	if _, err := svc.UpdateTask(context.Background(), rec.ID, UpdateParams{Status: &bad}); err == nil {
		t.Error("invalid status must fail")
	}
}

func TestUpdateTask_Color(t *testing.T) {
	fs := &fakeStore{}
	svc := newTestService(fs)
	rec, _ := svc.CreateTask(context.Background(), CreateParams{Content: "x", DueDate: "-"})

	good := "A7F3D0"
	updated, err := svc.UpdateTask(context.Background(), rec.ID, UpdateParams{Color: &good})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if updated.Color != "A7F3D0" {
		t.Errorf("Color = %q", updated.Color)
	}

	for _, bad := range []string{"", "red", "F5E96", "F5E9601", "GGGGGG", "#F5E960"} {
		bad := bad
		if _, err := svc.UpdateTask(context.Background(), rec.ID, UpdateParams{Color: &bad}); err == nil {
			t.Errorf("UpdateTask() with color %q must fail", bad)
		}
	}
}

func TestUpdateTask_NotFound(t *testing.T) {
	svc := newTestService(&fakeStore{})
	content := "x"
	_, err := svc.UpdateTask(context.Background(), uuid.New(), UpdateParams{Content: &content})
	if err != store.ErrNotFound {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDeleteTask(t *testing.T) {
	fs := &fakeStore{}
	svc := newTestService(fs)
	rec, _ := svc.CreateTask(context.Background(), CreateParams{Content: "x", DueDate: "-"})

	if err := svc.DeleteTask(context.Background(), rec.ID); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if _, err := svc.GetTask(context.Background(), rec.ID); err != store.ErrNotFound {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
}

func TestStats(t *testing.T) {
	fs := &fakeStore{}
	svc := newTestService(fs)
	svc.CreateTask(context.Background(), CreateParams{Content: "a", DueDate: "-"})
	svc.CreateTask(context.Background(), CreateParams{Content: "b", DueDate: "-"})

	counts, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if counts["pending"] != 2 {
		t.Errorf("pending = %d, want 2", counts["pending"])
	}
}
