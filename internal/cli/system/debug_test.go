package system

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/weekplan/weekplan/internal/cli"
	"github.com/weekplan/weekplan/internal/constants"
	"github.com/weekplan/weekplan/internal/models"
	"github.com/weekplan/weekplan/internal/scheduler"
	"github.com/weekplan/weekplan/internal/storage/sqlite"
)

func setupTestDebugDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(),
	}

	return ctx, func() { store.Close() }
}

func TestDebugDBPathCmd(t *testing.T) {
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()

	cmd := &DebugDBPathCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("debug db-path failed: %v", err)
	}
}

func TestDebugDumpTaskCmd_Success(t *testing.T) {
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()

	task := models.Task{
		ID:          "task-1",
		Name:        "Write report",
		Priority:    3,
		Difficulty:  2,
		DurationMin: 60,
		Deadline:    time.Now().Add(24 * time.Hour),
		Preference:  constants.PreferenceAny,
		Active:      true,
	}
	if err := ctx.Store.AddTask(task); err != nil {
		t.Fatalf("failed to add task: %v", err)
	}

	cmd := &DebugDumpTaskCmd{ID: "task-1"}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("debug dump-task failed: %v", err)
	}
}

func TestDebugDumpTaskCmd_NotFound(t *testing.T) {
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()

	cmd := &DebugDumpTaskCmd{ID: "nonexistent"}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error dumping nonexistent task")
	}
}

func TestDebugDumpSettingsCmd_Success(t *testing.T) {
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()

	cmd := &DebugDumpSettingsCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("debug dump-settings failed: %v", err)
	}
}

func TestDebugDumpTaskCmd_JSONOutput(t *testing.T) {
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()

	task := models.Task{
		ID:          "task-json",
		Name:        "Check JSON shape",
		Priority:    1,
		Difficulty:  1,
		DurationMin: 30,
		Deadline:    time.Now().Add(24 * time.Hour),
		Preference:  constants.PreferenceMorning,
		Active:      true,
	}
	if err := ctx.Store.AddTask(task); err != nil {
		t.Fatalf("failed to add task: %v", err)
	}

	got, err := ctx.Store.GetTask("task-json")
	if err != nil {
		t.Fatalf("failed to get task: %v", err)
	}

	raw, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("failed to marshal task: %v", err)
	}
	if !strings.Contains(string(raw), `"id":"task-json"`) {
		t.Errorf("marshaled task missing expected id field: %s", raw)
	}
}
