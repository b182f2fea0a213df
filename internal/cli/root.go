package cli

import (
	"fmt"
	"os"

	"github.com/weekplan/weekplan/internal/backup"
	"github.com/weekplan/weekplan/internal/scheduler"
	"github.com/weekplan/weekplan/internal/storage"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
}

// PerformAutomaticBackup creates an automatic backup; a failure is reported
// as a warning on stderr and does not stop the command.
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Warn only - don't interrupt user workflow
		fmt.Fprintf(os.Stderr, "Warning: automatic backup failed: %v\n", err)
	}
}
