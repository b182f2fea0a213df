package system

import (
	"fmt"

	"github.com/weekplan/weekplan/internal/cli"
	"github.com/weekplan/weekplan/internal/validation"
)

type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	commitments, err := ctx.Store.GetAllCommitments()
	if err != nil {
		return fmt.Errorf("failed to load commitments: %w", err)
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	v := validation.New()
	result := v.ValidateTasks(tasks)
	result.Conflicts = append(result.Conflicts, v.ValidateCommitments(commitments).Conflicts...)
	result.Conflicts = append(result.Conflicts, v.ValidateSettings(settings).Conflicts...)

	fmt.Print(result.FormatReport())
	if result.HasConflicts() {
		return fmt.Errorf("validation found %d conflict(s)", len(result.Conflicts))
	}
	return nil
}
