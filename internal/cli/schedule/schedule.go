package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/weekplan/weekplan/internal/cli"
	"github.com/weekplan/weekplan/internal/tui"
)

type ScheduleCmd struct {
	Tui  bool `help:"Launch the interactive read-only grid viewer instead of printing text."`
	JSON bool `help:"Print the raw solve result as JSON."`
}

func (c *ScheduleCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

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

	solveCtx, cancel := context.WithTimeout(context.Background(), time.Duration(settings.TimeLimitSeconds+5)*time.Second)
	defer cancel()

	result, err := ctx.Scheduler.Schedule(solveCtx, tasks, commitments, settings)
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}

	if c.Tui {
		p := tea.NewProgram(tui.NewModel(result), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Printf("Alas, there's been an error: %v", err)
			os.Exit(1)
		}
		return nil
	}

	if c.JSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	printResult(result)
	return nil
}
