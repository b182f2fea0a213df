package commitments

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/weekplan/weekplan/internal/cli"
	"github.com/weekplan/weekplan/internal/models"
)

type CommitmentAddCmd struct {
	Start string `arg:"" help:"Start time (RFC3339 or \"YYYY-MM-DD HH:MM\")."`
	End   string `arg:"" help:"End time (RFC3339 or \"YYYY-MM-DD HH:MM\"), exclusive."`
	Label string `short:"l" help:"Optional label for this commitment."`
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q (expected RFC3339 or \"YYYY-MM-DD HH:MM\")", s)
}

func (c *CommitmentAddCmd) Validate() error {
	start, err := parseTimestamp(c.Start)
	if err != nil {
		return err
	}
	end, err := parseTimestamp(c.End)
	if err != nil {
		return err
	}
	if !end.After(start) {
		return fmt.Errorf("end time must be after start time")
	}
	return nil
}

func (c *CommitmentAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	start, err := parseTimestamp(c.Start)
	if err != nil {
		return err
	}
	end, err := parseTimestamp(c.End)
	if err != nil {
		return err
	}

	commitment := models.Commitment{
		ID:    uuid.New().String(),
		Start: start,
		End:   end,
		Label: c.Label,
	}

	if err := ctx.Store.AddCommitment(commitment); err != nil {
		return fmt.Errorf("failed to add commitment: %w", err)
	}

	fmt.Printf("Added commitment: %s (ID: %s)\n", commitment.Label, commitment.ID)
	return nil
}
