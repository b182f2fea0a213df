package commitments

import (
	"fmt"

	"github.com/weekplan/weekplan/internal/cli"
)

type CommitmentDeleteCmd struct {
	ID string `arg:"" help:"Commitment ID to delete."`
}

func (c *CommitmentDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if _, err := ctx.Store.GetCommitment(c.ID); err != nil {
		return fmt.Errorf("failed to find commitment with ID %s: %w", c.ID, err)
	}

	if err := ctx.Store.DeleteCommitment(c.ID); err != nil {
		return fmt.Errorf("failed to delete commitment: %w", err)
	}

	fmt.Printf("Deleted commitment: %s\n", c.ID)
	return nil
}
