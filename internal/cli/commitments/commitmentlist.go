package commitments

import (
	"fmt"

	"github.com/weekplan/weekplan/internal/cli"
)

type CommitmentListCmd struct{}

func (c *CommitmentListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	list, err := ctx.Store.GetAllCommitments()
	if err != nil {
		return fmt.Errorf("failed to list commitments: %w", err)
	}

	if len(list) == 0 {
		fmt.Println("No commitments found.")
		return nil
	}

	for _, commitment := range list {
		label := commitment.Label
		if label == "" {
			label = "(unlabeled)"
		}
		fmt.Printf("%s  %s -> %s  %s\n",
			commitment.ID,
			commitment.Start.Format("2006-01-02 15:04"),
			commitment.End.Format("2006-01-02 15:04"),
			label)
	}
	return nil
}
