package routines

import (
	"fmt"

	"github.com/julianstephens/sknn/internal/cli"
)

type DeleteCmd struct {
	ID string `arg:"" help:"Routine ID or unique ID prefix."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Routines()
	if err != nil {
		return err
	}

	item, err := cli.FindRoutine(store.Items(), c.ID)
	if err != nil {
		return err
	}

	if _, err := store.Delete(item.ID); err != nil {
		return fmt.Errorf("failed to delete routine: %w", err)
	}

	ctx.Printf("Deleted routine: %s (ID: %s)\n", item.Name, cli.ShortID(item.ID))
	return nil
}
