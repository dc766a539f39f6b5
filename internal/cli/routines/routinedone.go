package routines

import (
	"fmt"

	"github.com/julianstephens/sknn/internal/cli"
)

// DoneCmd toggles completion, so running it twice undoes it.
type DoneCmd struct {
	ID string `arg:"" help:"Routine ID or unique ID prefix."`
}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Routines()
	if err != nil {
		return err
	}

	item, err := cli.FindRoutine(store.Items(), c.ID)
	if err != nil {
		return err
	}

	items, err := store.Toggle(item.ID)
	if err != nil {
		return fmt.Errorf("failed to update routine: %w", err)
	}

	updated, err := cli.FindRoutine(items, item.ID)
	if err != nil {
		return err
	}
	if updated.Completed {
		ctx.Printf("✓ Completed: %s\n", updated.Name)
	} else {
		ctx.Printf("○ Marked not done: %s\n", updated.Name)
	}
	ctx.Println(store.Progress())
	return nil
}
