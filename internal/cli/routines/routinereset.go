package routines

import (
	"fmt"

	"github.com/julianstephens/sknn/internal/cli"
)

type ResetCmd struct{}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Routines()
	if err != nil {
		return err
	}

	items, err := store.ResetAll()
	if err != nil {
		return fmt.Errorf("failed to reset routines: %w", err)
	}

	ctx.Printf("Reset %d routines.\n", len(items))
	return nil
}

type ProgressCmd struct{}

func (c *ProgressCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Routines()
	if err != nil {
		return err
	}
	ctx.Println(progressLine(store.Progress()))
	return nil
}
