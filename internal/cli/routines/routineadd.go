package routines

import (
	"fmt"

	"github.com/julianstephens/sknn/internal/cli"
	"github.com/julianstephens/sknn/internal/models"
)

type AddCmd struct {
	Name string `arg:"" help:"Name of the routine step."`
	Time string `help:"Time of day (Morning, Night, Both, Weekly)." short:"t" default:"Morning"`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	timeOfDay, err := models.ParseTimeOfDay(c.Time)
	if err != nil {
		return err
	}

	store, err := ctx.Routines()
	if err != nil {
		return err
	}

	items, err := store.Add(c.Name, timeOfDay)
	if err != nil {
		return fmt.Errorf("failed to add routine: %w", err)
	}

	added := items[len(items)-1]
	ctx.Printf("Added routine: %s (%s, ID: %s)\n", added.Name, added.TimeOfDay, cli.ShortID(added.ID))
	return nil
}
