package routines

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/julianstephens/sknn/internal/cli"
	"github.com/julianstephens/sknn/internal/models"
)

type ListCmd struct {
	Time    string `help:"Only show routines for this time of day (Morning, Night, Both, Weekly)." short:"t"`
	ShowIDs bool   `help:"Show full routine IDs." name:"show-ids"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Routines()
	if err != nil {
		return err
	}

	var filter models.TimeOfDay
	if c.Time != "" {
		if filter, err = models.ParseTimeOfDay(c.Time); err != nil {
			return err
		}
	}

	items := store.Items()
	if len(items) == 0 {
		ctx.Println("No routines yet. Add your first step with 'sknn add'.")
		return nil
	}

	shown := 0
	for _, item := range items {
		if filter != "" && item.TimeOfDay != filter {
			continue
		}
		mark := " "
		if item.Completed {
			mark = "x"
		}
		id := cli.ShortID(item.ID)
		if c.ShowIDs {
			id = item.ID
		}
		ctx.Printf("  [%s] %-24s %-8s %s\n", mark, item.Name, item.TimeOfDay, id)
		shown++
	}
	if shown == 0 {
		ctx.Printf("No %s routines.\n", filter)
	}

	ctx.Println()
	ctx.Println(progressLine(store.Progress()))
	return nil
}

// progressLine renders the summary with a static bar.
func progressLine(p models.Progress) string {
	bar := progress.New(progress.WithWidth(24), progress.WithoutPercentage(), progress.WithSolidFill("#7D56F4"))
	return fmt.Sprintf("%s  %s", bar.ViewAs(p.Fraction), p)
}
