package cli

import (
	"context"

	"github.com/dmitrijs2005/antara/internal/models"
)

func (a *App) Intention(ctx context.Context, args []string) error {
	switch subcommand(args) {
	case "list":
		var (
			items []models.Intention
			err   error
		)
		if len(args) > 1 {
			items, err = a.ac.Intentions.ByCycle(ctx, models.Cycle(args[1]))
		} else {
			items, err = a.ac.Intentions.List(ctx)
		}
		if err != nil {
			return err
		}
		for _, it := range items {
			a.printf("%s #%d  [%s/%s] %s\n", check(it.Completed), it.ID, it.Cycle, it.Area, it.Text)
		}
		return nil

	case "toggle":
		id, err := argID(args, 1, "intention toggle <id>")
		if err != nil {
			return err
		}
		it, err := a.ac.Intentions.Toggle(ctx, id)
		if err != nil {
			return err
		}
		a.printf("%s %s\n", check(it.Completed), it.Text)
		return nil

	case "delete":
		id, err := argID(args, 1, "intention delete <id>")
		if err != nil {
			return err
		}
		return a.deleted(a.ac.Intentions.Delete(ctx, id))
	}

	text, err := GetSimpleText(a.reader, "Intention", a.out)
	if err != nil {
		return err
	}
	area, err := GetSimpleText(a.reader, "Area (personal, career, devotional, hobby) [personal]", a.out)
	if err != nil {
		return err
	}
	cycle, err := GetSimpleText(a.reader, "Cycle (weekly, monthly, yearly) [weekly]", a.out)
	if err != nil {
		return err
	}
	if cycle == "" {
		cycle = string(models.CycleWeekly)
	}

	it, err := a.ac.Intentions.Add(ctx, text, models.Area(area), models.Cycle(cycle))
	if err != nil {
		return err
	}
	a.printf("Set intention #%d for this %s cycle\n", it.ID, it.Cycle)
	return nil
}
