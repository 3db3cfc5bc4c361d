package cli

import (
	"context"

	"github.com/dmitrijs2005/antara/internal/services"
)

// Capsule seals a new time capsule.
func (a *App) Capsule(ctx context.Context, _ []string) error {
	title, err := GetSimpleText(a.reader, "Capsule title", a.out)
	if err != nil {
		return err
	}
	message, err := GetMultiline(a.reader, "Message to your future self", a.out)
	if err != nil {
		return err
	}
	when, err := GetSimpleText(a.reader, "Unlock at (YYYY-MM-DD HH:MM, or +7d, +12h)", a.out)
	if err != nil {
		return err
	}

	now := a.ac.Clock.Now()
	revealAt, err := parseRevealTime(when, now)
	if err != nil {
		return err
	}

	c, err := a.ac.Capsules.Seal(ctx, title, message, revealAt)
	if err != nil {
		return err
	}
	a.printf("Capsule #%d sealed until %s.\n", c.ID, c.RevealAt().Local().Format("Jan 2, 2006 15:04"))
	return nil
}

func (a *App) Capsules(ctx context.Context, _ []string) error {
	items, err := a.ac.Capsules.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		printlnFn("No capsules yet.")
		return nil
	}

	now := a.ac.Clock.Now()
	for _, c := range items {
		if services.IsUnlocked(c, now) {
			a.printf("#%d  %s  ready to open\n", c.ID, c.Title)
			continue
		}
		a.printf("#%d  %s  sealed, %s (opens %s)\n", c.ID, c.Title,
			services.TimeRemaining(c, now), c.RevealAt().Local().Format("Jan 2, 2006"))
	}
	return nil
}

func (a *App) Open(ctx context.Context, args []string) error {
	id, err := argID(args, 0, "open <id>")
	if err != nil {
		return err
	}
	c, err := a.ac.Capsules.Open(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s\nBuried on %s\n\n%s\n", c.Title, c.CreatedAt.Local().Format("Jan 2, 2006"), c.Message)
	return nil
}

func (a *App) Discard(ctx context.Context, args []string) error {
	id, err := argID(args, 0, "discard <id>")
	if err != nil {
		return err
	}
	return a.deleted(a.ac.Capsules.Discard(ctx, id))
}
