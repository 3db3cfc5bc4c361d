package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/antara/internal/models"
	"github.com/dmitrijs2005/antara/internal/services"
)

type dailyValue interface {
	~string
	Valid() bool
}

func dailyCommand[V dailyValue](ctx context.Context, a *App, log *services.DailyLog[V], kind string, choices []V, args []string) error {
	switch subcommand(args) {
	case "":
		e, ok, err := log.Today(ctx)
		if err != nil {
			return err
		}
		if !ok {
			names := make([]string, len(choices))
			for i, c := range choices {
				names[i] = string(c)
			}
			a.printf("No %s recorded today. Choose one of: %s\n", kind, strings.Join(names, ", "))
			return nil
		}
		a.printf("Today's %s: %s\n", kind, e.Value)
		return nil

	case "history":
		items, err := log.History(ctx, 30)
		if err != nil {
			return err
		}
		for _, e := range items {
			a.printf("%s  %s\n", e.Day, e.Value)
		}
		return nil
	}

	e, err := log.Record(ctx, V(args[0]))
	if err != nil {
		return err
	}
	a.printf("Today's %s: %s\n", kind, e.Value)
	return nil
}

func (a *App) Mood(ctx context.Context, args []string) error {
	return dailyCommand(ctx, a, a.ac.Moods, "mood", models.Moods, args)
}

func (a *App) Weather(ctx context.Context, args []string) error {
	return dailyCommand(ctx, a, a.ac.Weather, "inner weather", models.Weathers, args)
}

func (a *App) Theme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("Theme: %s\n", a.ac.Prefs.Theme)
		return nil
	}
	t := models.Theme(args[0])
	if err := a.ac.Preferences.SetTheme(ctx, t); err != nil {
		return err
	}
	a.ac.Prefs.Theme = t
	printlnFn(fmt.Sprintf("Theme set to %s.", t))
	return nil
}

func (a *App) Font(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("Font: %s\n", a.ac.Prefs.Font)
		return nil
	}
	f := models.Font(args[0])
	if err := a.ac.Preferences.SetFont(ctx, f); err != nil {
		return err
	}
	a.ac.Prefs.Font = f
	printlnFn(fmt.Sprintf("Font set to %s.", f))
	return nil
}
