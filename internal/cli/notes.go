package cli

import "context"

func (a *App) Journal(ctx context.Context, args []string) error {
	switch subcommand(args) {
	case "list":
		entries, err := a.ac.Journal.List(ctx)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			printlnFn("Your journal is empty.")
		}
		for _, e := range entries {
			a.printf("#%d  %s  %s\n%s\n\n", e.ID, e.Date, e.Title, e.Content)
		}
		return nil

	case "delete":
		id, err := argID(args, 1, "journal delete <id>")
		if err != nil {
			return err
		}
		return a.deleted(a.ac.Journal.Delete(ctx, id))
	}

	title, err := GetSimpleText(a.reader, "Title (optional)", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Write freely", a.out)
	if err != nil {
		return err
	}
	e, err := a.ac.Journal.Write(ctx, title, content)
	if err != nil {
		return err
	}
	a.printf("Saved %q (#%d)\n", e.Title, e.ID)
	return nil
}

func (a *App) Gratitude(ctx context.Context, args []string) error {
	switch subcommand(args) {
	case "list":
		notes, err := a.ac.Gratitude.List(ctx)
		if err != nil {
			return err
		}
		for _, n := range notes {
			a.printf("#%d  %s  %s\n", n.ID, n.Date, n.Text)
		}
		return nil

	case "delete":
		id, err := argID(args, 1, "gratitude delete <id>")
		if err != nil {
			return err
		}
		return a.deleted(a.ac.Gratitude.Delete(ctx, id))
	}

	text, err := GetSimpleText(a.reader, "What are you grateful for?", a.out)
	if err != nil {
		return err
	}
	if _, err := a.ac.Gratitude.Add(ctx, text); err != nil {
		return err
	}
	printlnFn("Added to the jar.")
	return nil
}

func (a *App) Affirm(ctx context.Context, args []string) error {
	switch subcommand(args) {
	case "list":
		items, err := a.ac.Affirmations.List(ctx)
		if err != nil {
			return err
		}
		for _, it := range items {
			a.printf("#%d  %s\n", it.ID, it.Text)
		}
		return nil

	case "delete":
		id, err := argID(args, 1, "affirm delete <id>")
		if err != nil {
			return err
		}
		return a.deleted(a.ac.Affirmations.Delete(ctx, id))
	}

	text, err := GetSimpleText(a.reader, "Affirmation", a.out)
	if err != nil {
		return err
	}
	if _, err := a.ac.Affirmations.Add(ctx, text); err != nil {
		return err
	}
	printlnFn("Affirmation saved.")
	return nil
}

func (a *App) Todo(ctx context.Context, args []string) error {
	switch subcommand(args) {
	case "list":
		items, err := a.ac.Todos.List(ctx)
		if err != nil {
			return err
		}
		for _, it := range items {
			a.printf("%s #%d  %s\n", check(it.Completed), it.ID, it.Text)
		}
		return nil

	case "toggle":
		id, err := argID(args, 1, "todo toggle <id>")
		if err != nil {
			return err
		}
		td, err := a.ac.Todos.Toggle(ctx, id)
		if err != nil {
			return err
		}
		a.printf("%s %s\n", check(td.Completed), td.Text)
		return nil

	case "delete":
		id, err := argID(args, 1, "todo delete <id>")
		if err != nil {
			return err
		}
		return a.deleted(a.ac.Todos.Delete(ctx, id))
	}

	text, err := GetSimpleText(a.reader, "To-do", a.out)
	if err != nil {
		return err
	}
	td, err := a.ac.Todos.Add(ctx, text)
	if err != nil {
		return err
	}
	a.printf("Added #%d\n", td.ID)
	return nil
}

func (a *App) deleted(ok bool, err error) error {
	if err != nil {
		return err
	}
	if ok {
		printlnFn("Deleted.")
	} else {
		printlnFn("Nothing to delete.")
	}
	return nil
}
