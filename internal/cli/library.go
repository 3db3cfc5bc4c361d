package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/antara/internal/common"
	"github.com/dmitrijs2005/antara/internal/models"
)

func (a *App) printBook(b models.Book) {
	a.printf("#%d  %s", b.ID, b.Title)
	if b.Author != "" {
		a.printf(" by %s", b.Author)
	}
	a.printf("  [%s, %d%%, %d sparks]\n", b.Status, b.Progress, len(b.Sparks))
}

func (a *App) Book(ctx context.Context, args []string) error {
	switch subcommand(args) {
	case "list":
		var (
			books []models.Book
			err   error
		)
		if len(args) > 1 {
			books, err = a.ac.Library.ByStatus(ctx, models.BookStatus(args[1]))
		} else {
			books, err = a.ac.Library.List(ctx)
		}
		if err != nil {
			return err
		}
		for _, b := range books {
			a.printBook(b)
			for _, s := range b.Sparks {
				a.printf("    * %s (%s, #%d)\n", s.Text, s.Date.Local().Format("Jan 2, 2006"), s.ID)
			}
		}
		return nil

	case "status":
		id, err := argID(args, 1, "book status <id> <wishlist|current|completed>")
		if err != nil {
			return err
		}
		if len(args) < 3 {
			return fmt.Errorf("%w: status is required", common.ErrValidation)
		}
		b, err := a.ac.Library.SetStatus(ctx, id, models.BookStatus(args[2]))
		if err != nil {
			return err
		}
		a.printBook(b)
		return nil

	case "progress":
		id, err := argID(args, 1, "book progress <id> <0-100>")
		if err != nil {
			return err
		}
		if len(args) < 3 {
			return fmt.Errorf("%w: progress is required", common.ErrValidation)
		}
		p, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", common.ErrValidation, args[2])
		}
		b, err := a.ac.Library.SetProgress(ctx, id, p)
		if err != nil {
			return err
		}
		a.printBook(b)
		return nil

	case "review":
		id, err := argID(args, 1, "book review <id>")
		if err != nil {
			return err
		}
		review, err := GetMultiline(a.reader, "Your review", a.out)
		if err != nil {
			return err
		}
		if _, err := a.ac.Library.SetReview(ctx, id, review); err != nil {
			return err
		}
		printlnFn("Review saved.")
		return nil

	case "delete":
		id, err := argID(args, 1, "book delete <id>")
		if err != nil {
			return err
		}
		return a.deleted(a.ac.Library.DeleteBook(ctx, id))
	}

	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	author, err := GetSimpleText(a.reader, "Author", a.out)
	if err != nil {
		return err
	}
	status, err := GetSimpleText(a.reader, "Shelf (wishlist, current, completed) [wishlist]", a.out)
	if err != nil {
		return err
	}
	b, err := a.ac.Library.AddBook(ctx, title, author, models.BookStatus(status))
	if err != nil {
		return err
	}
	a.printBook(b)
	return nil
}

// Spark adds a reading note to a book, or deletes one.
func (a *App) Spark(ctx context.Context, args []string) error {
	bookID, err := argID(args, 0, "spark <book id> [delete <spark id>]")
	if err != nil {
		return err
	}

	if len(args) > 1 && args[1] == "delete" {
		sparkID, err := argID(args, 2, "spark <book id> delete <spark id>")
		if err != nil {
			return err
		}
		return a.deleted(a.ac.Library.DeleteSpark(ctx, bookID, sparkID))
	}

	text, err := GetSimpleText(a.reader, "Spark", a.out)
	if err != nil {
		return err
	}
	s, err := a.ac.Library.AddSpark(ctx, bookID, text)
	if err != nil {
		return err
	}
	a.printf("Spark #%d saved.\n", s.ID)
	return nil
}
