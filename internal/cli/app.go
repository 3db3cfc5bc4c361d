package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/antara/internal/appctx"
	"github.com/dmitrijs2005/antara/internal/models"
)

type App struct {
	ac  *appctx.AppContext
	in  *bufio.Reader
	out io.Writer

	// reader is in bound to the context of the current Run.
	reader lineReader
}

func NewApp(ac *appctx.AppContext, in io.Reader, out io.Writer) *App {
	br := bufio.NewReader(in)
	return &App{ac: ac, in: br, reader: br, out: out}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) isVisible() bool {
	return a.ac.Lock.Visible()
}

func (a *App) status() string {
	if !a.isVisible() {
		return "(locked)"
	}
	return fmt.Sprintf("(%s/%s)", a.ac.Prefs.Theme, a.ac.Prefs.Font)
}

// Run shows the lock screen if needed and then serves commands until the
// user exits, input ends or ctx is cancelled. Cancelling ctx also aborts a
// pending prompt. The capsule watcher runs alongside and is stopped on return.
func (a *App) Run(ctx context.Context) error {
	printlnFn("Welcome to antara (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.ac.Capsules.Watch(gctx, a.ac.Config.CapsuleRefreshInterval, a.announce)
	})

	a.reader = newCtxReader(gctx, a.in)

	g.Go(func() error {
		defer cancel()
		if !a.isVisible() {
			report(a.Unlock(gctx))
		}
		runREPL(gctx, a, a.status, a.reader)
		return nil
	})

	return g.Wait()
}

// announce is the capsule watcher callback. Sealed content is never
// printed, and nothing is shown while the session is locked.
func (a *App) announce(_ time.Time, unlocked []models.Capsule) {
	if len(unlocked) == 0 || !a.isVisible() {
		return
	}
	for _, c := range unlocked {
		printlnFn(fmt.Sprintf("A capsule can be opened now: %q (open %d)", c.Title, c.ID))
	}
}
