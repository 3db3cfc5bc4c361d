package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/antara/internal/appctx"
	"github.com/dmitrijs2005/antara/internal/config"
	"github.com/dmitrijs2005/antara/internal/models"
	"github.com/dmitrijs2005/antara/internal/timex"
)

var day0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type appFixture struct {
	cfg   *config.Config
	clock *timex.ManualClock
	out   *capture
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "antara.db")
	cfg.BackupDir = filepath.Join(t.TempDir(), "backups")

	stubTerminal(t, false, nil)
	return &appFixture{cfg: cfg, clock: timex.NewManualClock(day0), out: captureOutput(t)}
}

func (f *appFixture) open(t *testing.T) *appctx.AppContext {
	t.Helper()
	ac, err := appctx.New(context.Background(), f.cfg,
		appctx.WithClock(f.clock), appctx.WithLogOutput(&bytes.Buffer{}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ac.Close() })
	return ac
}

// run feeds script to a fresh App and returns everything written to the
// app's writer.
func (f *appFixture) run(t *testing.T, ac *appctx.AppContext, script ...string) string {
	t.Helper()
	var w bytes.Buffer
	app := NewApp(ac, strings.NewReader(strings.Join(script, "\n")+"\n"), &w)
	require.NoError(t, app.Run(context.Background()))
	return w.String()
}

func TestApp_JournalWriteAndList(t *testing.T) {
	f := newAppFixture(t)
	ac := f.open(t)

	out := f.run(t, ac,
		"journal", "Morning", "first line", "second line", "",
		"journal list",
		"exit",
	)

	assert.Contains(t, out, `Saved "Morning"`)
	assert.Contains(t, out, "Morning\nfirst line\nsecond line")
	assert.Contains(t, f.out.String(), "Welcome to antara")
	assert.Contains(t, f.out.String(), "Bye!")
}

func TestApp_NotesAndDaily(t *testing.T) {
	f := newAppFixture(t)
	ac := f.open(t)

	out := f.run(t, ac,
		"todo", "water the plants",
		"todo list",
		"affirm", "I am enough",
		"affirm list",
		"mood blue",
		"mood",
		"mood plaid",
		"theme midnight",
	)

	assert.Contains(t, out, "[ ] #")
	assert.Contains(t, out, "water the plants")
	assert.Contains(t, out, "I am enough")
	assert.Contains(t, out, "Today's mood: blue")
	assert.Contains(t, f.out.String(), "Invalid input:")
	assert.Equal(t, models.ThemeMidnight, ac.Prefs.Theme)
}

func TestApp_CapsuleLifecycle(t *testing.T) {
	f := newAppFixture(t)
	ac := f.open(t)
	ctx := context.Background()

	out := f.run(t, ac, "capsule", "To me", "hello future", "", "+1d")
	assert.Contains(t, out, "sealed until")

	items, err := ac.Capsules.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	id := strconv.FormatInt(items[0].ID, 10)

	f.clock.Advance(2 * time.Hour)
	out = f.run(t, ac, "capsules", "open "+id)
	assert.Contains(t, out, "sealed, 22 hours left")
	assert.Contains(t, f.out.String(), "This capsule is still sealed")
	assert.NotContains(t, out, "hello future")

	f.clock.Advance(22 * time.Hour)
	out = f.run(t, ac, "capsules", "open "+id)
	assert.Contains(t, out, "ready to open")
	assert.Contains(t, out, "hello future")
	_, viewing := ac.Capsules.Viewing()
	assert.True(t, viewing)

	f.run(t, ac, "discard "+id)
	assert.Contains(t, f.out.String(), "Deleted.")
	_, viewing = ac.Capsules.Viewing()
	assert.False(t, viewing)
}

func TestApp_ExportImport(t *testing.T) {
	f := newAppFixture(t)
	ac := f.open(t)
	ctx := context.Background()

	_, err := ac.Journal.Write(ctx, "Kept", "body")
	require.NoError(t, err)

	out := f.run(t, ac, "export")
	require.Contains(t, out, "Backup written to ")
	matches, err := filepath.Glob(filepath.Join(f.cfg.BackupDir, "antara_backup_*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	entries, err := ac.Journal.List(ctx)
	require.NoError(t, err)
	_, err = ac.Journal.Delete(ctx, entries[0].ID)
	require.NoError(t, err)

	out = f.run(t, ac, "import "+matches[0], "journal list")
	assert.Contains(t, out, "Restored")
	assert.Contains(t, out, "Kept")

	f.run(t, ac, "export s3")
	assert.Contains(t, f.out.String(), "no S3 bucket configured")
}

func TestApp_UnlockWithPIN(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()

	ac := f.open(t)
	require.NoError(t, ac.Lock.SetPin(ctx, "4821"))
	require.NoError(t, ac.Close())

	ac = f.open(t)
	require.False(t, ac.Lock.Visible())

	out := f.run(t, ac, "1111", "4821", "journal list", "exit")
	assert.True(t, ac.Lock.Visible())
	assert.Contains(t, out, "PIN\n> ")

	s := f.out.String()
	assert.Contains(t, s, "Wrong PIN.")
	assert.Contains(t, s, "Unlocked.")
	assert.Contains(t, s, "Your journal is empty.")
}

func TestApp_LockedGatesCommands(t *testing.T) {
	f := newAppFixture(t)
	f.cfg.LockMaxAttempts = 2
	ctx := context.Background()

	ac := f.open(t)
	require.NoError(t, ac.Lock.SetPin(ctx, "4821"))
	require.NoError(t, ac.Close())

	ac = f.open(t)
	out := f.run(t, ac, "1111", "2222", "journal", "secret")
	assert.NotContains(t, out, "Title")
	assert.False(t, ac.Lock.Visible())

	s := f.out.String()
	assert.Contains(t, s, "Too many wrong attempts")
	assert.Contains(t, s, "The journal is locked")
}

func TestApp_AnnounceOnlyWhenVisible(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	ac := f.open(t)
	app := NewApp(ac, strings.NewReader(""), &bytes.Buffer{})

	c := models.Capsule{ID: 7, Title: "Hello"}
	app.announce(day0, []models.Capsule{c})
	assert.Contains(t, f.out.String(), `"Hello" (open 7)`)

	require.NoError(t, ac.Lock.SetPin(ctx, "4821"))
	require.NoError(t, ac.Close())
	ac = f.open(t)
	app = NewApp(ac, strings.NewReader(""), &bytes.Buffer{})

	c.Title = "Hidden"
	app.announce(day0, []models.Capsule{c})
	assert.NotContains(t, f.out.String(), "Hidden")
}

// runUntilCancelled starts Run over a pipe that is never closed, writes
// input, cancels ctx and waits for Run to return.
func runUntilCancelled(t *testing.T, ac *appctx.AppContext, input string) {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- NewApp(ac, pr, io.Discard).Run(ctx) }()

	if input != "" {
		_, err := pw.Write([]byte(input))
		require.NoError(t, err)
	}
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after ctx was cancelled")
	}
}

func TestApp_RunReturnsOnCancelWhileIdle(t *testing.T) {
	f := newAppFixture(t)
	ac := f.open(t)

	runUntilCancelled(t, ac, "")
	assert.NotContains(t, f.out.String(), "Error:")
}

func TestApp_RunReturnsOnCancelInsidePrompt(t *testing.T) {
	f := newAppFixture(t)
	ac := f.open(t)

	runUntilCancelled(t, ac, "journal\nHalf a title\n")

	entries, err := ac.Journal.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NotContains(t, f.out.String(), "Error:")
}

func TestApp_RunReturnsOnCancelAtLockScreen(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()

	ac := f.open(t)
	require.NoError(t, ac.Lock.SetPin(ctx, "4821"))
	require.NoError(t, ac.Close())

	ac = f.open(t)
	runUntilCancelled(t, ac, "")
	assert.False(t, ac.Lock.Visible())
}
