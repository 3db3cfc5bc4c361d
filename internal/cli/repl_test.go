package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/antara/internal/common"
)

type fakeExec struct {
	visible bool

	calls []string
	args  map[string][]string
	errs  map[string]error
}

func newFakeExec(visible bool) *fakeExec {
	return &fakeExec{visible: visible, args: map[string][]string{}, errs: map[string]error{}}
}

func (f *fakeExec) isVisible() bool { return f.visible }

func (f *fakeExec) Unlock(context.Context) error {
	f.calls = append(f.calls, "unlock")
	f.visible = true
	return nil
}

func (f *fakeExec) rec(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args[name] = args
	return f.errs[name]
}

func (f *fakeExec) Journal(_ context.Context, a []string) error   { return f.rec("journal", a) }
func (f *fakeExec) Gratitude(_ context.Context, a []string) error { return f.rec("gratitude", a) }
func (f *fakeExec) Intention(_ context.Context, a []string) error { return f.rec("intention", a) }
func (f *fakeExec) Book(_ context.Context, a []string) error      { return f.rec("book", a) }
func (f *fakeExec) Spark(_ context.Context, a []string) error     { return f.rec("spark", a) }
func (f *fakeExec) Affirm(_ context.Context, a []string) error    { return f.rec("affirm", a) }
func (f *fakeExec) Todo(_ context.Context, a []string) error      { return f.rec("todo", a) }
func (f *fakeExec) Capsule(_ context.Context, a []string) error   { return f.rec("capsule", a) }
func (f *fakeExec) Capsules(_ context.Context, a []string) error  { return f.rec("capsules", a) }
func (f *fakeExec) Open(_ context.Context, a []string) error      { return f.rec("open", a) }
func (f *fakeExec) Discard(_ context.Context, a []string) error   { return f.rec("discard", a) }
func (f *fakeExec) Mood(_ context.Context, a []string) error      { return f.rec("mood", a) }
func (f *fakeExec) Weather(_ context.Context, a []string) error   { return f.rec("weather", a) }
func (f *fakeExec) Theme(_ context.Context, a []string) error     { return f.rec("theme", a) }
func (f *fakeExec) Font(_ context.Context, a []string) error      { return f.rec("font", a) }
func (f *fakeExec) SetPin(_ context.Context, a []string) error    { return f.rec("pin", a) }
func (f *fakeExec) ClearPin(_ context.Context, a []string) error  { return f.rec("unpin", a) }
func (f *fakeExec) Export(_ context.Context, a []string) error    { return f.rec("export", a) }
func (f *fakeExec) Import(_ context.Context, a []string) error    { return f.rec("import", a) }

type capture struct {
	mu    sync.Mutex
	lines []string
}

func (c *capture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.lines, "\n")
}

func captureOutput(t *testing.T) *capture {
	t.Helper()
	c := &capture{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.lines = append(c.lines, fmt.Sprint(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return c
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"help",
		"journal list",
		"gratitude",
		"intention list weekly",
		"book progress 1 50",
		"spark 1",
		"affirm",
		"todo toggle 3",
		"capsule",
		"capsules",
		"open 7",
		"discard 7",
		"mood blue",
		"weather",
		"theme midnight",
		"font sans",
		"pin",
		"unpin",
		"export s3",
		"import backup.json",
		"",
		"foobar",
		"exit",
		"journal",
	}, "\n")

	exec := newFakeExec(true)
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(input))

	want := []string{
		"journal", "gratitude", "intention", "book", "spark", "affirm", "todo",
		"capsule", "capsules", "open", "discard", "mood", "weather", "theme",
		"font", "pin", "unpin", "export", "import",
	}
	assert.Equal(t, want, exec.calls, "commands after exit must not run")
	assert.Equal(t, []string{"progress", "1", "50"}, exec.args["book"])
	assert.Equal(t, []string{"backup.json"}, exec.args["import"])

	s := out.String()
	assert.Contains(t, s, "antara status > ")
	assert.Contains(t, s, "Available commands:")
	assert.Contains(t, s, "Unknown command:foobar")
	assert.Contains(t, s, "Bye!")
}

func TestRunREPL_LockedOnlyAllowsUnlock(t *testing.T) {
	out := captureOutput(t)

	exec := newFakeExec(false)
	runREPL(context.Background(), exec, func() string { return "" }, rdr("help\njournal list\nunlock\njournal list\n"))

	assert.Equal(t, []string{"unlock", "journal"}, exec.calls)
	assert.Contains(t, out.String(), helpLocked)
	assert.Contains(t, out.String(), "The journal is locked")
}

func TestRunREPL_ReportsErrors(t *testing.T) {
	out := captureOutput(t)

	exec := newFakeExec(true)
	exec.errs["open"] = fmt.Errorf("%w: 3 hours left", common.ErrStillSealed)
	exec.errs["todo"] = fmt.Errorf("%w: text is required", common.ErrValidation)

	runREPL(context.Background(), exec, func() string { return "" }, rdr("open 1\ntodo\n"))

	s := out.String()
	assert.Contains(t, s, "This capsule is still sealed: 3 hours left")
	assert.Contains(t, s, "Invalid input: text is required")
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	captureOutput(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := newFakeExec(true)
	runREPL(ctx, exec, func() string { return "" }, rdr("journal\n"))
	require.Empty(t, exec.calls)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{common.ErrLocked, "locked"},
		{common.ErrThrottled, "Too many wrong attempts"},
		{fmt.Errorf("%w: capsule 1", common.ErrNotFound), "Not found."},
		{common.ErrImport, "not a valid backup"},
		{fmt.Errorf("%w: disk", common.ErrStorage), "storage refused"},
		{fmt.Errorf("boom"), "Error: boom"},
	}
	for _, tt := range tests {
		assert.Contains(t, describe(tt.err), tt.want)
	}
}
