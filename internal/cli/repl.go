package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/antara/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isVisible() bool
	Unlock(ctx context.Context) error

	Journal(ctx context.Context, args []string) error
	Gratitude(ctx context.Context, args []string) error
	Intention(ctx context.Context, args []string) error
	Book(ctx context.Context, args []string) error
	Spark(ctx context.Context, args []string) error
	Affirm(ctx context.Context, args []string) error
	Todo(ctx context.Context, args []string) error
	Capsule(ctx context.Context, args []string) error
	Capsules(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	Discard(ctx context.Context, args []string) error
	Mood(ctx context.Context, args []string) error
	Weather(ctx context.Context, args []string) error
	Theme(ctx context.Context, args []string) error
	Font(ctx context.Context, args []string) error
	SetPin(ctx context.Context, args []string) error
	ClearPin(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
}

const helpLocked = "Available commands: unlock, help, exit"

const helpUnlocked = `Available commands:
  journal [list | delete <id>]                 write or browse journal entries
  gratitude [list | delete <id>]               fill the gratitude jar
  intention [list [cycle] | toggle <id> | delete <id>]
  book [list [status] | status <id> <status> | progress <id> <0-100> | review <id> | delete <id>]
  spark <book id> [delete <spark id>]          note a passage while reading
  affirm [list | delete <id>]
  todo [list | toggle <id> | delete <id>]
  capsule                                      seal a time capsule
  capsules                                     list capsules
  open <id> | discard <id>
  mood [value | history]   weather [value | history]
  theme [light|golden|midnight]   font [serif|sans]
  pin | unpin                                  set or remove the lock PIN
  export [s3] | import <file> [s3]
  exit`

// describe turns an error into a message for the user.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrLocked):
		return "The journal is locked. Type 'unlock' to enter your PIN."
	case errors.Is(err, common.ErrThrottled):
		return "Too many wrong attempts. Please wait and try again."
	case errors.Is(err, common.ErrStillSealed):
		return "This capsule is still sealed: " + strings.TrimPrefix(err.Error(), common.ErrStillSealed.Error()+": ")
	case errors.Is(err, common.ErrValidation):
		return "Invalid input: " + strings.TrimPrefix(err.Error(), common.ErrValidation.Error()+": ")
	case errors.Is(err, common.ErrNotFound):
		return "Not found."
	case errors.Is(err, common.ErrImport):
		return "That file is not a valid backup."
	case errors.Is(err, common.ErrStorage):
		return "Could not save: storage refused the write."
	default:
		return "Error: " + err.Error()
	}
}

// runREPL reads commands line by line and dispatches them to a. The loop
// exits on EOF, when ctx is done, or on "exit"/"quit".
//
// While a reports content as hidden only unlock, help and exit are
// accepted. Handler errors are reported and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader lineReader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("antara %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		if done := dispatch(ctx, a, cmd, args); done {
			return
		}
		if err != nil {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) (done bool) {
	switch cmd {
	case "exit", "quit":
		printlnFn("Bye!")
		return true
	case "help":
		if a.isVisible() {
			printlnFn(helpUnlocked)
		} else {
			printlnFn(helpLocked)
		}
		return false
	case "unlock":
		if a.isVisible() {
			printlnFn("Already unlocked.")
			return false
		}
		report(a.Unlock(ctx))
		return false
	}

	if !a.isVisible() {
		printlnFn(describe(common.ErrLocked))
		return false
	}

	var err error
	switch cmd {
	case "journal":
		err = a.Journal(ctx, args)
	case "gratitude":
		err = a.Gratitude(ctx, args)
	case "intention":
		err = a.Intention(ctx, args)
	case "book":
		err = a.Book(ctx, args)
	case "spark":
		err = a.Spark(ctx, args)
	case "affirm":
		err = a.Affirm(ctx, args)
	case "todo":
		err = a.Todo(ctx, args)
	case "capsule":
		err = a.Capsule(ctx, args)
	case "capsules":
		err = a.Capsules(ctx, args)
	case "open":
		err = a.Open(ctx, args)
	case "discard":
		err = a.Discard(ctx, args)
	case "mood":
		err = a.Mood(ctx, args)
	case "weather":
		err = a.Weather(ctx, args)
	case "theme":
		err = a.Theme(ctx, args)
	case "font":
		err = a.Font(ctx, args)
	case "pin":
		err = a.SetPin(ctx, args)
	case "unpin":
		err = a.ClearPin(ctx, args)
	case "export":
		err = a.Export(ctx, args)
	case "import":
		err = a.Import(ctx, args)
	default:
		printlnFn("Unknown command:", cmd)
	}
	report(err)
	return false
}

// report prints err for the user. A prompt aborted by shutdown is not shown.
func report(err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	printlnFn(describe(err))
}
