package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword and isTerminal are test seams for the x/term calls.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// lineReader is the part of *bufio.Reader the prompts use.
type lineReader interface {
	ReadString(delim byte) (string, error)
}

type readResult struct {
	line string
	err  error
}

// ctxReader is a lineReader whose reads return ctx.Err() once ctx is done,
// even while the underlying read is still blocked on the terminal.
//
// An abandoned read keeps running; its line is handed to the next call.
// It is not safe for concurrent use.
type ctxReader struct {
	ctx     context.Context
	r       *bufio.Reader
	pending chan readResult
}

func newCtxReader(ctx context.Context, r *bufio.Reader) *ctxReader {
	return &ctxReader{ctx: ctx, r: r}
}

func (c *ctxReader) ReadString(delim byte) (string, error) {
	if err := c.ctx.Err(); err != nil {
		return "", err
	}
	if c.pending == nil {
		ch := make(chan readResult, 1)
		go func() {
			line, err := c.r.ReadString(delim)
			ch <- readResult{line: line, err: err}
		}()
		c.pending = ch
	}

	select {
	case res := <-c.pending:
		c.pending = nil
		return res.line, res.err
	case <-c.ctx.Done():
		return "", c.ctx.Err()
	}
}

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
func GetSimpleText(reader lineReader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetMultiline prints a prompt to w and reads lines until an empty line.
// The collected text is joined with '\n'.
func GetMultiline(reader lineReader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if err != nil && len(lines) == 0 {
				return "", err
			}
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// GetPIN reads a PIN without echo when stdin is a terminal, and as a plain
// line from reader otherwise. The caller should wipe the result.
func GetPIN(reader lineReader, prompt string, w io.Writer) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		s, err := GetSimpleText(reader, prompt, w)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	}

	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}
	pin, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pin, nil
}
