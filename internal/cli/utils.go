package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/antara/internal/common"
	"github.com/dmitrijs2005/antara/internal/timex"
)

func argID(args []string, i int, usage string) (int64, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("%w: usage: %s", common.ErrValidation, usage)
	}
	id, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an id", common.ErrValidation, args[i])
	}
	return id, nil
}

func subcommand(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func check(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// parseRevealTime accepts "+<duration>" (with a "d" unit for days), a
// "YYYY-MM-DD HH:MM" local time, or any form timex.ParseInstant accepts.
func parseRevealTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "+"); ok {
		if days, ok := strings.CutSuffix(rest, "d"); ok {
			n, err := strconv.Atoi(days)
			if err != nil {
				return time.Time{}, fmt.Errorf("%w: bad day count %q", common.ErrValidation, days)
			}
			return now.AddDate(0, 0, n), nil
		}
		d, err := time.ParseDuration(rest)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: bad duration %q", common.ErrValidation, rest)
		}
		return now.Add(d), nil
	}

	t, err := timex.ParseInstant(strings.Replace(s, " ", "T", 1))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	return t, nil
}
