package services

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/antara/internal/common"
)

func required(field, value string) error {
	if common.IsBlank(value) {
		return fmt.Errorf("%w: %s is required", common.ErrValidation, field)
	}
	return nil
}

// newestFirst orders by descending id. Ids are time-derived, so this holds
// regardless of whether the stored list was appended or prepended to.
func newestFirst[T any](items []T, id func(T) int64) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int { return cmp.Compare(id(b), id(a)) })
	return out
}

func notFound(kind string, id int64) error {
	return fmt.Errorf("%w: %s %d", common.ErrNotFound, kind, id)
}

func trim(s string) string { return strings.TrimSpace(s) }
