// Package backup copies the whole store out to a JSON snapshot and back.
//
// A snapshot is a JSON object mapping slot names to their raw stored
// strings. Values are not validated on either side: an export is a
// verbatim copy and an import writes every key back as found.
package backup

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/antara/internal/common"
	"github.com/dmitrijs2005/antara/internal/logging"
	"github.com/dmitrijs2005/antara/internal/repositories/slots"
	"github.com/dmitrijs2005/antara/internal/storage"
)

// Predicate selects the slots included in an export.
type Predicate func(slot string) bool

var defaultFragments = []string{
	"journal", "gratitude", "intentions", "library", "capsules",
	"affirmations", "todos", "mood", "weather", "theme", "font",
}

// DefaultPredicate matches every feature slot. The PIN slots are not
// matched.
func DefaultPredicate(slot string) bool {
	return slices.ContainsFunc(defaultFragments, func(f string) bool {
		return strings.Contains(slot, f)
	})
}

// FileName is the suggested snapshot name for a backup taken at now.
func FileName(now time.Time) string {
	return "antara_backup_" + now.Format("2006-01-02") + ".json"
}

// Result describes a completed import. Callers must rebuild any state
// they derived from the store when ReloadRequired is set.
type Result struct {
	Slots          int
	ReloadRequired bool
}

type Service struct {
	db     *sql.DB
	logger logging.Logger
}

func NewService(db *sql.DB, logger logging.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Export returns an indented JSON object of every slot match accepts.
//
// Values are copied verbatim; nothing is decoded or validated, so a
// snapshot restores exactly what was stored.
//
// Parameters:
//
//	ctx   - used for the store read
//	match - selects slots by name; nil means DefaultPredicate
//
// Returns:
//
//	The snapshot bytes, ready to hand to a Target, or a storage error.
func (s *Service) Export(ctx context.Context, match Predicate) ([]byte, error) {
	if match == nil {
		match = DefaultPredicate
	}

	all, err := slots.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	snapshot := make(map[string]string, len(all))
	for k, v := range all {
		if match(k) {
			snapshot[k] = v
		}
	}

	b, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	s.logger.Info(ctx, "backup exported", "slots", len(snapshot))
	return b, nil
}

// Parse decodes a snapshot. Non-string values, null included, are kept as
// their JSON text.
func Parse(data []byte) (map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrImport, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: snapshot is not an object", common.ErrImport)
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		var str string
		if string(v) == "null" {
			out[k] = "null"
			continue
		}
		if err := json.Unmarshal(v, &str); err == nil {
			out[k] = str
			continue
		}
		out[k] = string(v)
	}
	return out, nil
}

// Import writes every key of the snapshot in one transaction.
//
// Keys the application does not know are written through unchanged, and
// slots absent from the snapshot are left alone.
//
// Returns:
//
//	Result with ReloadRequired set on success. An error wrapping
//	common.ErrImport when data is not a JSON object; nothing is written.
//	An error wrapping common.ErrStorage when a write fails; the
//	transaction is rolled back.
func (s *Service) Import(ctx context.Context, data []byte) (Result, error) {
	snapshot, err := Parse(data)
	if err != nil {
		s.logger.Warn(ctx, "backup rejected", "error", err)
		return Result{}, err
	}

	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	err = storage.WithTx(ctx, s.db, func(ctx context.Context, tx storage.DBTX) error {
		repo := slots.NewSQLiteRepository(tx)
		for _, k := range keys {
			if err := repo.Set(ctx, k, snapshot[k]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	s.logger.Info(ctx, "backup imported", "slots", len(keys))
	return Result{Slots: len(keys), ReloadRequired: true}, nil
}
