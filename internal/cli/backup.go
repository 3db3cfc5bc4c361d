package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/antara/internal/backup"
	"github.com/dmitrijs2005/antara/internal/common"
)

var errNoRemote = errors.New("no S3 bucket configured")

func (a *App) target(args []string, i int) (backup.Target, error) {
	if len(args) > i && args[i] == "s3" {
		if a.ac.RemoteBackup == nil {
			return nil, errNoRemote
		}
		return a.ac.RemoteBackup, nil
	}
	return a.ac.LocalBackup, nil
}

// Export writes a snapshot to the backup directory, or to S3 with "export s3".
func (a *App) Export(ctx context.Context, args []string) error {
	t, err := a.target(args, 0)
	if err != nil {
		return err
	}

	data, err := a.ac.Backup.Export(ctx, backup.DefaultPredicate)
	if err != nil {
		return err
	}
	loc, err := t.Put(ctx, backup.FileName(a.ac.Clock.Now()), data)
	if err != nil {
		return err
	}
	a.printf("Backup written to %s\n", loc)
	return nil
}

// Import replaces stored data with a snapshot and reloads derived state.
func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: usage: import <file> [s3]", common.ErrValidation)
	}
	t, err := a.target(args, 1)
	if err != nil {
		return err
	}

	data, err := t.Get(ctx, args[0])
	if err != nil {
		return err
	}
	res, err := a.ac.Backup.Import(ctx, data)
	if err != nil {
		return err
	}
	if res.ReloadRequired {
		if err := a.ac.Reload(ctx); err != nil {
			return err
		}
	}
	a.printf("Restored %d collections.\n", res.Slots)
	return nil
}
