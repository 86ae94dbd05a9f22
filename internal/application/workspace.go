package application

import (
	"context"
	"fmt"

	"github.com/bnema/social-accounts-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

// Workspace loads a directory from a snapshot store, runs one unit of work on
// it and saves the result.
type Workspace struct {
	store  ports.SnapshotStore
	clock  ports.Clock
	logger logrus.FieldLogger
}

func NewWorkspace(store ports.SnapshotStore, clock ports.Clock, logger logrus.FieldLogger) *Workspace {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Workspace{store: store, clock: clock, logger: logger}
}

// Do saves the directory only when fn succeeds. Reads record history too, so
// read-only commands go through Do as well.
func (w *Workspace) Do(ctx context.Context, fn func(*Directory) error) error {
	snapshot, err := w.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load directory: %w", err)
	}

	dir := NewDirectory(w.clock, w.logger)
	if err := dir.Restore(snapshot); err != nil {
		return fmt.Errorf("restore directory: %w", err)
	}

	if err := fn(dir); err != nil {
		return err
	}

	if err := w.store.Save(ctx, dir.Snapshot()); err != nil {
		return fmt.Errorf("save directory: %w", err)
	}

	return nil
}
