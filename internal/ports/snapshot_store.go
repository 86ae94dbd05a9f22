package ports

import (
	"context"

	"github.com/bnema/social-accounts-cli/internal/domain"
)

// SnapshotStore persists the whole directory between process runs.
// Load returns an empty snapshot when nothing has been saved yet.
type SnapshotStore interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, snapshot domain.Snapshot) error
}
