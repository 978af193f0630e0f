package storage

import "context"

// SnapshotStore persists the whole UserProgress aggregate. Load always
// succeeds in producing a usable record: an empty or corrupt backing store
// yields the defaults (after hydration). Save replaces the snapshot
// atomically; the engine calls it after every mutation.
type SnapshotStore interface {
	Load(ctx context.Context) (UserProgress, error)
	Save(ctx context.Context, p UserProgress) error
}
