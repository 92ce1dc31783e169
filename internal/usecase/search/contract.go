package search

import "github.com/pranavi39/pawfect/internal/usecase/index"

// SnapshotReader returns the active index snapshot.
type SnapshotReader interface {
	Current() (*index.Snapshot, error)
}
