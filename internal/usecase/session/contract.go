package session

import (
	"context"

	"github.com/google/uuid"

	domsess "github.com/pranavi39/pawfect/internal/domain/session"
	"github.com/pranavi39/pawfect/internal/usecase/index"
)

// Store persists sessions by ID.
type Store interface {
	Save(ctx context.Context, sess *domsess.Session) error
	Get(ctx context.Context, id uuid.UUID) (domsess.Session, error)
	Update(ctx context.Context, id uuid.UUID, fn func(domsess.Session) (domsess.Session, error)) (domsess.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CredentialVerifier checks a username/password pair against the user table.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (bool, error)
}

// SnapshotReader returns the active index snapshot for product lookups.
type SnapshotReader interface {
	Current() (*index.Snapshot, error)
}
