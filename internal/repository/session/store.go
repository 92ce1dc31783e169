package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pranavi39/pawfect/internal/domain"
	domsess "github.com/pranavi39/pawfect/internal/domain/session"
)

const (
	keyPrefix = "session:"
	// maxConflictRetries bounds retries of a read-modify-write on transaction conflict.
	maxConflictRetries = 3
)

// badgerLogger adapts zap to the badger.Logger interface.
type badgerLogger struct {
	sugar *zap.SugaredLogger
}

var _ badger.Logger = (*badgerLogger)(nil)

func (l *badgerLogger) Errorf(msg string, args ...any)   { l.sugar.Errorf(msg, args...) }
func (l *badgerLogger) Warningf(msg string, args ...any) { l.sugar.Warnf(msg, args...) }
func (l *badgerLogger) Infof(msg string, args ...any)    { l.sugar.Debugf(msg, args...) }
func (l *badgerLogger) Debugf(msg string, args ...any)   { l.sugar.Debugf(msg, args...) }

// Store keeps sessions in an in-memory Badger instance. Nothing is written to
// disk, so sessions live only as long as the process.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

// Open starts an in-memory store. Sessions expire ttl after their last write;
// ttl <= 0 keeps them for the process lifetime.
func Open(ttl time.Duration, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = &badgerLogger{sugar: logger.Named("badger").Sugar()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return &Store{db: db, ttl: ttl}, nil
}

// Close releases the store. All sessions are lost.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the store accepts operations.
func (s *Store) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return errors.New("session store is closed")
	}
	return nil
}

// Save writes a session, resetting its TTL.
func (s *Store) Save(ctx context.Context, sess *domsess.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeSession(sess)
	if err != nil {
		return err
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(s.entry(sess.ID(), data))
	}); err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID(), err)
	}
	return nil
}

// Get returns a session or domain.ErrSessionNotFound.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (domsess.Session, error) {
	if err := ctx.Err(); err != nil {
		return domsess.Session{}, err
	}
	var sess domsess.Session
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		sess, err = get(txn, id)
		return err
	})
	if err != nil {
		return domsess.Session{}, err
	}
	return sess, nil
}

// Update applies fn to the stored session atomically and saves the result.
func (s *Store) Update(
	ctx context.Context, id uuid.UUID, fn func(domsess.Session) (domsess.Session, error),
) (domsess.Session, error) {
	var updated domsess.Session
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return domsess.Session{}, err
		}
		err := s.db.Update(func(txn *badger.Txn) error {
			cur, err := get(txn, id)
			if err != nil {
				return err
			}
			next, err := fn(cur)
			if err != nil {
				return err
			}
			data, err := encodeSession(&next)
			if err != nil {
				return err
			}
			updated = next
			return txn.SetEntry(s.entry(id, data))
		})
		if errors.Is(err, badger.ErrConflict) && attempt < maxConflictRetries {
			continue
		}
		if err != nil {
			return domsess.Session{}, err
		}
		return updated, nil
	}
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(id))
	}); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

func (s *Store) entry(id uuid.UUID, data []byte) *badger.Entry {
	e := badger.NewEntry(key(id), data)
	if s.ttl > 0 {
		e = e.WithTTL(s.ttl)
	}
	return e
}

func get(txn *badger.Txn, id uuid.UUID) (domsess.Session, error) {
	item, err := txn.Get(key(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domsess.Session{}, domain.ErrSessionNotFound
		}
		return domsess.Session{}, fmt.Errorf("get session %s: %w", id, err)
	}
	data, err := item.ValueCopy(nil)
	if err != nil {
		return domsess.Session{}, fmt.Errorf("read session %s: %w", id, err)
	}
	return decodeSession(data)
}

func key(id uuid.UUID) []byte {
	return []byte(keyPrefix + id.String())
}
