package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranavi39/pawfect/internal/domain"
	domsess "github.com/pranavi39/pawfect/internal/domain/session"
)

func openStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s, err := Open(ttl, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_SaveGet(t *testing.T) {
	s := openStore(t, 0)
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sess := domsess.New(created)
	sess = sess.WithLogin("alice")
	sess = sess.WithWishlistEntry(domsess.WishlistEntry{ProductID: 4, Name: "Toy", Price: "$1", Description: "toy"})

	require.NoError(t, s.Save(ctx, &sess))

	got, err := s.Get(ctx, sess.ID())
	require.NoError(t, err)
	assert.Equal(t, sess.ID(), got.ID())
	assert.Equal(t, "alice", got.Username())
	assert.True(t, got.LoggedIn())
	assert.True(t, got.CreatedAt().Equal(created))
	assert.Equal(t, sess.Wishlist(), got.Wishlist())
}

func TestStore_GetMissing(t *testing.T) {
	s := openStore(t, 0)
	_, err := s.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_Update(t *testing.T) {
	s := openStore(t, 0)
	ctx := context.Background()

	sess := domsess.New(time.Now())
	require.NoError(t, s.Save(ctx, &sess))

	updated, err := s.Update(ctx, sess.ID(), func(cur domsess.Session) (domsess.Session, error) {
		return cur.WithLogin("bob"), nil
	})
	require.NoError(t, err)
	assert.True(t, updated.LoggedIn())

	got, err := s.Get(ctx, sess.ID())
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username())
}

func TestStore_UpdateErrorLeavesSessionUnchanged(t *testing.T) {
	s := openStore(t, 0)
	ctx := context.Background()

	sess := domsess.New(time.Now())
	require.NoError(t, s.Save(ctx, &sess))

	boom := errors.New("boom")
	_, err := s.Update(ctx, sess.ID(), func(cur domsess.Session) (domsess.Session, error) {
		return cur.WithLogin("mallory"), boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Get(ctx, sess.ID())
	require.NoError(t, err)
	assert.False(t, got.LoggedIn())
}

func TestStore_UpdateMissing(t *testing.T) {
	s := openStore(t, 0)
	_, err := s.Update(context.Background(), uuid.New(), func(cur domsess.Session) (domsess.Session, error) {
		return cur, nil
	})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_ConcurrentWishlistAppends(t *testing.T) {
	s := openStore(t, 0)
	ctx := context.Background()

	sess := domsess.New(time.Now())
	sess = sess.WithLogin("alice")
	require.NoError(t, s.Save(ctx, &sess))

	const writers = 4
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Update(ctx, sess.ID(), func(cur domsess.Session) (domsess.Session, error) {
				return cur.WithWishlistEntry(domsess.WishlistEntry{ProductID: i}), nil
			})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		}
	}
	got, err := s.Get(ctx, sess.ID())
	require.NoError(t, err)
	// Every successful update is reflected; none is lost to a concurrent write.
	assert.Len(t, got.Wishlist(), ok)
}

func TestStore_Delete(t *testing.T) {
	s := openStore(t, 0)
	ctx := context.Background()

	sess := domsess.New(time.Now())
	require.NoError(t, s.Save(ctx, &sess))
	require.NoError(t, s.Delete(ctx, sess.ID()))

	_, err := s.Get(ctx, sess.ID())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	assert.NoError(t, s.Delete(ctx, uuid.New()))
}

func TestStore_TTLExpiry(t *testing.T) {
	s := openStore(t, time.Second)
	ctx := context.Background()

	sess := domsess.New(time.Now())
	require.NoError(t, s.Save(ctx, &sess))

	_, err := s.Get(ctx, sess.ID())
	require.NoError(t, err)

	// Badger TTLs have one-second resolution.
	time.Sleep(2100 * time.Millisecond)
	_, err = s.Get(ctx, sess.ID())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_Ping(t *testing.T) {
	s, err := Open(0, nil)
	require.NoError(t, err)
	assert.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.Close())
	assert.Error(t, s.Ping(context.Background()))
}
