package credential

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	domcred "github.com/pranavi39/pawfect/internal/domain/credential"
	"github.com/pranavi39/pawfect/internal/source"
)

// Repo loads the user table once and answers plaintext credential checks.
type Repo struct {
	path   string
	logger *zap.Logger

	mu     sync.Mutex
	cached []domcred.Credential
	loaded bool
}

// New creates a credential repository for the file at path.
func New(path string, logger *zap.Logger) *Repo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{path: path, logger: logger}
}

// Load returns the user table, reading the source only on the first call.
func (r *Repo) Load(ctx context.Context) ([]domcred.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return r.cached, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	creds, err := r.read()
	if err != nil {
		return nil, err
	}
	r.cached = creds
	r.loaded = true
	return creds, nil
}

// Verify reports whether a user with exactly this username and password exists.
func (r *Repo) Verify(ctx context.Context, username, password string) (bool, error) {
	creds, err := r.Load(ctx)
	if err != nil {
		return false, err
	}
	for i := range creds {
		if creds[i].Matches(username, password) {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repo) read() ([]domcred.Credential, error) {
	tbl, err := source.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	cols, err := tbl.Require([]string{"username"}, []string{"password"})
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	creds := make([]domcred.Credential, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		row := tbl.Row(i)
		c, err := domcred.New(row[cols[0]], row[cols[1]])
		if err != nil {
			r.logger.Warn("Skipping malformed user row",
				zap.String("source", tbl.Name()),
				zap.Int("row", i),
				zap.Error(err),
			)
			continue
		}
		creds = append(creds, c)
	}

	r.logger.Info("Users loaded", zap.String("source", tbl.Name()), zap.Int("users", len(creds)))
	return creds, nil
}
