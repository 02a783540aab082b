package cart

import (
	"context"
	"time"

	"feriwala/database"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Store persists one cart per session.
type Store interface {
	Load(ctx context.Context, sessionID string) (Cart, error)
	Save(ctx context.Context, sessionID string, c Cart) error
	Clear(ctx context.Context, sessionID string) error
}

// SQLStore keeps carts as JSON in the carts table under StorageKey.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Load returns the stored cart. A corrupt entry is logged and read as empty.
func (s *SQLStore) Load(ctx context.Context, sessionID string) (Cart, error) {
	raw, err := database.LoadCartJSON(ctx, s.db, sessionID, StorageKey)
	if err != nil {
		return nil, err
	}
	c, err := Unmarshal(raw)
	if err != nil {
		zap.S().Warnw("discarding unreadable cart", "session", sessionID, "error", err)
		return Cart{}, nil
	}
	return c, nil
}

func (s *SQLStore) Save(ctx context.Context, sessionID string, c Cart) error {
	raw, err := c.Marshal()
	if err != nil {
		return err
	}
	return database.SaveCartJSON(ctx, s.db, sessionID, StorageKey, raw)
}

func (s *SQLStore) Clear(ctx context.Context, sessionID string) error {
	return database.DeleteCart(ctx, s.db, sessionID, StorageKey)
}

// Purge removes carts idle for longer than ttl.
func (s *SQLStore) Purge(ctx context.Context, ttl time.Duration) (int64, error) {
	return database.PurgeStaleCarts(ctx, s.db, time.Now().Add(-ttl))
}

// RunPurger purges stale carts every interval until ctx is done.
func (s *SQLStore) RunPurger(ctx context.Context, ttl, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := s.Purge(ctx, ttl)
			if err != nil {
				zap.S().Warnw("purging stale carts", "error", err)
				continue
			}
			if n > 0 {
				zap.S().Infow("purged stale carts", "count", n)
			}
		}
	}
}
