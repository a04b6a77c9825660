//go:build unit

package db_test

import (
	"context"
	"errors"
	"testing"

	"kiosk-sales-api/internal/infra/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPool struct {
	acquired   int
	released   int
	acquireErr error
	releaseErr error
}

func (p *countingPool) Acquire(_ context.Context) (db.Session, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.acquired++
	return &countingSession{pool: p}, nil
}

type countingSession struct {
	pool *countingPool
}

func (s *countingSession) Exec(context.Context, string, ...any) error { return nil }

func (s *countingSession) Query(context.Context, string, ...any) (db.ResultSets, error) {
	return db.NewResultSets(), nil
}

func (s *countingSession) Release() error {
	s.pool.released++
	return s.pool.releaseErr
}

func TestWithSession(t *testing.T) {
	ctx := context.Background()

	t.Run("releases after success", func(t *testing.T) {
		pool := &countingPool{}
		err := db.WithSession(ctx, pool, func(db.Session) error { return nil })
		require.NoError(t, err)
		assert.Equal(t, 1, pool.acquired)
		assert.Equal(t, 1, pool.released)
	})

	t.Run("releases after error", func(t *testing.T) {
		pool := &countingPool{}
		boom := errors.New("boom")
		err := db.WithSession(ctx, pool, func(db.Session) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, pool.released)
	})

	t.Run("releases after panic", func(t *testing.T) {
		pool := &countingPool{}
		assert.Panics(t, func() {
			_ = db.WithSession(ctx, pool, func(db.Session) error { panic("unexpected") })
		})
		assert.Equal(t, 1, pool.released)
	})

	t.Run("acquire failure never calls fn", func(t *testing.T) {
		pool := &countingPool{acquireErr: errors.New("too many connections")}
		called := false
		err := db.WithSession(ctx, pool, func(db.Session) error { called = true; return nil })
		require.Error(t, err)
		assert.False(t, called)
		assert.Equal(t, 0, pool.released)
	})

	t.Run("release error surfaces only when fn succeeded", func(t *testing.T) {
		pool := &countingPool{releaseErr: errors.New("bad conn")}
		err := db.WithSession(ctx, pool, func(db.Session) error { return nil })
		assert.ErrorContains(t, err, "failed to release connection")

		boom := errors.New("boom")
		err = db.WithSession(ctx, pool, func(db.Session) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 2, pool.released)
	})
}
