package db

import (
	"context"
	"database/sql"
	"fmt"
)

//go:generate mockgen -source=pool.go -destination=../../../tests/mock/db/pool.go -package=dbmock

// Pool hands out sessions bound to a single connection.
type Pool interface {
	Acquire(ctx context.Context) (Session, error)
}

// Session is one checked-out connection. Statements issued on the same session
// observe each other's writes.
type Session interface {
	Exec(ctx context.Context, query string, args ...any) error
	Query(ctx context.Context, query string, args ...any) (ResultSets, error)
	Release() error
}

// WithSession runs fn on a freshly acquired session and releases it exactly once,
// whatever fn returns or panics with.
func WithSession(ctx context.Context, pool Pool, fn func(Session) error) (err error) {
	sess, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer func() {
		if relErr := sess.Release(); relErr != nil && err == nil {
			err = fmt.Errorf("failed to release connection: %w", relErr)
		}
	}()
	return fn(sess)
}

type MySQLPool struct {
	db *sql.DB
}

func NewMySQLPool(db *sql.DB) *MySQLPool {
	return &MySQLPool{db: db}
}

func (p *MySQLPool) Acquire(ctx context.Context) (Session, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &connSession{conn: conn}, nil
}

type connSession struct {
	conn *sql.Conn
}

func (s *connSession) Exec(ctx context.Context, query string, args ...any) error {
	_, err := s.conn.ExecContext(ctx, query, args...)
	return err
}

func (s *connSession) Query(ctx context.Context, query string, args ...any) (ResultSets, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return ResultSets{}, err
	}
	defer rows.Close()
	return readResultSets(rows)
}

func (s *connSession) Release() error {
	return s.conn.Close()
}

// readResultSets drains every result set of rows. Sets without columns are the
// status packets a CALL ends with and are skipped.
func readResultSets(rows *sql.Rows) (ResultSets, error) {
	var sets [][]Row
	for {
		cols, err := rows.Columns()
		if err != nil {
			return ResultSets{}, err
		}
		if len(cols) > 0 {
			set := []Row{}
			for rows.Next() {
				values := make([]any, len(cols))
				ptrs := make([]any, len(cols))
				for i := range values {
					ptrs[i] = &values[i]
				}
				if err := rows.Scan(ptrs...); err != nil {
					return ResultSets{}, err
				}
				row := make(Row, len(cols))
				for i, col := range cols {
					row[col] = normalizeValue(values[i])
				}
				set = append(set, row)
			}
			sets = append(sets, set)
		}
		if !rows.NextResultSet() {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return ResultSets{}, err
	}
	return NewResultSets(sets...), nil
}

func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
