//go:build unit || e2e

package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const statementSeparator = "-- split"

// tables in dependency order; ResetDB truncates them with FK checks off.
var tables = []string{
	"mk_settlements",
	"mk_commerces",
	"mk_receipts",
	"mk_productPrices",
	"mk_products",
	"mk_kiosks",
}

// ApplyMigrations runs every statement of the given files. Paths are resolved
// relative to the package directory `go test` runs in.
func ApplyMigrations(ctx context.Context, db *sql.DB, files ...string) error {
	for _, file := range files {
		content, resolved, err := readMigration(file)
		if err != nil {
			return err
		}
		for _, stmt := range SplitStatements(string(content)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", resolved, err)
			}
		}
	}
	return nil
}

func readMigration(file string) ([]byte, string, error) {
	candidates := []string{
		file,
		filepath.Join("..", file),
		filepath.Join("..", "..", file),
		filepath.Join("..", "..", "..", file),
	}
	var lastErr error
	for _, cand := range candidates {
		content, err := os.ReadFile(cand)
		if err == nil {
			return content, cand, nil
		}
		lastErr = err
	}
	return nil, file, fmt.Errorf("failed to read migration file %s: %w", file, lastErr)
}

// SplitStatements cuts a migration on separator lines and drops blank chunks.
func SplitStatements(content string) []string {
	var stmts []string
	for _, chunk := range strings.Split(content, statementSeparator) {
		if body := stripComments(chunk); body != "" {
			stmts = append(stmts, body)
		}
	}
	return stmts
}

func stripComments(chunk string) string {
	var lines []string
	for _, line := range strings.Split(chunk, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func CreateKiosk(t *testing.T, db DBLike, name string) int64 {
	t.Helper()
	res, err := db.ExecContext(context.Background(), "INSERT INTO mk_kiosks (kioskName) VALUES (?)", name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func CreateProduct(t *testing.T, db DBLike, kioskID int64, name string, stock int) int64 {
	t.Helper()
	res, err := db.ExecContext(context.Background(),
		"INSERT INTO mk_products (kioskID, name, stock) VALUES (?, ?, ?)", kioskID, name, stock)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// CreatePrice inserts a price row; postTime orders competing current prices.
func CreatePrice(t *testing.T, db DBLike, productID int64, price string, current bool, postTime time.Time) int64 {
	t.Helper()
	res, err := db.ExecContext(context.Background(),
		"INSERT INTO mk_productPrices (productID, price, currentPrice, postTime) VALUES (?, ?, ?, ?)",
		productID, price, current, postTime)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func CreateCommerce(t *testing.T, db DBLike, kioskID int64, name, commissionRate string) int64 {
	t.Helper()
	res, err := db.ExecContext(context.Background(),
		"INSERT INTO mk_commerces (commerceName, kioskID, commissionRate) VALUES (?, ?, ?)",
		name, kioskID, commissionRate)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func ProductStock(t *testing.T, db DBLike, productID int64) int {
	t.Helper()
	var stock int
	err := db.QueryRowContext(context.Background(),
		"SELECT stock FROM mk_products WHERE productID = ?", productID).Scan(&stock)
	require.NoError(t, err)
	return stock
}

func CountRows(t *testing.T, db DBLike, table string) int {
	t.Helper()
	var n int
	err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}

// ResetDB truncates all tables on one connection so the FK toggle applies.
func ResetDB(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		return err
	}
	for _, table := range tables {
		if _, err := conn.ExecContext(ctx, "TRUNCATE TABLE "+table); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	_, err = conn.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 1")
	return err
}
