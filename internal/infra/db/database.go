package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"kiosk-sales-api/internal/pkg/config"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

func Connect(cfg config.DBConfig) (*sql.DB, func(), error) {
	dsn := cfg.BuildDSN()

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	cleanup := func() {
		if err := db.Close(); err != nil {
			slog.Error("Error closing database", "error", err)
		}
	}

	return db, cleanup, nil
}
