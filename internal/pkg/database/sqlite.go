package database

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/wataru0019/enconapp/internal/config"
	"github.com/wataru0019/enconapp/internal/pkg/logger"
)

//go:embed schema.sql
var sqliteSchema string

// SQLiteDB wraps the embedded database handle. One handle is shared across
// all operations within the process; the engine serializes writes internally.
type SQLiteDB struct {
	DB *sqlx.DB
}

// NewSQLite opens the embedded database file, enables foreign key
// enforcement, and initializes the schema. The data directory is created if
// it does not exist yet.
func NewSQLite(cfg config.SQLiteConfig) (*SQLiteDB, error) {
	path := cfg.Path
	if path == "" {
		path = "./data/app.db"
	}

	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)

	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// Mirror the single-handle model: the engine serializes writes anyway,
	// and a single pooled connection keeps transactions on one handle.
	db.SetMaxOpenConns(1)

	sdb := &SQLiteDB{DB: db}

	if err := sdb.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize sqlite schema: %w", err)
	}

	logger.Info("connected to SQLite", zap.String("path", path))

	return sdb, nil
}

// initSchema executes the embedded schema inside one transaction, so a
// partial failure leaves the database untouched. Every statement uses
// IF NOT EXISTS, so re-initialization is a no-op.
func (db *SQLiteDB) initSchema(ctx context.Context) error {
	statements := splitStatements(sqliteSchema)

	return db.Transaction(ctx, func(tx *sqlx.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("schema statement failed: %w", err)
			}
		}
		return nil
	})
}

// splitStatements splits a schema file into individual statements, dropping
// comment-only fragments.
func splitStatements(schema string) []string {
	var statements []string
	for _, fragment := range strings.Split(schema, ";") {
		var lines []string
		for _, line := range strings.Split(fragment, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" && !strings.HasPrefix(trimmed, "--") {
				lines = append(lines, line)
			}
		}
		if len(lines) == 0 {
			continue
		}
		statements = append(statements, strings.Join(lines, "\n"))
	}
	return statements
}

// Ping verifies the handle is usable
func (db *SQLiteDB) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}

// Close closes the database handle. Operations attempted afterwards fail;
// the handle is not silently reopened.
func (db *SQLiteDB) Close() error {
	return db.DB.Close()
}

// Transaction executes a function within a transaction
func (db *SQLiteDB) Transaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
