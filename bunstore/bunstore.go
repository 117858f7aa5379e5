// Package bunstore provides a durable Storage adapter backed by SQLite
// through bun, for clients that already carry a local database instead of a
// plain config file.
package bunstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/gradekeep/go-gradeauth"
)

type tokenRow struct {
	bun.BaseModel `bun:"table:auth_tokens,alias:t"`

	Key   string `bun:"key,pk"`
	Value string `bun:"value,notnull"`
}

// Storage is a single-table key-value store satisfying gradeauth.Storage.
type Storage struct {
	db *bun.DB
}

var _ gradeauth.Storage = (*Storage)(nil)

// Open creates or opens the SQLite database at path and ensures the token
// table exists. Use ":memory:" for an ephemeral store in tests.
func Open(path string) (*Storage, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if _, err := db.NewCreateTable().
		Model((*tokenRow)(nil)).
		IfNotExists().
		Exec(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Get(key string) (string, error) {
	row := new(tokenRow)
	err := s.db.NewSelect().
		Model(row).
		Where("key = ?", key).
		Scan(context.Background())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return row.Value, nil
}

func (s *Storage) Set(key, value string) error {
	row := &tokenRow{Key: key, Value: value}
	_, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(context.Background())
	return err
}

func (s *Storage) Delete(key string) error {
	_, err := s.db.NewDelete().
		Model((*tokenRow)(nil)).
		Where("key = ?", key).
		Exec(context.Background())
	return err
}

// Close releases the underlying database handle.
func (s *Storage) Close() error {
	return s.db.Close()
}
