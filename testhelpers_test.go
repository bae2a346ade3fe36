package apiauth_test

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"
	"time"

	auth "github.com/armsberg/go-apiauth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// setupTestDB opens an in-memory sqlite database and applies the
// package migrations.
func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	migrations := auth.GetMigrationsFS()
	err = fs.WalkDir(migrations, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		stmt, err := fs.ReadFile(migrations, path)
		if err != nil {
			return err
		}
		_, err = db.Exec(string(stmt))
		return err
	})
	require.NoError(t, err)

	return db
}

// insertTestUser writes a user row directly, bypassing the accounts
// service.
func insertTestUser(t *testing.T, db *bun.DB, email, passwordHash string) uuid.UUID {
	t.Helper()

	now := time.Now()
	usr := &auth.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    &now,
		UpdatedAt:    &now,
	}
	_, err := db.NewInsert().Model(usr).Exec(context.Background())
	require.NoError(t, err)

	return usr.ID
}
