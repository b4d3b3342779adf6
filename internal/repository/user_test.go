package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preptrack/preptrack-go/internal/model"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`)).
		WithArgs("alice", "hash", now).
		WillReturnResult(sqlmock.NewResult(7, 1))

	user := &model.User{Username: "alice", PasswordHash: "hash", CreatedAt: now}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, int64(7), user.ID)
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'uq_users_username'"})

	err := repo.Create(context.Background(), &model.User{Username: "alice", PasswordHash: "hash"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestUserRepository_CreateDBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`INSERT INTO users`).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &model.User{Username: "alice", PasswordHash: "hash"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateUsername)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(7, "alice", "hash", created))

	user, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, &model.User{ID: 7, Username: "alice", PasswordHash: "hash", CreatedAt: created}, user)
}

func TestUserRepository_GetByUsernameNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT id, username`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIsDuplicateEntryError(t *testing.T) {
	assert.False(t, isDuplicateEntryError(nil))
	assert.False(t, isDuplicateEntryError(ErrUserNotFound))
	assert.False(t, isDuplicateEntryError(&mysql.MySQLError{Number: 1045}))
	assert.True(t, isDuplicateEntryError(&mysql.MySQLError{Number: 1062}))
}
