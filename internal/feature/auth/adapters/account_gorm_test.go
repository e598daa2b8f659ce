package adapters

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stock_portfolio/internal/feature/auth/domain/entity"
	"stock_portfolio/internal/feature/auth/usecase"
	"stock_portfolio/internal/platform/db"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err, "failed to initialize test database")
	t.Cleanup(func() { _ = db.Close(gdb) })

	require.NoError(t, gdb.AutoMigrate(&entity.Account{}), "failed to migrate table")
	return gdb
}

func newAccount(username, email string) *entity.Account {
	return &entity.Account{
		Username:     username,
		Email:        email,
		PasswordHash: "hashed",
		DisplayName:  username,
		Role:         entity.RoleTrader,
	}
}

func TestNewAccountGorm(t *testing.T) {
	gdb := setupTestDB(t)

	repo := NewAccountGorm(gdb)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestAccountGorm_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		repo := NewAccountGorm(setupTestDB(t))

		a := newAccount("alice", "alice@example.com")
		err := repo.Create(context.Background(), a)

		require.NoError(t, err)
		assert.NotZero(t, a.ID, "ID is not set")
		assert.False(t, a.CreatedAt.IsZero(), "CreatedAt is not set")
		assert.Nil(t, a.LastLoginAt)
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := NewAccountGorm(setupTestDB(t))
		require.NoError(t, repo.Create(context.Background(), newAccount("bob", "bob@example.com")))

		err := repo.Create(context.Background(), newAccount("bob", "other@example.com"))

		assert.ErrorIs(t, err, usecase.ErrDuplicateUsername)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := NewAccountGorm(setupTestDB(t))
		require.NoError(t, repo.Create(context.Background(), newAccount("bob", "bob@example.com")))

		err := repo.Create(context.Background(), newAccount("robert", "bob@example.com"))

		assert.ErrorIs(t, err, usecase.ErrDuplicateEmail)
	})

	t.Run("uniqueness is case-sensitive", func(t *testing.T) {
		repo := NewAccountGorm(setupTestDB(t))
		require.NoError(t, repo.Create(context.Background(), newAccount("bob", "bob@example.com")))

		err := repo.Create(context.Background(), newAccount("Bob", "Bob@example.com"))

		assert.NoError(t, err)
	})

	t.Run("nil account", func(t *testing.T) {
		repo := NewAccountGorm(setupTestDB(t))

		assert.Error(t, repo.Create(context.Background(), nil))
	})

	t.Run("concurrent registrations of one username", func(t *testing.T) {
		repo := NewAccountGorm(setupTestDB(t))

		var wg sync.WaitGroup
		errs := make([]error, 5)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = repo.Create(context.Background(), newAccount("racer", "racer"+string(rune('a'+i))+"@example.com"))
			}(i)
		}
		wg.Wait()

		ok := 0
		for _, err := range errs {
			if err == nil {
				ok++
				continue
			}
			assert.ErrorIs(t, err, usecase.ErrDuplicateUsername)
		}
		assert.Equal(t, 1, ok)
	})
}

func TestAccountGorm_FindByUsername(t *testing.T) {
	repo := NewAccountGorm(setupTestDB(t))
	a := newAccount("carol", "carol@example.com")
	require.NoError(t, repo.Create(context.Background(), a))

	t.Run("found", func(t *testing.T) {
		got, err := repo.FindByUsername(context.Background(), "carol")
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)
		assert.Equal(t, "hashed", got.PasswordHash)
		assert.Equal(t, entity.RoleTrader, got.Role)
	})

	t.Run("not found", func(t *testing.T) {
		got, err := repo.FindByUsername(context.Background(), "nobody")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, usecase.ErrAccountNotFound)
	})
}

func TestAccountGorm_FindByID(t *testing.T) {
	repo := NewAccountGorm(setupTestDB(t))
	a := newAccount("dave", "dave@example.com")
	require.NoError(t, repo.Create(context.Background(), a))

	got, err := repo.FindByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "dave", got.Username)

	_, err = repo.FindByID(context.Background(), a.ID+100)
	assert.ErrorIs(t, err, usecase.ErrAccountNotFound)
}

func TestAccountGorm_UpdateLastLogin(t *testing.T) {
	repo := NewAccountGorm(setupTestDB(t))
	a := newAccount("erin", "erin@example.com")
	require.NoError(t, repo.Create(context.Background(), a))

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateLastLogin(context.Background(), a.ID, at))

	got, err := repo.FindByID(context.Background(), a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.True(t, at.Equal(*got.LastLoginAt))

	err = repo.UpdateLastLogin(context.Background(), 9999, at)
	assert.ErrorIs(t, err, usecase.ErrAccountNotFound)
}
