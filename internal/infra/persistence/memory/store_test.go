package memory

import (
	"context"
	"sync"
	"testing"

	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(name, email string) *entity.User {
	return &entity.User{Name: name, Email: email, PasswordHash: "$2a$10$hash"}
}

func TestStore_CreateAndFind(t *testing.T) {
	store := NewStore()
	repo := store.Users()
	ctx := context.Background()

	user := newUser("alice", "alice@example.com")
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byName, err := repo.FindByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindByName(ctx, "Alice")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestStore_CreateRejectsDuplicates(t *testing.T) {
	store := NewStore()
	repo := store.Users()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("alice", "alice@example.com")))

	err := repo.Create(ctx, newUser("alice", "other@example.com"))
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)

	err = repo.Create(ctx, newUser("bob", "alice@example.com"))
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyInUse)

	assert.Equal(t, 1, storedUsers(store))
}

func TestStore_ReturnsCopies(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	require.NoError(t, store.Users().Create(ctx, newUser("alice", "alice@example.com")))

	found, err := store.Users().FindByName(ctx, "alice")
	require.NoError(t, err)
	found.PasswordHash = "tampered"

	again, err := store.Users().FindByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$hash", again.PasswordHash)
}

func TestStore_ExecuteCommitsOnSuccess(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.Execute(ctx, func(f repository.RepositoryFactory) error {
		user := newUser("alice", "alice@example.com")
		if err := f.UserRepo().Create(ctx, user); err != nil {
			return err
		}

		_, err := f.UserRepo().FindByName(ctx, "alice")

		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, storedUsers(store))
}

func TestStore_ExecuteRollsBackOnError(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.UserRepo().Create(ctx, newUser("alice", "alice@example.com")); err != nil {
			return err
		}

		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, storedUsers(store))
}

func TestStore_ExecuteSerializesSignups(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- store.Execute(ctx, func(f repository.RepositoryFactory) error {
				repo := f.UserRepo()
				if _, err := repo.FindByName(ctx, "alice"); err == nil {
					return domainerrors.ErrUserAlreadyExists
				}

				return repo.Create(ctx, newUser("alice", "alice@example.com"))
			})
		}()
	}
	wg.Wait()
	close(results)

	var ok, dup int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domainerrors.ErrUserAlreadyExists):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, dup)
	assert.Equal(t, 1, storedUsers(store))
}

func TestStore_ExecuteHonoursCancelledContext(t *testing.T) {
	store := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.Execute(ctx, func(repository.RepositoryFactory) error {
		called = true

		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func storedUsers(s *Store) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.byID)
}
