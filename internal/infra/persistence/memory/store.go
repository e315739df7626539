// Package memory is an in-process credential store for development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"

	"github.com/google/uuid"
)

// Store keeps users in maps indexed by name and email.
//
// Transactions hold an exclusive lock for their whole duration, so a signup's
// checks and insert cannot interleave with another signup.
type Store struct {
	txMu sync.Mutex // serializes transactions
	mu   sync.RWMutex
	byID map[uuid.UUID]*entity.User

	byName  map[string]uuid.UUID
	byEmail map[string]uuid.UUID

	now func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		byID:    make(map[uuid.UUID]*entity.User),
		byName:  make(map[string]uuid.UUID),
		byEmail: make(map[string]uuid.UUID),
		now:     time.Now,
	}
}

// Users returns a repository that reads and writes the store directly.
func (s *Store) Users() repository.UserRepository {
	return &userRepository{store: s}
}

// Execute runs fn with a repository whose inserts are staged and applied only when fn succeeds.
func (s *Store) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &txRepository{store: s}
	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range tx.staged {
		// Direct writes outside a transaction may have raced in.
		if err := s.checkUniqueLocked(user); err != nil {
			return err
		}
	}
	for _, user := range tx.staged {
		s.insertLocked(user)
	}

	return nil
}

func (s *Store) findLocked(index map[string]uuid.UUID, key string) (*entity.User, error) {
	id, ok := index[key]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	clone := *s.byID[id]

	return &clone, nil
}

func (s *Store) checkUniqueLocked(user *entity.User) error {
	if _, ok := s.byName[user.Name]; ok {
		return domainerrors.ErrUserAlreadyExists
	}
	if _, ok := s.byEmail[user.Email]; ok {
		return domainerrors.ErrEmailAlreadyInUse
	}

	return nil
}

func (s *Store) insertLocked(user *entity.User) {
	stored := *user
	s.byID[stored.ID] = &stored
	s.byName[stored.Name] = stored.ID
	s.byEmail[stored.Email] = stored.ID
}

// prepare assigns the store-generated fields.
func (s *Store) prepare(user *entity.User) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now()
	}
}

type userRepository struct {
	store *Store
}

func (r *userRepository) FindByName(_ context.Context, name string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.findLocked(r.store.byName, name)
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.findLocked(r.store.byEmail, email)
}

func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.checkUniqueLocked(user); err != nil {
		return err
	}

	r.store.prepare(user)
	r.store.insertLocked(user)

	return nil
}

// txRepository sees committed users plus its own staged inserts.
type txRepository struct {
	store  *Store
	staged []*entity.User
}

func (r *txRepository) UserRepo() repository.UserRepository {
	return r
}

func (r *txRepository) FindByName(ctx context.Context, name string) (*entity.User, error) {
	for _, user := range r.staged {
		if user.Name == name {
			clone := *user

			return &clone, nil
		}
	}

	return r.store.Users().FindByName(ctx, name)
}

func (r *txRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.staged {
		if user.Email == email {
			clone := *user

			return &clone, nil
		}
	}

	return r.store.Users().FindByEmail(ctx, email)
}

func (r *txRepository) Create(ctx context.Context, user *entity.User) error {
	if _, err := r.FindByName(ctx, user.Name); err == nil {
		return domainerrors.ErrUserAlreadyExists
	}
	if _, err := r.FindByEmail(ctx, user.Email); err == nil {
		return domainerrors.ErrEmailAlreadyInUse
	}

	r.store.prepare(user)
	staged := *user
	r.staged = append(r.staged, &staged)

	return nil
}
