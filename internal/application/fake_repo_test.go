package application

import (
	"sync"

	"github.com/google/uuid"

	"github.com/cineview/backend/internal/domain/entity"
	"github.com/cineview/backend/internal/domain/repository"
)

// fakeUserRepo is an in-memory UserRepository for service tests. It copies
// entities on the way in and out, like a real store would.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]entity.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	u.ID = uuid.NewString()
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[u.ID] = *u
	return nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

// failingUserRepo simulates a store outage: every call fails with err.
type failingUserRepo struct {
	err error
}

func (r *failingUserRepo) Create(*entity.User) error               { return r.err }
func (r *failingUserRepo) GetByID(string) (*entity.User, error)    { return nil, r.err }
func (r *failingUserRepo) GetByEmail(string) (*entity.User, error) { return nil, r.err }
func (r *failingUserRepo) Update(*entity.User) error               { return r.err }

var _ repository.UserRepository = (*failingUserRepo)(nil)
