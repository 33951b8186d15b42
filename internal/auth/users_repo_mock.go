package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ usersRepo = (*usersRepoMock)(nil)

type usersRepoMock struct {
	Users map[string]*User // keyed by email
	mutex sync.Mutex
}

func newUsersRepoMock() *usersRepoMock {
	return &usersRepoMock{
		Users: make(map[string]*User),
	}
}

func (r *usersRepoMock) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	user, ok := r.Users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (r *usersRepoMock) Add(_ context.Context, email, passwordHash, name string) (*User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.Users[email]; ok {
		return nil, ErrEmailTaken
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
	}
	r.Users[email] = user
	return user, nil
}
