package service_test

import (
	"context"
	"sync"

	authdomain "github.com/ardanovsky/todo-service/internal/auth/domain"
	commonerrors "github.com/ardanovsky/todo-service/internal/common/errors"
	userdomain "github.com/ardanovsky/todo-service/internal/user/domain"
)

type memUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]userdomain.User

	createFunc func(ctx context.Context, user userdomain.User) error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]userdomain.User)}
}

func (m *memUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[user.Email]; ok {
		return commonerrors.ErrEmailTaken
	}
	m.byEmail[user.Email] = user
	return nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.byEmail[email]
	if !ok {
		return userdomain.User{}, commonerrors.ErrUserNotFound
	}
	return user, nil
}

func (m *memUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return userdomain.User{}, commonerrors.ErrUserNotFound
}

type memTokenRepo struct {
	mu      sync.Mutex
	entries []authdomain.UserToken

	appendFunc func(ctx context.Context, token authdomain.UserToken) error
	existsFunc func(ctx context.Context, userID, purpose, token string) (bool, error)
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{}
}

func (m *memTokenRepo) Append(ctx context.Context, token authdomain.UserToken) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, token)
	return nil
}

func (m *memTokenRepo) Exists(ctx context.Context, userID, purpose, token string) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, userID, purpose, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.UserID == userID && e.Purpose == purpose && e.Token == token {
			return true, nil
		}
	}
	return false, nil
}

func (m *memTokenRepo) Delete(ctx context.Context, userID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.UserID == userID && e.Token == token {
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
	return nil
}

func (m *memTokenRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
