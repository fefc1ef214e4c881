package profile

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryRepository builds an in-memory user store for dev mode and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.ChatID]; exists {
		return ErrExists
	}
	r.users[user.ChatID] = user
	return nil
}

func (r *memoryRepository) FindByChatID(_ context.Context, chatID string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[chatID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *memoryRepository) FindByReferralCode(_ context.Context, code string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.ReferralCode == code {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *memoryRepository) UpdateProfile(_ context.Context, chatID, username, avatar string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[chatID]
	if !ok {
		return ErrNotFound
	}
	if username != "" {
		user.Username = username
	}
	if avatar != "" {
		user.Avatar = avatar
	}
	r.users[chatID] = user
	return nil
}
