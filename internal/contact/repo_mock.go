package contact

import (
	"context"
	"sort"
	"sync"
	"time"
)

type repoMock struct {
	mutex    sync.Mutex
	nextID   int
	messages []*Message
}

func newRepoMock() *repoMock {
	return &repoMock{nextID: 1}
}

func (m *repoMock) Add(_ context.Context, name, email, message string) (*Message, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	msg := &Message{
		ID:        m.nextID,
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: time.Now(),
	}
	m.messages = append(m.messages, msg)
	m.nextID++
	return msg, nil
}

func (m *repoMock) ListAll(_ context.Context) ([]*Message, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	all := make([]*Message, len(m.messages))
	copy(all, m.messages)
	sort.Slice(all, func(i, k int) bool {
		return all[i].CreatedAt.After(all[k].CreatedAt)
	})
	return all, nil
}
