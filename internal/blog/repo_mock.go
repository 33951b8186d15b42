package blog

import (
	"context"
	"sync"
	"time"
)

// repoMock is an in-memory blog store used in handler tests.
type repoMock struct {
	mutex  sync.Mutex
	nextID int
	blogs  map[int]*Blog
}

func newRepoMock(initial ...*Blog) *repoMock {
	m := &repoMock{
		nextID: 1,
		blogs:  make(map[int]*Blog),
	}
	for _, b := range initial {
		m.blogs[b.ID] = b
		if b.ID >= m.nextID {
			m.nextID = b.ID + 1
		}
	}
	return m
}

func (m *repoMock) Insert(_ context.Context, fields NewBlogFields) (*Blog, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	now := time.Now()
	b := &Blog{
		ID:        m.nextID,
		Title:     fields.Title,
		Content:   fields.Content,
		ImageURL:  fields.ImageURL,
		AuthorID:  fields.AuthorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.blogs[b.ID] = b
	m.nextID++
	return b, nil
}

func (m *repoMock) GetByID(_ context.Context, id int) (*Blog, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	b, ok := m.blogs[id]
	if !ok {
		return nil, ErrBlogNotFound
	}
	return b, nil
}

func (m *repoMock) Update(_ context.Context, id int, fields UpdateBlogFields) (*Blog, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	b, ok := m.blogs[id]
	if !ok {
		return nil, ErrBlogNotFound
	}
	b.Title = fields.Title
	b.Content = fields.Content
	b.ImageURL = fields.ImageURL
	b.UpdatedAt = time.Now()
	return b, nil
}

func (m *repoMock) Delete(_ context.Context, id int) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.blogs[id]; !ok {
		return false, nil
	}
	delete(m.blogs, id)
	return true, nil
}

func (m *repoMock) ListAll(_ context.Context) ([]*Blog, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	all := make([]*Blog, 0, len(m.blogs))
	for _, b := range m.blogs {
		all = append(all, b)
	}
	// newest first, same ordering the store query uses
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if all[j].CreatedAt.After(all[i].CreatedAt) {
				all[i], all[j] = all[j], all[i]
			}
		}
	}
	return all, nil
}
