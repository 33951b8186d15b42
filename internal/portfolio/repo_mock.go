package portfolio

import (
	"context"
	"sort"
	"sync"
	"time"
)

type repoMock struct {
	mutex    sync.Mutex
	nextID   int
	projects map[int]*Project
}

func newRepoMock(initial ...*Project) *repoMock {
	m := &repoMock{
		nextID:   1,
		projects: make(map[int]*Project),
	}
	for _, p := range initial {
		m.projects[p.ID] = p
		if p.ID >= m.nextID {
			m.nextID = p.ID + 1
		}
	}
	return m
}

func (m *repoMock) Insert(_ context.Context, fields ProjectFields) (*Project, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	now := time.Now()
	p := &Project{
		ID:          m.nextID,
		Title:       fields.Title,
		Description: fields.Description,
		Image:       fields.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.projects[p.ID] = p
	m.nextID++
	return p, nil
}

func (m *repoMock) Update(_ context.Context, id int, fields ProjectFields) (*Project, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, ErrProjectNotFound
	}
	p.Title = fields.Title
	p.Description = fields.Description
	p.Image = fields.Image
	p.UpdatedAt = time.Now()
	return p, nil
}

func (m *repoMock) Delete(_ context.Context, id int) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.projects[id]; !ok {
		return false, nil
	}
	delete(m.projects, id)
	return true, nil
}

func (m *repoMock) ListAll(_ context.Context) ([]*Project, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	all := make([]*Project, 0, len(m.projects))
	for _, p := range m.projects {
		all = append(all, p)
	}
	sort.Slice(all, func(i, k int) bool {
		return all[i].CreatedAt.After(all[k].CreatedAt)
	})
	return all, nil
}
