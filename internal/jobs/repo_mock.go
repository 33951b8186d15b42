package jobs

import (
	"context"
	"sort"
	"sync"
	"time"
)

type repoMock struct {
	mutex  sync.Mutex
	nextID int
	jobs   map[int]*Job
}

func newRepoMock(initial ...*Job) *repoMock {
	m := &repoMock{
		nextID: 1,
		jobs:   make(map[int]*Job),
	}
	for _, j := range initial {
		m.jobs[j.ID] = j
		if j.ID >= m.nextID {
			m.nextID = j.ID + 1
		}
	}
	return m
}

func (m *repoMock) Insert(_ context.Context, fields JobFields) (*Job, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	now := time.Now()
	j := &Job{
		ID:          m.nextID,
		Title:       fields.Title,
		Department:  fields.Department,
		Location:    fields.Location,
		Type:        fields.Type,
		Description: fields.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.jobs[j.ID] = j
	m.nextID++
	return j, nil
}

func (m *repoMock) GetByID(_ context.Context, id int) (*Job, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	return j, nil
}

func (m *repoMock) Update(_ context.Context, id int, fields JobFields) (*Job, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	j.Title = fields.Title
	j.Department = fields.Department
	j.Location = fields.Location
	j.Type = fields.Type
	j.Description = fields.Description
	j.UpdatedAt = time.Now()
	return j, nil
}

func (m *repoMock) Delete(_ context.Context, id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.jobs, id)
	return nil
}

func (m *repoMock) ListAll(_ context.Context) ([]*Job, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	all := make([]*Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		all = append(all, j)
	}
	sort.Slice(all, func(i, k int) bool {
		return all[i].CreatedAt.Before(all[k].CreatedAt)
	})
	return all, nil
}
