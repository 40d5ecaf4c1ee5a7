package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lawfolio/lawfolio/backend/site-service/internal/content"
)

// MemoryContentRepo keeps singleton documents in a map. Used for tests and
// for running without MongoDB.
type MemoryContentRepo struct {
	mu    sync.RWMutex
	store map[content.Key]*content.Document
}

func NewMemoryContentRepo() *MemoryContentRepo {
	return &MemoryContentRepo{store: make(map[content.Key]*content.Document)}
}

func (m *MemoryContentRepo) Get(_ context.Context, key content.Key) (*content.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.store[key]
	if !ok {
		return nil, nil
	}
	cp := *d
	cp.Fields = d.Fields.Clone()
	return &cp, nil
}

func (m *MemoryContentRepo) Merge(_ context.Context, key content.Key, fields content.Fields, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[key]
	if !ok {
		d = &content.Document{Key: key, Fields: content.Fields{}}
		m.store[key] = d
	}
	d.Fields = d.Fields.Merge(fields)
	d.UpdatedAt = at
	return nil
}

// MemoryServiceRepo keeps entries in insertion order; List sorts stably so
// equal Order values stay in insertion order.
type MemoryServiceRepo struct {
	mu      sync.RWMutex
	entries []*content.ServiceEntry
}

func NewMemoryServiceRepo() *MemoryServiceRepo {
	return &MemoryServiceRepo{}
}

func (m *MemoryServiceRepo) List(_ context.Context) ([]content.ServiceEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]content.ServiceEntry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, *e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *MemoryServiceRepo) Create(_ context.Context, s *content.ServiceEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.entries = append(m.entries, &cp)
	return nil
}

func (m *MemoryServiceRepo) Update(_ context.Context, id string, patch content.ServicePatch, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.ID != id {
			continue
		}
		if patch.Title != nil {
			e.Title = *patch.Title
		}
		if patch.Description != nil {
			e.Description = *patch.Description
		}
		if patch.Icon != nil {
			e.Icon = *patch.Icon
		}
		if patch.Order != nil {
			e.Order = *patch.Order
		}
		e.UpdatedAt = at
		return nil
	}
	return content.ErrNotFound
}

func (m *MemoryServiceRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

// MemoryMessageRepo is the in-memory inbox.
type MemoryMessageRepo struct {
	mu      sync.RWMutex
	entries []content.MessageEntry
}

func NewMemoryMessageRepo() *MemoryMessageRepo {
	return &MemoryMessageRepo{}
}

func (m *MemoryMessageRepo) List(_ context.Context) ([]content.MessageEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]content.MessageEntry, len(m.entries))
	copy(out, m.entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryMessageRepo) Create(_ context.Context, msg *content.MessageEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *msg)
	return nil
}

func (m *MemoryMessageRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return nil
}
