package store

import (
	"context"
	"sync"

	"github.com/kiselovlex/keye-interactive-grid/internal/dataset"
)

// Memory is an in-process Store. It backs tests and ad-hoc sessions that run
// without a database file. WriteErr, when set, makes every write fail with
// that error; reads are unaffected.
type Memory struct {
	mu       sync.RWMutex
	datasets map[string]map[string]dataset.Section
	metadata map[string]dataset.Formatting

	WriteErr error
}

func NewMemory() *Memory {
	return &Memory{
		datasets: make(map[string]map[string]dataset.Section),
		metadata: make(map[string]dataset.Formatting),
	}
}

func (m *Memory) Close() error { return nil }

func (m *Memory) FetchDataset(ctx context.Context, id string) (*dataset.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sections, ok := m.datasets[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := make(map[string]dataset.Section, len(sections))
	for name, sec := range sections {
		copied[name] = sec
	}
	return &dataset.Dataset{ID: id, Sections: copied}, nil
}

func (m *Memory) WriteDataset(ctx context.Context, id string, sections map[string]dataset.Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	copied := make(map[string]dataset.Section, len(sections))
	for name, sec := range sections {
		copied[name] = sec
	}
	m.datasets[id] = copied
	return nil
}

func (m *Memory) FetchAllCellMetadata(ctx context.Context) (map[string]dataset.Formatting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]dataset.Formatting, len(m.metadata))
	for k, v := range m.metadata {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) WriteCellMetadata(ctx context.Context, cellID string, f dataset.Formatting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.metadata[cellID] = f
	return nil
}

func (m *Memory) WriteCellMetadataBatch(ctx context.Context, batch map[string]dataset.Formatting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	for cellID, f := range batch {
		m.metadata[cellID] = f
	}
	return nil
}
