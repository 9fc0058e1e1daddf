package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ViewState stores the remembered view of a single dataset: the active cell
// and scroll offset. Selection shapes are not persisted; a restored session
// starts from a single-cell selection on the remembered active cell.
type ViewState struct {
	ActiveRow int `json:"active_row"`
	ActiveCol int `json:"active_col"`
	Scroll    int `json:"scroll"`
}

// Session stores the complete grid session state.
type Session struct {
	Datasets      map[string]ViewState `json:"datasets"`
	ActiveDataset string               `json:"active_dataset,omitempty"`
	LastSaved     time.Time            `json:"last_saved"`
}

// Manager handles session persistence.
type Manager struct {
	mu       sync.RWMutex
	session  Session
	path     string
	dirty    bool
	stopChan chan struct{}
}

// NewManager creates a new session manager.
func NewManager() (*Manager, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}

	m := &Manager{
		session: Session{
			Datasets: make(map[string]ViewState),
		},
		path:     path,
		stopChan: make(chan struct{}),
	}

	m.load()
	go m.autosaveLoop()
	return m, nil
}

func sessionPath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(stateDir, "keyegrid")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

func (m *Manager) load() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return // No existing session, start fresh
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return
	}
	if session.Datasets == nil {
		session.Datasets = make(map[string]ViewState)
	}
	m.session = session
}

// Save persists the session to disk.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dirty {
		return nil
	}
	m.session.LastSaved = time.Now()
	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return err
	}
	m.dirty = false
	return nil
}

// GetViewState returns the remembered view for a dataset.
func (m *Manager) GetViewState(id string) (ViewState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vs, ok := m.session.Datasets[id]
	return vs, ok
}

// SetViewState records the view for a dataset.
func (m *Manager) SetViewState(id string, vs ViewState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Datasets[id] = vs
	m.session.ActiveDataset = id
	m.dirty = true
}

// Close stops the autosave loop and flushes pending state.
func (m *Manager) Close() error {
	close(m.stopChan)
	return m.Save()
}

func (m *Manager) autosaveLoop() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			_ = m.Save()
		}
	}
}
