package scenario

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps scenarios in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]map[string]Scenario
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: make(map[string]map[string]Scenario),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryStore) Save(_ context.Context, projectID string, s Scenario) (Scenario, error) {
	stored, err := prepareNew(projectID, s, m.now())
	if err != nil {
		return Scenario{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	scenarios, ok := m.projects[projectID]
	if !ok {
		scenarios = make(map[string]Scenario)
		m.projects[projectID] = scenarios
	}
	scenarios[stored.ID] = stored
	return stored, nil
}

func (m *MemoryStore) List(_ context.Context, projectID string) ([]Scenario, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, ErrMissingProject
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	scenarios := make([]Scenario, 0, len(m.projects[projectID]))
	for _, s := range m.projects[projectID] {
		scenarios = append(scenarios, s)
	}
	sortScenarios(scenarios)
	return scenarios, nil
}

func (m *MemoryStore) Get(_ context.Context, projectID, scenarioID string) (Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.projects[projectID][scenarioID]
	if !ok {
		return Scenario{}, ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) Update(_ context.Context, projectID, scenarioID string, s Scenario) (Scenario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.projects[projectID][scenarioID]
	if !ok {
		return Scenario{}, ErrNotFound
	}
	updated := prepareUpdate(existing, s, m.now())
	m.projects[projectID][scenarioID] = updated
	return updated, nil
}

func (m *MemoryStore) Delete(_ context.Context, projectID, scenarioID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	scenarios := m.projects[projectID]
	if _, ok := scenarios[scenarioID]; !ok {
		return ErrNotFound
	}
	delete(scenarios, scenarioID)
	if len(scenarios) == 0 {
		delete(m.projects, projectID)
	}
	return nil
}
