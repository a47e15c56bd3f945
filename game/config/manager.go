package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mazequest/pathfinder-server/game/engine"
	"github.com/mazequest/pathfinder-server/game/service"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrInvalidScenario  = errors.New("invalid scenario")
)

// Manager handles scenario loading and caching
type Manager struct {
	configDir       string
	defaultScenario *engine.Scenario
	scenarios       map[string]*engine.Scenario
	mu              sync.RWMutex
}

// NewManager creates a new scenario manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		scenarios: make(map[string]*engine.Scenario),
	}

	if err := m.loadDefaultScenario(); err != nil {
		return nil, fmt.Errorf("failed to load default scenario: %w", err)
	}

	return m, nil
}

// LoadScenario loads a scenario by name
func (m *Manager) LoadScenario(name string) (*engine.Scenario, error) {
	m.mu.RLock()
	if scenario, exists := m.scenarios[name]; exists {
		m.mu.RUnlock()
		return scenario, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if scenario, exists := m.scenarios[name]; exists {
		return scenario, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	path := filepath.Join(m.configDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrScenarioNotFound
		}
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario engine.Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	if err := engine.ValidateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	m.scenarios[name] = &scenario
	return &scenario, nil
}

// ListScenarios returns information about all available scenarios
func (m *Manager) ListScenarios() ([]*service.ScenarioInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var scenarios []*service.ScenarioInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")

		scenario, err := m.LoadScenario(name)
		if err != nil {
			// Skip invalid scenario files
			continue
		}

		scenarios = append(scenarios, &service.ScenarioInfo{
			Filename:    entry.Name(),
			ScenarioID:  name,
			Name:        scenario.Name,
			Description: scenario.Description,
			Width:       scenario.Width,
			Height:      scenario.Height,
			Difficulty:  scenario.Difficulty,
			FogRadius:   scenario.FogRadius,
		})
	}

	return scenarios, nil
}

// GetDefault returns the default scenario
func (m *Manager) GetDefault() *engine.Scenario {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultScenario
}

// SetDefault sets the default scenario by name
func (m *Manager) SetDefault(name string) error {
	scenario, err := m.LoadScenario(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultScenario = scenario
	return nil
}

// RefreshCache reloads all cached scenarios from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.scenarios = make(map[string]*engine.Scenario)
	m.mu.Unlock()

	return m.loadDefaultScenario()
}

// loadDefaultScenario loads the default scenario, preferring classic.json
func (m *Manager) loadDefaultScenario() error {
	scenario, err := m.LoadScenario("classic")
	if err != nil {
		scenarios, listErr := m.ListScenarios()
		if listErr == nil && len(scenarios) > 0 {
			scenario, err = m.LoadScenario(strings.TrimSuffix(scenarios[0].Filename, ".json"))
		}
		if listErr != nil || len(scenarios) == 0 || err != nil {
			scenario = engine.DefaultScenario()
		}
	}

	m.mu.Lock()
	m.defaultScenario = scenario
	m.mu.Unlock()
	return nil
}

// SaveScenario saves a scenario to disk
func (m *Manager) SaveScenario(name string, scenario *engine.Scenario) error {
	if err := engine.ValidateScenario(scenario); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	path := filepath.Join(m.configDir, filename)

	data, err := json.MarshalIndent(scenario, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scenario file: %w", err)
	}

	m.mu.Lock()
	m.scenarios[name] = scenario
	m.mu.Unlock()

	return nil
}
