package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mazequest/pathfinder-server/game/engine"
	"github.com/mazequest/pathfinder-server/game/service"
)

// FilePersistence implements SessionPersistence using file system storage
type FilePersistence struct {
	sessionsDir     string
	scenarioManager service.ScenarioManager
}

// NewFilePersistence creates a new file-based session persistence layer
func NewFilePersistence(sessionsDir string, scenarioManager service.ScenarioManager) (*FilePersistence, error) {
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &FilePersistence{
		sessionsDir:     sessionsDir,
		scenarioManager: scenarioManager,
	}, nil
}

// Save persists a session to a JSON file
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	scenarioID, err := fp.getScenarioIDFromName(session.Scenario.Name)
	if err != nil {
		return fmt.Errorf("failed to get scenario ID: %w", err)
	}

	data := PersistedSessionData{
		ID:             session.ID,
		ScenarioName:   scenarioID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		State:          session.Engine.State(),
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	filePath := fp.getFilePath(session.ID)
	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load retrieves a session from a JSON file. The engine is rebuilt from
// the scenario and the persisted state is replayed onto it.
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	filePath := fp.getFilePath(id)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrSessionNotFound
	}

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	scenario, err := fp.scenarioManager.LoadScenario(data.ScenarioName)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario '%s': %w", data.ScenarioName, err)
	}

	eng, err := engine.NewEngine(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	if data.State != nil {
		if err := eng.SetState(data.State); err != nil {
			return nil, fmt.Errorf("failed to restore engine state: %w", err)
		}
	}

	return &service.Session{
		ID:             data.ID,
		Engine:         eng,
		Scenario:       scenario,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// Delete removes a session file
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrSessionNotFound
	}

	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

// ListAll returns all persisted session IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessionIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			sessionIDs = append(sessionIDs, strings.TrimSuffix(name, ".json"))
		}
	}

	return sessionIDs, nil
}

// Exists checks if a session file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath returns the full file path for a session ID
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.sessionsDir, fmt.Sprintf("%s.json", id))
}

// getScenarioIDFromName returns the scenario ID (filename without
// extension) from a display name
func (fp *FilePersistence) getScenarioIDFromName(displayName string) (string, error) {
	scenarios, err := fp.scenarioManager.ListScenarios()
	if err != nil {
		return "", fmt.Errorf("failed to list scenarios: %w", err)
	}

	for _, scenario := range scenarios {
		if scenario.Name == displayName {
			return scenario.ScenarioID, nil
		}
	}

	// Not found, assume the display name is already the scenario ID
	return displayName, nil
}
