package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// state is the serialized rotation state.
type state struct {
	ModelCursor int `yaml:"model_cursor"`
}

// StateFile persists the model rotation cursor between runs.
type StateFile struct {
	path string
}

// NewStateFile creates a cursor store backed by the given file path.
func NewStateFile(path string) *StateFile {
	return &StateFile{path: path}
}

// Cursor reads the persisted model cursor. A missing file yields zero.
func (s *StateFile) Cursor() (int, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read state file: %w", err)
	}

	var st state
	if err := yaml.Unmarshal(data, &st); err != nil {
		return 0, fmt.Errorf("failed to parse state file: %w", err)
	}
	if st.ModelCursor < 0 {
		return 0, nil
	}
	return st.ModelCursor, nil
}

// SetCursor writes the model cursor back to disk.
func (s *StateFile) SetCursor(cursor int) error {
	data, err := yaml.Marshal(state{ModelCursor: cursor})
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
