package corpus

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Save writes the id→text mapping as a JSON snapshot so later runs can skip
// the network fetch entirely.
func Save(path string, texts map[string]string) error {
	data, err := json.MarshalIndent(texts, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a snapshot written by Save.
func Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	texts := make(map[string]string)
	if err := json.Unmarshal(data, &texts); err != nil {
		return nil, err
	}
	return texts, nil
}
