// Package scores keeps best solve times per board configuration in a
// JSON file under the user config directory.
package scores

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Records maps a board configuration key to the best elapsed time in
// milliseconds.
type Records map[string]int64

// Key identifies one board configuration in the records file.
func Key(name string, height, width, mines int) string {
	return fmt.Sprintf("%s_%dx%d_%d", name, height, width, mines)
}

// Update records elapsed as the best time for key if it beats the
// stored one. It reports whether the record changed. Zero or negative
// times are ignored; a win with no reveal never happened.
func (r Records) Update(key string, elapsedMS int64) bool {
	if elapsedMS <= 0 {
		return false
	}
	best, ok := r[key]
	if ok && best <= elapsedMS {
		return false
	}
	r[key] = elapsedMS
	return true
}

// Best returns the stored record for key, if any.
func (r Records) Best(key string) (int64, bool) {
	best, ok := r[key]
	return best, ok
}

func filePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "termines_scores.json"
	}
	base := filepath.Join(dir, "termines")
	_ = os.MkdirAll(base, 0o755)
	return filepath.Join(base, "scores.json")
}

// Load reads the records file, returning empty records when the file
// is missing or unreadable.
func Load() Records {
	return loadFrom(filePath())
}

func loadFrom(path string) Records {
	data, err := os.ReadFile(path)
	if err != nil {
		return Records{}
	}
	var out Records
	if err := json.Unmarshal(data, &out); err != nil || out == nil {
		return Records{}
	}
	return out
}

// Save writes the records file.
func Save(r Records) error {
	return saveTo(filePath(), r)
}

func saveTo(path string, r Records) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
