package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikavisa/visaflow/internal/model"
)

// LoadItems reads the whole content store from path.
// A missing file is an empty store, not an error.
func LoadItems(path string) ([]model.ContentItem, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	var items []model.ContentItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse store %s: %w", path, err)
	}
	return items, nil
}

// SaveItems rewrites the whole content store. Output is indented UTF-8
// with HTML escaping disabled so the artifact stays human-diffable.
func SaveItems(path string, items []model.ContentItem) error {
	if items == nil {
		items = []model.ContentItem{}
	}
	return writeJSON(path, items)
}

// Merge appends fresh items to existing ones. No dedup happens here;
// duplicate titles are filtered at selection time.
func Merge(existing, fresh []model.ContentItem) []model.ContentItem {
	combined := make([]model.ContentItem, 0, len(existing)+len(fresh))
	combined = append(combined, existing...)
	combined = append(combined, fresh...)
	return combined
}

func writeJSON(path string, v interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
