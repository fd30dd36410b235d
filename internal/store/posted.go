package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// PostedLog is the durable record of delivered item titles.
// Append-only: it never deduplicates itself and has no removal.
type PostedLog struct {
	path   string
	titles []string
}

// LoadPosted reads the posted log from path.
// A missing file is an empty log.
func LoadPosted(path string) (*PostedLog, error) {
	log := &PostedLog{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return log, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read posted log: %w", err)
	}

	if err := json.Unmarshal(data, &log.titles); err != nil {
		return nil, fmt.Errorf("parse posted log %s: %w", path, err)
	}
	return log, nil
}

// Contains reports whether title has been posted before
func (l *PostedLog) Contains(title string) bool {
	for _, t := range l.titles {
		if t == title {
			return true
		}
	}
	return false
}

// Titles returns the logged titles in append order
func (l *PostedLog) Titles() []string {
	return l.titles
}

// Len returns the number of logged entries, duplicates included
func (l *PostedLog) Len() int {
	return len(l.titles)
}

// Append records a delivered title and persists the full log.
// Callers must only append after confirmed delivery.
func (l *PostedLog) Append(title string) error {
	l.titles = append(l.titles, title)
	if err := writeJSON(l.path, l.titles); err != nil {
		// Roll back the in-memory append so a retry sees consistent state
		l.titles = l.titles[:len(l.titles)-1]
		return err
	}
	return nil
}
