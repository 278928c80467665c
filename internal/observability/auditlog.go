// Package observability provides the JSONL audit log of Notion API
// operations and the usage summaries derived from it.
package observability

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Entry is a single audited API operation.
type Entry struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"` // INFO, ERROR
	Op      string         `json:"op"`    // e.g. "search_pages", "create_page"
	Message string         `json:"msg"`
	Data    map[string]any `json:"data,omitempty"`
}

// EntryFilter specifies criteria for reading audit entries.
type EntryFilter struct {
	Since *time.Time
	Until *time.Time
	Op    string
	Level string
}

// AuditLog records and reads back audited operations.
type AuditLog interface {
	Record(entry Entry) error
	Read(filter EntryFilter) ([]Entry, error)
	Close() error
}

// jsonlAuditLog implements AuditLog with an append-only JSONL file.
type jsonlAuditLog struct {
	path string
	file *os.File
	mu   sync.Mutex
}

// NewJSONLAuditLog creates an AuditLog backed by a JSONL file at path.
func NewJSONLAuditLog(path string) (AuditLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	return &jsonlAuditLog{
		path: path,
		file: f,
	}, nil
}

// Record appends a JSON-encoded entry followed by a newline.
func (l *jsonlAuditLog) Record(entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshalling audit entry: %w", err)
	}
	data = append(data, '\n')

	if _, err := l.file.Write(data); err != nil {
		return fmt.Errorf("writing audit entry: %w", err)
	}
	return nil
}

// Read scans the log file line by line and returns the entries matching the
// given filter. Malformed lines are skipped.
func (l *jsonlAuditLog) Read(filter EntryFilter) ([]Entry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log for reading: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}

		if matchesFilter(entry, filter) {
			entries = append(entries, entry)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning audit log: %w", err)
	}

	return entries, nil
}

// Close closes the underlying log file.
func (l *jsonlAuditLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("closing audit log: %w", err)
	}
	return nil
}

func matchesFilter(entry Entry, filter EntryFilter) bool {
	if filter.Since != nil && entry.Time.Before(*filter.Since) {
		return false
	}
	if filter.Until != nil && entry.Time.After(*filter.Until) {
		return false
	}
	if filter.Op != "" && entry.Op != filter.Op {
		return false
	}
	if filter.Level != "" && entry.Level != filter.Level {
		return false
	}
	return true
}
