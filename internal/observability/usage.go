package observability

import (
	"fmt"
	"time"
)

// Usage aggregates audited operations over a time window.
type Usage struct {
	Operations map[string]int `json:"operations"`
	Errors     map[string]int `json:"errors"`
	EntryCount int            `json:"entry_count"`
	OldestOp   *time.Time     `json:"oldest_op,omitempty"`
	NewestOp   *time.Time     `json:"newest_op,omitempty"`
}

// UsageCalculator derives usage summaries from the audit log.
type UsageCalculator interface {
	Calculate(since time.Time) (*Usage, error)
}

type usageCalculator struct {
	audit AuditLog
}

// NewUsageCalculator creates a UsageCalculator reading from the given log.
func NewUsageCalculator(audit AuditLog) UsageCalculator {
	return &usageCalculator{audit: audit}
}

// Calculate reads entries since the given time and counts operations and
// errors per operation name.
func (uc *usageCalculator) Calculate(since time.Time) (*Usage, error) {
	entries, err := uc.audit.Read(EntryFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading audit entries for usage: %w", err)
	}

	u := &Usage{
		Operations: make(map[string]int),
		Errors:     make(map[string]int),
		EntryCount: len(entries),
	}

	for i, entry := range entries {
		if i == 0 {
			t := entry.Time
			u.OldestOp = &t
		}
		t := entry.Time
		u.NewestOp = &t

		u.Operations[entry.Op]++
		if entry.Level == "ERROR" {
			u.Errors[entry.Op]++
		}
	}

	return u, nil
}
