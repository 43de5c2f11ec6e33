package model

import (
	"fmt"
	"strings"
)

// SortKey selects the note ordering for folder listings.
type SortKey int

const (
	SortByTitle SortKey = iota
	SortByPriority
	SortByDate
)

func (k SortKey) String() string {
	switch k {
	case SortByTitle:
		return "title"
	case SortByPriority:
		return "priority"
	case SortByDate:
		return "date"
	default:
		return fmt.Sprintf("SortKey(%d)", int(k))
	}
}

// ParseSortKey accepts the key name or its numeric wire form (0/1/2).
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "title", "0":
		return SortByTitle, nil
	case "priority", "1":
		return SortByPriority, nil
	case "date", "2":
		return SortByDate, nil
	default:
		return SortByTitle, NewValidationError("sortType", fmt.Sprintf("unknown sort key %q", s))
	}
}

// Priority ranks a note. Persisted as its numeric value.
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityHigh
	PriorityCritical
)

func (p Priority) String() string {
	switch p {
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Valid reports whether p is one of the defined priorities.
func (p Priority) Valid() bool {
	return p >= PriorityNormal && p <= PriorityCritical
}

// ParsePriority accepts the priority name or its numeric value.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "0":
		return PriorityNormal, nil
	case "high", "1":
		return PriorityHigh, nil
	case "critical", "2":
		return PriorityCritical, nil
	default:
		return PriorityNormal, NewValidationError("priority", fmt.Sprintf("unknown priority %q", s))
	}
}
