package core

import (
	"sort"

	"wa-resolver/internal/ports"
	"wa-resolver/internal/types"
)

// SourceRegistration pairs a registered source with its priority.
type SourceRegistration struct {
	Source   ports.Source
	Priority types.SourcePriority
}

// sourceList is the ordering backbone of resolution: it yields sources
// strictly from highest to lowest priority, FIFO within one tier, and
// iteration order is stable for a fixed registration sequence.
type sourceList struct {
	entries []SourceRegistration
	sorted  bool
}

func (l *sourceList) add(source ports.Source, priority types.SourcePriority) {
	l.entries = append(l.entries, SourceRegistration{Source: source, Priority: priority})
	l.sorted = false
}

// ordered sorts lazily; the stable sort keeps insertion order within a
// tier even when registrations arrive after an earlier iteration.
func (l *sourceList) ordered() []SourceRegistration {
	if !l.sorted {
		sort.SliceStable(l.entries, func(i, j int) bool {
			return l.entries[i].Priority > l.entries[j].Priority
		})
		l.sorted = true
	}
	return l.entries
}
