package game

import (
	"fmt"
	"strings"
)

// LogEntry is one recorded round event.
type LogEntry struct {
	Tick     int
	Actor    string  // "P1", "P2", or "--" for round-wide events
	Category string  // state, fire, spawn, hit, escape, camera
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] P1   hit       enemy_destroyed  (495,852) score=1
func (e LogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// EventLog collects structured events for the current round. With a non-zero
// limit the oldest entries are dropped once it is reached.
type EventLog struct {
	entries []LogEntry
	limit   int
}

// NewEventLog creates a log keeping at most limit entries (0 = unbounded).
func NewEventLog(limit int) *EventLog {
	return &EventLog{limit: limit}
}

// Add records a new entry.
func (l *EventLog) Add(tick int, actor, category, key, value string, numVal float64) {
	if l == nil {
		return
	}
	if l.limit > 0 && len(l.entries) >= l.limit {
		n := copy(l.entries, l.entries[1:])
		l.entries = l.entries[:n]
	}
	l.entries = append(l.entries, LogEntry{
		Tick:     tick,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// Reset drops every entry.
func (l *EventLog) Reset() {
	if l == nil {
		return
	}
	l.entries = l.entries[:0]
}

// Entries returns all recorded entries.
func (l *EventLog) Entries() []LogEntry {
	if l == nil {
		return nil
	}
	return l.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (l *EventLog) Filter(category, key string) []LogEntry {
	var out []LogEntry
	for _, e := range l.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterActor returns entries for one actor label.
func (l *EventLog) FilterActor(actor string) []LogEntry {
	var out []LogEntry
	for _, e := range l.Entries() {
		if e.Actor == actor {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (l *EventLog) CountCategory(category, key string) int {
	return len(l.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (l *EventLog) LastOf(category, key string) (LogEntry, bool) {
	entries := l.Filter(category, key)
	if len(entries) == 0 {
		return LogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (l *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range l.Filter(category, key) {
		if valueSubstr == "" || strings.Contains(e.Value, valueSubstr) {
			return true
		}
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (l *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range l.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
