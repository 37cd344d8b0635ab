package game

import "fmt"

const feedMaxEntries = 8

// FeedEntry is a single line in the kill feed.
type FeedEntry struct {
	Tick    int
	Side    Side
	Message string
}

// KillFeed is a ring buffer of recent hits shown on the HUD.
type KillFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewKillFeed creates a feed with a fixed capacity.
func NewKillFeed() *KillFeed {
	return &KillFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (f *KillFeed) Add(tick int, side Side, msg string) {
	f.entries[f.head] = FeedEntry{Tick: tick, Side: side, Message: msg}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *KillFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Clear empties the feed, used when a new round starts.
func (f *KillFeed) Clear() {
	f.head, f.count = 0, 0
}

// Sounds plays the effects a tick produced. Implementations must not block.
type Sounds interface {
	Shot(side Side)
	Hit(side Side)
	RoundOver()
}

type silent struct{}

func (silent) Shot(Side)  {}
func (silent) Hit(Side)   {}
func (silent) RoundOver() {}

// applyEffects turns a tick report into sounds and feed lines. It is shared
// by every front end so they report a round the same way.
func applyEffects(rep TickReport, snd Sounds, feed *KillFeed) {
	if rep.Transitioned() && rep.After == StatePlaying {
		feed.Clear()
	}
	for side, n := range rep.Shots {
		if n > 0 {
			snd.Shot(Side(side))
		}
	}
	for _, h := range rep.Hits {
		snd.Hit(h.Side)
		feed.Add(rep.Tick, h.Side, fmt.Sprintf("%s hit at x=%.0f", h.Side.Label(), h.Enemy.X))
	}
	if rep.Transitioned() && rep.Before == StatePlaying && rep.After != StatePlaying {
		snd.RoundOver()
	}
}

// Effects bundles the feed and sound sink for front ends outside this package.
type Effects struct {
	Feed   *KillFeed
	sounds Sounds
}

// NewEffects wires snd (nil for silence) to a fresh kill feed.
func NewEffects(snd Sounds) *Effects {
	if snd == nil {
		snd = silent{}
	}
	return &Effects{Feed: NewKillFeed(), sounds: snd}
}

// Apply processes one tick report.
func (e *Effects) Apply(rep TickReport) {
	applyEffects(rep, e.sounds, e.Feed)
}
