package game

import "time"

// ReasonTimeExpired is the termination reason recorded when the clock runs out.
const ReasonTimeExpired = "time expired"

// Round is the complete mutable state of one play session. A new Round replaces
// the previous one entirely; nothing carries over.
type Round struct {
	ID      string
	players [sideCount]Player
	bullets [sideCount][]Bullet
	enemies []Enemy
	scores  [sideCount]int
	stats   Stats

	ticks   int
	elapsed time.Duration
	limit   time.Duration
	reason  string
}

func newRound(cfg Config, id string) *Round {
	r := &Round{ID: id, limit: cfg.TimeLimit}
	for _, side := range []Side{SideLeft, SideRight} {
		r.players[side] = Player{
			Side:   side,
			X:      cfg.PlayerStartX(side),
			Y:      cfg.PlayerY(),
			Width:  cfg.PlayerWidth,
			Height: cfg.PlayerHeight,
		}
	}
	return r
}

// movePlayer shifts a player by dir*speed. The move is rejected outright when
// the destination would leave the side's bounds, so the player never overshoots.
func (r *Round) movePlayer(cfg Config, side Side, dir float64) bool {
	p := &r.players[side]
	lo, hi := cfg.PlayerBounds(side)
	next := p.X + dir*cfg.PlayerSpeed
	if next < lo || next > hi {
		return false
	}
	p.X = next
	return true
}

// fire spawns a bullet centred on the player's nose.
func (r *Round) fire(cfg Config, side Side) Bullet {
	p := r.players[side]
	b := Bullet{
		Owner:  side,
		X:      p.X + p.Width/2 - cfg.BulletWidth/2,
		Y:      p.Y - cfg.BulletHeight,
		Width:  cfg.BulletWidth,
		Height: cfg.BulletHeight,
	}
	r.bullets[side] = append(r.bullets[side], b)
	r.stats.Shots[side]++
	return b
}

func (r *Round) expired() bool {
	return r.elapsed >= r.limit
}

// Snapshot is a read-only copy of everything a renderer needs for one frame.
// Slices are owned by the snapshot and safe to keep past the next tick.
type Snapshot struct {
	State   State
	Mode    Mode
	Tick    int
	RoundID string

	Players [sideCount]Player
	Bullets [sideCount][]Bullet
	Enemies []Enemy
	Scores  [sideCount]int
	Stats   Stats

	Elapsed   time.Duration
	TimeLimit time.Duration
	Reason    string
}

func (r *Round) snapshot() Snapshot {
	s := Snapshot{
		RoundID:   r.ID,
		Players:   r.players,
		Enemies:   append([]Enemy(nil), r.enemies...),
		Scores:    r.scores,
		Stats:     r.stats,
		Elapsed:   r.elapsed,
		TimeLimit: r.limit,
		Reason:    r.reason,
	}
	for side := range r.bullets {
		s.Bullets[side] = append([]Bullet(nil), r.bullets[side]...)
	}
	return s
}

// Remaining is the time left on the clock, never negative.
func (s Snapshot) Remaining() time.Duration {
	if d := s.TimeLimit - s.Elapsed; d > 0 {
		return d
	}
	return 0
}

// RemainingSeconds is the whole seconds shown on the HUD timer.
func (s Snapshot) RemainingSeconds() int {
	left := int(s.TimeLimit/time.Second) - int(s.Elapsed/time.Second)
	if left < 0 {
		return 0
	}
	return left
}

// EnemyCount is the number of live enemies.
func (s Snapshot) EnemyCount() int { return len(s.Enemies) }
