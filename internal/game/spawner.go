package game

import "math/rand"

// Spawner injects enemies above the visible area with a fixed per-tick chance.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner wraps rng; the same seed gives the same spawn sequence.
func NewSpawner(rng *rand.Rand) *Spawner {
	return &Spawner{rng: rng}
}

// Update rolls for one spawn. No roll is made while the population is full.
func (s *Spawner) Update(r *Round, cfg Config) (Enemy, bool) {
	if len(r.enemies) >= cfg.MaxEnemies {
		return Enemy{}, false
	}
	if s.rng.Float64() >= cfg.SpawnChance {
		return Enemy{}, false
	}
	lo, hi := cfg.EnemyBounds()
	e := Enemy{
		X:      lo + s.rng.Float64()*(hi-lo),
		Y:      cfg.SpawnMinY + s.rng.Float64()*(cfg.SpawnMaxY-cfg.SpawnMinY),
		Dir:    1,
		Width:  cfg.EnemyWidth,
		Height: cfg.EnemyHeight,
	}
	if s.rng.Intn(2) == 0 {
		e.Dir = -1
	}
	r.enemies = append(r.enemies, e)
	r.stats.Spawned++
	return e, true
}
