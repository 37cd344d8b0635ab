package game

import (
	"math/rand"
	"testing"
)

func TestSpawner_NeverExceedsMax(t *testing.T) {
	ts := NewTestSim(WithStarted(), WithConfig(func(c *Config) {
		c.SpawnChance = 1
		c.MaxEnemies = 3
	}))
	for i := 0; i < 10; i++ {
		rep := ts.Step()
		n := len(ts.Snapshot().Enemies)
		if n > 3 {
			t.Fatalf("tick %d: %d enemies, max is 3", i, n)
		}
		if i >= 3 && rep.Spawned != 0 {
			t.Fatalf("tick %d: spawned while full", i)
		}
	}
	if n := len(ts.Snapshot().Enemies); n != 3 {
		t.Fatalf("population = %d, want 3", n)
	}
}

func TestSpawner_PositionsWithinBands(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnChance = 1
	sp := NewSpawner(rand.New(rand.NewSource(3)))
	lo, hi := cfg.EnemyBounds()
	dirs := map[float64]int{}
	for i := 0; i < 500; i++ {
		r := newRound(cfg, "t")
		e, ok := sp.Update(r, cfg)
		if !ok {
			t.Fatal("spawn chance 1 did not spawn")
		}
		if e.X < lo || e.X > hi {
			t.Fatalf("spawn x=%v outside [%v,%v]", e.X, lo, hi)
		}
		if e.Y < cfg.SpawnMinY || e.Y > cfg.SpawnMaxY {
			t.Fatalf("spawn y=%v outside [%v,%v]", e.Y, cfg.SpawnMinY, cfg.SpawnMaxY)
		}
		if e.Width != cfg.EnemyWidth || e.Height != cfg.EnemyHeight {
			t.Fatalf("spawn size %vx%v", e.Width, e.Height)
		}
		dirs[e.Dir]++
	}
	if len(dirs) != 2 || dirs[1] == 0 || dirs[-1] == 0 {
		t.Fatalf("directions = %v, want both +1 and -1", dirs)
	}
}

func TestSpawner_ZeroChanceNeverSpawns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnChance = 0
	sp := NewSpawner(rand.New(rand.NewSource(1)))
	r := newRound(cfg, "t")
	for i := 0; i < 1000; i++ {
		if _, ok := sp.Update(r, cfg); ok {
			t.Fatal("spawned with zero chance")
		}
	}
}

func TestSpawner_SameSeedSameEnemies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEnemies = 1000
	a := NewSpawner(rand.New(rand.NewSource(11)))
	b := NewSpawner(rand.New(rand.NewSource(11)))
	ra, rb := newRound(cfg, "a"), newRound(cfg, "b")
	for i := 0; i < 300; i++ {
		ea, oka := a.Update(ra, cfg)
		eb, okb := b.Update(rb, cfg)
		if oka != okb || ea != eb {
			t.Fatalf("roll %d diverged: %+v/%v vs %+v/%v", i, ea, oka, eb, okb)
		}
	}
	if ra.stats.Spawned == 0 {
		t.Fatal("no spawns in 300 rolls at 5%")
	}
}
