package game

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Mode selects which round transitions the machine allows.
type Mode int

const (
	// ModeArcade is the full Menu -> Playing -> GameOver cycle.
	ModeArcade Mode = iota
	// ModeClassic starts playing immediately and ends the process when time runs out.
	ModeClassic
)

func (m Mode) String() string {
	switch m {
	case ModeArcade:
		return "arcade"
	case ModeClassic:
		return "classic"
	default:
		return "unknown"
	}
}

// ParseMode maps a flag value onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "arcade", "":
		return ModeArcade, nil
	case "classic":
		return ModeClassic, nil
	default:
		return ModeArcade, fmt.Errorf("unknown mode %q (supported: arcade, classic)", s)
	}
}

// Config holds every tunable of a round. All distances are playfield pixels,
// velocities are pixels per tick.
type Config struct {
	Width  float64
	Height float64
	Margin float64 // gap each player keeps from the centre line and the outer edge

	PlayerWidth  float64
	PlayerHeight float64
	PlayerBottom float64 // gap between the player sprite and the bottom edge
	PlayerSpeed  float64 // per movement command

	BulletWidth  float64
	BulletHeight float64
	BulletSpeed  float64

	EnemyWidth  float64
	EnemyHeight float64
	EnemySpeed  float64 // downward drift
	EnemyStep   float64 // horizontal step, multiplied by direction
	EnemyInset  float64 // horizontal clamp inset from each screen edge
	MaxEnemies  int

	SpawnChance float64 // per tick, in [0,1]
	SpawnMinY   float64 // spawn band above the visible area (negative)
	SpawnMaxY   float64

	TimeLimit time.Duration
	TickRate  int // ticks per second
}

// DefaultConfig returns the full-screen 1920x1080 tuning.
func DefaultConfig() Config {
	return Config{
		Width:  1920,
		Height: 1080,
		Margin: 150,

		PlayerWidth:  100,
		PlayerHeight: 60,
		PlayerBottom: 20,
		PlayerSpeed:  30,

		BulletWidth:  20,
		BulletHeight: 40,
		BulletSpeed:  18,

		EnemyWidth:  100,
		EnemyHeight: 80,
		EnemySpeed:  2,
		EnemyStep:   5,
		EnemyInset:  50,
		MaxEnemies:  8,

		SpawnChance: 0.05,
		SpawnMinY:   -150,
		SpawnMaxY:   -50,

		TimeLimit: 30 * time.Second,
		TickRate:  60,
	}
}

// TickDuration is the simulated time one tick advances the round clock.
func (c Config) TickDuration() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// PlayerY is the fixed vertical position shared by both players.
func (c Config) PlayerY() float64 {
	return c.Height - c.PlayerHeight - c.PlayerBottom
}

// PlayerBounds returns the inclusive horizontal range a player of the given side may occupy.
func (c Config) PlayerBounds(side Side) (lo, hi float64) {
	half := c.Width / 2
	if side == SideLeft {
		return c.Margin, half - c.PlayerWidth - c.Margin
	}
	return half + c.Margin, c.Width - c.PlayerWidth - c.Margin
}

// PlayerStartX centres each player in its quarter of the screen.
func (c Config) PlayerStartX(side Side) float64 {
	if side == SideLeft {
		return c.Width/4 - c.PlayerWidth/2
	}
	return 3*c.Width/4 - c.PlayerWidth/2
}

// EnemyBounds returns the inclusive horizontal clamp range for an enemy's x.
func (c Config) EnemyBounds() (lo, hi float64) {
	return c.EnemyInset, c.Width - c.EnemyWidth - c.EnemyInset
}

var errConfig = errors.New("invalid config")

// Validate rejects configurations the updaters cannot honour.
func (c Config) Validate() error {
	finite := []struct {
		name string
		v    float64
	}{
		{"width", c.Width}, {"height", c.Height}, {"margin", c.Margin},
		{"player width", c.PlayerWidth}, {"player height", c.PlayerHeight},
		{"player bottom", c.PlayerBottom}, {"player speed", c.PlayerSpeed},
		{"bullet width", c.BulletWidth}, {"bullet height", c.BulletHeight},
		{"bullet speed", c.BulletSpeed},
		{"enemy width", c.EnemyWidth}, {"enemy height", c.EnemyHeight},
		{"enemy speed", c.EnemySpeed}, {"enemy step", c.EnemyStep},
		{"enemy inset", c.EnemyInset}, {"spawn chance", c.SpawnChance},
		{"spawn min y", c.SpawnMinY}, {"spawn max y", c.SpawnMaxY},
	}
	// NaN compares false against every bound below, so it is ruled out first.
	for _, f := range finite {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", errConfig, f.name, f.v)
		}
	}
	positive := []struct {
		name string
		v    float64
	}{
		{"width", c.Width}, {"height", c.Height},
		{"player width", c.PlayerWidth}, {"player height", c.PlayerHeight},
		{"player speed", c.PlayerSpeed},
		{"bullet width", c.BulletWidth}, {"bullet height", c.BulletHeight},
		{"bullet speed", c.BulletSpeed},
		{"enemy width", c.EnemyWidth}, {"enemy height", c.EnemyHeight},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be > 0, got %v", errConfig, p.name, p.v)
		}
	}
	if c.Margin < 0 || c.EnemyInset < 0 || c.EnemySpeed < 0 || c.EnemyStep < 0 {
		return fmt.Errorf("%w: margin, inset and enemy velocities must be >= 0", errConfig)
	}
	if c.MaxEnemies < 0 {
		return fmt.Errorf("%w: max enemies must be >= 0, got %d", errConfig, c.MaxEnemies)
	}
	if c.SpawnChance < 0 || c.SpawnChance > 1 {
		return fmt.Errorf("%w: spawn chance must be in [0,1], got %v", errConfig, c.SpawnChance)
	}
	if c.SpawnMinY > c.SpawnMaxY {
		return fmt.Errorf("%w: spawn band [%v,%v] is empty", errConfig, c.SpawnMinY, c.SpawnMaxY)
	}
	if lo, hi := c.EnemyBounds(); lo > hi {
		return fmt.Errorf("%w: enemy bounds [%v,%v] are empty", errConfig, lo, hi)
	}
	for _, side := range []Side{SideLeft, SideRight} {
		lo, hi := c.PlayerBounds(side)
		start := c.PlayerStartX(side)
		if lo > hi || start < lo || start > hi {
			return fmt.Errorf("%w: %s player start %v outside [%v,%v]", errConfig, side, start, lo, hi)
		}
	}
	if c.TimeLimit <= 0 {
		return fmt.Errorf("%w: time limit must be > 0, got %v", errConfig, c.TimeLimit)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate must be > 0, got %d", errConfig, c.TickRate)
	}
	return nil
}

// ApplyEnv overrides fields from INVADERS_* variables. lookup is usually os.LookupEnv.
// Unset variables leave the field alone; malformed ones are reported.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	floats := map[string]*float64{
		"INVADERS_BULLET_SPEED": &c.BulletSpeed,
		"INVADERS_ENEMY_SPEED":  &c.EnemySpeed,
		"INVADERS_PLAYER_SPEED": &c.PlayerSpeed,
		"INVADERS_SPAWN_CHANCE": &c.SpawnChance,
		"INVADERS_MARGIN":       &c.Margin,
	}
	for key, dst := range floats {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = f
	}
	if v, ok := lookup("INVADERS_MAX_ENEMIES"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("INVADERS_MAX_ENEMIES: %w", err)
		}
		c.MaxEnemies = n
	}
	if v, ok := lookup("INVADERS_TIME_LIMIT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			// bare integers are seconds
			n, aerr := strconv.Atoi(v)
			if aerr != nil {
				return fmt.Errorf("INVADERS_TIME_LIMIT: %w", err)
			}
			d = time.Duration(n) * time.Second
		}
		c.TimeLimit = d
	}
	return c.Validate()
}
