package game

import (
	"fmt"
	"math/rand"
)

// TestSim is a headless harness around Machine. It has no Ebiten dependency,
// seeds the spawner deterministically and records every event.
type TestSim struct {
	Machine  *Machine
	Camera   *StubCamera
	Log      *EventLog
	Reporter *RoundReporter

	cfg     Config
	mode    Mode
	seed    int64
	enemies []Enemy
	bullets []Bullet
	started bool
	nextID  int
}

// StubCamera counts lifecycle calls and can be told to fail on open.
type StubCamera struct {
	Open   bool
	Starts int
	Stops  int
	Fail   error
}

func (c *StubCamera) Start() error {
	if c.Open {
		return nil
	}
	c.Starts++
	if c.Fail != nil {
		return c.Fail
	}
	c.Open = true
	return nil
}

func (c *StubCamera) Stop() {
	if !c.Open {
		return
	}
	c.Stops++
	c.Open = false
}

// SimOption is a builder function applied to a TestSim during construction.
type SimOption func(*TestSim)

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return func(ts *TestSim) { ts.seed = seed }
}

// WithConfig edits the tuning before the machine is built.
func WithConfig(edit func(*Config)) SimOption {
	return func(ts *TestSim) { edit(&ts.cfg) }
}

// WithMode selects arcade or classic transitions.
func WithMode(mode Mode) SimOption {
	return func(ts *TestSim) { ts.mode = mode }
}

// WithSpawning turns the random spawner on or off. Turning it on restores the
// default chance only when an earlier option had zeroed it.
func WithSpawning(on bool) SimOption {
	return func(ts *TestSim) {
		switch {
		case !on:
			ts.cfg.SpawnChance = 0
		case ts.cfg.SpawnChance == 0:
			ts.cfg.SpawnChance = DefaultConfig().SpawnChance
		}
	}
}

// WithCameraFailure makes every camera open fail with err.
func WithCameraFailure(err error) SimOption {
	return func(ts *TestSim) { ts.Camera.Fail = err }
}

// WithStarted begins a round straight away (arcade mode only needs it).
func WithStarted() SimOption {
	return func(ts *TestSim) { ts.started = true }
}

// WithEnemy places an enemy in the first round. Implies WithStarted.
func WithEnemy(x, y, dir float64) SimOption {
	return func(ts *TestSim) {
		ts.started = true
		ts.enemies = append(ts.enemies, Enemy{X: x, Y: y, Dir: dir})
	}
}

// WithBullet places a bullet owned by side in the first round. Implies WithStarted.
func WithBullet(side Side, x, y float64) SimOption {
	return func(ts *TestSim) {
		ts.started = true
		ts.bullets = append(ts.bullets, Bullet{Owner: side, X: x, Y: y})
	}
}

// NewTestSim builds the harness. Round IDs are "round-1", "round-2", ...
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		cfg:      DefaultConfig(),
		mode:     ModeArcade,
		seed:     1,
		Camera:   &StubCamera{},
		Log:      NewEventLog(0),
		Reporter: NewRoundReporter(0),
	}
	for _, o := range opts {
		o(ts)
	}
	m, err := NewMachine(ts.cfg, ts.mode,
		WithCamera(ts.Camera),
		WithRand(rand.New(rand.NewSource(ts.seed))), // #nosec G404 -- test harness
		WithEventLog(ts.Log),
		WithRoundIDs(func() string {
			ts.nextID++
			return fmt.Sprintf("round-%d", ts.nextID)
		}),
	)
	if err != nil {
		panic(fmt.Sprintf("NewTestSim: %v", err))
	}
	ts.Machine = m
	if ts.started && m.State() == StateMenu {
		m.dispatch(Start(), &TickReport{})
	}
	if r := m.round; r != nil {
		for _, e := range ts.enemies {
			e.Width, e.Height = ts.cfg.EnemyWidth, ts.cfg.EnemyHeight
			r.enemies = append(r.enemies, e)
		}
		for _, b := range ts.bullets {
			b.Width, b.Height = ts.cfg.BulletWidth, ts.cfg.BulletHeight
			r.bullets[b.Owner] = append(r.bullets[b.Owner], b)
		}
	}
	return ts
}

// Step runs a single tick.
func (ts *TestSim) Step(cmds ...Command) TickReport {
	return ts.Machine.Step(cmds)
}

// reportInterval is how often RunTicks samples the round for the reporter.
const reportInterval = 60

// RunTicks runs n ticks. script, when non-nil, supplies the commands for each
// tick given the tick index and the current snapshot. It stops early once the
// machine terminates and returns the reports of every tick run. The reporter
// receives a sample every second of play.
func (ts *TestSim) RunTicks(n int, script func(i int, s Snapshot) []Command) []TickReport {
	reports := make([]TickReport, 0, n)
	for i := 0; i < n; i++ {
		var cmds []Command
		if script != nil {
			cmds = script(i, ts.Machine.Snapshot())
		}
		reports = append(reports, ts.Machine.Step(cmds))
		if ts.Machine.tick%reportInterval == 0 {
			ts.Reporter.Collect(ts.Machine.Snapshot())
		}
		if ts.Machine.Terminated() {
			break
		}
	}
	return reports
}

// RunUntil steps with no input until cond holds or max ticks pass. It returns
// the number of ticks run and whether cond was met.
func (ts *TestSim) RunUntil(max int, cond func(Snapshot) bool) (int, bool) {
	for i := 0; i < max; i++ {
		if cond(ts.Machine.Snapshot()) {
			return i, true
		}
		ts.Machine.Step(nil)
	}
	return max, cond(ts.Machine.Snapshot())
}

// Snapshot is a convenience for ts.Machine.Snapshot().
func (ts *TestSim) Snapshot() Snapshot {
	return ts.Machine.Snapshot()
}

// TicksFor converts a duration into whole ticks at the configured rate.
func (ts *TestSim) TicksFor(seconds float64) int {
	return int(seconds * float64(ts.cfg.TickRate))
}
