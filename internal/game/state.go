package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// State is the round phase.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateGameOver
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// CommandKind enumerates the discrete inputs a front end can produce.
type CommandKind int

const (
	CmdMoveLeft CommandKind = iota
	CmdMoveRight
	CmdFire
	CmdStart
	CmdRestart
	CmdToMenu
	CmdQuit
)

func (k CommandKind) String() string {
	switch k {
	case CmdMoveLeft:
		return "move_left"
	case CmdMoveRight:
		return "move_right"
	case CmdFire:
		return "fire"
	case CmdStart:
		return "start"
	case CmdRestart:
		return "restart"
	case CmdToMenu:
		return "to_menu"
	case CmdQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is one input for a tick. Side only matters for move and fire.
type Command struct {
	Kind CommandKind
	Side Side
}

func MoveLeft(side Side) Command  { return Command{Kind: CmdMoveLeft, Side: side} }
func MoveRight(side Side) Command { return Command{Kind: CmdMoveRight, Side: side} }
func Fire(side Side) Command      { return Command{Kind: CmdFire, Side: side} }
func Start() Command              { return Command{Kind: CmdStart} }
func Restart() Command            { return Command{Kind: CmdRestart} }
func ToMenu() Command             { return Command{Kind: CmdToMenu} }
func Quit() Command               { return Command{Kind: CmdQuit} }

// Camera is the capture session tied to the Playing state. Start reports an
// open failure so it can be logged; the round carries on either way. Both
// calls must be idempotent.
type Camera interface {
	Start() error
	Stop()
}

type noCamera struct{}

func (noCamera) Start() error { return nil }
func (noCamera) Stop()        {}

// TickReport describes what one Step did.
type TickReport struct {
	Tick    int
	Before  State
	After   State
	Shots   [sideCount]int
	Hits    []Hit
	Escaped []Enemy
	Spawned int
}

// Transitioned reports whether the state changed during the tick.
func (r TickReport) Transitioned() bool { return r.Before != r.After }

// Machine owns the live Round and drives it through Menu, Playing and GameOver.
// It is not safe for concurrent use; front ends call it from their loop only.
type Machine struct {
	cfg     Config
	mode    Mode
	state   State
	round   *Round
	camera  Camera
	spawner *Spawner
	log     *EventLog
	newID   func() string
	tick    int
}

// MachineOption customises a Machine at construction.
type MachineOption func(*Machine)

// WithCamera attaches the capture session opened while Playing.
func WithCamera(cam Camera) MachineOption {
	return func(m *Machine) {
		if cam != nil {
			m.camera = cam
		}
	}
}

// WithRand sets the spawner's random source.
func WithRand(rng *rand.Rand) MachineOption {
	return func(m *Machine) { m.spawner = NewSpawner(rng) }
}

// WithEventLog replaces the default capped event log.
func WithEventLog(l *EventLog) MachineOption {
	return func(m *Machine) { m.log = l }
}

// WithRoundIDs replaces the uuid round identifier source.
func WithRoundIDs(next func() string) MachineOption {
	return func(m *Machine) { m.newID = next }
}

const defaultLogLimit = 512

// NewMachine validates cfg and builds the machine. Arcade mode starts in the
// menu; classic mode starts a round immediately.
func NewMachine(cfg Config, mode Mode, opts ...MachineOption) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Machine{
		cfg:     cfg,
		mode:    mode,
		state:   StateMenu,
		camera:  noCamera{},
		spawner: NewSpawner(rand.New(rand.NewSource(time.Now().UnixNano()))), // #nosec G404 -- game only
		log:     NewEventLog(defaultLogLimit),
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(m)
	}
	if mode == ModeClassic {
		m.startRound()
	}
	return m, nil
}

// State returns the current phase.
func (m *Machine) State() State { return m.state }

// Mode returns the variant the machine was built with.
func (m *Machine) Mode() Mode { return m.mode }

// Config returns the tuning in use.
func (m *Machine) Config() Config { return m.cfg }

// Log returns the event log of the current round.
func (m *Machine) Log() *EventLog { return m.log }

// Terminated reports whether quit has been processed.
func (m *Machine) Terminated() bool { return m.state == StateTerminated }

// Snapshot copies the current round for rendering. In the menu there is no
// round and only State, Mode and Tick are set.
func (m *Machine) Snapshot() Snapshot {
	var s Snapshot
	if m.round != nil {
		s = m.round.snapshot()
	}
	s.State = m.state
	s.Mode = m.mode
	s.Tick = m.tick
	return s
}

// Step runs one tick: commands first, then (while Playing) bullets, spawner,
// enemies, collisions and the clock, in that order.
func (m *Machine) Step(cmds []Command) TickReport {
	rep := TickReport{Tick: m.tick, Before: m.state, After: m.state}
	if m.state == StateTerminated {
		return rep
	}
	m.tick++
	rep.Tick = m.tick

	for _, c := range cmds {
		m.dispatch(c, &rep)
		if m.state == StateTerminated {
			rep.After = m.state
			return rep
		}
	}

	if m.state == StatePlaying {
		m.simulate(&rep)
	}
	rep.After = m.state
	return rep
}

func (m *Machine) dispatch(c Command, rep *TickReport) {
	switch c.Kind {
	case CmdQuit:
		m.terminate("quit")
	case CmdStart:
		if m.state == StateMenu && m.mode == ModeArcade {
			m.startRound()
		}
	case CmdRestart:
		if m.state == StateGameOver && m.mode == ModeArcade {
			m.startRound()
		}
	case CmdToMenu:
		if m.state == StateGameOver && m.mode == ModeArcade {
			m.camera.Stop()
			m.round = nil
			m.setState(StateMenu, "to_menu")
		}
	case CmdMoveLeft, CmdMoveRight:
		if m.state != StatePlaying || !validSide(c.Side) {
			return
		}
		dir := -1.0
		if c.Kind == CmdMoveRight {
			dir = 1
		}
		m.round.movePlayer(m.cfg, c.Side, dir)
	case CmdFire:
		if m.state != StatePlaying || !validSide(c.Side) {
			return
		}
		b := m.round.fire(m.cfg, c.Side)
		rep.Shots[c.Side]++
		m.log.Add(m.tick, c.Side.Label(), "fire", "bullet", fmt.Sprintf("(%.0f,%.0f)", b.X, b.Y), b.X)
	}
}

func validSide(s Side) bool { return s == SideLeft || s == SideRight }

func (m *Machine) simulate(rep *TickReport) {
	r := m.round
	updateBullets(r, m.cfg)
	if e, ok := m.spawner.Update(r, m.cfg); ok {
		rep.Spawned++
		m.log.Add(m.tick, "--", "spawn", "enemy", fmt.Sprintf("(%.0f,%.0f) dir=%+.0f", e.X, e.Y, e.Dir), float64(len(r.enemies)))
	}
	rep.Escaped = updateEnemies(r, m.cfg)
	for _, e := range rep.Escaped {
		m.log.Add(m.tick, "--", "escape", "enemy", fmt.Sprintf("x=%.0f", e.X), e.Y)
	}
	rep.Hits = resolveCollisions(r)
	for _, h := range rep.Hits {
		m.log.Add(m.tick, h.Side.Label(), "hit", "enemy_destroyed",
			fmt.Sprintf("(%.0f,%.0f) score=%d", h.Enemy.X, h.Enemy.Y, r.scores[h.Side]),
			float64(r.scores[h.Side]))
	}

	r.ticks++
	// Derived from the tick count so 60 ticks are exactly one second.
	r.elapsed = time.Duration(r.ticks) * time.Second / time.Duration(m.cfg.TickRate)
	if !r.expired() {
		return
	}
	r.reason = ReasonTimeExpired
	if m.mode == ModeClassic {
		m.terminate(ReasonTimeExpired)
		return
	}
	m.camera.Stop()
	m.setState(StateGameOver, ReasonTimeExpired)
}

// startRound replaces any previous round, opens the camera and starts the clock at zero.
func (m *Machine) startRound() {
	m.log.Reset()
	m.round = newRound(m.cfg, m.newID())
	if err := m.camera.Start(); err != nil {
		m.log.Add(m.tick, "--", "camera", "open_failed", err.Error(), 0)
	}
	m.setState(StatePlaying, "round "+shortID(m.round.ID))
}

// terminate is reachable from every state and releases the camera.
func (m *Machine) terminate(why string) {
	m.camera.Stop()
	m.setState(StateTerminated, why)
}

// Close releases owned resources without altering the round.
func (m *Machine) Close() {
	m.camera.Stop()
}

func (m *Machine) setState(next State, why string) {
	m.log.Add(m.tick, "--", "state", "change", fmt.Sprintf("%s → %s (%s)", m.state, next, why), 0)
	m.state = next
}
