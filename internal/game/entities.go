package game

// Side identifies a player and the half of the playfield it defends.
type Side int

const (
	SideLeft  Side = iota // player 1
	SideRight             // player 2
	sideCount
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "player1"
	case SideRight:
		return "player2"
	default:
		return "unknown"
	}
}

// Label is the short name used in the HUD and logs.
func (s Side) Label() string {
	if s == SideLeft {
		return "P1"
	}
	return "P2"
}

// rect is an axis-aligned box with its origin at the top-left corner.
type rect struct {
	x, y float64
	w, h float64
}

// overlaps reports strict overlap on both axes; touching edges do not count.
func (r rect) overlaps(o rect) bool {
	return r.x < o.x+o.w && o.x < r.x+r.w &&
		r.y < o.y+o.h && o.y < r.y+r.h
}

// Player is one of the two ships. Y and the box size never change during a round.
type Player struct {
	Side          Side
	X, Y          float64
	Width, Height float64
}

func (p Player) box() rect { return rect{p.X, p.Y, p.Width, p.Height} }

// Bullet travels straight up from the player that fired it.
type Bullet struct {
	Owner         Side
	X, Y          float64
	Width, Height float64
}

func (b Bullet) box() rect { return rect{b.X, b.Y, b.Width, b.Height} }

// Enemy drifts down while zig-zagging; Dir is +1 (right) or -1 (left).
type Enemy struct {
	X, Y          float64
	Dir           float64
	Width, Height float64
}

func (e Enemy) box() rect { return rect{e.X, e.Y, e.Width, e.Height} }
