package game

// Hit records one enemy destroyed by a bullet.
type Hit struct {
	Side   Side
	Enemy  Enemy
	Bullet Bullet
}

// resolveCollisions pairs bullets with enemies. Each enemy is tested against
// player 1's bullets first and only falls through to player 2 when none of
// them overlap, so an enemy scores for at most one side per tick. Enemies are
// visited in insertion order and each bullet can take out one enemy.
func resolveCollisions(r *Round) []Hit {
	var hits []Hit
	kept := r.enemies[:0]
	for _, e := range r.enemies {
		hit := false
		for _, side := range []Side{SideLeft, SideRight} {
			if i := firstOverlap(r.bullets[side], e.box()); i >= 0 {
				b := r.bullets[side][i]
				r.bullets[side] = append(r.bullets[side][:i], r.bullets[side][i+1:]...)
				r.scores[side]++
				r.stats.Hits[side]++
				hits = append(hits, Hit{Side: side, Enemy: e, Bullet: b})
				hit = true
				break
			}
		}
		if !hit {
			kept = append(kept, e)
		}
	}
	r.enemies = kept
	return hits
}

func firstOverlap(bullets []Bullet, box rect) int {
	for i, b := range bullets {
		if b.box().overlaps(box) {
			return i
		}
	}
	return -1
}
