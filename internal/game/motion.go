package game

// updateBullets moves every bullet up and drops the ones fully above the top edge.
func updateBullets(r *Round, cfg Config) {
	for side := range r.bullets {
		kept := r.bullets[side][:0]
		for _, b := range r.bullets[side] {
			b.Y -= cfg.BulletSpeed
			if b.Y+b.Height < 0 {
				continue
			}
			kept = append(kept, b)
		}
		r.bullets[side] = kept
	}
}

// updateEnemies drifts enemies down, zig-zags them between the insets and
// removes the ones that fell past the bottom edge. It returns the escapees.
func updateEnemies(r *Round, cfg Config) []Enemy {
	lo, hi := cfg.EnemyBounds()
	var escaped []Enemy
	kept := r.enemies[:0]
	for _, e := range r.enemies {
		e.Y += cfg.EnemySpeed
		e.X += e.Dir * cfg.EnemyStep
		// Flip exactly when the clamp bites.
		if e.X < lo {
			e.X = lo
			e.Dir = -e.Dir
		} else if e.X > hi {
			e.X = hi
			e.Dir = -e.Dir
		}
		if e.Y > cfg.Height {
			escaped = append(escaped, e)
			continue
		}
		kept = append(kept, e)
	}
	r.enemies = kept
	r.stats.Escaped += len(escaped)
	return escaped
}
