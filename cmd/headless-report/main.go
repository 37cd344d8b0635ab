package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/Invaders-Duel/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64
	ticks    int

	summary string
	outcome game.RoundOutcome
	scores  [2]int
	stats   game.Stats

	firstSpawnTick  int
	firstHitTick    [2]int
	firstEscapeTick int
	peakEnemies     int
	stateChanges    int

	window *game.WindowReport
	grades [2]game.PlayerGrade
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var modeName string
	var script string

	flag.IntVar(&runs, "runs", 5, "number of headless rounds")
	flag.IntVar(&ticks, "ticks", 0, "ticks per run (0 = one full round)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&modeName, "mode", "arcade", "round flow: arcade or classic")
	flag.StringVar(&script, "script", "sweep", "player script (supported: sweep, idle)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks < 0 {
		fmt.Println("error: -ticks must be >= 0")
		return
	}
	mode, err := game.ParseMode(modeName)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	players, ok := scripts[script]
	if !ok {
		fmt.Printf("error: unsupported script %q (supported: %s)\n", script, scriptNames())
		return
	}

	fmt.Printf("=== Headless Duel Report ===\n")
	fmt.Printf("mode=%s script=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", mode, script, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := runRound(i+1, seed, ticks, mode, players)
		all = append(all, rs)
		printRun(rs)
	}
	printAggregate(all)
}

type playerScript func(i int, s game.Snapshot) []game.Command

var scripts = map[string]playerScript{
	"sweep": sweep,
	"idle":  func(int, game.Snapshot) []game.Command { return nil },
}

func scriptNames() string {
	names := make([]string, 0, len(scripts))
	for k := range scripts {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// sweep walks both ships across their halves and fires on a fixed cadence.
func sweep(i int, _ game.Snapshot) []game.Command {
	var cmds []game.Command
	if (i/20)%2 == 0 {
		cmds = append(cmds, game.MoveLeft(game.SideLeft), game.MoveRight(game.SideRight))
	} else {
		cmds = append(cmds, game.MoveRight(game.SideLeft), game.MoveLeft(game.SideRight))
	}
	if i%6 == 0 {
		cmds = append(cmds, game.Fire(game.SideLeft), game.Fire(game.SideRight))
	}
	return cmds
}

func runRound(runIndex int, seed int64, ticks int, mode game.Mode, script playerScript) runStats {
	ts := game.NewTestSim(
		game.WithSeed(seed),
		game.WithMode(mode),
		game.WithStarted(),
	)
	if ticks == 0 {
		ticks = ts.TicksFor(ts.Machine.Config().TimeLimit.Seconds())
	}

	peak := 0
	reports := ts.RunTicks(ticks, func(i int, s game.Snapshot) []game.Command {
		if n := s.EnemyCount(); n > peak {
			peak = n
		}
		return script(i, s)
	})

	s := ts.Snapshot()
	entries := ts.Log.Entries()
	return runStats{
		runIndex:        runIndex,
		seed:            seed,
		ticks:           len(reports),
		summary:         game.Summary(s),
		outcome:         game.DetermineOutcome(s),
		scores:          s.Scores,
		stats:           s.Stats,
		firstSpawnTick:  firstTick(entries, "spawn", "", ""),
		firstHitTick:    [2]int{firstTick(entries, "hit", "", "P1"), firstTick(entries, "hit", "", "P2")},
		firstEscapeTick: firstTick(entries, "escape", "", ""),
		peakEnemies:     peak,
		stateChanges:    ts.Log.CountCategory("state", "change"),
		window:          ts.Reporter.WindowSummary(),
		grades:          game.GradePlayers(s),
	}
}

// firstTick finds the earliest entry in category. An empty key matches any
// key; actor, when set, must match exactly.
func firstTick(entries []game.LogEntry, category, key, actor string) int {
	for _, e := range entries {
		if e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if actor == "" || e.Actor == actor {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Println(rs.summary)
	fmt.Printf("ticks=%d outcome=%s %s\n", rs.ticks, rs.outcome, rs.stats)
	fmt.Printf("phase_markers: first_spawn=%d first_hit_p1=%d first_hit_p2=%d first_escape=%d\n",
		rs.firstSpawnTick, rs.firstHitTick[0], rs.firstHitTick[1], rs.firstEscapeTick)
	fmt.Printf("peak_enemies=%d state_changes=%d\n", rs.peakEnemies, rs.stateChanges)
	fmt.Print(rs.window.Format())
	fmt.Print(game.FormatGrades(rs.grades))
	fmt.Println()
}

func printAggregate(all []runStats) {
	outcomes := map[string]int{}
	var totalScore [2]int
	var totalShots [2]int
	var totalHits [2]int
	totalSpawned := 0
	totalEscaped := 0
	var hitTicks [2][]int
	var ratingSum [2]float64

	for _, rs := range all {
		outcomes[rs.outcome.String()]++
		for side := 0; side < 2; side++ {
			totalScore[side] += rs.scores[side]
			totalShots[side] += rs.stats.Shots[side]
			totalHits[side] += rs.stats.Hits[side]
			if rs.firstHitTick[side] >= 0 {
				hitTicks[side] = append(hitTicks[side], rs.firstHitTick[side])
			}
		}
		for side, g := range rs.grades {
			ratingSum[side] += g.Rating
		}
		totalSpawned += rs.stats.Spawned
		totalEscaped += rs.stats.Escaped
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d outcomes=[%s]\n", len(all), joinCounts(outcomes))
	fmt.Printf("avg_score: p1=%.1f p2=%.1f\n", avg(totalScore[0], len(all)), avg(totalScore[1], len(all)))
	fmt.Printf("accuracy: p1=%s p2=%s\n", pct(totalHits[0], totalShots[0]), pct(totalHits[1], totalShots[1]))
	fmt.Printf("avg_enemies_per_run: spawned=%.1f escaped=%.1f\n", avg(totalSpawned, len(all)), avg(totalEscaped, len(all)))
	fmt.Printf("first_hit_avg_ticks: p1=%s p2=%s\n", avgTickString(hitTicks[0]), avgTickString(hitTicks[1]))
	if n := float64(len(all)); n > 0 {
		p1, p2 := ratingSum[0]/n, ratingSum[1]/n
		fmt.Printf("avg_grade: p1=%s (%.1f) p2=%s (%.1f)\n", game.PerfLetterGrade(p1), p1, game.PerfLetterGrade(p2), p2)
	}
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func pct(hits, shots int) string {
	if shots == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(hits)/float64(shots)*100)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}
