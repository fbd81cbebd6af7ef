package snake

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"time"
)

// recorder collects every event a simulation publishes.
type recorder struct {
	events []Event
}

func (r *recorder) listen(ev Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) collisions() []CollisionEvent {
	var out []CollisionEvent
	for _, ev := range r.events {
		if e, ok := ev.(CollisionEvent); ok {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) scores() []ScoreEvent {
	var out []ScoreEvent
	for _, ev := range r.events {
		if e, ok := ev.(ScoreEvent); ok {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) count(match func(Event) bool) int {
	n := 0
	for _, ev := range r.events {
		if match(ev) {
			n++
		}
	}
	return n
}

func (r *recorder) reset() {
	r.events = nil
}

// testConfig returns a 10x10 config that starts running immediately.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Grid = Grid{Columns: 10, Rows: 10}
	cfg.CountdownSeconds = 0
	cfg.AutoStart = true
	return cfg
}

func newTestSim(t *testing.T, cfg Config) (*Simulation, *ManualScheduler, *recorder) {
	t.Helper()
	sched := NewManualScheduler()
	sim, err := New(cfg, rand.New(rand.NewSource(42)), sched)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rec := &recorder{}
	sim.Subscribe(rec.listen)
	return sim, sched, rec
}

// placeFoodAt moves the normal food to p.
func placeFoodAt(s *Simulation, p Position) {
	s.food = p
	s.hasFood = true
}

// feed puts food directly in front of the head and ticks once.
func feed(t *testing.T, s *Simulation) {
	t.Helper()
	dx, dy := s.pending.delta()
	target := s.snake[0].Add(dx, dy)
	if s.hasBonus && s.bonus == target {
		s.bonus = Position{X: target.X, Y: (target.Y + 3) % s.grid.Rows}
	}
	placeFoodAt(s, target)
	s.Tick()
	if s.state != StateRunning {
		t.Fatalf("session ended while feeding: %s", s.state)
	}
}

func TestResetCentersSnake(t *testing.T) {
	sim, _, _ := newTestSim(t, testConfig())

	want := []Position{{5, 5}, {4, 5}, {3, 5}}
	if got := sim.Snake(); !reflect.DeepEqual(got, want) {
		t.Errorf("snake = %v, want %v", got, want)
	}
	if sim.Heading() != HeadingRight {
		t.Errorf("heading = %s, want right", sim.Heading())
	}
	if sim.Score() != 0 {
		t.Errorf("score = %d, want 0", sim.Score())
	}
	if sim.State() != StateRunning {
		t.Errorf("state = %s, want running", sim.State())
	}
	food, ok := sim.Food()
	if !ok {
		t.Fatal("expected food after reset")
	}
	if sim.occupies(food) {
		t.Errorf("food %v placed on the snake", food)
	}
	if _, ok := sim.BonusFood(); ok {
		t.Error("expected no bonus food after reset")
	}
}

func TestResetWithoutAutoStart(t *testing.T) {
	cfg := testConfig()
	cfg.AutoStart = false
	sim, _, _ := newTestSim(t, cfg)

	if sim.State() != StateNotStarted {
		t.Fatalf("state = %s, want not_started", sim.State())
	}

	sim.Tick()
	if sim.Snapshot().Tick != 0 {
		t.Error("tick should be a no-op before start")
	}

	sim.Start()
	if sim.State() != StateRunning {
		t.Errorf("state = %s, want running", sim.State())
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiny grid", func(c *Config) { c.Grid = Grid{Columns: 1, Rows: 5} }},
		{"zero length", func(c *Config) { c.InitialLength = 0 }},
		{"snake too long", func(c *Config) { c.InitialLength = 7 }},
		{"zero tick", func(c *Config) { c.TickInterval = 0 }},
		{"zero threshold", func(c *Config) { c.BonusThreshold = 0 }},
		{"zero bonus lifetime", func(c *Config) { c.BonusLifetime = 0 }},
		{"negative score", func(c *Config) { c.NormalScoreValue = -1 }},
		{"negative growth", func(c *Config) { c.BonusIntervalGrowth = -2 }},
		{"negative countdown", func(c *Config) { c.CountdownSeconds = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			_, err := New(cfg, rand.New(rand.NewSource(1)), NewManualScheduler())
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}

	if _, err := New(testConfig(), nil, NewManualScheduler()); err == nil {
		t.Error("expected error for nil random source")
	}
	if _, err := New(testConfig(), rand.New(rand.NewSource(1)), nil); err == nil {
		t.Error("expected error for nil scheduler")
	}
}

func TestTickMovesWithoutFood(t *testing.T) {
	sim, _, rec := newTestSim(t, testConfig())
	placeFoodAt(sim, Position{0, 0})

	sim.Tick()

	want := []Position{{6, 5}, {5, 5}, {4, 5}}
	if got := sim.Snake(); !reflect.DeepEqual(got, want) {
		t.Errorf("snake = %v, want %v", got, want)
	}
	if sim.Score() != 0 {
		t.Errorf("score = %d, want 0", sim.Score())
	}

	last, ok := rec.events[len(rec.events)-1].(TickCompletedEvent)
	if !ok {
		t.Fatalf("last event = %T, want TickCompletedEvent", rec.events[len(rec.events)-1])
	}
	if !reflect.DeepEqual(last.Snake, want) || last.Tick != 1 {
		t.Errorf("tick event = %+v", last)
	}
	if last.Food == nil || *last.Food != (Position{0, 0}) {
		t.Errorf("tick event food = %v, want (0,0)", last.Food)
	}
}

func TestTickEatsFood(t *testing.T) {
	sim, _, rec := newTestSim(t, testConfig())
	placeFoodAt(sim, Position{6, 5})

	sim.Tick()

	want := []Position{{6, 5}, {5, 5}, {4, 5}, {3, 5}}
	if got := sim.Snake(); !reflect.DeepEqual(got, want) {
		t.Errorf("snake = %v, want %v", got, want)
	}
	if sim.Score() != sim.Config().NormalScoreValue {
		t.Errorf("score = %d, want %d", sim.Score(), sim.Config().NormalScoreValue)
	}

	food, ok := sim.Food()
	if !ok {
		t.Fatal("expected new food")
	}
	if food == (Position{6, 5}) || sim.occupies(food) {
		t.Errorf("new food %v overlaps the snake", food)
	}

	scores := rec.scores()
	if len(scores) != 1 || scores[0].Source != SourceFood || scores[0].NewScore != 1 {
		t.Errorf("score events = %+v", scores)
	}
}

func TestWallCollision(t *testing.T) {
	tests := []struct {
		heading Heading
		start   Position
		hit     Position
	}{
		{HeadingLeft, Position{0, 5}, Position{-1, 5}},
		{HeadingRight, Position{9, 5}, Position{10, 5}},
		{HeadingUp, Position{5, 0}, Position{5, -1}},
		{HeadingDown, Position{5, 9}, Position{5, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.heading.String(), func(t *testing.T) {
			sim, _, rec := newTestSim(t, testConfig())
			sim.snake = []Position{tt.start}
			sim.heading, sim.pending = tt.heading, tt.heading
			placeFoodAt(sim, Position{2, 2})

			sim.Tick()

			if sim.State() != StateGameOver {
				t.Fatalf("state = %s, want game_over", sim.State())
			}
			got := rec.collisions()
			if len(got) != 1 || got[0].Kind != CollisionWall || got[0].At != tt.hit {
				t.Errorf("collisions = %+v, want wall at %v", got, tt.hit)
			}
		})
	}
}

func TestWallCollisionLeavesSnakeUnchanged(t *testing.T) {
	sim, _, rec := newTestSim(t, testConfig())
	body := []Position{{0, 5}, {1, 5}, {2, 5}}
	sim.snake = append([]Position(nil), body...)
	sim.heading, sim.pending = HeadingLeft, HeadingLeft

	sim.Tick()

	if sim.State() != StateGameOver {
		t.Fatalf("state = %s, want game_over", sim.State())
	}
	if got := sim.Snake(); !reflect.DeepEqual(got, body) {
		t.Errorf("snake = %v, want unchanged %v", got, body)
	}
	if n := rec.count(func(ev Event) bool { _, ok := ev.(TickCompletedEvent); return ok }); n != 0 {
		t.Errorf("got %d tick events on a fatal tick, want 0", n)
	}
}

func TestSelfCollisionBeatsFood(t *testing.T) {
	sim, _, rec := newTestSim(t, testConfig())
	// Head moving up with the body curled to its left.
	sim.snake = []Position{{5, 5}, {5, 6}, {4, 6}, {4, 5}, {3, 5}}
	sim.heading, sim.pending = HeadingUp, HeadingUp
	placeFoodAt(sim, Position{4, 5})

	sim.SetHeading(HeadingLeft)
	sim.Tick()

	if sim.State() != StateGameOver {
		t.Fatalf("state = %s, want game_over", sim.State())
	}
	got := rec.collisions()
	if len(got) != 1 || got[0].Kind != CollisionSelf {
		t.Errorf("collisions = %+v, want one self collision", got)
	}
	if sim.Score() != 0 {
		t.Errorf("score = %d, want 0", sim.Score())
	}
	if len(rec.scores()) != 0 {
		t.Error("food must not be eaten on a fatal tick")
	}
}

func TestMovingIntoTailIsFatal(t *testing.T) {
	sim, _, rec := newTestSim(t, testConfig())
	sim.snake = []Position{{5, 5}, {5, 6}, {4, 6}, {4, 5}}
	sim.heading, sim.pending = HeadingUp, HeadingUp
	placeFoodAt(sim, Position{0, 0})

	sim.SetHeading(HeadingLeft)
	sim.Tick()

	got := rec.collisions()
	if len(got) != 1 || got[0].Kind != CollisionSelf || got[0].At != (Position{4, 5}) {
		t.Errorf("collisions = %+v, want self at (4,5)", got)
	}
}

func TestReversalGuard(t *testing.T) {
	sim, _, _ := newTestSim(t, testConfig())
	placeFoodAt(sim, Position{0, 0})

	sim.SetHeading(HeadingLeft)
	sim.Tick()

	if sim.Heading() != HeadingRight {
		t.Errorf("heading = %s, want right", sim.Heading())
	}
	head := sim.Snapshot().Head()
	if head != (Position{6, 5}) {
		t.Errorf("head = %v, want (6,5)", head)
	}
}

func TestReversalGuardUsesCurrentHeading(t *testing.T) {
	sim, _, _ := newTestSim(t, testConfig())
	placeFoodAt(sim, Position{0, 0})

	// Up is queued, but left still reverses the heading in effect.
	sim.SetHeading(HeadingUp)
	sim.SetHeading(HeadingLeft)
	sim.Tick()

	if sim.Heading() != HeadingUp {
		t.Errorf("heading = %s, want up", sim.Heading())
	}
	if sim.State() != StateRunning {
		t.Errorf("state = %s, want running", sim.State())
	}
	if head := sim.Snapshot().Head(); head != (Position{5, 4}) {
		t.Errorf("head = %v, want (5,4)", head)
	}
}

func TestReversalAllowedForSingleSegment(t *testing.T) {
	cfg := testConfig()
	cfg.InitialLength = 1
	sim, _, _ := newTestSim(t, cfg)
	placeFoodAt(sim, Position{0, 0})

	sim.SetHeading(HeadingLeft)
	sim.Tick()

	if sim.Heading() != HeadingLeft {
		t.Errorf("heading = %s, want left", sim.Heading())
	}
	if head := sim.Snapshot().Head(); head != (Position{4, 5}) {
		t.Errorf("head = %v, want (4,5)", head)
	}
}

func TestSetHeadingIgnoredWhenPaused(t *testing.T) {
	sim, _, _ := newTestSim(t, testConfig())
	placeFoodAt(sim, Position{0, 0})

	sim.Pause()
	sim.SetHeading(HeadingUp)
	sim.Tick()
	if sim.Snapshot().Tick != 0 {
		t.Error("tick should be a no-op while paused")
	}

	sim.Resume()
	sim.Tick()
	if sim.Heading() != HeadingRight {
		t.Errorf("heading = %s, want right", sim.Heading())
	}
}

func TestSetHeadingIgnoresInvalidValues(t *testing.T) {
	sim, _, _ := newTestSim(t, testConfig())
	placeFoodAt(sim, Position{0, 0})

	sim.SetHeading(Heading(42))
	sim.SetHeading(Heading(-1))
	sim.Tick()

	if sim.Heading() != HeadingRight {
		t.Errorf("heading = %s, want right", sim.Heading())
	}
}

func TestTogglePause(t *testing.T) {
	sim, _, rec := newTestSim(t, testConfig())

	sim.TogglePause()
	if sim.State() != StatePaused {
		t.Fatalf("state = %s, want paused", sim.State())
	}
	sim.TogglePause()
	if sim.State() != StateRunning {
		t.Fatalf("state = %s, want running", sim.State())
	}

	changes := rec.count(func(ev Event) bool { _, ok := ev.(StateChangedEvent); return ok })
	if changes != 2 {
		t.Errorf("state change events = %d, want 2", changes)
	}
}

func TestGameOverIgnoresFurtherInput(t *testing.T) {
	sim, _, _ := newTestSim(t, testConfig())
	sim.snake = []Position{{9, 5}}
	sim.Tick()
	if sim.State() != StateGameOver {
		t.Fatalf("state = %s, want game_over", sim.State())
	}

	before := sim.Snapshot()
	sim.SetHeading(HeadingUp)
	sim.Pause()
	sim.Tick()
	if after := sim.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("state changed after game over:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestGrowthInvariant(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CountdownSeconds = 0
	cfg.AutoStart = true
	sched := NewManualScheduler()
	sim, err := New(cfg, rand.New(rand.NewSource(7)), sched)
	if err != nil {
		t.Fatal(err)
	}

	ate := false
	sim.Subscribe(func(ev Event) {
		if _, ok := ev.(ScoreEvent); ok {
			ate = true
		}
	})

	steer := rand.New(rand.NewSource(99))
	for i := 0; i < 2000 && sim.State() == StateRunning; i++ {
		// Steer toward the food so the snake grows now and then.
		if food, ok := sim.Food(); ok && steer.Intn(3) > 0 {
			head := sim.Snapshot().Head()
			switch {
			case food.X > head.X:
				sim.SetHeading(HeadingRight)
			case food.X < head.X:
				sim.SetHeading(HeadingLeft)
			case food.Y > head.Y:
				sim.SetHeading(HeadingDown)
			default:
				sim.SetHeading(HeadingUp)
			}
		} else {
			sim.SetHeading(Heading(steer.Intn(4)))
		}

		before := sim.Len()
		ate = false
		sim.Tick()
		if sim.State() != StateRunning {
			if sim.Len() != before {
				t.Fatalf("fatal tick changed length %d -> %d", before, sim.Len())
			}
			break
		}

		want := before
		if ate {
			want++
		}
		if sim.Len() != want {
			t.Fatalf("tick %d: length %d -> %d, ate=%v", i, before, sim.Len(), ate)
		}

		checkNoOverlap(t, sim)
		sched.Advance(cfg.TickInterval)
	}
}

// checkNoOverlap verifies the snake has no duplicate cells and food sits on free cells.
func checkNoOverlap(t *testing.T, sim *Simulation) {
	t.Helper()
	seen := make(map[Position]bool, sim.Len())
	for _, p := range sim.snake {
		if seen[p] {
			t.Fatalf("snake overlaps itself at %v", p)
		}
		seen[p] = true
	}
	food, hasFood := sim.Food()
	bonus, hasBonus := sim.BonusFood()
	if hasFood && seen[food] {
		t.Fatalf("food %v on the snake", food)
	}
	if hasBonus && seen[bonus] {
		t.Fatalf("bonus %v on the snake", bonus)
	}
	if hasFood && hasBonus && food == bonus {
		t.Fatalf("food and bonus share %v", food)
	}
}

func TestFoodPlacementAvoidsSnakeAndBonus(t *testing.T) {
	sim, _, _ := newTestSim(t, testConfig())

	// Fill all but the last two rows with body cells.
	sim.snake = sim.snake[:0]
	for y := 0; y < 8; y++ {
		for x := 0; x < 10; x++ {
			sim.snake = append(sim.snake, Position{x, y})
		}
	}

	for range 200 {
		sim.placeFood()
		sim.spawnBonus()
		checkNoOverlap(t, sim)
		if _, ok := sim.Food(); !ok {
			t.Fatal("expected food")
		}
		if _, ok := sim.BonusFood(); !ok {
			t.Fatal("expected bonus")
		}
	}
}

func TestFoodAbsentOnFullGrid(t *testing.T) {
	cfg := testConfig()
	cfg.Grid = Grid{Columns: 2, Rows: 2}
	cfg.InitialLength = 2
	sim, _, _ := newTestSim(t, cfg)

	sim.snake = []Position{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	sim.placeFood()

	if _, ok := sim.Food(); ok {
		t.Error("expected no food on a full grid")
	}
}

func TestMilestones(t *testing.T) {
	cfg := testConfig()
	cfg.Grid = Grid{Columns: 30, Rows: 20}
	cfg.Milestones = []int{2, 3}
	sim, _, rec := newTestSim(t, cfg)

	for range 4 {
		feed(t, sim)
	}

	var got []int
	for _, ev := range rec.events {
		if a, ok := ev.(AchievementEvent); ok {
			got = append(got, a.Milestone)
		}
	}
	if !reflect.DeepEqual(got, []int{2, 3}) {
		t.Errorf("milestones = %v, want [2 3]", got)
	}
}

func TestMilestoneReachedByJump(t *testing.T) {
	cfg := testConfig()
	cfg.Grid = Grid{Columns: 30, Rows: 20}
	cfg.NormalScoreValue = 4
	cfg.Milestones = []int{5}
	sim, _, rec := newTestSim(t, cfg)

	feed(t, sim)
	feed(t, sim)

	n := rec.count(func(ev Event) bool { _, ok := ev.(AchievementEvent); return ok })
	if n != 1 {
		t.Errorf("achievement events = %d, want 1", n)
	}
}

func TestHighScoreEventFiresOnce(t *testing.T) {
	cfg := testConfig()
	cfg.Grid = Grid{Columns: 30, Rows: 20}
	sim, _, rec := newTestSim(t, cfg)
	sim.SetBestScore(2)

	for range 5 {
		feed(t, sim)
	}

	var got []HighScoreEvent
	for _, ev := range rec.events {
		if e, ok := ev.(HighScoreEvent); ok {
			got = append(got, e)
		}
	}
	if len(got) != 1 || got[0].Score != 3 || got[0].Previous != 2 {
		t.Errorf("high score events = %+v, want one at 3 beating 2", got)
	}
}

func TestRestartResetsScore(t *testing.T) {
	cfg := testConfig()
	cfg.Grid = Grid{Columns: 30, Rows: 20}
	sim, _, _ := newTestSim(t, cfg)

	feed(t, sim)
	feed(t, sim)
	sim.Restart()

	if sim.Score() != 0 {
		t.Errorf("score = %d, want 0", sim.Score())
	}
	if sim.Len() != cfg.InitialLength {
		t.Errorf("length = %d, want %d", sim.Len(), cfg.InitialLength)
	}
	if sim.Snapshot().BestScore != 2 {
		t.Errorf("best = %d, want 2", sim.Snapshot().BestScore)
	}
}

func TestRestartKeepsScoreWhenConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.Grid = Grid{Columns: 30, Rows: 20}
	cfg.KeepScoreOnRestart = true
	sim, _, _ := newTestSim(t, cfg)

	feed(t, sim)
	feed(t, sim)
	sim.Restart()

	if sim.Score() != 2 {
		t.Errorf("score = %d, want 2", sim.Score())
	}
}

func TestSetTickIntervalKeepsState(t *testing.T) {
	sim, _, _ := newTestSim(t, testConfig())
	placeFoodAt(sim, Position{0, 0})
	sim.Tick()
	before := sim.Snapshot()

	sim.SetTickInterval(75 * time.Millisecond)
	sim.SetTickInterval(0)

	if sim.TickInterval() != 75*time.Millisecond {
		t.Errorf("interval = %v, want 75ms", sim.TickInterval())
	}
	if after := sim.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Error("changing the interval must not touch simulation state")
	}
}

func TestUnsubscribe(t *testing.T) {
	sim, _, _ := newTestSim(t, testConfig())

	var a, b int
	unsubA := sim.Subscribe(func(Event) { a++ })
	sim.Subscribe(func(Event) { b++ })

	sim.Pause()
	unsubA()
	sim.Resume()

	if a != 1 || b != 2 {
		t.Errorf("deliveries a=%d b=%d, want 1 and 2", a, b)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() []Snapshot {
		sched := NewManualScheduler()
		sim, err := New(DefaultConfig(), rand.New(rand.NewSource(12345)), sched)
		if err != nil {
			t.Fatal(err)
		}
		sim.Start()
		sched.Advance(3 * time.Second)

		script := []Heading{HeadingUp, HeadingRight, HeadingDown, HeadingRight}
		var snaps []Snapshot
		for i := range 60 {
			if i%7 == 0 {
				sim.SetHeading(script[(i/7)%len(script)])
			}
			sim.Tick()
			sched.Advance(sim.TickInterval())
			snaps = append(snaps, sim.Snapshot())
		}
		return snaps
	}

	first, second := run(), run()
	if !reflect.DeepEqual(first, second) {
		t.Error("same seed and inputs produced different runs")
	}
}

func TestHeadingFromVector(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   Heading
		ok     bool
	}{
		{40, 5, HeadingRight, true},
		{-40, 5, HeadingLeft, true},
		{3, 45, HeadingDown, true},
		{3, -45, HeadingUp, true},
		{20, 10, 0, false},
		{0, 0, 0, false},
	}

	for _, tt := range tests {
		got, ok := HeadingFromVector(tt.dx, tt.dy, 30)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("HeadingFromVector(%d, %d) = %s, %v; want %s, %v", tt.dx, tt.dy, got, ok, tt.want, tt.ok)
		}
	}
}
