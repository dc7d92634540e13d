package homing

import (
	"encoding/json"
	"iter"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"pgregory.net/rapid"
)

type stubCandidate struct {
	center     mgl64.Vec2
	targetable bool
}

func (c stubCandidate) Center() mgl64.Vec2 { return c.center }
func (c stubCandidate) Targetable() bool   { return c.targetable }

type stubPopulation struct {
	creatures []Candidate
	players   []Candidate
}

func (p stubPopulation) LiveCreatures() iter.Seq[Candidate] { return seqOf(p.creatures) }
func (p stubPopulation) LivePlayers() iter.Seq[Candidate]   { return seqOf(p.players) }

func seqOf(items []Candidate) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

func TestFindNearestAllPrefersStrictlyCloserPlayer(t *testing.T) {
	pop := stubPopulation{
		creatures: []Candidate{stubCandidate{center: mgl64.Vec2{50, 0}, targetable: true}},
		players:   []Candidate{stubCandidate{center: mgl64.Vec2{0, 30}, targetable: true}},
	}
	origin := mgl64.Vec2{}

	cases := []struct {
		name   string
		radius float64
		want   mgl64.Vec2
		found  bool
	}{
		{name: "both in range", radius: 100, want: mgl64.Vec2{0, 30}, found: true},
		{name: "only player in range", radius: 40, want: mgl64.Vec2{0, 30}, found: true},
		{name: "nothing in range", radius: 20, found: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := FindNearest(pop, origin, tc.radius, TargetAll)
			if ok != tc.found {
				t.Fatalf("expected found=%v, got %v", tc.found, ok)
			}
			if ok && got != tc.want {
				t.Fatalf("expected target %v, got %v", tc.want, got)
			}
		})
	}
}

func TestFindNearestRespectsClass(t *testing.T) {
	pop := stubPopulation{
		creatures: []Candidate{stubCandidate{center: mgl64.Vec2{10, 0}, targetable: true}},
		players:   []Candidate{stubCandidate{center: mgl64.Vec2{5, 0}, targetable: true}},
	}

	if got, ok := FindNearest(pop, mgl64.Vec2{}, 100, TargetMonsters); !ok || got != (mgl64.Vec2{10, 0}) {
		t.Fatalf("monsters: expected creature, got %v ok=%v", got, ok)
	}
	if got, ok := FindNearest(pop, mgl64.Vec2{}, 100, TargetPlayers); !ok || got != (mgl64.Vec2{5, 0}) {
		t.Fatalf("players: expected player, got %v ok=%v", got, ok)
	}
	if _, ok := FindNearest(pop, mgl64.Vec2{}, 100, TargetNone); ok {
		t.Fatalf("none: expected no target")
	}
}

func TestFindNearestSkipsIneligibleAndKeepsFirstTie(t *testing.T) {
	pop := stubPopulation{
		creatures: []Candidate{
			stubCandidate{center: mgl64.Vec2{1, 0}, targetable: false},
			stubCandidate{center: mgl64.Vec2{0, 20}, targetable: true},
			stubCandidate{center: mgl64.Vec2{20, 0}, targetable: true},
		},
	}
	got, ok := FindNearest(pop, mgl64.Vec2{}, 100, TargetMonsters)
	if !ok {
		t.Fatalf("expected a target")
	}
	if got != (mgl64.Vec2{0, 20}) {
		t.Fatalf("expected first of the tied candidates, got %v", got)
	}
}

func TestFindNearestAllKeepsCreatureOnTie(t *testing.T) {
	pop := stubPopulation{
		creatures: []Candidate{stubCandidate{center: mgl64.Vec2{30, 0}, targetable: true}},
		players:   []Candidate{stubCandidate{center: mgl64.Vec2{0, 30}, targetable: true}},
	}
	got, ok := FindNearest(pop, mgl64.Vec2{}, 100, TargetAll)
	if !ok || got != (mgl64.Vec2{30, 0}) {
		t.Fatalf("expected creature to win a tie, got %v ok=%v", got, ok)
	}
}

func TestSteerWithCoincidentTargetKeepsVelocity(t *testing.T) {
	current := mgl64.Vec2{3, -4}
	center := mgl64.Vec2{100, 200}
	if got := Steer(current, center, center, 5); got != current {
		t.Fatalf("expected velocity unchanged, got %v", got)
	}
}

func TestSteerBlendsTowardTarget(t *testing.T) {
	got := Steer(mgl64.Vec2{0, 10}, mgl64.Vec2{100, 0}, mgl64.Vec2{0, 0}, 10)
	want := mgl64.Vec2{1, 9}
	if !got.ApproxEqualThreshold(want, 1e-9) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSteerClampsMagnitude(t *testing.T) {
	got := Steer(mgl64.Vec2{0, 100}, mgl64.Vec2{0, 10}, mgl64.Vec2{}, 4)
	if math.Abs(got.Len()-6) > 1e-9 {
		t.Fatalf("expected magnitude 6, got %v", got.Len())
	}
	if got[0] != 0 || got[1] <= 0 {
		t.Fatalf("expected direction preserved, got %v", got)
	}
}

func TestSteerNeverExceedsSpeedCap(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		coord := rapid.Float64Range(-1e4, 1e4)
		current := mgl64.Vec2{coord.Draw(t, "vx"), coord.Draw(t, "vy")}
		target := mgl64.Vec2{coord.Draw(t, "tx"), coord.Draw(t, "ty")}
		center := mgl64.Vec2{coord.Draw(t, "cx"), coord.Draw(t, "cy")}
		speed := rapid.Float64Range(-50, 50).Draw(t, "speed")

		got := Steer(current, target, center, speed)
		if target == center {
			if got != current {
				t.Fatalf("expected unchanged velocity, got %v", got)
			}
			return
		}
		limit := math.Abs(speed) * MaxSpeedFactor
		if got.Len() > limit*(1+1e-9)+1e-9 {
			t.Fatalf("magnitude %v exceeds cap %v", got.Len(), limit)
		}
	})
}

func TestFindNearestReturnsMinimumWithinRadius(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		coord := rapid.Float64Range(-500, 500)
		n := rapid.IntRange(0, 12).Draw(t, "n")
		candidates := make([]Candidate, 0, n)
		for i := 0; i < n; i++ {
			candidates = append(candidates, stubCandidate{
				center:     mgl64.Vec2{coord.Draw(t, "x"), coord.Draw(t, "y")},
				targetable: rapid.Bool().Draw(t, "targetable"),
			})
		}
		radius := rapid.Float64Range(0, 800).Draw(t, "radius")
		pop := stubPopulation{creatures: candidates}

		got, ok := FindNearest(pop, mgl64.Vec2{}, radius, TargetMonsters)

		best := radius
		for _, c := range candidates {
			if c.Targetable() && c.Center().Len() < best {
				best = c.Center().Len()
			}
		}
		if ok != (best < radius) {
			t.Fatalf("found=%v but minimum eligible distance %v with radius %v", ok, best, radius)
		}
		if ok && got.Len() != best {
			t.Fatalf("expected distance %v, got %v", best, got.Len())
		}
	})
}

func TestTargetClassText(t *testing.T) {
	for _, raw := range []string{"Players", "PLAYERS", " players "} {
		class, err := ParseTargetClass(raw)
		if err != nil || class != TargetPlayers {
			t.Fatalf("parse %q: got %v, %v", raw, class, err)
		}
	}
	if _, err := ParseTargetClass("bosses"); err == nil {
		t.Fatalf("expected error for unknown class")
	}

	data, err := json.Marshal(struct {
		Target TargetClass `json:"target"`
	}{Target: TargetAll})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"target":"all"}` {
		t.Fatalf("unexpected encoding %s", data)
	}

	var decoded struct {
		Target TargetClass `json:"target"`
	}
	if err := json.Unmarshal([]byte(`{"target":"Monsters"}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Target != TargetMonsters {
		t.Fatalf("expected monsters, got %v", decoded.Target)
	}
}

func TestTargetClassSchemaListsEveryClass(t *testing.T) {
	schema := TargetClass(0).JSONSchema()
	if schema.Type != "string" {
		t.Fatalf("expected string schema, got %q", schema.Type)
	}
	if len(schema.Enum) != 4 {
		t.Fatalf("expected 4 enum values, got %v", schema.Enum)
	}
}
