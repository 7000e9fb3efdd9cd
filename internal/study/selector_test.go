package study

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqRand отдаёт заранее заданные значения по кругу.
type seqRand struct {
	vals []float64
	i    int
}

func (s *seqRand) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func deck(n int) []Card {
	out := make([]Card, n)
	for i := range out {
		out[i] = Card{ID: string(rune('a' + i)), Prompt: "q", Answer: "a"}
	}
	return out
}

func TestWeight(t *testing.T) {
	assert.Equal(t, 1.0, Weight(0, 0))
	assert.Equal(t, 3.0, Weight(0, 2))
	assert.InDelta(t, 0.5, Weight(3, 1), 1e-9)
	// нижняя граница
	assert.Equal(t, 0.1, Weight(100, 0))
}

func TestNormalizeSize(t *testing.T) {
	tests := []struct {
		name    string
		desired float64
		total   int
		want    int
	}{
		{"empty pool", 5, 0, 0},
		{"larger than pool", 8, 5, 5},
		{"floor", 2.9, 5, 2},
		{"zero means all", 0, 5, 5},
		{"negative means all", -3, 5, 5},
		{"NaN means all", math.NaN(), 4, 4},
		{"+Inf means all", math.Inf(1), 4, 4},
		{"-Inf means all", math.Inf(-1), 4, 4},
		{"fraction below one", 0.5, 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSize(tt.desired, tt.total))
		})
	}
}

func TestBuildQueue_ReturnsWholePoolWhenAskedForMore(t *testing.T) {
	cards := deck(5)
	q := BuildQueue(cards, 8, rand.New(rand.NewPCG(1, 2)))
	require.Len(t, q, 5)

	seen := map[string]int{}
	for _, c := range q {
		seen[c.ID]++
	}
	assert.Len(t, seen, 5)
	for id, n := range seen {
		assert.Equal(t, 1, n, "card %s", id)
	}
}

func TestBuildQueue_EmptyPool(t *testing.T) {
	q := BuildQueue(nil, 3, nil)
	assert.NotNil(t, q)
	assert.Len(t, q, 0)
}

func TestBuildQueue_PrefersMissedCards(t *testing.T) {
	cards := []Card{
		{ID: "known", Correct: 9},    // вес 0.1
		{ID: "missed", Incorrect: 8}, // вес 9
		{ID: "fresh"},                // вес 1
	}
	// 0.5 * 10.1 = 5.05 — попадает в сектор "missed"
	q := BuildQueue(cards, 1, &seqRand{vals: []float64{0.5}})
	require.Len(t, q, 1)
	assert.Equal(t, "missed", q[0].ID)
}

func TestBuildQueue_DoesNotMutateInput(t *testing.T) {
	cards := deck(4)
	before := append([]Card(nil), cards...)
	_ = BuildQueue(cards, 2, &seqRand{vals: []float64{0, 0.99}})
	assert.Equal(t, before, cards)
}

func TestBuildQueue_RngAtUpperEdge(t *testing.T) {
	q := BuildQueue(deck(3), 3, &seqRand{vals: []float64{0.9999999999}})
	assert.Len(t, q, 3)
}
