package script

import (
	"testing"
	"time"

	"github.com/milk9111/lockon/lockon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var candidates = []lockon.Candidate{
	{ID: 10, Distance: 100, Dot: 0.5, Angle: 60},
	{ID: 11, Distance: 400, Dot: 1, Angle: 0},
	{ID: 12, Distance: 800, Dot: 0.9, Angle: 25},
}

func TestSelectorPicksHighestScore(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want lockon.EntityID
	}{
		{
			name: "closest",
			src:  `score := func(c) { return -c.distance }`,
			want: 10,
		},
		{
			name: "furthest",
			src:  `score := func(c) { return c.distance }`,
			want: 12,
		},
		{
			name: "most centred",
			src:  `score := func(c) { return c.dot }`,
			want: 11,
		},
		{
			name: "ties keep the first",
			src:  `score := func(c) { return 1 }`,
			want: 10,
		},
		{
			name: "stdlib import",
			src: `
math := import("math")
score := func(c) { return -math.abs(c.angle - 30) }
`,
			want: 12,
		},
		{
			name: "sees the radius",
			src:  `score := func(c) { return c.radius - c.distance < 500 ? 1 : 0 }`,
			want: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.name, []byte(tt.src))
			require.NoError(t, err)

			got, ok := s.Select(candidates, 1000)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestSelectorEmpty(t *testing.T) {
	s, err := New("empty", []byte(`score := func(c) { return 0 }`))
	require.NoError(t, err)

	_, ok := s.Select(nil, 1000)
	assert.False(t, ok)
}

func TestNewRejectsBadScripts(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{"no score", `rank := func(c) { return 1 }`, ErrNoScoreFunc},
		{"score not callable", `score := 3`, ErrNoScoreFunc},
		{"syntax error", `score := func(c) {`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.name, []byte(tt.src))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestScoreNotNumber(t *testing.T) {
	s, err := New("string", []byte(`score := func(c) { return "high" }`))
	require.NoError(t, err)

	_, err = s.Score(0, candidates[0], 1000)
	assert.ErrorIs(t, err, ErrScoreNotNumber)
}

func TestRuntimeErrorFallsBack(t *testing.T) {
	last := lockon.SelectorFunc(func(c []lockon.Candidate, _ float64) (lockon.Candidate, bool) {
		return c[len(c)-1], true
	})
	s, err := New("broken", []byte(`score := func(c) { return c.missing() }`), WithFallback(last))
	require.NoError(t, err)

	got, ok := s.Select(candidates, 1000)
	require.True(t, ok)
	assert.Equal(t, lockon.EntityID(12), got.ID)
}

func TestScoreReceivesIndexAndID(t *testing.T) {
	s, err := New("index", []byte(`score := func(c) { return c.index * 1000 + c.id }`))
	require.NoError(t, err)

	got, err := s.Score(2, candidates[2], 1000)
	require.NoError(t, err)
	assert.Equal(t, 2012.0, got)
}

func TestBudgetStopsRunawayScript(t *testing.T) {
	first := lockon.SelectorFunc(func(c []lockon.Candidate, _ float64) (lockon.Candidate, bool) {
		return c[0], true
	})
	s, err := New("spin", []byte(`score := func(c) { for { } }`), WithBudget(time.Millisecond), WithFallback(first))
	require.NoError(t, err)
	assert.Equal(t, "spin", s.Name())

	_, err = s.Score(0, candidates[0], 1000)
	require.Error(t, err)

	got, ok := s.Select(candidates, 1000)
	require.True(t, ok)
	assert.Equal(t, lockon.EntityID(10), got.ID)
}
