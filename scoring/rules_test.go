package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name   string
		pred   ScoreLine
		actual ScoreLine
		want   int
	}{
		{"exact score", ScoreLine{2, 1}, ScoreLine{2, 1}, 10},
		{"exact nil-nil draw", ScoreLine{0, 0}, ScoreLine{0, 0}, 10},
		{"draw predicted, draw happened, different score", ScoreLine{2, 2}, ScoreLine{1, 1}, 7},
		{"right winner, no goal count matches", ScoreLine{3, 1}, ScoreLine{2, 0}, 5},
		{"right winner away side", ScoreLine{0, 2}, ScoreLine{1, 3}, 5},
		{"wrong outcome but home goals match", ScoreLine{1, 0}, ScoreLine{1, 3}, 3},
		{"wrong outcome but away goals match", ScoreLine{0, 2}, ScoreLine{3, 2}, 3},
		{"nothing right", ScoreLine{0, 0}, ScoreLine{1, 2}, 0},
		{"predicted draw, actual win, one side matches", ScoreLine{1, 1}, ScoreLine{1, 0}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchScore(tt.pred, tt.actual))
		})
	}
}

// Right-winner and one-side-goal-count can both hold; only the higher
// priority rule may pay out.
func TestMatchScoreNoStacking(t *testing.T) {
	// Same winner AND home goal count matches: must pay 5, not 5+3.
	assert.Equal(t, 5, MatchScore(ScoreLine{2, 1}, ScoreLine{2, 0}))
}

// Swapping home and away on both lines at once never changes the score.
func TestMatchScoreMirrorSymmetry(t *testing.T) {
	for ph := 0; ph <= 3; ph++ {
		for pa := 0; pa <= 3; pa++ {
			for ah := 0; ah <= 3; ah++ {
				for aa := 0; aa <= 3; aa++ {
					direct := MatchScore(ScoreLine{ph, pa}, ScoreLine{ah, aa})
					mirrored := MatchScore(ScoreLine{pa, ph}, ScoreLine{aa, ah})
					assert.Equalf(t, direct, mirrored,
						"pred %d-%d actual %d-%d", ph, pa, ah, aa)
				}
			}
		}
	}
}

func TestMatchScoreExactAlwaysWins(t *testing.T) {
	for h := 0; h <= 4; h++ {
		for a := 0; a <= 4; a++ {
			assert.Equal(t, 10, MatchScore(ScoreLine{h, a}, ScoreLine{h, a}))
		}
	}
}

func TestGroupOrderScore(t *testing.T) {
	x, y, z := intPtr(1), intPtr(2), intPtr(3)

	tests := []struct {
		name            string
		pFirst, pSecond *int
		aFirst, aSecond *int
		want            int
	}{
		{"exact order", x, y, x, y, 10},
		{"both right but swapped", x, y, y, x, 4},
		{"first place only", x, z, x, y, 5},
		{"second place only", z, y, x, y, 5},
		{"nothing right", z, z, x, y, 0},
		{"incomplete prediction", nil, y, x, y, 0},
		{"incomplete result", x, y, x, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupOrderScore(tt.pFirst, tt.pSecond, tt.aFirst, tt.aSecond))
		})
	}
}

// A guess naming the same team twice must never outscore the honest
// partial hit it contains.
func TestGroupOrderScoreDuplicateTeamGuess(t *testing.T) {
	x, y := intPtr(1), intPtr(2)
	assert.Equal(t, 5, GroupOrderScore(x, x, x, y))
	assert.Equal(t, 5, GroupOrderScore(y, y, x, y))
}

func TestFinalScore(t *testing.T) {
	full := FinalPlacements{
		Champion:    intPtr(1),
		RunnerUp:    intPtr(2),
		ThirdPlace:  intPtr(3),
		FourthPlace: intPtr(4),
		FinalScore:  &ScoreLine{2, 1},
	}

	tests := []struct {
		name string
		pred FinalPlacements
		want int
	}{
		{"everything right", full, 50 + 25 + 15 + 10 + 20 + 35},
		{
			"podium right, score wrong",
			FinalPlacements{
				Champion:    intPtr(1),
				RunnerUp:    intPtr(2),
				ThirdPlace:  intPtr(3),
				FourthPlace: intPtr(4),
				FinalScore:  &ScoreLine{0, 0},
			},
			50 + 25 + 15 + 10 + 35,
		},
		{
			"champion only",
			FinalPlacements{Champion: intPtr(1), RunnerUp: intPtr(3)},
			50,
		},
		{
			"score only",
			FinalPlacements{FinalScore: &ScoreLine{2, 1}},
			20,
		},
		{"empty guess", FinalPlacements{}, 0},
		{
			"three placements, no bonus",
			FinalPlacements{
				Champion:    intPtr(1),
				RunnerUp:    intPtr(2),
				ThirdPlace:  intPtr(3),
				FourthPlace: intPtr(9),
			},
			50 + 25 + 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FinalScore(tt.pred, full))
		})
	}
}

// The bonus needs four actual placements present, not just four equal
// nil-to-nil comparisons.
func TestFinalScoreIncompleteActual(t *testing.T) {
	pred := FinalPlacements{
		Champion:    intPtr(1),
		RunnerUp:    intPtr(2),
		ThirdPlace:  intPtr(3),
		FourthPlace: intPtr(4),
	}
	actual := FinalPlacements{
		Champion: intPtr(1),
		RunnerUp: intPtr(2),
	}
	assert.Equal(t, 50+25, FinalScore(pred, actual))
	assert.Equal(t, 0, FinalScore(FinalPlacements{}, FinalPlacements{}))
}
