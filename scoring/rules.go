// Package scoring implements the point rules of the pool: match score
// guesses, group classification guesses and the tournament-final guess.
// Everything in here is pure; persistence and orchestration live in the
// services layer.
package scoring

// ScoreLine is a full-time score.
type ScoreLine struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type Outcome string

const (
	OutcomeHomeWin Outcome = "home_win"
	OutcomeAwayWin Outcome = "away_win"
	OutcomeDraw    Outcome = "draw"
)

func (s ScoreLine) Outcome() Outcome {
	switch {
	case s.Home > s.Away:
		return OutcomeHomeWin
	case s.Away > s.Home:
		return OutcomeAwayWin
	default:
		return OutcomeDraw
	}
}

// Match scoring values.
const (
	PointsExactScore   = 10
	PointsDrawOutcome  = 7
	PointsRightWinner  = 5
	PointsOneSideGoals = 3
)

// Group classification values.
const (
	PointsGroupExactOrder = 10
	PointsGroupOnePlace   = 5
	PointsGroupSwapped    = 4
)

// Tournament final values.
const (
	PointsChampion        = 50
	PointsRunnerUp        = 25
	PointsThirdPlace      = 15
	PointsFourthPlace     = 10
	PointsFinalExactScore = 20
	PointsFullPodiumBonus = 35
)

type matchRule struct {
	applies func(pred, actual ScoreLine) bool
	points  int
}

// matchRules is evaluated top to bottom; the first rule that applies
// wins and nothing stacks.
var matchRules = []matchRule{
	{
		// Exact score.
		applies: func(pred, actual ScoreLine) bool {
			return pred.Home == actual.Home && pred.Away == actual.Away
		},
		points: PointsExactScore,
	},
	{
		// Predicted a draw, got a draw (different score).
		applies: func(pred, actual ScoreLine) bool {
			return pred.Outcome() == OutcomeDraw && actual.Outcome() == OutcomeDraw
		},
		points: PointsDrawOutcome,
	},
	{
		// Right winner.
		applies: func(pred, actual ScoreLine) bool {
			o := actual.Outcome()
			return o != OutcomeDraw && pred.Outcome() == o
		},
		points: PointsRightWinner,
	},
	{
		// Goal count right on at least one side.
		applies: func(pred, actual ScoreLine) bool {
			return pred.Home == actual.Home || pred.Away == actual.Away
		},
		points: PointsOneSideGoals,
	},
}

// MatchScore returns the points a predicted score earns against the
// actual one.
func MatchScore(pred, actual ScoreLine) int {
	for _, rule := range matchRules {
		if rule.applies(pred, actual) {
			return rule.points
		}
	}
	return 0
}

// GroupOrderScore returns the points a predicted group classification
// (first and second place team IDs) earns against the actual one.
// Any nil input means the guess or the result is incomplete and scores
// zero. Partial hits are additive: a lone first-place hit and a lone
// second-place hit are each worth PointsGroupOnePlace.
func GroupOrderScore(predFirst, predSecond, actualFirst, actualSecond *int) int {
	if predFirst == nil || predSecond == nil || actualFirst == nil || actualSecond == nil {
		return 0
	}

	firstHit := *predFirst == *actualFirst
	secondHit := *predSecond == *actualSecond

	if firstHit && secondHit {
		return PointsGroupExactOrder
	}
	if *predFirst == *actualSecond && *predSecond == *actualFirst {
		return PointsGroupSwapped
	}

	points := 0
	if firstHit {
		points += PointsGroupOnePlace
	}
	if secondHit {
		points += PointsGroupOnePlace
	}
	return points
}

// FinalPlacements is a podium guess or result: the four placements plus
// the final-match score. Nil fields never contribute points.
type FinalPlacements struct {
	Champion    *int
	RunnerUp    *int
	ThirdPlace  *int
	FourthPlace *int
	FinalScore  *ScoreLine
}

func intsEqual(a, b *int) bool {
	return a != nil && b != nil && *a == *b
}

// FinalScore returns the points a podium guess earns against the actual
// tournament result. Unlike match scoring this is additive: every
// independently correct component contributes, and nailing the whole
// podium earns an extra bonus.
func FinalScore(pred, actual FinalPlacements) int {
	points := 0

	championHit := intsEqual(pred.Champion, actual.Champion)
	runnerUpHit := intsEqual(pred.RunnerUp, actual.RunnerUp)
	thirdHit := intsEqual(pred.ThirdPlace, actual.ThirdPlace)
	fourthHit := intsEqual(pred.FourthPlace, actual.FourthPlace)

	if championHit {
		points += PointsChampion
	}
	if runnerUpHit {
		points += PointsRunnerUp
	}
	if thirdHit {
		points += PointsThirdPlace
	}
	if fourthHit {
		points += PointsFourthPlace
	}

	if pred.FinalScore != nil && actual.FinalScore != nil &&
		pred.FinalScore.Home == actual.FinalScore.Home &&
		pred.FinalScore.Away == actual.FinalScore.Away {
		points += PointsFinalExactScore
	}

	if championHit && runnerUpHit && thirdHit && fourthHit {
		points += PointsFullPodiumBonus
	}

	return points
}
