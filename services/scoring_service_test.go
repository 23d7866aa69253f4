package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gmfurlan/bolao-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

type scoringFixture struct {
	matchRepo            *fakeMatchRepo
	matchPredictionRepo  *fakeMatchPredictionRepo
	groupResultRepo      *fakeGroupResultRepo
	groupPredictionRepo  *fakeGroupPredictionRepo
	tournamentResultRepo *fakeTournamentResultRepo
	finalPredictionRepo  *fakeFinalPredictionRepo
	ledgerRepo           *fakeLedgerRepo
	service              ScoringService
}

func newScoringFixture() *scoringFixture {
	f := &scoringFixture{
		matchRepo:            &fakeMatchRepo{matches: make(map[int]*models.Match)},
		matchPredictionRepo:  &fakeMatchPredictionRepo{},
		groupResultRepo:      &fakeGroupResultRepo{results: make(map[int]*models.GroupResult)},
		groupPredictionRepo:  &fakeGroupPredictionRepo{},
		tournamentResultRepo: &fakeTournamentResultRepo{},
		finalPredictionRepo:  &fakeFinalPredictionRepo{},
		ledgerRepo:           newFakeLedgerRepo(),
	}
	f.service = NewScoringService(
		f.matchRepo,
		f.matchPredictionRepo,
		f.groupResultRepo,
		f.groupPredictionRepo,
		f.tournamentResultRepo,
		f.finalPredictionRepo,
		f.ledgerRepo,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return f
}

func (f *scoringFixture) addFinishedMatch(id, home, away int) {
	f.matchRepo.matches[id] = &models.Match{
		ID: id, HomeTeamID: 1, AwayTeamID: 2,
		MatchTime: time.Now(), Stage: "Group Stage",
		HomeScore: &home, AwayScore: &away, Finished: true,
	}
}

func (f *scoringFixture) userTotal(t *testing.T, userID int) int {
	t.Helper()
	total, err := f.ledgerRepo.GetUserTotal(context.Background(), userID)
	require.NoError(t, err)
	return total.Points
}

func TestProcessMatchResultAwardsPoints(t *testing.T) {
	f := newScoringFixture()
	f.addFinishedMatch(10, 2, 1)
	f.matchPredictionRepo.predictions = []*models.MatchPrediction{
		{ID: 1, UserID: 1, MatchID: 10, HomeScore: 2, AwayScore: 1}, // exact: 10
		{ID: 2, UserID: 2, MatchID: 10, HomeScore: 3, AwayScore: 0}, // winner: 5
		{ID: 3, UserID: 3, MatchID: 10, HomeScore: 0, AwayScore: 1}, // away goals: 3
	}

	require.NoError(t, f.service.ProcessMatchResult(context.Background(), 10))

	assert.Equal(t, 10, f.userTotal(t, 1))
	assert.Equal(t, 5, f.userTotal(t, 2))
	assert.Equal(t, 3, f.userTotal(t, 3))
	assert.Equal(t, 3, f.ledgerRepo.entryCount())
}

func TestProcessMatchResultIsIdempotent(t *testing.T) {
	f := newScoringFixture()
	f.addFinishedMatch(10, 1, 1)
	f.matchPredictionRepo.predictions = []*models.MatchPrediction{
		{ID: 1, UserID: 1, MatchID: 10, HomeScore: 1, AwayScore: 1},
		{ID: 2, UserID: 2, MatchID: 10, HomeScore: 2, AwayScore: 2},
	}

	ctx := context.Background()
	require.NoError(t, f.service.ProcessMatchResult(ctx, 10))
	firstRun := []int{f.userTotal(t, 1), f.userTotal(t, 2)}
	firstEntries := f.ledgerRepo.entryCount()

	require.NoError(t, f.service.ProcessMatchResult(ctx, 10))

	assert.Equal(t, firstRun, []int{f.userTotal(t, 1), f.userTotal(t, 2)})
	assert.Equal(t, firstEntries, f.ledgerRepo.entryCount())
}

func TestProcessMatchResultAfterCorrection(t *testing.T) {
	f := newScoringFixture()
	f.addFinishedMatch(10, 2, 1)
	f.matchPredictionRepo.predictions = []*models.MatchPrediction{
		{ID: 1, UserID: 1, MatchID: 10, HomeScore: 2, AwayScore: 1},
	}

	ctx := context.Background()
	require.NoError(t, f.service.ProcessMatchResult(ctx, 10))
	require.Equal(t, 10, f.userTotal(t, 1))

	// Admin corrects the result; the exact hit becomes a miss.
	require.NoError(t, f.matchRepo.UpdateResult(ctx, 10, 0, 0))
	require.NoError(t, f.service.ProcessMatchResult(ctx, 10))

	assert.Equal(t, 0, f.userTotal(t, 1), "total must carry nothing over from the old score")
	assert.Equal(t, 1, f.ledgerRepo.entryCount())
}

func TestProcessMatchResultRequiresFinishedMatch(t *testing.T) {
	f := newScoringFixture()
	f.matchRepo.matches[10] = &models.Match{ID: 10, HomeTeamID: 1, AwayTeamID: 2}
	f.matchPredictionRepo.predictions = []*models.MatchPrediction{
		{ID: 1, UserID: 1, MatchID: 10, HomeScore: 1, AwayScore: 0},
	}

	err := f.service.ProcessMatchResult(context.Background(), 10)

	assert.ErrorIs(t, err, ErrMatchNotFinished)
	assert.Equal(t, 0, f.ledgerRepo.entryCount())
}

func TestProcessMatchResultUnknownMatch(t *testing.T) {
	f := newScoringFixture()
	assert.ErrorIs(t, f.service.ProcessMatchResult(context.Background(), 99), ErrMatchNotFound)
}

func TestProcessMatchResultSkipsMalformedPrediction(t *testing.T) {
	f := newScoringFixture()
	f.addFinishedMatch(10, 1, 0)
	f.matchPredictionRepo.predictions = []*models.MatchPrediction{
		{ID: 1, UserID: 0, MatchID: 10, HomeScore: 1, AwayScore: 0}, // no user ref
		{ID: 2, UserID: 2, MatchID: 10, HomeScore: 1, AwayScore: 0},
	}

	require.NoError(t, f.service.ProcessMatchResult(context.Background(), 10))

	assert.Equal(t, 1, f.ledgerRepo.entryCount())
	assert.Equal(t, 10, f.userTotal(t, 2))
}

func TestProcessMatchResultAbortsOnStoreError(t *testing.T) {
	f := newScoringFixture()
	f.addFinishedMatch(10, 2, 1)
	f.matchPredictionRepo.predictions = []*models.MatchPrediction{
		{ID: 1, UserID: 1, MatchID: 10, HomeScore: 2, AwayScore: 1},
		{ID: 2, UserID: 2, MatchID: 10, HomeScore: 0, AwayScore: 0},
	}
	storeErr := errors.New("connection reset")
	f.ledgerRepo.upsertErr = storeErr

	err := f.service.ProcessMatchResult(context.Background(), 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)

	// Totals must not move when the pass aborts.
	assert.Equal(t, 0, f.ledgerRepo.totalWrites)
	assert.Equal(t, 0, f.userTotal(t, 1))
	assert.Equal(t, 0, f.userTotal(t, 2))
}

func TestProcessMatchResultNoPredictions(t *testing.T) {
	f := newScoringFixture()
	f.addFinishedMatch(10, 1, 0)
	require.NoError(t, f.service.ProcessMatchResult(context.Background(), 10))
	assert.Equal(t, 0, f.ledgerRepo.entryCount())
}

func TestProcessGroupResult(t *testing.T) {
	f := newScoringFixture()
	f.groupResultRepo.results[5] = &models.GroupResult{
		ID: 1, GroupID: 5, FirstTeamID: 100, SecondTeamID: 200, Completed: true,
	}
	f.groupPredictionRepo.predictions = []*models.GroupPrediction{
		{ID: 1, UserID: 1, GroupID: 5, FirstTeamID: 100, SecondTeamID: 200}, // exact: 10
		{ID: 2, UserID: 2, GroupID: 5, FirstTeamID: 200, SecondTeamID: 100}, // swapped: 4
		{ID: 3, UserID: 3, GroupID: 5, FirstTeamID: 100, SecondTeamID: 300}, // first only: 5
	}

	require.NoError(t, f.service.ProcessGroupResult(context.Background(), 5))

	assert.Equal(t, 10, f.userTotal(t, 1))
	assert.Equal(t, 4, f.userTotal(t, 2))
	assert.Equal(t, 5, f.userTotal(t, 3))
}

func TestProcessGroupResultRequiresCompletedResult(t *testing.T) {
	f := newScoringFixture()
	f.groupResultRepo.results[5] = &models.GroupResult{
		ID: 1, GroupID: 5, FirstTeamID: 100, SecondTeamID: 200, Completed: false,
	}
	assert.ErrorIs(t, f.service.ProcessGroupResult(context.Background(), 5), ErrGroupResultIncomplete)

	assert.ErrorIs(t, f.service.ProcessGroupResult(context.Background(), 99), ErrGroupResultIncomplete)
}

func TestProcessTournamentFinal(t *testing.T) {
	f := newScoringFixture()
	f.tournamentResultRepo.result = &models.TournamentResult{
		ID:             1,
		ChampionID:     intPtr(1),
		RunnerUpID:     intPtr(2),
		ThirdPlaceID:   intPtr(3),
		FourthPlaceID:  intPtr(4),
		FinalHomeScore: intPtr(2),
		FinalAwayScore: intPtr(0),
		Completed:      true,
	}
	f.finalPredictionRepo.predictions = []*models.FinalPrediction{
		{
			ID:             1,
			UserID:         1,
			ChampionID:     intPtr(1),
			RunnerUpID:     intPtr(2),
			ThirdPlaceID:   intPtr(3),
			FourthPlaceID:  intPtr(4),
			FinalHomeScore: intPtr(2),
			FinalAwayScore: intPtr(0),
		},
		{ID: 2, UserID: 2, ChampionID: intPtr(1)},
	}

	require.NoError(t, f.service.ProcessTournamentFinal(context.Background()))

	assert.Equal(t, 155, f.userTotal(t, 1))
	assert.Equal(t, 50, f.userTotal(t, 2))
}

func TestProcessTournamentFinalRequiresResult(t *testing.T) {
	f := newScoringFixture()
	assert.ErrorIs(t, f.service.ProcessTournamentFinal(context.Background()), ErrFinalResultIncomplete)
}

// Totals stay the sum of the user's ledger entries across categories.
func TestTotalsAccumulateAcrossCategories(t *testing.T) {
	f := newScoringFixture()
	ctx := context.Background()

	f.addFinishedMatch(10, 2, 1)
	f.matchPredictionRepo.predictions = []*models.MatchPrediction{
		{ID: 1, UserID: 1, MatchID: 10, HomeScore: 2, AwayScore: 1},
	}
	f.groupResultRepo.results[5] = &models.GroupResult{
		ID: 1, GroupID: 5, FirstTeamID: 100, SecondTeamID: 200, Completed: true,
	}
	f.groupPredictionRepo.predictions = []*models.GroupPrediction{
		{ID: 1, UserID: 1, GroupID: 5, FirstTeamID: 100, SecondTeamID: 200},
	}

	require.NoError(t, f.service.ProcessMatchResult(ctx, 10))
	require.NoError(t, f.service.ProcessGroupResult(ctx, 5))

	assert.Equal(t, 20, f.userTotal(t, 1))

	sum, err := f.ledgerRepo.SumPointsByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, sum, f.userTotal(t, 1))
}
