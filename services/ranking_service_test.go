package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gmfurlan/bolao-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rankingFixture struct {
	*scoringFixture
	userRepo *fakeUserRepo
	service  RankingService
}

func newRankingFixture() *rankingFixture {
	sf := newScoringFixture()
	f := &rankingFixture{
		scoringFixture: sf,
		userRepo:       &fakeUserRepo{},
	}
	f.service = NewRankingService(
		f.userRepo,
		sf.matchRepo,
		sf.matchPredictionRepo,
		sf.groupResultRepo,
		sf.groupPredictionRepo,
		sf.tournamentResultRepo,
		sf.finalPredictionRepo,
	)
	return f
}

func (f *rankingFixture) addPlayer(id int, name string) {
	f.userRepo.users = append(f.userRepo.users, &models.User{
		ID: id, Name: name, Role: models.RolePlayer,
	})
}

func TestBuildRankingOrdersByPointsThenName(t *testing.T) {
	f := newRankingFixture()
	f.addPlayer(1, "Carla")
	f.addPlayer(2, "Ana")
	f.addPlayer(3, "Bruno")
	f.addFinishedMatch(10, 2, 0)
	f.matchPredictionRepo.predictions = []*models.MatchPrediction{
		{ID: 1, UserID: 1, MatchID: 10, HomeScore: 2, AwayScore: 0}, // 10
		{ID: 2, UserID: 2, MatchID: 10, HomeScore: 1, AwayScore: 0}, // 5
		{ID: 3, UserID: 3, MatchID: 10, HomeScore: 3, AwayScore: 0}, // 5
	}

	ranking, err := f.service.BuildRanking(context.Background())
	require.NoError(t, err)
	require.Len(t, ranking, 3)

	assert.Equal(t, "Carla", ranking[0].Name)
	assert.Equal(t, 10, ranking[0].Points)
	// Ana and Bruno are tied on 5; ties break by name ascending.
	assert.Equal(t, "Ana", ranking[1].Name)
	assert.Equal(t, "Bruno", ranking[2].Name)
}

func TestBuildRankingAccuracy(t *testing.T) {
	f := newRankingFixture()
	f.addPlayer(1, "Ana")
	f.addPlayer(2, "Bruno")
	f.addFinishedMatch(10, 1, 0)
	f.addFinishedMatch(11, 2, 2)
	// Match 12 has no result yet; predictions for it must not count.
	f.matchRepo.matches[12] = &models.Match{
		ID: 12, HomeTeamID: 1, AwayTeamID: 2, MatchTime: time.Now(),
	}
	f.matchPredictionRepo.predictions = []*models.MatchPrediction{
		{ID: 1, UserID: 1, MatchID: 10, HomeScore: 1, AwayScore: 0}, // exact
		{ID: 2, UserID: 1, MatchID: 11, HomeScore: 1, AwayScore: 1}, // draw, not exact
		{ID: 3, UserID: 1, MatchID: 12, HomeScore: 1, AwayScore: 0}, // unfinished
	}

	ranking, err := f.service.BuildRanking(context.Background())
	require.NoError(t, err)
	require.Len(t, ranking, 2)

	ana := ranking[0]
	assert.Equal(t, "Ana", ana.Name)
	assert.Equal(t, 2, ana.MatchesPredicted)
	assert.Equal(t, 50, ana.Accuracy)

	// Bruno predicted nothing: zero matches, zero accuracy, no division error.
	bruno := ranking[1]
	assert.Equal(t, 0, bruno.MatchesPredicted)
	assert.Equal(t, 0, bruno.Accuracy)
}

func TestBuildRankingIncludesAllCategories(t *testing.T) {
	f := newRankingFixture()
	f.addPlayer(1, "Ana")
	f.addFinishedMatch(10, 2, 1)
	f.matchPredictionRepo.predictions = []*models.MatchPrediction{
		{ID: 1, UserID: 1, MatchID: 10, HomeScore: 2, AwayScore: 1},
	}
	f.groupResultRepo.results[5] = &models.GroupResult{
		ID: 1, GroupID: 5, FirstTeamID: 100, SecondTeamID: 200, Completed: true,
	}
	f.groupPredictionRepo.predictions = []*models.GroupPrediction{
		{ID: 1, UserID: 1, GroupID: 5, FirstTeamID: 200, SecondTeamID: 100},
	}
	f.tournamentResultRepo.result = &models.TournamentResult{
		ID: 1, ChampionID: intPtr(7), Completed: true,
	}
	f.finalPredictionRepo.predictions = []*models.FinalPrediction{
		{ID: 1, UserID: 1, ChampionID: intPtr(7)},
	}

	ranking, err := f.service.BuildRanking(context.Background())
	require.NoError(t, err)
	require.Len(t, ranking, 1)

	// 10 (exact match) + 4 (swapped group) + 50 (champion)
	assert.Equal(t, 64, ranking[0].Points)
}

func TestBuildRankingIgnoresIncompleteTournamentResult(t *testing.T) {
	f := newRankingFixture()
	f.addPlayer(1, "Ana")
	f.tournamentResultRepo.result = &models.TournamentResult{
		ID: 1, ChampionID: intPtr(7), Completed: false,
	}
	f.finalPredictionRepo.predictions = []*models.FinalPrediction{
		{ID: 1, UserID: 1, ChampionID: intPtr(7)},
	}

	ranking, err := f.service.BuildRanking(context.Background())
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	assert.Equal(t, 0, ranking[0].Points)
}

// The ledger read path (scoring service totals) and the recomputed read
// path (ranking builder) must agree after a completed pass.
func TestRankingAgreesWithLedgerTotals(t *testing.T) {
	f := newRankingFixture()
	f.addPlayer(1, "Ana")
	f.addPlayer(2, "Bruno")
	f.addFinishedMatch(10, 2, 1)
	f.addFinishedMatch(11, 0, 0)
	f.matchPredictionRepo.predictions = []*models.MatchPrediction{
		{ID: 1, UserID: 1, MatchID: 10, HomeScore: 2, AwayScore: 1},
		{ID: 2, UserID: 1, MatchID: 11, HomeScore: 1, AwayScore: 1},
		{ID: 3, UserID: 2, MatchID: 10, HomeScore: 1, AwayScore: 0},
		{ID: 4, UserID: 2, MatchID: 11, HomeScore: 2, AwayScore: 0},
	}
	f.groupResultRepo.results[5] = &models.GroupResult{
		ID: 1, GroupID: 5, FirstTeamID: 100, SecondTeamID: 200, Completed: true,
	}
	f.groupPredictionRepo.predictions = []*models.GroupPrediction{
		{ID: 1, UserID: 1, GroupID: 5, FirstTeamID: 100, SecondTeamID: 300},
		{ID: 2, UserID: 2, GroupID: 5, FirstTeamID: 100, SecondTeamID: 200},
	}

	scoringService := NewScoringService(
		f.matchRepo, f.matchPredictionRepo,
		f.groupResultRepo, f.groupPredictionRepo,
		f.tournamentResultRepo, f.finalPredictionRepo,
		f.ledgerRepo,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	ctx := context.Background()
	require.NoError(t, scoringService.ProcessMatchResult(ctx, 10))
	require.NoError(t, scoringService.ProcessMatchResult(ctx, 11))
	require.NoError(t, scoringService.ProcessGroupResult(ctx, 5))

	ranking, err := f.service.BuildRanking(ctx)
	require.NoError(t, err)

	for _, entry := range ranking {
		total, err := f.ledgerRepo.GetUserTotal(ctx, entry.UserID)
		require.NoError(t, err)
		assert.Equalf(t, total.Points, entry.Points, "user %s", entry.Name)
	}
}
