package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gmfurlan/bolao-backend/models"
	"github.com/gmfurlan/bolao-backend/repositories"
	"github.com/gmfurlan/bolao-backend/scoring"
)

// RankingService rebuilds the leaderboard on demand. It scores every
// prediction against the current results with the rules engine
// directly, independent of the persisted ledger, and performs no
// writes. After a completed scoring pass both read paths agree.
type RankingService interface {
	BuildRanking(ctx context.Context) ([]models.RankingEntry, error)
}

type rankingService struct {
	userRepo             repositories.UserRepository
	matchRepo            repositories.MatchRepository
	matchPredictionRepo  repositories.MatchPredictionRepository
	groupResultRepo      repositories.GroupResultRepository
	groupPredictionRepo  repositories.GroupPredictionRepository
	tournamentResultRepo repositories.TournamentResultRepository
	finalPredictionRepo  repositories.FinalPredictionRepository
}

func NewRankingService(
	userRepo repositories.UserRepository,
	matchRepo repositories.MatchRepository,
	matchPredictionRepo repositories.MatchPredictionRepository,
	groupResultRepo repositories.GroupResultRepository,
	groupPredictionRepo repositories.GroupPredictionRepository,
	tournamentResultRepo repositories.TournamentResultRepository,
	finalPredictionRepo repositories.FinalPredictionRepository,
) RankingService {
	return &rankingService{
		userRepo:             userRepo,
		matchRepo:            matchRepo,
		matchPredictionRepo:  matchPredictionRepo,
		groupResultRepo:      groupResultRepo,
		groupPredictionRepo:  groupPredictionRepo,
		tournamentResultRepo: tournamentResultRepo,
		finalPredictionRepo:  finalPredictionRepo,
	}
}

func (s *rankingService) BuildRanking(ctx context.Context) ([]models.RankingEntry, error) {
	users, err := s.userRepo.ListByRole(ctx, models.RolePlayer)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	finishedMatches, err := s.matchRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load finished matches: %w", err)
	}
	resultByMatch := make(map[int]scoring.ScoreLine, len(finishedMatches))
	for _, m := range finishedMatches {
		if m.HasResult() {
			resultByMatch[m.ID] = scoring.ScoreLine{Home: *m.HomeScore, Away: *m.AwayScore}
		}
	}

	matchPredictions, err := s.matchPredictionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load match predictions: %w", err)
	}

	groupResults, err := s.groupResultRepo.ListCompleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load group results: %w", err)
	}
	resultByGroup := make(map[int]*models.GroupResult, len(groupResults))
	for _, gr := range groupResults {
		resultByGroup[gr.GroupID] = gr
	}

	groupPredictions, err := s.groupPredictionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load group predictions: %w", err)
	}

	tournamentResult, err := s.tournamentResultRepo.Get(ctx)
	if err != nil && !errors.Is(err, repositories.ErrTournamentResultNotFound) {
		return nil, fmt.Errorf("failed to load tournament result: %w", err)
	}

	finalPredictions, err := s.finalPredictionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load final predictions: %w", err)
	}
	finalByUser := make(map[int]*models.FinalPrediction, len(finalPredictions))
	for _, fp := range finalPredictions {
		finalByUser[fp.UserID] = fp
	}

	type tally struct {
		points    int
		matches   int
		exactHits int
	}
	tallies := make(map[int]*tally, len(users))
	for _, u := range users {
		tallies[u.ID] = &tally{}
	}

	for _, p := range matchPredictions {
		t, ok := tallies[p.UserID]
		if !ok {
			continue // admin or deleted user
		}
		actual, finished := resultByMatch[p.MatchID]
		if !finished {
			continue
		}
		points := scoring.MatchScore(scoring.ScoreLine{Home: p.HomeScore, Away: p.AwayScore}, actual)
		t.points += points
		t.matches++
		if points == scoring.PointsExactScore {
			t.exactHits++
		}
	}

	for _, p := range groupPredictions {
		t, ok := tallies[p.UserID]
		if !ok {
			continue
		}
		result, completed := resultByGroup[p.GroupID]
		if !completed {
			continue
		}
		t.points += scoring.GroupOrderScore(
			&p.FirstTeamID, &p.SecondTeamID,
			&result.FirstTeamID, &result.SecondTeamID,
		)
	}

	if tournamentResult != nil && tournamentResult.Completed {
		actual := finalPlacementsFromResult(tournamentResult)
		for userID, t := range tallies {
			if fp, ok := finalByUser[userID]; ok {
				t.points += scoring.FinalScore(finalPlacementsFromPrediction(fp), actual)
			}
		}
	}

	ranking := make([]models.RankingEntry, 0, len(users))
	for _, u := range users {
		t := tallies[u.ID]
		accuracy := 0
		if t.matches > 0 {
			accuracy = t.exactHits * 100 / t.matches
		}
		ranking = append(ranking, models.RankingEntry{
			UserID:           u.ID,
			Name:             u.Name,
			Points:           t.points,
			MatchesPredicted: t.matches,
			Accuracy:         accuracy,
		})
	}

	slices.SortStableFunc(ranking, func(a, b models.RankingEntry) int {
		if a.Points != b.Points {
			return b.Points - a.Points
		}
		return strings.Compare(a.Name, b.Name)
	})

	return ranking, nil
}
