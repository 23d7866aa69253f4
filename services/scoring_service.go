package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gmfurlan/bolao-backend/models"
	"github.com/gmfurlan/bolao-backend/repositories"
	"github.com/gmfurlan/bolao-backend/scoring"
	"golang.org/x/sync/errgroup"
)

// scoreWorkers bounds the per-prediction fan-out inside one pass.
const scoreWorkers = 8

// ScoringService turns real outcomes into ledger entries and user
// totals. Every Process* call is a full rescore for its outcome:
// ledger entries are upserted by prediction, and totals are recomputed
// by summation, so re-running after a correction never double-counts.
type ScoringService interface {
	ProcessMatchResult(ctx context.Context, matchID int) error
	ProcessGroupResult(ctx context.Context, groupID int) error
	ProcessTournamentFinal(ctx context.Context) error
}

type scoringService struct {
	matchRepo            repositories.MatchRepository
	matchPredictionRepo  repositories.MatchPredictionRepository
	groupResultRepo      repositories.GroupResultRepository
	groupPredictionRepo  repositories.GroupPredictionRepository
	tournamentResultRepo repositories.TournamentResultRepository
	finalPredictionRepo  repositories.FinalPredictionRepository
	ledgerRepo           repositories.LedgerRepository
	logger               *slog.Logger
}

func NewScoringService(
	matchRepo repositories.MatchRepository,
	matchPredictionRepo repositories.MatchPredictionRepository,
	groupResultRepo repositories.GroupResultRepository,
	groupPredictionRepo repositories.GroupPredictionRepository,
	tournamentResultRepo repositories.TournamentResultRepository,
	finalPredictionRepo repositories.FinalPredictionRepository,
	ledgerRepo repositories.LedgerRepository,
	logger *slog.Logger,
) ScoringService {
	return &scoringService{
		matchRepo:            matchRepo,
		matchPredictionRepo:  matchPredictionRepo,
		groupResultRepo:      groupResultRepo,
		groupPredictionRepo:  groupPredictionRepo,
		tournamentResultRepo: tournamentResultRepo,
		finalPredictionRepo:  finalPredictionRepo,
		ledgerRepo:           ledgerRepo,
		logger:               logger,
	}
}

// scoredEntry pairs a prediction with the points it earned this pass.
type scoredEntry struct {
	userID       int
	predictionID int
	points       int
}

func (s *scoringService) ProcessMatchResult(ctx context.Context, matchID int) error {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to load match %d: %w", matchID, err)
	}
	if !match.HasResult() {
		return ErrMatchNotFinished
	}
	actual := scoring.ScoreLine{Home: *match.HomeScore, Away: *match.AwayScore}

	predictions, err := s.matchPredictionRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return fmt.Errorf("failed to load predictions for match %d: %w", matchID, err)
	}

	entries := make([]scoredEntry, 0, len(predictions))
	for _, p := range predictions {
		if p.UserID <= 0 {
			s.logger.Warn("skipping malformed match prediction",
				slog.Int("prediction_id", p.ID), slog.Int("match_id", matchID))
			continue
		}
		points := scoring.MatchScore(scoring.ScoreLine{Home: p.HomeScore, Away: p.AwayScore}, actual)
		entries = append(entries, scoredEntry{userID: p.UserID, predictionID: p.ID, points: points})
	}

	return s.persistPass(ctx, entries, models.CategoryMatch, matchID)
}

func (s *scoringService) ProcessGroupResult(ctx context.Context, groupID int) error {
	result, err := s.groupResultRepo.GetByGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupResultNotFound) {
			return ErrGroupResultIncomplete
		}
		return fmt.Errorf("failed to load result for group %d: %w", groupID, err)
	}
	if !result.Completed {
		return ErrGroupResultIncomplete
	}

	predictions, err := s.groupPredictionRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to load predictions for group %d: %w", groupID, err)
	}

	entries := make([]scoredEntry, 0, len(predictions))
	for _, p := range predictions {
		if p.UserID <= 0 {
			s.logger.Warn("skipping malformed group prediction",
				slog.Int("prediction_id", p.ID), slog.Int("group_id", groupID))
			continue
		}
		points := scoring.GroupOrderScore(
			&p.FirstTeamID, &p.SecondTeamID,
			&result.FirstTeamID, &result.SecondTeamID,
		)
		entries = append(entries, scoredEntry{userID: p.UserID, predictionID: p.ID, points: points})
	}

	return s.persistPass(ctx, entries, models.CategoryGroupClassification, groupID)
}

func (s *scoringService) ProcessTournamentFinal(ctx context.Context) error {
	result, err := s.tournamentResultRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentResultNotFound) {
			return ErrFinalResultIncomplete
		}
		return fmt.Errorf("failed to load tournament result: %w", err)
	}
	if !result.Completed {
		return ErrFinalResultIncomplete
	}
	actual := finalPlacementsFromResult(result)

	predictions, err := s.finalPredictionRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load final predictions: %w", err)
	}

	entries := make([]scoredEntry, 0, len(predictions))
	for _, p := range predictions {
		if p.UserID <= 0 {
			s.logger.Warn("skipping malformed final prediction", slog.Int("prediction_id", p.ID))
			continue
		}
		points := scoring.FinalScore(finalPlacementsFromPrediction(p), actual)
		entries = append(entries, scoredEntry{userID: p.UserID, predictionID: p.ID, points: points})
	}

	return s.persistPass(ctx, entries, models.CategoryTournamentFinal, result.ID)
}

// persistPass writes one ledger entry per scored prediction, then
// recomputes the total of every affected user from the ledger. Entry
// writes are independent of each other and run concurrently; totals are
// resummed only after every write of the pass has landed.
func (s *scoringService) persistPass(ctx context.Context, entries []scoredEntry, category models.PointsCategory, relatedID int) error {
	if len(entries) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scoreWorkers)

	var mu sync.Mutex
	affected := make(map[int]struct{}, len(entries))

	for _, e := range entries {
		e := e
		g.Go(func() error {
			entry := &models.PointsLedgerEntry{
				UserID:       e.userID,
				PredictionID: e.predictionID,
				Category:     category,
				Points:       e.points,
				RelatedID:    relatedID,
			}
			if err := s.ledgerRepo.UpsertEntry(gctx, entry); err != nil {
				return err
			}
			mu.Lock()
			affected[e.userID] = struct{}{}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("scoring pass aborted (%s, related %d): %w", category, relatedID, err)
	}

	for userID := range affected {
		total, err := s.ledgerRepo.SumPointsByUser(ctx, userID)
		if err != nil {
			return err
		}
		if err := s.ledgerRepo.SetUserTotal(ctx, userID, total); err != nil {
			return err
		}
	}

	s.logger.Info("scoring pass completed",
		slog.String("category", string(category)),
		slog.Int("related_id", relatedID),
		slog.Int("predictions", len(entries)),
		slog.Int("users", len(affected)),
	)
	return nil
}

func finalPlacementsFromPrediction(p *models.FinalPrediction) scoring.FinalPlacements {
	placements := scoring.FinalPlacements{
		Champion:    p.ChampionID,
		RunnerUp:    p.RunnerUpID,
		ThirdPlace:  p.ThirdPlaceID,
		FourthPlace: p.FourthPlaceID,
	}
	if p.FinalHomeScore != nil && p.FinalAwayScore != nil {
		placements.FinalScore = &scoring.ScoreLine{Home: *p.FinalHomeScore, Away: *p.FinalAwayScore}
	}
	return placements
}

func finalPlacementsFromResult(r *models.TournamentResult) scoring.FinalPlacements {
	placements := scoring.FinalPlacements{
		Champion:    r.ChampionID,
		RunnerUp:    r.RunnerUpID,
		ThirdPlace:  r.ThirdPlaceID,
		FourthPlace: r.FourthPlaceID,
	}
	if r.FinalHomeScore != nil && r.FinalAwayScore != nil {
		placements.FinalScore = &scoring.ScoreLine{Home: *r.FinalHomeScore, Away: *r.FinalAwayScore}
	}
	return placements
}
