package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gmfurlan/bolao-backend/models"
	"github.com/gmfurlan/bolao-backend/repositories"
)

// TournamentResultInput carries the admin-entered podium and final
// score. All four placements and both score fields are required for a
// completed result.
type TournamentResultInput struct {
	ChampionID     int `json:"champion_id"`
	RunnerUpID     int `json:"runner_up_id"`
	ThirdPlaceID   int `json:"third_place_id"`
	FourthPlaceID  int `json:"fourth_place_id"`
	FinalHomeScore int `json:"final_home_score"`
	FinalAwayScore int `json:"final_away_score"`
}

type TournamentService interface {
	// SaveFinalResult upserts the single tournament result row and
	// triggers a rescore of every final prediction.
	SaveFinalResult(ctx context.Context, input TournamentResultInput) (*models.TournamentResult, error)
	GetFinalResult(ctx context.Context) (*models.TournamentResult, error)
}

type tournamentService struct {
	tournamentResultRepo repositories.TournamentResultRepository
	scoringService       ScoringService
}

func NewTournamentService(
	tournamentResultRepo repositories.TournamentResultRepository,
	scoringService ScoringService,
) TournamentService {
	return &tournamentService{
		tournamentResultRepo: tournamentResultRepo,
		scoringService:       scoringService,
	}
}

func (s *tournamentService) SaveFinalResult(ctx context.Context, input TournamentResultInput) (*models.TournamentResult, error) {
	placements := []int{input.ChampionID, input.RunnerUpID, input.ThirdPlaceID, input.FourthPlaceID}
	seen := make(map[int]struct{}, len(placements))
	for _, teamID := range placements {
		if teamID <= 0 {
			return nil, ErrValidationFailed
		}
		if _, dup := seen[teamID]; dup {
			return nil, ErrTeamsNotDistinct
		}
		seen[teamID] = struct{}{}
	}
	if input.FinalHomeScore < 0 || input.FinalAwayScore < 0 {
		return nil, ErrNegativeScore
	}

	result := &models.TournamentResult{
		ChampionID:     &input.ChampionID,
		RunnerUpID:     &input.RunnerUpID,
		ThirdPlaceID:   &input.ThirdPlaceID,
		FourthPlaceID:  &input.FourthPlaceID,
		FinalHomeScore: &input.FinalHomeScore,
		FinalAwayScore: &input.FinalAwayScore,
		Completed:      true,
	}
	if err := s.tournamentResultRepo.Upsert(ctx, result); err != nil {
		return nil, err
	}

	if err := s.scoringService.ProcessTournamentFinal(ctx); err != nil {
		return nil, fmt.Errorf("tournament result saved but rescoring failed: %w", err)
	}
	return result, nil
}

func (s *tournamentService) GetFinalResult(ctx context.Context) (*models.TournamentResult, error) {
	result, err := s.tournamentResultRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentResultNotFound) {
			return nil, ErrTournamentResultNotFound
		}
		return nil, err
	}
	return result, nil
}
