package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gmfurlan/bolao-backend/models"
	"github.com/gmfurlan/bolao-backend/repositories"
)

// UserPredictions bundles everything one user has guessed so far.
type UserPredictions struct {
	Matches []*models.MatchPrediction `json:"matches"`
	Groups  []*models.GroupPrediction `json:"groups"`
	Final   *models.FinalPrediction   `json:"final,omitempty"`
}

type PredictionService interface {
	// SubmitMatchPrediction upserts the user's guess for a match.
	// Rejected once the match is finished.
	SubmitMatchPrediction(ctx context.Context, userID, matchID, homeScore, awayScore int) (*models.MatchPrediction, error)
	SubmitGroupPrediction(ctx context.Context, userID, groupID, firstTeamID, secondTeamID int) (*models.GroupPrediction, error)
	SubmitFinalPrediction(ctx context.Context, userID int, input FinalPredictionInput) (*models.FinalPrediction, error)
	GetUserPredictions(ctx context.Context, userID int) (*UserPredictions, error)
}

type FinalPredictionInput struct {
	ChampionID     *int `json:"champion_id"`
	RunnerUpID     *int `json:"runner_up_id"`
	ThirdPlaceID   *int `json:"third_place_id"`
	FourthPlaceID  *int `json:"fourth_place_id"`
	FinalHomeScore *int `json:"final_home_score"`
	FinalAwayScore *int `json:"final_away_score"`
}

type predictionService struct {
	matchRepo           repositories.MatchRepository
	groupRepo           repositories.GroupRepository
	matchPredictionRepo repositories.MatchPredictionRepository
	groupPredictionRepo repositories.GroupPredictionRepository
	finalPredictionRepo repositories.FinalPredictionRepository
}

func NewPredictionService(
	matchRepo repositories.MatchRepository,
	groupRepo repositories.GroupRepository,
	matchPredictionRepo repositories.MatchPredictionRepository,
	groupPredictionRepo repositories.GroupPredictionRepository,
	finalPredictionRepo repositories.FinalPredictionRepository,
) PredictionService {
	return &predictionService{
		matchRepo:           matchRepo,
		groupRepo:           groupRepo,
		matchPredictionRepo: matchPredictionRepo,
		groupPredictionRepo: groupPredictionRepo,
		finalPredictionRepo: finalPredictionRepo,
	}
}

func (s *predictionService) SubmitMatchPrediction(ctx context.Context, userID, matchID, homeScore, awayScore int) (*models.MatchPrediction, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, ErrNegativeScore
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}
	if match.Finished {
		return nil, ErrMatchAlreadyFinished
	}

	prediction := &models.MatchPrediction{
		UserID:    userID,
		MatchID:   matchID,
		HomeScore: homeScore,
		AwayScore: awayScore,
	}
	if err := s.matchPredictionRepo.Upsert(ctx, prediction); err != nil {
		return nil, err
	}
	return prediction, nil
}

func (s *predictionService) SubmitGroupPrediction(ctx context.Context, userID, groupID, firstTeamID, secondTeamID int) (*models.GroupPrediction, error) {
	if firstTeamID == secondTeamID {
		return nil, ErrTeamsNotDistinct
	}
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to load group %d: %w", groupID, err)
	}

	prediction := &models.GroupPrediction{
		UserID:       userID,
		GroupID:      groupID,
		FirstTeamID:  firstTeamID,
		SecondTeamID: secondTeamID,
	}
	if err := s.groupPredictionRepo.Upsert(ctx, prediction); err != nil {
		return nil, err
	}
	return prediction, nil
}

func (s *predictionService) SubmitFinalPrediction(ctx context.Context, userID int, input FinalPredictionInput) (*models.FinalPrediction, error) {
	seen := make(map[int]struct{}, 4)
	for _, teamID := range []*int{input.ChampionID, input.RunnerUpID, input.ThirdPlaceID, input.FourthPlaceID} {
		if teamID == nil {
			continue
		}
		if _, dup := seen[*teamID]; dup {
			return nil, ErrTeamsNotDistinct
		}
		seen[*teamID] = struct{}{}
	}
	if (input.FinalHomeScore != nil && *input.FinalHomeScore < 0) ||
		(input.FinalAwayScore != nil && *input.FinalAwayScore < 0) {
		return nil, ErrNegativeScore
	}

	prediction := &models.FinalPrediction{
		UserID:         userID,
		ChampionID:     input.ChampionID,
		RunnerUpID:     input.RunnerUpID,
		ThirdPlaceID:   input.ThirdPlaceID,
		FourthPlaceID:  input.FourthPlaceID,
		FinalHomeScore: input.FinalHomeScore,
		FinalAwayScore: input.FinalAwayScore,
	}
	if err := s.finalPredictionRepo.Upsert(ctx, prediction); err != nil {
		return nil, err
	}
	return prediction, nil
}

func (s *predictionService) GetUserPredictions(ctx context.Context, userID int) (*UserPredictions, error) {
	matches, err := s.matchPredictionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	groups, err := s.groupPredictionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	predictions := &UserPredictions{Matches: matches, Groups: groups}

	final, err := s.finalPredictionRepo.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, repositories.ErrFinalPredictionNotFound) {
		return nil, err
	}
	predictions.Final = final

	return predictions, nil
}
