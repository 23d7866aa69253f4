package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gmfurlan/bolao-backend/models"
	"github.com/gmfurlan/bolao-backend/repositories"
)

type MatchService interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context) ([]*models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id int) error

	// SaveResult records the final score, marks the match finished and
	// triggers a full rescore of its predictions. Saving a corrected
	// score over an already finished match rescores from scratch.
	SaveResult(ctx context.Context, matchID, homeScore, awayScore int) (*models.Match, error)
}

type matchService struct {
	matchRepo      repositories.MatchRepository
	scoringService ScoringService
}

func NewMatchService(matchRepo repositories.MatchRepository, scoringService ScoringService) MatchService {
	return &matchService{matchRepo: matchRepo, scoringService: scoringService}
}

func (s *matchService) Create(ctx context.Context, match *models.Match) error {
	if match.HomeTeamID == match.AwayTeamID {
		return ErrMatchTeamsIdentical
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return s.mapMatchError(err)
	}
	return nil
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapMatchError(err)
	}
	return match, nil
}

func (s *matchService) List(ctx context.Context) ([]*models.Match, error) {
	return s.matchRepo.List(ctx, false)
}

func (s *matchService) Update(ctx context.Context, match *models.Match) error {
	if match.HomeTeamID == match.AwayTeamID {
		return ErrMatchTeamsIdentical
	}
	if err := s.matchRepo.Update(ctx, match); err != nil {
		return s.mapMatchError(err)
	}
	return nil
}

func (s *matchService) Delete(ctx context.Context, id int) error {
	return s.mapMatchError(s.matchRepo.Delete(ctx, id))
}

func (s *matchService) SaveResult(ctx context.Context, matchID, homeScore, awayScore int) (*models.Match, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, ErrNegativeScore
	}

	if err := s.matchRepo.UpdateResult(ctx, matchID, homeScore, awayScore); err != nil {
		return nil, s.mapMatchError(err)
	}

	if err := s.scoringService.ProcessMatchResult(ctx, matchID); err != nil {
		return nil, fmt.Errorf("result saved but rescoring failed for match %d: %w", matchID, err)
	}

	return s.GetByID(ctx, matchID)
}

func (s *matchService) mapMatchError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrMatchTeamInvalid):
		return ErrTeamNotFound
	default:
		return err
	}
}
