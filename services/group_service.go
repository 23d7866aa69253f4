package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gmfurlan/bolao-backend/models"
	"github.com/gmfurlan/bolao-backend/repositories"
)

type GroupService interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id int) (*models.Group, error)
	List(ctx context.Context) ([]*models.Group, error)
	Update(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, id int) error

	// SaveClassification stores the real group result and triggers a
	// full rescore of every prediction for the group. Re-entering a
	// classification overwrites the old one and rescores again.
	SaveClassification(ctx context.Context, groupID, firstTeamID, secondTeamID int) (*models.GroupResult, error)
	GetClassification(ctx context.Context, groupID int) (*models.GroupResult, error)
}

type groupService struct {
	groupRepo       repositories.GroupRepository
	groupResultRepo repositories.GroupResultRepository
	scoringService  ScoringService
}

func NewGroupService(
	groupRepo repositories.GroupRepository,
	groupResultRepo repositories.GroupResultRepository,
	scoringService ScoringService,
) GroupService {
	return &groupService{
		groupRepo:       groupRepo,
		groupResultRepo: groupResultRepo,
		scoringService:  scoringService,
	}
}

func (s *groupService) Create(ctx context.Context, group *models.Group) error {
	if strings.TrimSpace(group.Name) == "" {
		return ErrGroupNameRequired
	}
	return s.groupRepo.Create(ctx, group)
}

func (s *groupService) GetByID(ctx context.Context, id int) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func (s *groupService) List(ctx context.Context) ([]*models.Group, error) {
	return s.groupRepo.List(ctx)
}

func (s *groupService) Update(ctx context.Context, group *models.Group) error {
	if strings.TrimSpace(group.Name) == "" {
		return ErrGroupNameRequired
	}
	err := s.groupRepo.Update(ctx, group)
	if errors.Is(err, repositories.ErrGroupNotFound) {
		return ErrGroupNotFound
	}
	return err
}

func (s *groupService) Delete(ctx context.Context, id int) error {
	err := s.groupRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrGroupNotFound) {
		return ErrGroupNotFound
	}
	return err
}

func (s *groupService) SaveClassification(ctx context.Context, groupID, firstTeamID, secondTeamID int) (*models.GroupResult, error) {
	if firstTeamID == secondTeamID {
		return nil, ErrTeamsNotDistinct
	}
	if _, err := s.GetByID(ctx, groupID); err != nil {
		return nil, err
	}

	result := &models.GroupResult{
		GroupID:      groupID,
		FirstTeamID:  firstTeamID,
		SecondTeamID: secondTeamID,
		Completed:    true,
	}
	if err := s.groupResultRepo.Upsert(ctx, result); err != nil {
		return nil, err
	}

	if err := s.scoringService.ProcessGroupResult(ctx, groupID); err != nil {
		return nil, fmt.Errorf("classification saved but rescoring failed for group %d: %w", groupID, err)
	}
	return result, nil
}

func (s *groupService) GetClassification(ctx context.Context, groupID int) (*models.GroupResult, error) {
	result, err := s.groupResultRepo.GetByGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupResultNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return result, nil
}
