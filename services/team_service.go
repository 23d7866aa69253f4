package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gmfurlan/bolao-backend/models"
	"github.com/gmfurlan/bolao-backend/repositories"
	"github.com/gmfurlan/bolao-backend/storage"
)

var flagContentTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

type TeamService interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context, groupID *int) ([]*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id int) error
	UploadFlag(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader // nil when flag storage is not configured
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader) TeamService {
	return &teamService{teamRepo: teamRepo, uploader: uploader}
}

func (s *teamService) Create(ctx context.Context, team *models.Team) error {
	if strings.TrimSpace(team.Name) == "" {
		return ErrTeamNameRequired
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return s.mapTeamError(err)
	}
	s.populateFlagURL(team)
	return nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapTeamError(err)
	}
	s.populateFlagURL(team)
	return team, nil
}

func (s *teamService) List(ctx context.Context, groupID *int) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx, groupID)
	if err != nil {
		return nil, err
	}
	for _, team := range teams {
		s.populateFlagURL(team)
	}
	return teams, nil
}

func (s *teamService) Update(ctx context.Context, team *models.Team) error {
	if strings.TrimSpace(team.Name) == "" {
		return ErrTeamNameRequired
	}
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return s.mapTeamError(err)
	}
	return nil
}

func (s *teamService) Delete(ctx context.Context, id int) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return s.mapTeamError(err)
	}
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return s.mapTeamError(err)
	}
	// Best effort: the row is already gone, a stale object only wastes
	// bucket space.
	if s.uploader != nil && team.FlagKey != nil {
		_ = s.uploader.Delete(ctx, *team.FlagKey)
	}
	return nil
}

// UploadFlag stores the flag image and records its key on the team.
func (s *teamService) UploadFlag(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrFlagStorageUnavailable
	}
	ext, ok := flagContentTypes[contentType]
	if !ok {
		return nil, ErrFlagContentTypeInvalid
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, s.mapTeamError(err)
	}

	key := fmt.Sprintf("flags/team_%d.%s", teamID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload flag for team %d: %w", teamID, err)
	}

	if team.FlagKey != nil && *team.FlagKey != result.Key {
		_ = s.uploader.Delete(ctx, *team.FlagKey)
	}

	if err := s.teamRepo.UpdateFlagKey(ctx, teamID, &result.Key); err != nil {
		return nil, s.mapTeamError(err)
	}

	team.FlagKey = &result.Key
	s.populateFlagURL(team)
	return team, nil
}

func (s *teamService) populateFlagURL(team *models.Team) {
	if team == nil || s.uploader == nil || team.FlagKey == nil || *team.FlagKey == "" {
		return
	}
	if url := s.uploader.GetPublicURL(*team.FlagKey); url != "" {
		team.FlagURL = &url
	}
}

func (s *teamService) mapTeamError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return ErrTeamNameConflict
	case errors.Is(err, repositories.ErrTeamGroupInvalid):
		return ErrGroupNotFound
	default:
		return err
	}
}
