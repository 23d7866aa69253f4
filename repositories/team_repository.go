package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gmfurlan/bolao-backend/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name already exists")
	ErrTeamGroupInvalid = errors.New("team group conflict or invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context, groupID *int) ([]*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	UpdateFlagKey(ctx context.Context, id int, flagKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresTeamRepository struct {
	db SQLExecutor
}

func NewPostgresTeamRepository(db SQLExecutor) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, group_id, flag_key)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, team.Name, team.GroupID, team.FlagKey).
		Scan(&team.ID, &team.CreatedAt)
	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, name, group_id, flag_key, created_at
		FROM teams
		WHERE id = $1`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&team.ID, &team.Name, &team.GroupID, &team.FlagKey, &team.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team by id %d: %w", id, err)
	}
	return team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context, groupID *int) ([]*models.Team, error) {
	query := `
		SELECT id, name, group_id, flag_key, created_at
		FROM teams`
	args := []interface{}{}
	if groupID != nil {
		query += ` WHERE group_id = $1`
		args = append(args, *groupID)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team := &models.Team{}
		if scanErr := rows.Scan(&team.ID, &team.Name, &team.GroupID, &team.FlagKey, &team.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", scanErr)
		}
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during team rows iteration: %w", err)
	}
	return teams, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `UPDATE teams SET name = $1, group_id = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, team.Name, team.GroupID, team.ID)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateFlagKey(ctx context.Context, id int, flagKey *string) error {
	query := `UPDATE teams SET flag_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, flagKey, id)
	if err != nil {
		return fmt.Errorf("failed to update flag key for team %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "teams_name_key":
			return ErrTeamNameConflict
		case "teams_group_id_fkey":
			return ErrTeamGroupInvalid
		}
	}
	return err
}
