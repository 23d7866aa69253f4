package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gmfurlan/bolao-backend/models"
)

var ErrGroupResultNotFound = errors.New("group result not found")

type GroupResultRepository interface {
	// Upsert stores the classification for the result's group,
	// overwriting a previously entered one.
	Upsert(ctx context.Context, result *models.GroupResult) error
	GetByGroup(ctx context.Context, groupID int) (*models.GroupResult, error)
	ListCompleted(ctx context.Context) ([]*models.GroupResult, error)
}

type postgresGroupResultRepository struct {
	db SQLExecutor
}

func NewPostgresGroupResultRepository(db SQLExecutor) GroupResultRepository {
	return &postgresGroupResultRepository{db: db}
}

func (r *postgresGroupResultRepository) Upsert(ctx context.Context, result *models.GroupResult) error {
	query := `
		INSERT INTO group_results (group_id, first_team_id, second_team_id, completed, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (group_id) DO UPDATE
		SET first_team_id = EXCLUDED.first_team_id,
		    second_team_id = EXCLUDED.second_team_id,
		    completed = EXCLUDED.completed,
		    updated_at = NOW()
		RETURNING id, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		result.GroupID, result.FirstTeamID, result.SecondTeamID, result.Completed,
	).Scan(&result.ID, &result.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert group result: %w", err)
	}
	return nil
}

func (r *postgresGroupResultRepository) GetByGroup(ctx context.Context, groupID int) (*models.GroupResult, error) {
	query := `
		SELECT id, group_id, first_team_id, second_team_id, completed, updated_at
		FROM group_results
		WHERE group_id = $1`

	result := &models.GroupResult{}
	err := r.db.QueryRowContext(ctx, query, groupID).Scan(
		&result.ID, &result.GroupID, &result.FirstTeamID,
		&result.SecondTeamID, &result.Completed, &result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupResultNotFound
		}
		return nil, fmt.Errorf("failed to scan group result for group %d: %w", groupID, err)
	}
	return result, nil
}

func (r *postgresGroupResultRepository) ListCompleted(ctx context.Context) ([]*models.GroupResult, error) {
	query := `
		SELECT id, group_id, first_team_id, second_team_id, completed, updated_at
		FROM group_results
		WHERE completed = TRUE
		ORDER BY group_id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query group results: %w", err)
	}
	defer rows.Close()

	results := make([]*models.GroupResult, 0)
	for rows.Next() {
		result := &models.GroupResult{}
		if scanErr := rows.Scan(
			&result.ID, &result.GroupID, &result.FirstTeamID,
			&result.SecondTeamID, &result.Completed, &result.UpdatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan group result row: %w", scanErr)
		}
		results = append(results, result)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during group result rows iteration: %w", err)
	}
	return results, nil
}
