package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/gmfurlan/bolao-backend/models"
)

var ErrGroupPredictionNotFound = errors.New("group prediction not found")

type GroupPredictionRepository interface {
	Upsert(ctx context.Context, prediction *models.GroupPrediction) error
	ListByGroup(ctx context.Context, groupID int) ([]*models.GroupPrediction, error)
	ListByUser(ctx context.Context, userID int) ([]*models.GroupPrediction, error)
	ListAll(ctx context.Context) ([]*models.GroupPrediction, error)
}

type postgresGroupPredictionRepository struct {
	db SQLExecutor
}

func NewPostgresGroupPredictionRepository(db SQLExecutor) GroupPredictionRepository {
	return &postgresGroupPredictionRepository{db: db}
}

func (r *postgresGroupPredictionRepository) Upsert(ctx context.Context, prediction *models.GroupPrediction) error {
	query := `
		INSERT INTO group_predictions (user_id, group_id, first_team_id, second_team_id, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, group_id) DO UPDATE
		SET first_team_id = EXCLUDED.first_team_id,
		    second_team_id = EXCLUDED.second_team_id,
		    updated_at = NOW()
		RETURNING id, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		prediction.UserID, prediction.GroupID, prediction.FirstTeamID, prediction.SecondTeamID,
	).Scan(&prediction.ID, &prediction.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert group prediction: %w", err)
	}
	return nil
}

func (r *postgresGroupPredictionRepository) list(ctx context.Context, where string, args ...interface{}) ([]*models.GroupPrediction, error) {
	query := `
		SELECT id, user_id, group_id, first_team_id, second_team_id, updated_at
		FROM group_predictions` + where + ` ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query group predictions: %w", err)
	}
	defer rows.Close()

	predictions := make([]*models.GroupPrediction, 0)
	for rows.Next() {
		p := &models.GroupPrediction{}
		if scanErr := rows.Scan(&p.ID, &p.UserID, &p.GroupID, &p.FirstTeamID, &p.SecondTeamID, &p.UpdatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan group prediction row: %w", scanErr)
		}
		predictions = append(predictions, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during group prediction rows iteration: %w", err)
	}
	return predictions, nil
}

func (r *postgresGroupPredictionRepository) ListByGroup(ctx context.Context, groupID int) ([]*models.GroupPrediction, error) {
	return r.list(ctx, ` WHERE group_id = $1`, groupID)
}

func (r *postgresGroupPredictionRepository) ListByUser(ctx context.Context, userID int) ([]*models.GroupPrediction, error) {
	return r.list(ctx, ` WHERE user_id = $1`, userID)
}

func (r *postgresGroupPredictionRepository) ListAll(ctx context.Context) ([]*models.GroupPrediction, error) {
	return r.list(ctx, ``)
}
