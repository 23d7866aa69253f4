package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/gmfurlan/bolao-backend/models"
	"github.com/lib/pq"
)

var (
	ErrMatchPredictionNotFound = errors.New("match prediction not found")
	ErrMatchPredictionInvalid  = errors.New("match prediction user or match invalid")
)

type MatchPredictionRepository interface {
	// Upsert inserts the prediction or replaces the existing row for
	// the same (user, match) pair.
	Upsert(ctx context.Context, prediction *models.MatchPrediction) error
	ListByMatch(ctx context.Context, matchID int) ([]*models.MatchPrediction, error)
	ListByUser(ctx context.Context, userID int) ([]*models.MatchPrediction, error)
	ListAll(ctx context.Context) ([]*models.MatchPrediction, error)
}

type postgresMatchPredictionRepository struct {
	db SQLExecutor
}

func NewPostgresMatchPredictionRepository(db SQLExecutor) MatchPredictionRepository {
	return &postgresMatchPredictionRepository{db: db}
}

func (r *postgresMatchPredictionRepository) Upsert(ctx context.Context, prediction *models.MatchPrediction) error {
	query := `
		INSERT INTO match_predictions (user_id, match_id, home_score, away_score, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, match_id) DO UPDATE
		SET home_score = EXCLUDED.home_score,
		    away_score = EXCLUDED.away_score,
		    updated_at = NOW()
		RETURNING id, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		prediction.UserID, prediction.MatchID, prediction.HomeScore, prediction.AwayScore,
	).Scan(&prediction.ID, &prediction.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Constraint {
			case "match_predictions_user_id_fkey", "match_predictions_match_id_fkey":
				return ErrMatchPredictionInvalid
			}
		}
		return fmt.Errorf("failed to upsert match prediction: %w", err)
	}
	return nil
}

func (r *postgresMatchPredictionRepository) list(ctx context.Context, where string, args ...interface{}) ([]*models.MatchPrediction, error) {
	query := `
		SELECT id, user_id, match_id, home_score, away_score, updated_at
		FROM match_predictions` + where + ` ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query match predictions: %w", err)
	}
	defer rows.Close()

	predictions := make([]*models.MatchPrediction, 0)
	for rows.Next() {
		p := &models.MatchPrediction{}
		if scanErr := rows.Scan(&p.ID, &p.UserID, &p.MatchID, &p.HomeScore, &p.AwayScore, &p.UpdatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match prediction row: %w", scanErr)
		}
		predictions = append(predictions, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match prediction rows iteration: %w", err)
	}
	return predictions, nil
}

func (r *postgresMatchPredictionRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.MatchPrediction, error) {
	return r.list(ctx, ` WHERE match_id = $1`, matchID)
}

func (r *postgresMatchPredictionRepository) ListByUser(ctx context.Context, userID int) ([]*models.MatchPrediction, error) {
	return r.list(ctx, ` WHERE user_id = $1`, userID)
}

func (r *postgresMatchPredictionRepository) ListAll(ctx context.Context) ([]*models.MatchPrediction, error) {
	return r.list(ctx, ``)
}
