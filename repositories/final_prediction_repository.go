package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gmfurlan/bolao-backend/models"
)

var ErrFinalPredictionNotFound = errors.New("final prediction not found")

type FinalPredictionRepository interface {
	Upsert(ctx context.Context, prediction *models.FinalPrediction) error
	GetByUser(ctx context.Context, userID int) (*models.FinalPrediction, error)
	ListAll(ctx context.Context) ([]*models.FinalPrediction, error)
}

type postgresFinalPredictionRepository struct {
	db SQLExecutor
}

func NewPostgresFinalPredictionRepository(db SQLExecutor) FinalPredictionRepository {
	return &postgresFinalPredictionRepository{db: db}
}

const finalPredictionColumns = `id, user_id, champion_id, runner_up_id, third_place_id, fourth_place_id, final_home_score, final_away_score, updated_at`

func scanFinalPrediction(rowScanner interface{ Scan(...interface{}) error }) (*models.FinalPrediction, error) {
	p := &models.FinalPrediction{}
	err := rowScanner.Scan(
		&p.ID, &p.UserID, &p.ChampionID, &p.RunnerUpID, &p.ThirdPlaceID,
		&p.FourthPlaceID, &p.FinalHomeScore, &p.FinalAwayScore, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFinalPredictionNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresFinalPredictionRepository) Upsert(ctx context.Context, prediction *models.FinalPrediction) error {
	query := `
		INSERT INTO final_predictions
			(user_id, champion_id, runner_up_id, third_place_id, fourth_place_id,
			 final_home_score, final_away_score, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET champion_id = EXCLUDED.champion_id,
		    runner_up_id = EXCLUDED.runner_up_id,
		    third_place_id = EXCLUDED.third_place_id,
		    fourth_place_id = EXCLUDED.fourth_place_id,
		    final_home_score = EXCLUDED.final_home_score,
		    final_away_score = EXCLUDED.final_away_score,
		    updated_at = NOW()
		RETURNING id, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		prediction.UserID, prediction.ChampionID, prediction.RunnerUpID,
		prediction.ThirdPlaceID, prediction.FourthPlaceID,
		prediction.FinalHomeScore, prediction.FinalAwayScore,
	).Scan(&prediction.ID, &prediction.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert final prediction: %w", err)
	}
	return nil
}

func (r *postgresFinalPredictionRepository) GetByUser(ctx context.Context, userID int) (*models.FinalPrediction, error) {
	query := `SELECT ` + finalPredictionColumns + ` FROM final_predictions WHERE user_id = $1`
	prediction, err := scanFinalPrediction(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, ErrFinalPredictionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan final prediction for user %d: %w", userID, err)
	}
	return prediction, nil
}

func (r *postgresFinalPredictionRepository) ListAll(ctx context.Context) ([]*models.FinalPrediction, error) {
	query := `SELECT ` + finalPredictionColumns + ` FROM final_predictions ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query final predictions: %w", err)
	}
	defer rows.Close()

	predictions := make([]*models.FinalPrediction, 0)
	for rows.Next() {
		p, scanErr := scanFinalPrediction(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan final prediction row: %w", scanErr)
		}
		predictions = append(predictions, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during final prediction rows iteration: %w", err)
	}
	return predictions, nil
}
