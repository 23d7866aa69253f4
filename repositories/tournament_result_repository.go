package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gmfurlan/bolao-backend/models"
)

var ErrTournamentResultNotFound = errors.New("tournament result not found")

// The tournament result is a singleton row; a fixed primary key keeps
// the upsert honest.
const tournamentResultRowID = 1

type TournamentResultRepository interface {
	Upsert(ctx context.Context, result *models.TournamentResult) error
	Get(ctx context.Context) (*models.TournamentResult, error)
}

type postgresTournamentResultRepository struct {
	db SQLExecutor
}

func NewPostgresTournamentResultRepository(db SQLExecutor) TournamentResultRepository {
	return &postgresTournamentResultRepository{db: db}
}

func (r *postgresTournamentResultRepository) Upsert(ctx context.Context, result *models.TournamentResult) error {
	query := `
		INSERT INTO tournament_results
			(id, champion_id, runner_up_id, third_place_id, fourth_place_id,
			 final_home_score, final_away_score, completed, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (id) DO UPDATE
		SET champion_id = EXCLUDED.champion_id,
		    runner_up_id = EXCLUDED.runner_up_id,
		    third_place_id = EXCLUDED.third_place_id,
		    fourth_place_id = EXCLUDED.fourth_place_id,
		    final_home_score = EXCLUDED.final_home_score,
		    final_away_score = EXCLUDED.final_away_score,
		    completed = EXCLUDED.completed,
		    updated_at = NOW()
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		tournamentResultRowID,
		result.ChampionID, result.RunnerUpID, result.ThirdPlaceID, result.FourthPlaceID,
		result.FinalHomeScore, result.FinalAwayScore, result.Completed,
	).Scan(&result.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert tournament result: %w", err)
	}
	result.ID = tournamentResultRowID
	return nil
}

func (r *postgresTournamentResultRepository) Get(ctx context.Context) (*models.TournamentResult, error) {
	query := `
		SELECT id, champion_id, runner_up_id, third_place_id, fourth_place_id,
		       final_home_score, final_away_score, completed, updated_at
		FROM tournament_results
		WHERE id = $1`

	result := &models.TournamentResult{}
	err := r.db.QueryRowContext(ctx, query, tournamentResultRowID).Scan(
		&result.ID, &result.ChampionID, &result.RunnerUpID,
		&result.ThirdPlaceID, &result.FourthPlaceID,
		&result.FinalHomeScore, &result.FinalAwayScore,
		&result.Completed, &result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentResultNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament result: %w", err)
	}
	return result, nil
}
