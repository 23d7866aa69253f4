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
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchTeamInvalid = errors.New("match team conflict or invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, finishedOnly bool) ([]*models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	UpdateResult(ctx context.Context, id int, homeScore, awayScore int) error
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db SQLExecutor
}

func NewPostgresMatchRepository(db SQLExecutor) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, home_team_id, away_team_id, match_time, stage, home_score, away_score, finished, created_at`

func scanMatch(rowScanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	m := &models.Match{}
	err := rowScanner.Scan(
		&m.ID, &m.HomeTeamID, &m.AwayTeamID, &m.MatchTime, &m.Stage,
		&m.HomeScore, &m.AwayScore, &m.Finished, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (home_team_id, away_team_id, match_time, stage)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		match.HomeTeamID, match.AwayTeamID, match.MatchTime, match.Stage,
	).Scan(&match.ID, &match.CreatedAt)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	match, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, finishedOnly bool) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches`
	if finishedOnly {
		query += ` WHERE finished = TRUE`
	}
	query += ` ORDER BY match_time ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, match)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches
		SET home_team_id = $1, away_team_id = $2, match_time = $3, stage = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query,
		match.HomeTeamID, match.AwayTeamID, match.MatchTime, match.Stage, match.ID)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

// UpdateResult sets the final score and marks the match finished.
// Re-running it with a corrected score is allowed; callers are expected
// to trigger a full rescore afterwards.
func (r *postgresMatchRepository) UpdateResult(ctx context.Context, id int, homeScore, awayScore int) error {
	query := `
		UPDATE matches
		SET home_score = $1, away_score = $2, finished = TRUE
		WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, homeScore, awayScore, id)
	if err != nil {
		return fmt.Errorf("failed to update result for match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "matches_home_team_id_fkey", "matches_away_team_id_fkey":
			return ErrMatchTeamInvalid
		}
	}
	return err
}
