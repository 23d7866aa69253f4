package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gmfurlan/bolao-backend/models"
)

// LedgerRepository stores awarded points and the derived per-user
// totals. Entries are keyed by (prediction, category) so that rescoring
// a result replaces the previous award instead of stacking on top of it.
type LedgerRepository interface {
	UpsertEntry(ctx context.Context, entry *models.PointsLedgerEntry) error
	ListByUser(ctx context.Context, userID int) ([]*models.PointsLedgerEntry, error)
	SumPointsByUser(ctx context.Context, userID int) (int, error)
	SetUserTotal(ctx context.Context, userID, points int) error
	GetUserTotal(ctx context.Context, userID int) (*models.UserTotal, error)
}

type postgresLedgerRepository struct {
	db SQLExecutor
}

func NewPostgresLedgerRepository(db SQLExecutor) LedgerRepository {
	return &postgresLedgerRepository{db: db}
}

func (r *postgresLedgerRepository) UpsertEntry(ctx context.Context, entry *models.PointsLedgerEntry) error {
	query := `
		INSERT INTO points_ledger (user_id, prediction_id, category, points, related_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (prediction_id, category) DO UPDATE
		SET user_id = EXCLUDED.user_id,
		    points = EXCLUDED.points,
		    related_id = EXCLUDED.related_id,
		    updated_at = NOW()
		RETURNING id, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.PredictionID, entry.Category, entry.Points, entry.RelatedID,
	).Scan(&entry.ID, &entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert ledger entry for prediction %d (%s): %w",
			entry.PredictionID, entry.Category, err)
	}
	return nil
}

func (r *postgresLedgerRepository) ListByUser(ctx context.Context, userID int) ([]*models.PointsLedgerEntry, error) {
	query := `
		SELECT id, user_id, prediction_id, category, points, related_id, updated_at
		FROM points_ledger
		WHERE user_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for user %d: %w", userID, err)
	}
	defer rows.Close()

	entries := make([]*models.PointsLedgerEntry, 0)
	for rows.Next() {
		entry := &models.PointsLedgerEntry{}
		if scanErr := rows.Scan(
			&entry.ID, &entry.UserID, &entry.PredictionID, &entry.Category,
			&entry.Points, &entry.RelatedID, &entry.UpdatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", scanErr)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during ledger rows iteration: %w", err)
	}
	return entries, nil
}

func (r *postgresLedgerRepository) SumPointsByUser(ctx context.Context, userID int) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(points), 0) FROM points_ledger WHERE user_id = $1`, userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum ledger points for user %d: %w", userID, err)
	}
	return total, nil
}

func (r *postgresLedgerRepository) SetUserTotal(ctx context.Context, userID, points int) error {
	query := `
		INSERT INTO user_totals (user_id, points, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET points = EXCLUDED.points, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, userID, points); err != nil {
		return fmt.Errorf("failed to set total for user %d: %w", userID, err)
	}
	return nil
}

func (r *postgresLedgerRepository) GetUserTotal(ctx context.Context, userID int) (*models.UserTotal, error) {
	total := &models.UserTotal{}
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, points, updated_at FROM user_totals WHERE user_id = $1`, userID,
	).Scan(&total.UserID, &total.Points, &total.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.UserTotal{UserID: userID}, nil
		}
		return nil, fmt.Errorf("failed to scan total for user %d: %w", userID, err)
	}
	return total, nil
}
