package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gmfurlan/bolao-backend/models"
)

var ErrGroupNotFound = errors.New("group not found")

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id int) (*models.Group, error)
	List(ctx context.Context) ([]*models.Group, error)
	Update(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, id int) error
}

type postgresGroupRepository struct {
	db SQLExecutor
}

func NewPostgresGroupRepository(db SQLExecutor) GroupRepository {
	return &postgresGroupRepository{db: db}
}

func (r *postgresGroupRepository) Create(ctx context.Context, group *models.Group) error {
	query := `INSERT INTO groups (name) VALUES ($1) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, group.Name).Scan(&group.ID); err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

func (r *postgresGroupRepository) GetByID(ctx context.Context, id int) (*models.Group, error) {
	group := &models.Group{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM groups WHERE id = $1`, id).
		Scan(&group.ID, &group.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to scan group by id %d: %w", id, err)
	}
	return group, nil
}

func (r *postgresGroupRepository) List(ctx context.Context) ([]*models.Group, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM groups ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	groups := make([]*models.Group, 0)
	for rows.Next() {
		group := &models.Group{}
		if scanErr := rows.Scan(&group.ID, &group.Name); scanErr != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", scanErr)
		}
		groups = append(groups, group)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during group rows iteration: %w", err)
	}
	return groups, nil
}

func (r *postgresGroupRepository) Update(ctx context.Context, group *models.Group) error {
	result, err := r.db.ExecContext(ctx, `UPDATE groups SET name = $1 WHERE id = $2`, group.Name, group.ID)
	if err != nil {
		return fmt.Errorf("failed to update group %d: %w", group.ID, err)
	}
	return checkAffectedRows(result, ErrGroupNotFound)
}

func (r *postgresGroupRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGroupNotFound)
}
