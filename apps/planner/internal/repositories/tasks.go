package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/xdoubleu/essentia/v2/pkg/database"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"

	"dzisiaj.app/apps/planner/internal/models"
)

type TaskRepository struct {
	db postgres.DB
}

const taskColumns = `id, title, description, done, priority,
	due_date, scheduled_time, user_name, created_at`

func (repo *TaskRepository) GetAll(
	ctx context.Context,
	owner string,
) ([]models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM planner.tasks
		WHERE user_name = $1
		ORDER BY done, priority DESC, created_at
	`

	rows, err := repo.db.Query(ctx, query, owner)
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, postgres.PgxErrorToHTTPError(err)
		}

		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return tasks, nil
}

func (repo *TaskRepository) GetByID(
	ctx context.Context,
	id string,
	owner string,
) (*models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM planner.tasks
		WHERE id = $1 AND user_name = $2
	`

	task, err := scanTask(repo.db.QueryRow(ctx, query, id, owner))
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return &task, nil
}

func (repo *TaskRepository) Create(
	ctx context.Context,
	task *models.Task,
) error {
	query := `
		INSERT INTO planner.tasks
		(id, title, description, done, priority, due_date, scheduled_time, user_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := repo.db.QueryRow(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.Done,
		task.Priority,
		task.DueDate,
		task.ScheduledTime,
		task.UserName,
	).Scan(&task.CreatedAt)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	return nil
}

// Schedule sets or clears (nil) the scheduled time of a task.
func (repo *TaskRepository) Schedule(
	ctx context.Context,
	id string,
	owner string,
	scheduledTime *time.Time,
) error {
	query := `
		UPDATE planner.tasks
		SET scheduled_time = $3
		WHERE id = $1 AND user_name = $2
	`

	return repo.exec(ctx, query, id, owner, scheduledTime)
}

func (repo *TaskRepository) SetDone(
	ctx context.Context,
	id string,
	owner string,
	done bool,
) error {
	query := `
		UPDATE planner.tasks
		SET done = $3
		WHERE id = $1 AND user_name = $2
	`

	return repo.exec(ctx, query, id, owner, done)
}

func (repo *TaskRepository) Delete(
	ctx context.Context,
	id string,
	owner string,
) error {
	query := `
		DELETE FROM planner.tasks
		WHERE id = $1 AND user_name = $2
	`

	return repo.exec(ctx, query, id, owner)
}

func (repo *TaskRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := repo.db.Exec(ctx, query, args...)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	if result.RowsAffected() == 0 {
		return database.ErrResourceNotFound
	}

	return nil
}

func scanTask(row pgx.Row) (models.Task, error) {
	var task models.Task

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Done,
		&task.Priority,
		&task.DueDate,
		&task.ScheduledTime,
		&task.UserName,
		&task.CreatedAt,
	)

	return task, err
}
