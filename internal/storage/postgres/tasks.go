package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/weekplan/weekplan/internal/constants"
	"github.com/weekplan/weekplan/internal/models"
)

func (s *Store) AddTask(task models.Task) error {
	return s.UpdateTask(task)
}

func scanTask(row interface{ Scan(...any) error }) (models.Task, error) {
	var t models.Task
	var deadline string
	var preference string
	var active bool
	var deletedAt sql.NullString

	err := row.Scan(&t.ID, &t.Name, &t.Priority, &t.Difficulty, &t.DurationMin, &deadline, &preference, &active, &deletedAt)
	if err != nil {
		return models.Task{}, err
	}

	t.Preference = constants.Preference(preference)
	t.Active = active
	if deadline != "" {
		if parsed, err := time.Parse(time.RFC3339, deadline); err == nil {
			t.Deadline = parsed
		}
	}
	if deletedAt.Valid {
		if parsed, err := time.Parse(time.RFC3339, deletedAt.String); err == nil {
			t.DeletedAt = &parsed
		}
	}

	return t, nil
}

func (s *Store) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(`
		SELECT id, name, priority, difficulty, duration_min, deadline, preference, active, deleted_at
		FROM tasks WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanTask(row)
}

func (s *Store) GetAllTasks() ([]models.Task, error) {
	return s.queryTasks(`
		SELECT id, name, priority, difficulty, duration_min, deadline, preference, active, deleted_at
		FROM tasks WHERE deleted_at IS NULL`)
}

func (s *Store) GetAllTasksIncludingDeleted() ([]models.Task, error) {
	return s.queryTasks(`
		SELECT id, name, priority, difficulty, duration_min, deadline, preference, active, deleted_at
		FROM tasks`)
}

func (s *Store) queryTasks(query string) ([]models.Task, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateTask(task models.Task) error {
	var deletedAt sql.NullString
	if task.DeletedAt != nil {
		deletedAt = sql.NullString{String: task.DeletedAt.Format(time.RFC3339), Valid: true}
	}

	// PostgreSQL uses INSERT ... ON CONFLICT for upsert
	_, err := s.db.Exec(`
		INSERT INTO tasks (id, name, priority, difficulty, duration_min, deadline, preference, active, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			priority = EXCLUDED.priority,
			difficulty = EXCLUDED.difficulty,
			duration_min = EXCLUDED.duration_min,
			deadline = EXCLUDED.deadline,
			preference = EXCLUDED.preference,
			active = EXCLUDED.active,
			deleted_at = EXCLUDED.deleted_at`,
		task.ID, task.Name, task.Priority, task.Difficulty, task.DurationMin,
		task.Deadline.Format(time.RFC3339), string(task.Preference), task.Active, deletedAt,
	)
	return err
}

func (s *Store) DeleteTask(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM tasks WHERE id = $1", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("task with id %s not found", id)
		}
		return fmt.Errorf("failed to check task existence: %w", err)
	}

	if deletedAt.Valid {
		return fmt.Errorf("task with id %s is already deleted", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE tasks SET deleted_at = $1 WHERE id = $2", now, id)
	return err
}

func (s *Store) RestoreTask(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM tasks WHERE id = $1", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("task with id %s not found", id)
		}
		return fmt.Errorf("failed to check task existence: %w", err)
	}

	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore a task that is not deleted: %s", id)
	}

	_, err = s.db.Exec("UPDATE tasks SET deleted_at = NULL WHERE id = $1", id)
	return err
}
