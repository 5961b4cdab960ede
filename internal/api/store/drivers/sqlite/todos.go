package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pocketlist/pocketlist/internal/api/domain"
)

type todosRepo struct {
	db querier
}

const todoColumns = `id, user_id, title, description, completed, created_at, updated_at`

func (r *todosRepo) CreateTodo(ctx context.Context, t domain.Todo) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO todos (id, user_id, title, description, completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.UserID,
		t.Title,
		mapOptionalString(t.Description),
		t.Completed,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func (r *todosRepo) GetTodoByID(ctx context.Context, id string) (domain.Todo, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = ?`, id)
	return scanTodo(row)
}

func (r *todosRepo) ListTodosByUser(ctx context.Context, userID string) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []domain.Todo
	for rows.Next() {
		var (
			t    domain.Todo
			desc sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &desc, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			t.Description = desc.String
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *todosRepo) UpdateTodo(ctx context.Context, t domain.Todo) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE todos SET title = ?, description = ?, completed = ?, updated_at = ? WHERE id = ?`,
		t.Title, mapOptionalString(t.Description), t.Completed, time.Now().UTC(), t.ID)
	return err
}

func (r *todosRepo) DeleteTodo(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	return err
}

func scanTodo(row *sql.Row) (domain.Todo, error) {
	var (
		t    domain.Todo
		desc sql.NullString
	)
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &desc, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Todo{}, mapNotFound(err)
	}
	if desc.Valid {
		t.Description = desc.String
	}
	return t, nil
}
