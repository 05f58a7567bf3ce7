package todo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fluxorio/todo-service/pkg/db"
)

// ErrNotFound is returned when the referenced todo does not exist.
var ErrNotFound = errors.New("todo not found")

const todoColumns = "id, title, description, completed, created_at, updated_at"

// Service executes todo operations against the datastore. Each operation
// is one unit of work: it takes a pooled connection for its duration and
// releases it on every exit path; the multi-statement update runs inside
// a transaction.
type Service struct {
	pool *db.Pool
}

// NewService creates a service over the given pool.
func NewService(pool *db.Pool) *Service {
	return &Service{pool: pool}
}

func (s *Service) rebind(query string) string {
	return db.Rebind(s.pool.Driver(), query)
}

// List returns a page of todos ordered newest first. Rows created within
// the same clock tick are tie-broken by id so paging stays deterministic.
func (s *Service) List(ctx context.Context, skip, limit int) ([]Todo, error) {
	query := s.rebind("SELECT " + todoColumns + " FROM todos ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?")

	rows, err := s.pool.DB().QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]Todo, 0, limit)
	for rows.Next() {
		var t Todo
		if err := scanTodo(rows.Scan, &t); err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// Get returns the todo with the given id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*Todo, error) {
	query := s.rebind("SELECT " + todoColumns + " FROM todos WHERE id = ?")

	var t Todo
	err := scanTodo(s.pool.DB().QueryRowContext(ctx, query, id).Scan, &t)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return &t, nil
}

// Create inserts a new todo. The server assigns id and both timestamps
// from a single clock read, so created_at == updated_at on a fresh row.
func (s *Service) Create(ctx context.Context, req CreateTodoRequest) (*Todo, error) {
	now := time.Now().UTC()
	t := Todo{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if s.pool.Driver() == "postgres" {
		query := s.rebind("INSERT INTO todos (title, description, completed, created_at, updated_at) VALUES (?, ?, ?, ?, ?) RETURNING id")
		err := s.pool.DB().QueryRowContext(ctx, query,
			t.Title, t.Description, t.Completed, t.CreatedAt, t.UpdatedAt).Scan(&t.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create todo: %w", err)
		}
		return &t, nil
	}

	res, err := s.pool.DB().ExecContext(ctx,
		"INSERT INTO todos (title, description, completed, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		t.Title, t.Description, t.Completed, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	t.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return &t, nil
}

// Update applies the fields present in req and refreshes updated_at.
// Read and write happen in one transaction, so the update either applies
// all supplied fields or none.
func (s *Service) Update(ctx context.Context, id int64, req UpdateTodoRequest) (*Todo, error) {
	tx, err := s.pool.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var t Todo
	query := s.rebind("SELECT " + todoColumns + " FROM todos WHERE id = ?")
	err = scanTodo(tx.QueryRowContext(ctx, query, id).Scan, &t)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	if req.TitleSet {
		t.Title = *req.Title
	}
	if req.DescriptionSet {
		t.Description = req.Description
	}
	if req.CompletedSet {
		t.Completed = *req.Completed
	}
	t.UpdatedAt = time.Now().UTC()

	query = s.rebind("UPDATE todos SET title = ?, description = ?, completed = ?, updated_at = ? WHERE id = ?")
	if _, err := tx.ExecContext(ctx, query, t.Title, t.Description, t.Completed, t.UpdatedAt, id); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit update: %w", err)
	}
	return &t, nil
}

// Delete removes the todo permanently, or returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	query := s.rebind("DELETE FROM todos WHERE id = ?")

	res, err := s.pool.DB().ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// scanTodo scans one row, mapping the nullable description column.
func scanTodo(scan func(dest ...interface{}) error, t *Todo) error {
	var desc sql.NullString
	if err := scan(&t.ID, &t.Title, &desc, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return err
	}
	if desc.Valid {
		t.Description = &desc.String
	} else {
		t.Description = nil
	}
	return nil
}
