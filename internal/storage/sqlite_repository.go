package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/sandeepkv93/todocal/internal/model"
)

// MemoryDSN keeps the database inside the process. It must be paired with a
// single open connection, otherwise each connection sees its own database.
const MemoryDSN = ":memory:"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenMemorySQLite opens a process-local SQLite database with the schema
// applied. Its contents vanish when the repository is closed.
func OpenMemorySQLite() (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", MemoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Insert(ctx context.Context, in model.Todo) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO todos (id, title, description, completed, created_at, due_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Description, boolInt(in.Completed), in.CreatedAt, nullDate(in.DueDate),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateID
		}
		return err
	}
	if err := insertTags(ctx, tx, in.ID, in.Tags); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (model.Todo, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, completed, created_at, due_date
		FROM todos WHERE id = ?`, id)
	todo, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, err
	}
	tags, err := r.loadTags(ctx, id)
	if err != nil {
		return model.Todo{}, err
	}
	todo.Tags = tags[id]
	if todo.Tags == nil {
		todo.Tags = []string{}
	}
	return todo, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, in model.Todo) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE todos
		SET title = ?, description = ?, completed = ?, due_date = ?
		WHERE id = ?`,
		in.Title, in.Description, boolInt(in.Completed), nullDate(in.DueDate), in.ID,
	)
	if err != nil {
		return err
	}
	if err := checkRowsAffected(res); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM todo_tags WHERE todo_id = ?`, in.ID); err != nil {
		return err
	}
	if err := insertTags(ctx, tx, in.ID, in.Tags); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) List(ctx context.Context) ([]model.Todo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, completed, created_at, due_date
		FROM todos ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	out := make([]model.Todo, 0)
	for rows.Next() {
		todo, scanErr := scanTodo(rows)
		if scanErr != nil {
			_ = rows.Close()
			return nil, scanErr
		}
		out = append(out, todo)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	// the tag query needs the single connection back
	if err := rows.Close(); err != nil {
		return nil, err
	}

	tags, err := r.loadTags(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Tags = tags[out[i].ID]
		if out[i].Tags == nil {
			out[i].Tags = []string{}
		}
	}
	return out, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// loadTags returns tags keyed by todo id, in entry order. An empty id loads
// every todo's tags.
func (r *SQLiteRepository) loadTags(ctx context.Context, id string) (map[string][]string, error) {
	query := `SELECT todo_id, name FROM todo_tags`
	args := make([]any, 0, 1)
	if id != "" {
		query += ` WHERE todo_id = ?`
		args = append(args, id)
	}
	query += ` ORDER BY todo_id, position ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var todoID, name string
		if err := rows.Scan(&todoID, &name); err != nil {
			return nil, err
		}
		out[todoID] = append(out[todoID], name)
	}
	return out, rows.Err()
}

func insertTags(ctx context.Context, tx *sql.Tx, id string, tags []string) error {
	for i, tag := range tags {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO todo_tags (todo_id, position, name) VALUES (?, ?, ?)`,
			id, i, tag,
		); err != nil {
			return fmt.Errorf("insert tag %q: %w", tag, err)
		}
	}
	return nil
}

func nullDate(d model.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

func parseNullableDate(v sql.NullString) (model.Date, error) {
	if !v.Valid || v.String == "" {
		return model.Date{}, nil
	}
	return model.ParseDate(v.String)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (model.Todo, error) {
	var out model.Todo
	var completed int
	var due sql.NullString
	if err := s.Scan(&out.ID, &out.Title, &out.Description, &completed, &out.CreatedAt, &due); err != nil {
		return model.Todo{}, err
	}
	dueDate, err := parseNullableDate(due)
	if err != nil {
		return model.Todo{}, err
	}
	out.Completed = completed == 1
	out.DueDate = dueDate
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
