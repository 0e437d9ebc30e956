package repository

import (
	"context"
	"database/sql"
	"sync"

	"simaset/internal/entity"
)

// ActivityRepository stores the recent activity feed shown on the dashboard.
type ActivityRepository interface {
	Record(ctx context.Context, a entity.Activity) error
	Recent(ctx context.Context, limit int) ([]entity.Activity, error)
}

type PostgresActivityRepository struct {
	db *sql.DB
}

func NewPostgresActivityRepository(db *sql.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

func (r *PostgresActivityRepository) Record(ctx context.Context, a entity.Activity) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activities (id, kind, username, detail, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, a.ID, string(a.Kind), a.Username, a.Detail, a.CreatedAt)
	if err != nil {
		return &RepositoryError{Op: "record activity", Err: err}
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (r *PostgresActivityRepository) Recent(ctx context.Context, limit int) ([]entity.Activity, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, username, detail, created_at
		FROM activities
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, &RepositoryError{Op: "recent activities", Err: err}
	}
	defer rows.Close()

	var list []entity.Activity
	for rows.Next() {
		var a entity.Activity
		var kind string
		if err := rows.Scan(&a.ID, &kind, &a.Username, &a.Detail, &a.CreatedAt); err != nil {
			return list, &RepositoryError{Op: "scan activity", Err: err}
		}
		a.Kind = entity.ActivityKind(kind)
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return list, &RepositoryError{Op: "recent activities", Err: err}
	}
	return list, nil
}

// MemoryActivityRepository keeps the newest entries in process memory. It is
// used when no database is configured.
type MemoryActivityRepository struct {
	mu       sync.Mutex
	capacity int
	items    []entity.Activity
}

func NewMemoryActivityRepository(capacity int) *MemoryActivityRepository {
	if capacity <= 0 {
		capacity = 100
	}
	return &MemoryActivityRepository{capacity: capacity}
}

func (r *MemoryActivityRepository) Record(_ context.Context, a entity.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, a)
	if over := len(r.items) - r.capacity; over > 0 {
		r.items = append([]entity.Activity(nil), r.items[over:]...)
	}
	return nil
}

func (r *MemoryActivityRepository) Recent(_ context.Context, limit int) ([]entity.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit > len(r.items) {
		limit = len(r.items)
	}
	out := make([]entity.Activity, 0, max(limit, 0))
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.items[i])
	}
	return out, nil
}

type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return "repository error: " + e.Op + ": " + e.Err.Error()
}

func (e *RepositoryError) Unwrap() error { return e.Err }
