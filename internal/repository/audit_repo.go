package repository

import (
	"context"
	"fmt"
	"sync"

	"auth-system/internal/model"
)

type AuditRepository interface {
	Log(ctx context.Context, e model.AuthEvent) error
	Recent(ctx context.Context, limit int) ([]model.AuthEvent, error)
}

type PostgresAuditRepository struct {
	pool DBTX
}

func NewPostgresAuditRepository(pool DBTX) *PostgresAuditRepository {
	return &PostgresAuditRepository{pool: pool}
}

func (r *PostgresAuditRepository) Log(ctx context.Context, e model.AuthEvent) error {
	var userID *int64
	if e.UserID != 0 {
		userID = &e.UserID
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO auth_events (event_type, user_id, email, request_id, occurred_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.Type, userID, e.Email, e.RequestID, e.OccurredAt)
	if err != nil {
		return fmt.Errorf("log auth event: %w", err)
	}
	return nil
}

func (r *PostgresAuditRepository) Recent(ctx context.Context, limit int) ([]model.AuthEvent, error) {
	limit = clampLimit(limit)

	rows, err := r.pool.Query(ctx,
		`SELECT event_type, COALESCE(user_id, 0), email, request_id, occurred_at
		 FROM auth_events
		 ORDER BY occurred_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query auth events: %w", err)
	}
	defer rows.Close()

	events := make([]model.AuthEvent, 0)
	for rows.Next() {
		var e model.AuthEvent
		if err := rows.Scan(&e.Type, &e.UserID, &e.Email, &e.RequestID, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan auth event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// MemoryAuditRepository keeps the trail in process for STORE_DRIVER=memory.
type MemoryAuditRepository struct {
	mu     sync.Mutex
	events []model.AuthEvent
}

func NewMemoryAuditRepository() *MemoryAuditRepository {
	return &MemoryAuditRepository{}
}

func (r *MemoryAuditRepository) Log(_ context.Context, e model.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Recent returns newest first.
func (r *MemoryAuditRepository) Recent(_ context.Context, limit int) ([]model.AuthEvent, error) {
	limit = clampLimit(limit)

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.AuthEvent, 0, min(limit, len(r.events)))
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.events[i])
	}
	return out, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > 200 {
		return 200
	}
	return limit
}
