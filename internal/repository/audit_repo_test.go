package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-system/internal/model"
)

func TestPostgresAuditRepository_Log(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(`INSERT INTO auth_events`).
		WithArgs("user.registered", pgxmock.AnyArg(), "ana@test.com", "req-1", at).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewPostgresAuditRepository(mock)
	err = repo.Log(context.Background(), model.AuthEvent{
		Type:       "user.registered",
		UserID:     3,
		Email:      "ana@test.com",
		RequestID:  "req-1",
		OccurredAt: at,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAuditRepository_Recent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"event_type", "user_id", "email", "request_id", "occurred_at"}).
		AddRow("user.login_failed", int64(0), "ana@test.com", "", at)
	mock.ExpectQuery(`FROM auth_events`).
		WithArgs(200).
		WillReturnRows(rows)

	events, err := NewPostgresAuditRepository(mock).Recent(context.Background(), 1000)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "user.login_failed", events[0].Type)
	assert.Zero(t, events[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryAuditRepository_RecentNewestFirst(t *testing.T) {
	repo := NewMemoryAuditRepository()
	ctx := context.Background()

	for _, typ := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Log(ctx, model.AuthEvent{Type: typ}))
	}

	events, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "c", events[0].Type)
	assert.Equal(t, "b", events[1].Type)
}
