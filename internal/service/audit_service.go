package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"auth-system/internal/event"
	"auth-system/internal/model"
	"auth-system/internal/repository"
)

// AuditService persists auth events from the bus. Write failures are logged
// and never reach the request that produced the event.
type AuditService struct {
	repo   repository.AuditRepository
	logger *slog.Logger

	stop func()
	wg   sync.WaitGroup
}

func NewAuditService(repo repository.AuditRepository, logger *slog.Logger) *AuditService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditService{repo: repo, logger: logger}
}

// Start consumes events until Stop is called.
func (s *AuditService) Start(bus event.Bus) {
	events, unsubscribe := bus.Subscribe()
	s.stop = unsubscribe

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for e := range events {
			s.record(e)
		}
	}()
}

// Stop unsubscribes and waits for buffered events to drain.
func (s *AuditService) Stop() {
	if s.stop != nil {
		s.stop()
	}
	s.wg.Wait()
}

func (s *AuditService) Recent(ctx context.Context, limit int) ([]model.AuthEvent, error) {
	return s.repo.Recent(ctx, limit)
}

func (s *AuditService) record(e event.Event) {
	occurredAt, err := time.Parse(time.RFC3339Nano, e.Timestamp)
	if err != nil {
		occurredAt = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entry := model.AuthEvent{
		Type:       string(e.Type),
		UserID:     e.UserID,
		Email:      e.Email,
		RequestID:  e.RequestID,
		OccurredAt: occurredAt,
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		s.logger.Error("audit write failed", "type", e.Type, "error", err)
	}
}
