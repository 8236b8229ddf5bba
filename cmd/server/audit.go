package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"auth-system/internal/config"
	"auth-system/internal/database"
	"auth-system/internal/model"
	"auth-system/internal/repository"
	"auth-system/internal/service"
)

type auditReader interface {
	Recent(ctx context.Context, limit int) ([]model.AuthEvent, error)
}

// openAuditReader is swapped in tests.
var openAuditReader = func(ctx context.Context) (auditReader, func(), error) {
	url, err := config.LoadDatabaseURL()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.New(ctx, url, 2, 0)
	if err != nil {
		return nil, nil, err
	}

	reader := service.NewAuditService(repository.NewPostgresAuditRepository(db.Pool), nil)
	return reader, db.Close, nil
}

type auditRecentConfig struct {
	limit      int
	jsonOutput bool
}

func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the authentication audit trail",
	}

	cfg := &auditRecentConfig{}
	recent := &cobra.Command{
		Use:   "recent",
		Short: "Print the newest auth events",
		Long:  `Print the newest auth events, newest first. The limit defaults to 50 and is capped at 200.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAuditRecent(cmd, cfg)
		},
	}
	recent.Flags().IntVar(&cfg.limit, "limit", 50, "number of events to print")
	recent.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output events as JSON")
	cmd.AddCommand(recent)

	return cmd
}

func runAuditRecent(cmd *cobra.Command, cfg *auditRecentConfig) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	reader, closeFn, err := openAuditReader(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	events, err := reader.Recent(ctx, cfg.limit)
	if err != nil {
		return fmt.Errorf("read audit trail: %w", err)
	}

	if cfg.jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "OCCURRED AT\tTYPE\tUSER\tEMAIL\tREQUEST ID")
	for _, e := range events {
		user := "-"
		if e.UserID != 0 {
			user = fmt.Sprintf("%d", e.UserID)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.OccurredAt.UTC().Format(time.RFC3339), e.Type, user, dash(e.Email), dash(e.RequestID))
	}
	return w.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
