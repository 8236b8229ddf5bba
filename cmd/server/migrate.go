package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"auth-system/internal/config"
	"auth-system/internal/database"
)

type schemaMigrator interface {
	Up() error
	Down() error
	Version() (uint, bool, error)
	Close() error
}

// openMigrator is swapped in tests.
var openMigrator = func() (schemaMigrator, error) {
	url, err := config.LoadDatabaseURL()
	if err != nil {
		return nil, err
	}
	m, err := database.NewMigrator(url)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: withMigrator(func(cmd *cobra.Command, m schemaMigrator) error {
			if err := m.Up(); err != nil {
				return err
			}
			return printVersion(cmd, m)
		}),
	})

	var confirm bool
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back every migration (drops all tables)",
		RunE: withMigrator(func(cmd *cobra.Command, m schemaMigrator) error {
			if !confirm {
				return errors.New("refusing to drop the schema without --yes")
			}
			if err := m.Down(); err != nil {
				return err
			}
			return printVersion(cmd, m)
		}),
	}
	down.Flags().BoolVar(&confirm, "yes", false, "confirm dropping all tables")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		RunE:  withMigrator(printVersion),
	})

	return cmd
}

func withMigrator(fn func(*cobra.Command, schemaMigrator) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		m, err := openMigrator()
		if err != nil {
			return err
		}
		defer func() { _ = m.Close() }()

		return fn(cmd, m)
	}
}

func printVersion(cmd *cobra.Command, m schemaMigrator) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}

	if dirty {
		cmd.Printf("schema version: %d (dirty)\n", version)
		return fmt.Errorf("schema version %d is dirty", version)
	}
	cmd.Printf("schema version: %d\n", version)
	return nil
}
