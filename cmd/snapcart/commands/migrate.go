package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/marshallshelly/snapcart/cmd/snapcart/output"
	"github.com/marshallshelly/snapcart/cmd/snapcart/tui"
	"github.com/marshallshelly/snapcart/internal/config"
	"github.com/marshallshelly/snapcart/migrations"
	"github.com/marshallshelly/snapcart/pkg/migration"
)

var (
	// Migrate flags
	interactive bool
	jsonOutput  bool
	steps       int
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
	Long: `Manage the snapcart database schema using the embedded migrations.

Subcommands:
  up      - Apply pending migrations
  down    - Rollback migrations
  status  - Show migration status`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Long: `Apply pending migrations to bring the schema up to date.

Examples:
  snapcart migrate up                  # Apply all pending migrations
  snapcart migrate up --interactive    # Review and confirm in a TUI`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrateUp()
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Rollback migrations",
	Long: `Rollback the most recently applied migrations.

Examples:
  snapcart migrate down                # Rollback the last migration
  snapcart migrate down --steps 2      # Rollback the last two migrations`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrateDown()
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrateStatus()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)

	migrateUpCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run in interactive mode with TUI")
	migrateDownCmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to rollback")
	migrateStatusCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

// connectionURL resolves the database URL from the --db flag or the
// environment.
func connectionURL() (string, error) {
	if dbURL != "" {
		return dbURL, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL, nil
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode), nil
}

func withExecutor(fn func(ctx context.Context, executor *migration.Executor, migs []migration.Migration) error) error {
	url, err := connectionURL()
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	migs, err := migration.Load(migrations.Files)
	if err != nil {
		return err
	}

	executor := migration.NewExecutor(pool)
	if err := executor.Initialize(ctx); err != nil {
		return err
	}
	return fn(ctx, executor, migs)
}

func runMigrateUp() error {
	if interactive {
		url, err := connectionURL()
		if err != nil {
			return err
		}
		return tui.RunMigrateUI(url)
	}

	return withExecutor(func(ctx context.Context, executor *migration.Executor, migs []migration.Migration) error {
		if err := executor.Lock(ctx); err != nil {
			return err
		}
		defer func() { _ = executor.Unlock(ctx) }()

		applied, err := executor.ApplyAll(ctx, migs)
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			output.Info("database is up to date")
			return nil
		}
		for _, version := range applied {
			output.Success("applied %s", version)
		}
		return nil
	})
}

func runMigrateDown() error {
	return withExecutor(func(ctx context.Context, executor *migration.Executor, migs []migration.Migration) error {
		if err := executor.Lock(ctx); err != nil {
			return err
		}
		defer func() { _ = executor.Unlock(ctx) }()

		applied, err := executor.GetAppliedMigrations(ctx)
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			output.Info("nothing to rollback")
			return nil
		}

		byVersion := make(map[string]migration.Migration, len(migs))
		for _, m := range migs {
			byVersion[m.Version] = m
		}

		n := steps
		if n > len(applied) {
			n = len(applied)
		}
		for i := 0; i < n; i++ {
			record := applied[len(applied)-1-i]
			mig, ok := byVersion[record.Version]
			if !ok {
				return fmt.Errorf("no migration files for applied version %s", record.Version)
			}
			if err := executor.Rollback(ctx, mig); err != nil {
				return err
			}
			output.Success("rolled back %s", record.Version)
		}
		return nil
	})
}

func runMigrateStatus() error {
	return withExecutor(func(ctx context.Context, executor *migration.Executor, migs []migration.Migration) error {
		records, err := executor.GetAllMigrations(ctx)
		if err != nil {
			return err
		}

		recorded := make(map[string]migration.MigrationRecord, len(records))
		for _, r := range records {
			recorded[r.Version] = r
		}

		type row struct {
			Version string `json:"version"`
			Name    string `json:"name"`
			Status  string `json:"status"`
		}
		rows := make([]row, 0, len(migs))
		for _, m := range migs {
			status := string(migration.StatusPending)
			if r, ok := recorded[m.Version]; ok {
				status = string(r.Status)
			}
			rows = append(rows, row{Version: m.Version, Name: m.Name, Status: status})
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(rows)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tNAME\tSTATUS")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s %s\n", r.Version, r.Name, output.StatusIcon(r.Status), r.Status)
		}
		return w.Flush()
	})
}
