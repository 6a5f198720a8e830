package migrate

import (
	"context"
	"fmt"

	sqlmigrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-notes/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-notes/pkg/config"
	"github.com/johnquangdev/meeting-notes/pkg/logger"
)

var steps int

func init() {
	downCmd.Flags().IntVarP(&steps, "steps", "n", 1, "number of migrations to roll back")

	Cmd.AddCommand(upCmd)
	Cmd.AddCommand(downCmd)
	Cmd.AddCommand(statusCmd)
}

// Cmd represents the migrate command
var Cmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the Postgres schema used when RECORD_STORE=postgres",
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(db *gorm.DB) error {
			n, err := database.Migrate(db, sqlmigrate.Up, 0)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migrations\n", n)
			return nil
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if steps < 1 {
			return fmt.Errorf("--steps must be at least 1")
		}
		return withDB(cmd.Context(), func(db *gorm.DB) error {
			n, err := database.Migrate(db, sqlmigrate.Down, steps)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migrations\n", n)
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List applied migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(db *gorm.DB) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			records, err := sqlmigrate.GetMigrationRecords(sqlDB, "postgres")
			if err != nil {
				return err
			}
			for _, r := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.Id, r.AppliedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		})
	},
}

func withDB(ctx context.Context, fn func(db *gorm.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	zapLogger, err := logger.New(cfg.Server.Environment)
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	db, err := database.NewPostgresDB(ctx, cfg, zapLogger)
	if err != nil {
		return err
	}
	defer database.CloseDB(db)

	return fn(db)
}
