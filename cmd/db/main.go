package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/pracor/pracor/cmd/db/commands"
	"github.com/pracor/pracor/internal/database"
	"github.com/pracor/pracor/internal/database/migrations"
	"github.com/pracor/pracor/internal/setup/config"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	deps, err := setupDependencies()
	if err != nil {
		return fmt.Errorf("failed to setup dependencies: %w", err)
	}
	defer deps.DB.Close()

	return NewApp(deps).Run(context.Background(), os.Args)
}

// NewApp assembles the command tree.
func NewApp(deps *commands.CLIDependencies) *cli.Command {
	var cmds []*cli.Command
	cmds = append(cmds, commands.MigrationCommands(deps)...)
	cmds = append(cmds, commands.ScoreCommands(deps)...)
	cmds = append(cmds, commands.CompanyCommands(deps)...)

	return &cli.Command{
		Name:     "db",
		Usage:    "Database management tool",
		Commands: cmds,
	}
}

// setupDependencies loads the configuration and connects to the database.
func setupDependencies() (*commands.CLIDependencies, error) {
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.NewConnection(context.Background(), &cfg.Common.PostgreSQL, logger, false)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &commands.CLIDependencies{
		DB:       db,
		Migrator: migrate.NewMigrator(db.DB(), migrations.Migrations),
		Logger:   logger,
		Out:      os.Stdout,
	}, nil
}
