package commands

import (
	"context"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// MigrationCommands returns all migration-related commands.
func MigrationCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "init",
			Usage: "Initialize migration tables",
			Action: func(ctx context.Context, _ *cli.Command) error {
				return deps.Migrator.Init(ctx)
			},
		},
		{
			Name:   "migrate",
			Usage:  "Run pending migrations",
			Action: locked(deps, handleMigrate),
		},
		{
			Name:   "rollback",
			Usage:  "Rollback the last migration group",
			Action: locked(deps, handleRollback),
		},
		{
			Name:   "status",
			Usage:  "Show migration status",
			Action: handleStatus(deps),
		},
		{
			Name:      "create",
			Usage:     "Create a new Go migration file",
			ArgsUsage: "NAME",
			Action:    handleCreate(deps),
		},
	}
}

// locked runs fn while holding the migration lock.
func locked(deps *CLIDependencies, fn func(context.Context, *CLIDependencies) error) cli.ActionFunc {
	return func(ctx context.Context, _ *cli.Command) error {
		if err := deps.Migrator.Lock(ctx); err != nil {
			return err
		}
		defer deps.Migrator.Unlock(ctx) //nolint:errcheck // -

		return fn(ctx, deps)
	}
}

func handleMigrate(ctx context.Context, deps *CLIDependencies) error {
	group, err := deps.Migrator.Migrate(ctx)
	if err != nil {
		return err
	}

	if group.IsZero() {
		deps.Logger.Info("No new migrations to run (database is up to date)")
		return nil
	}

	deps.Logger.Info("Successfully migrated", zap.String("group", group.String()))

	return nil
}

func handleRollback(ctx context.Context, deps *CLIDependencies) error {
	group, err := deps.Migrator.Rollback(ctx)
	if err != nil {
		return err
	}

	if group.IsZero() {
		deps.Logger.Info("No groups to roll back")
		return nil
	}

	deps.Logger.Info("Successfully rolled back", zap.String("group", group.String()))

	return nil
}

func handleStatus(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, _ *cli.Command) error {
		ms, err := deps.Migrator.MigrationsWithStatus(ctx)
		if err != nil {
			return err
		}

		unapplied := ms.Unapplied()
		deps.Logger.Info("Migration status",
			zap.Int("total", len(ms)),
			zap.Int("pending", len(unapplied)),
			zap.String("unapplied", unapplied.String()),
			zap.String("last_group", ms.LastGroup().String()),
		)

		return nil
	}
}

func handleCreate(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() != 1 {
			return ErrNameRequired
		}

		mf, err := deps.Migrator.CreateGoMigration(ctx, c.Args().First())
		if err != nil {
			return err
		}

		deps.Logger.Info("Created Go migration",
			zap.String("name", mf.Name),
			zap.String("path", mf.Path),
		)

		return nil
	}
}
