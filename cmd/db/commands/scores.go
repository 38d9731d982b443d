package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pracor/pracor/internal/database/service"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// ScoreCommands returns the score maintenance commands.
func ScoreCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "scores",
			Usage: "Maintain company score totals",
			Commands: []*cli.Command{
				{
					Name:  "recompute",
					Usage: "Rebuild score totals from the counted reviews",
					Description: `Recompute the accumulated rating sums of one company or of every company.

Examples:
  db scores recompute 42            # Recompute a single company
  db scores recompute --workers 8   # Recompute every company on 8 workers`,
					ArgsUsage: "[ID]",
					Flags: []cli.Flag{
						&cli.IntFlag{
							Name:  "workers",
							Usage: "Concurrent companies when recomputing all",
							Value: service.DefaultRecomputeWorkers,
						},
					},
					Action: handleRecompute(deps),
				},
			},
		},
	}
}

func handleRecompute(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		scores := deps.DB.Service().Score()

		switch c.Args().Len() {
		case 0:
			processed, err := scores.RecomputeAll(ctx, int(c.Int("workers")))
			if err != nil {
				return fmt.Errorf("recomputed %d companies before failing: %w", processed, err)
			}
			fmt.Fprintf(deps.Out, "Recomputed %d companies\n", processed)

			return nil
		case 1:
			id, err := strconv.ParseInt(c.Args().First(), 10, 64)
			if err != nil || id <= 0 {
				return ErrInvalidID
			}

			totals, err := scores.Recompute(ctx, id)
			if err != nil {
				return err
			}

			deps.Logger.Info("Recomputed company scores",
				zap.Int64("companyID", id),
				zap.Int64("reviews", totals.ReviewCount))
			fmt.Fprintf(deps.Out, "Company %d: %d counted reviews\n", id, totals.ReviewCount)

			return nil
		default:
			return ErrTooManyArguments
		}
	}
}
