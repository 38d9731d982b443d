package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"
)

// CompanyCommands returns the company administration commands.
func CompanyCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "companies",
			Usage: "Company administration",
			Commands: []*cli.Command{
				{
					Name:   "queue",
					Usage:  "List company names waiting to be created",
					Action: handleQueue(deps),
				},
			},
		},
	}
}

func handleQueue(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, _ *cli.Command) error {
		requests, err := deps.DB.Model().CompanyRequest().List(ctx)
		if err != nil {
			return err
		}

		if len(requests) == 0 {
			fmt.Fprintln(deps.Out, "No pending company requests")
			return nil
		}

		w := tabwriter.NewWriter(deps.Out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tREQUESTED BY\tREQUESTED AT")
		for _, r := range requests {
			fmt.Fprintf(w, "%s\t%d\t%s\n", r.Name, r.RequestedBy, r.UpdatedAt.UTC().Format(time.DateTime))
		}

		return w.Flush()
	}
}
