package handlers

import (
	"context"
	"fmt"

	"github.com/xolan/daylog/internal/cli"
)

// ShowDashboard prints the summary cards, the 7-day mood and energy
// series, the category distribution and the insights
func ShowDashboard(ctx context.Context, deps *cli.Deps) {
	summary, err := deps.Services.Dashboard.Summary(ctx)
	if err != nil {
		fail(deps, err)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, cli.Title("Dashboard"))
	_, _ = fmt.Fprintln(deps.Stdout, cli.SummaryTable(summary))
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, cli.Title("Mood & energy (last 7 days)"))
	_, _ = fmt.Fprintln(deps.Stdout, cli.SeriesTable(summary.Series))
	_, _ = fmt.Fprintln(deps.Stdout)

	if len(summary.Distribution) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, cli.Title("Categories"))
		_, _ = fmt.Fprintln(deps.Stdout, cli.DistributionTable(summary.Distribution))
		_, _ = fmt.Fprintln(deps.Stdout)
	}

	_, _ = fmt.Fprintln(deps.Stdout, cli.Title("Insights"))
	for _, insight := range summary.Insights {
		_, _ = fmt.Fprintf(deps.Stdout, "  • %s\n", insight)
	}
}
