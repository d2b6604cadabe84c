package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifeledger/internal/tui"
)

var dashboardFlagRefresh time.Duration

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "d", "tui"},
	Short:   "Open the interactive TUI dashboard",
	Long: `Open an interactive terminal dashboard.

The dashboard has four panels:
  - Overview: goals, milestone progress, today's tasks and the habit streak
  - Habits: today's check-offs and streak per habit
  - Finance: balance, totals and budget consumption
  - Goals: progress per goal

Keyboard Controls:
  tab / l  - Next panel
  h        - Previous panel
  1-4      - Jump to a panel
  r        - Refresh data
  q        - Quit dashboard

Examples:
  lifeledger dashboard
  lifeledger dash --refresh 30s`,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().DurationVar(&dashboardFlagRefresh, "refresh", 5*time.Second, "Reload interval")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	config := tui.DashboardConfig{
		Engine:          ctx.Stats,
		Clock:           ctx.Now,
		Currency:        ctx.Formatter.Currency,
		RefreshInterval: dashboardFlagRefresh,
	}
	return tui.Run(config)
}
