package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifeledger/internal/output"
	"github.com/manav03panchal/lifeledger/internal/stats"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"stat", "st"},
	Short:   "Show progress statistics",
	Long: `Show goal progress, today's tasks and habit streaks. Stats are computed
from the stored records on every call.

Examples:
  lifeledger stats
  lifeledger stats goals
  lifeledger stats habits
  lifeledger stats --format json`,
	RunE: runStats,
}

var statsGoalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Show progress and linked tasks per goal",
	RunE:  runStatsGoals,
}

var statsHabitsCmd = &cobra.Command{
	Use:   "habits",
	Short: "Show current and longest streak per habit",
	RunE:  runHabitList,
}

// statsReport is the JSON shape of the stats command.
type statsReport struct {
	Dashboard stats.DashboardStats `json:"dashboard"`
	Goals     []stats.GoalSummary  `json:"goals"`
	Habits    []stats.HabitStreak  `json:"habits"`
}

func init() {
	statsCmd.AddCommand(statsGoalsCmd, statsHabitsCmd)
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	report := statsReport{
		Dashboard: ctx.Stats.Dashboard(),
		Goals:     ctx.Stats.GoalSummaries(),
		Habits:    ctx.Stats.HabitStreaks(),
	}
	if ctx.IsJSON() {
		if report.Habits == nil {
			report.Habits = []stats.HabitStreak{}
		}
		return ctx.Formatter.JSON(report)
	}

	cli := ctx.CLIFormatter()
	cli.PrintDashboard(report.Dashboard)
	if len(report.Goals) > 0 {
		cli.Println("")
		cli.PrintGoalSummaries(report.Goals)
	}
	if len(report.Habits) > 0 {
		cli.Println("")
		cli.PrintHabits(report.Habits)
	}
	return nil
}

func runStatsGoals(cmd *cobra.Command, args []string) error {
	return printList("goalSummaries", ctx.Stats.GoalSummaries(), (*output.CLIFormatter).PrintGoalSummaries)
}
