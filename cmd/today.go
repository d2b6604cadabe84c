package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/stats"
)

// todayCmd represents the today command.
var todayCmd = &cobra.Command{
	Use:     "today",
	Aliases: []string{"t", "td"},
	Short:   "Show today's agenda",
	Long: `Show tasks due today, today's events, the reminders still to fire today
and the habits not yet checked off. Running lifeledger with no command shows
the same view.

Examples:
  lifeledger today
  lifeledger t`,
	RunE: runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

// todayReport is the JSON shape of the today command.
type todayReport struct {
	Date      int64                  `json:"date"`
	Tasks     []*model.Task          `json:"tasks"`
	Events    []*model.CalendarEvent `json:"events"`
	Reminders []*model.Reminder      `json:"reminders"`
	Habits    []stats.HabitStreak    `json:"habits"`
	Dashboard stats.DashboardStats   `json:"dashboard"`
}

func buildToday() todayReport {
	now := ctx.Now()
	start := model.StartOfDay(now)
	today := model.Millis(start)
	tomorrow := model.Millis(start.AddDate(0, 0, 1))

	r := todayReport{
		Date:      today,
		Tasks:     []*model.Task{},
		Events:    []*model.CalendarEvent{},
		Reminders: []*model.Reminder{},
		Habits:    []stats.HabitStreak{},
		Dashboard: ctx.Stats.Dashboard(),
	}

	showDone := ctx.Store.Settings.Get().ShowCompletedTasks
	for _, t := range ctx.Store.Tasks.ListDueOn(today) {
		if !t.IsCompleted || showDone {
			r.Tasks = append(r.Tasks, t)
		}
	}
	r.Events = append(r.Events, ctx.Store.Events.ListOn(today)...)
	for _, rem := range ctx.Store.Reminders.ListUpcoming(model.Millis(now)) {
		if rem.ReminderTime < tomorrow {
			r.Reminders = append(r.Reminders, rem)
		}
	}
	for _, h := range ctx.Stats.HabitStreaks() {
		if !h.CompletedToday {
			r.Habits = append(r.Habits, h)
		}
	}
	return r
}

func runToday(cmd *cobra.Command, args []string) error {
	r := buildToday()
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(r)
	}

	cli := ctx.CLIFormatter()
	name := "Today"
	if p, ok := ctx.Store.Profile.Get(); ok && p.Name != "" {
		name = "Today, " + p.Name
	}
	cli.Title(name)
	cli.Muted(ctx.Now().Format("Monday, January 2"))
	cli.Println("")

	cli.Println(cli.Accent("Tasks"))
	cli.PrintTasks(r.Tasks)
	cli.Println("")

	cli.Println(cli.Accent("Events"))
	cli.PrintEvents(r.Events)
	cli.Println("")

	cli.Println(cli.Accent("Reminders"))
	cli.PrintReminders(r.Reminders)
	cli.Println("")

	cli.Println(cli.Accent("Habits to do"))
	if len(r.Habits) == 0 {
		cli.Muted("All habits done.")
	} else {
		cli.PrintHabits(r.Habits)
	}

	if r.Dashboard.TotalTasksToday > 0 {
		cli.Println("")
		cli.KeyValue("Done today", fmt.Sprintf("%d/%d", r.Dashboard.TasksCompletedToday, r.Dashboard.TotalTasksToday))
	}
	return nil
}

