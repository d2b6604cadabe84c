package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/output"
	"github.com/manav03panchal/lifeledger/internal/parser"
	"github.com/manav03panchal/lifeledger/internal/stats"
)

// Habit command flags.
var (
	habitFlagDescription string
	habitFlagColor       string
	habitFlagIcon        string
	habitFlagTarget      int

	habitCheckDate string
	habitCheckNote string
	habitCheckMiss bool

	habitArchiveRestore bool
)

// habitCmd represents the habit command.
var habitCmd = &cobra.Command{
	Use:     "habit",
	Aliases: []string{"habits", "h"},
	Short:   "Track habits and streaks",
	Long: `Define habits and check them off day by day. Each habit has at most one
entry per day; checking the same day again replaces the entry.

Examples:
  lifeledger habit add Meditate --target-days 5
  lifeledger habit check meditate
  lifeledger habit check meditate --date yesterday --note "10 min"
  lifeledger habit list`,
	RunE: runHabitList,
}

var habitAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Define a habit",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitAdd,
}

var habitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "streaks"},
	Short:   "List active habits with streaks",
	RunE:    runHabitList,
}

var habitCheckCmd = &cobra.Command{
	Use:               "check HABIT",
	Aliases:           []string{"log", "done"},
	Short:             "Record a day's outcome for a habit",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeHabits,
	RunE:              runHabitCheck,
}

var habitHistoryCmd = &cobra.Command{
	Use:               "history HABIT",
	Short:             "Show a habit's entries",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeHabits,
	RunE:              runHabitHistory,
}

var habitArchiveCmd = &cobra.Command{
	Use:               "archive HABIT",
	Short:             "Archive a habit, keeping its history",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeHabits,
	RunE:              runHabitArchive,
}

var habitDeleteCmd = &cobra.Command{
	Use:               "delete HABIT",
	Aliases:           []string{"rm", "remove"},
	Short:             "Delete a habit and all of its entries",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeHabits,
	RunE:              runHabitDelete,
}

func init() {
	habitAddCmd.Flags().StringVarP(&habitFlagDescription, "description", "d", "", "Description")
	habitAddCmd.Flags().StringVar(&habitFlagColor, "hex", "", "Hex color")
	habitAddCmd.Flags().StringVar(&habitFlagIcon, "icon", "", "Icon")
	habitAddCmd.Flags().IntVar(&habitFlagTarget, "target-days", 7, "Target days per week (0-7)")

	habitCheckCmd.Flags().StringVar(&habitCheckDate, "date", "today", "Day to record")
	habitCheckCmd.Flags().StringVar(&habitCheckNote, "note", "", "Note for the day")
	habitCheckCmd.Flags().BoolVar(&habitCheckMiss, "missed", false, "Record the day as not completed")

	habitArchiveCmd.Flags().BoolVar(&habitArchiveRestore, "restore", false, "Restore an archived habit")

	habitCmd.AddCommand(habitAddCmd, habitListCmd, habitCheckCmd, habitHistoryCmd, habitArchiveCmd, habitDeleteCmd)
	rootCmd.AddCommand(habitCmd)
}

// findHabit resolves a habit by id prefix or case-insensitive name.
func findHabit(ref string) (*model.Habit, error) {
	habits := ctx.Store.Habits.List()
	for _, h := range habits {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}
	return findRecord("habit", habits, ref)
}

func runHabitAdd(cmd *cobra.Command, args []string) error {
	habit := &model.Habit{
		Name:              args[0],
		Description:       habitFlagDescription,
		Color:             habitFlagColor,
		Icon:              habitFlagIcon,
		TargetDaysPerWeek: habitFlagTarget,
	}
	if err := ctx.Store.Habits.Add(habit); err != nil {
		return err
	}
	return printRecord("created", "habit", habit.ID, habit, "Added habit "+habit.Name+" ("+short(habit.ID)+")")
}

func runHabitList(cmd *cobra.Command, args []string) error {
	return printList("habits", ctx.Stats.HabitStreaks(), (*output.CLIFormatter).PrintHabits)
}

func runHabitCheck(cmd *cobra.Command, args []string) error {
	habit, err := findHabit(args[0])
	if err != nil {
		return err
	}
	day, err := parser.ParseDay(habitCheckDate, ctx.Now())
	if err != nil {
		return err
	}

	entry := &model.HabitEntry{
		HabitID:     habit.ID,
		Date:        day,
		IsCompleted: !habitCheckMiss,
		Note:        habitCheckNote,
	}
	if err := ctx.Store.HabitEntries.Add(entry); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintRecord("created", "habitEntry", entry.ID, entry)
	}

	when := parser.FormatDay(day, ctx.Now())
	if habitCheckMiss {
		ctx.CLIFormatter().Warning(fmt.Sprintf("%s marked missed for %s", habit.Name, when))
		return nil
	}
	streak := stats.CurrentStreak(stats.CompletedDays(ctx.Store.HabitEntries.ListForHabit(habit.ID)), ctx.Now())
	ctx.CLIFormatter().Success(fmt.Sprintf("%s done for %s, streak %d", habit.Name, when, streak))
	return nil
}

func runHabitHistory(cmd *cobra.Command, args []string) error {
	habit, err := findHabit(args[0])
	if err != nil {
		return err
	}
	entries := ctx.Store.HabitEntries.ListForHabit(habit.ID)

	return printList("habitEntries", entries, func(c *output.CLIFormatter, items []*model.HabitEntry) {
		if len(items) == 0 {
			c.Muted("No entries for " + habit.Name + ".")
			return
		}
		rows := make([]output.TableRow, 0, len(items))
		for _, e := range items {
			mark := c.Good("done")
			if !e.IsCompleted {
				mark = c.Bad("missed")
			}
			rows = append(rows, output.TableRow{Columns: []string{output.FormatDate(e.Date), mark, e.Note}})
		}
		c.PrintTable([]string{"DATE", "RESULT", "NOTE"}, rows)
	})
}

func runHabitArchive(cmd *cobra.Command, args []string) error {
	habit, err := findHabit(args[0])
	if err != nil {
		return err
	}
	archived := !habitArchiveRestore
	if err := ctx.Store.Habits.SetArchived(habit.ID, archived); err != nil {
		return err
	}
	msg := "Archived " + habit.Name
	if !archived {
		msg = "Restored " + habit.Name
	}
	return printStatus("updated", msg)
}

func runHabitDelete(cmd *cobra.Command, args []string) error {
	habit, err := findHabit(args[0])
	if err != nil {
		return err
	}
	if err := ctx.Store.Habits.Delete(habit.ID); err != nil {
		return err
	}
	return printRecord("deleted", "habit", habit.ID, nil, "Deleted habit "+habit.Name+" and its history")
}
