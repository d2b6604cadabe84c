package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/output"
	"github.com/manav03panchal/lifeledger/internal/parser"
)

// Remind command flags.
var (
	remindFlagAt          string
	remindFlagPriority    string
	remindFlagRepeat      string
	remindFlagGoal        string
	remindFlagDescription string

	remindUpdTitle    string
	remindUpdAt       string
	remindUpdPriority string
	remindUpdRepeat   string
	remindUpdGoal     string

	remindListAll bool
)

// remindCmd represents the remind command.
var remindCmd = &cobra.Command{
	Use:     "remind [TITLE]",
	Aliases: []string{"reminder", "reminders", "r"},
	Short:   "Manage reminders",
	Long: `Create and manage reminders. With a title, creates a reminder; otherwise
lists the upcoming ones. A reminder linked to a goal takes the goal's color,
otherwise its priority color.

Time formats:
  - Relative: +2d, +1w, now
  - Natural language: "friday 5pm", "tomorrow 9am", "next monday 10am"
  - Date/time: "2026-01-15 14:00"

Examples:
  lifeledger remind "Submit invoice" --at "friday 5pm"
  lifeledger remind "Weekly review" --at "sunday 6pm" --repeat weekly
  lifeledger remind "Book race" --at tomorrow --goal 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRemindCreate,
}

var remindListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List reminders",
	RunE:    runRemindList,
}

var remindToggleCmd = &cobra.Command{
	Use:               "toggle ID",
	Aliases:           []string{"enable", "disable"},
	Short:             "Enable or disable a reminder",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeReminders,
	RunE:              runRemindToggle,
}

var remindUpdateCmd = &cobra.Command{
	Use:               "update ID",
	Aliases:           []string{"edit"},
	Short:             "Update a reminder",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeReminders,
	RunE:              runRemindUpdate,
}

var remindDeleteCmd = &cobra.Command{
	Use:               "delete ID",
	Aliases:           []string{"rm", "remove"},
	Short:             "Delete a reminder",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeReminders,
	RunE:              runRemindDelete,
}

func init() {
	remindCmd.Flags().StringVar(&remindFlagAt, "at", "", "When to remind (e.g. 'tomorrow 9am')")
	remindCmd.Flags().StringVarP(&remindFlagPriority, "priority", "p", "medium", "Priority: low, medium, high, urgent")
	remindCmd.Flags().StringVar(&remindFlagRepeat, "repeat", "none", "Repeat: none, daily, weekly, monthly, yearly")
	remindCmd.Flags().StringVarP(&remindFlagGoal, "goal", "g", "", "Link to a goal")
	remindCmd.Flags().StringVarP(&remindFlagDescription, "description", "d", "", "Description")
	_ = remindCmd.RegisterFlagCompletionFunc("priority", completeValues(priorityNames...))
	_ = remindCmd.RegisterFlagCompletionFunc("repeat", completeValues(repeatNames...))

	remindUpdateCmd.Flags().StringVar(&remindUpdTitle, "title", "", "New title")
	remindUpdateCmd.Flags().StringVar(&remindUpdAt, "at", "", "New time")
	remindUpdateCmd.Flags().StringVarP(&remindUpdPriority, "priority", "p", "", "Priority")
	remindUpdateCmd.Flags().StringVar(&remindUpdRepeat, "repeat", "", "Repeat")
	remindUpdateCmd.Flags().StringVarP(&remindUpdGoal, "goal", "g", "", "Link to a goal, or 'none' to unlink")

	remindListCmd.Flags().BoolVarP(&remindListAll, "all", "a", false, "Include past and disabled reminders")

	remindCmd.AddCommand(remindListCmd, remindToggleCmd, remindUpdateCmd, remindDeleteCmd)
	rootCmd.AddCommand(remindCmd)
}

func runRemindCreate(cmd *cobra.Command, args []string) error {
	// If no args, show list
	if len(args) == 0 {
		return runRemindList(cmd, args)
	}

	at := remindFlagAt
	if at == "" {
		at = "now"
	}
	when, err := parser.ParseMillis(at, ctx.Now())
	if err != nil {
		return err
	}

	reminder := &model.Reminder{
		Title:        args[0],
		Description:  remindFlagDescription,
		ReminderTime: when,
		Priority:     model.Priority(enumValue(remindFlagPriority)),
		RepeatType:   model.RepeatType(enumValue(remindFlagRepeat)),
		IsEnabled:    true,
	}
	if remindFlagGoal != "" {
		goal, err := findGoal(remindFlagGoal)
		if err != nil {
			return err
		}
		reminder.LinkedGoalID = goal.ID
	}

	if err := ctx.Store.Reminders.Add(reminder); err != nil {
		return err
	}
	return printRecord("created", "reminder", reminder.ID, reminder,
		"Reminder set for "+output.FormatDateTime(reminder.ReminderTime)+": "+reminder.Title)
}

func runRemindList(cmd *cobra.Command, args []string) error {
	var reminders []*model.Reminder
	if remindListAll {
		reminders = ctx.Store.Reminders.List()
	} else {
		reminders = ctx.Store.Reminders.ListUpcoming(model.Millis(ctx.Now()))
	}
	return printList("reminders", reminders, (*output.CLIFormatter).PrintReminders)
}

func runRemindToggle(cmd *cobra.Command, args []string) error {
	reminder, err := findRecord("reminder", ctx.Store.Reminders.List(), args[0])
	if err != nil {
		return err
	}
	if err := ctx.Store.Reminders.ToggleEnabled(reminder.ID); err != nil {
		return err
	}
	msg := "Disabled " + reminder.Title
	if !reminder.IsEnabled {
		msg = "Enabled " + reminder.Title
	}
	updated, _ := ctx.Store.Reminders.Get(reminder.ID)
	return printRecord("updated", "reminder", reminder.ID, updated, msg)
}

func runRemindUpdate(cmd *cobra.Command, args []string) error {
	reminder, err := findRecord("reminder", ctx.Store.Reminders.List(), args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		reminder.Title = remindUpdTitle
	}
	if flags.Changed("priority") {
		reminder.Priority = model.Priority(enumValue(remindUpdPriority))
	}
	if flags.Changed("repeat") {
		reminder.RepeatType = model.RepeatType(enumValue(remindUpdRepeat))
	}
	if flags.Changed("at") {
		if reminder.ReminderTime, err = parser.ParseMillis(remindUpdAt, ctx.Now()); err != nil {
			return err
		}
	}
	if flags.Changed("goal") {
		reminder.LinkedGoalID = ""
		if !strings.EqualFold(remindUpdGoal, "none") {
			goal, err := findGoal(remindUpdGoal)
			if err != nil {
				return err
			}
			reminder.LinkedGoalID = goal.ID
		}
	}

	if err := ctx.Store.Reminders.Update(reminder); err != nil {
		return err
	}
	return printRecord("updated", "reminder", reminder.ID, reminder, "Updated reminder "+reminder.Title)
}

func runRemindDelete(cmd *cobra.Command, args []string) error {
	reminder, err := findRecord("reminder", ctx.Store.Reminders.List(), args[0])
	if err != nil {
		return err
	}
	if err := ctx.Store.Reminders.Delete(reminder.ID); err != nil {
		return err
	}
	return printRecord("deleted", "reminder", reminder.ID, nil, "Deleted reminder "+reminder.Title)
}
