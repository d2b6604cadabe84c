package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifeledger/internal/errors"
	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/output"
	"github.com/manav03panchal/lifeledger/internal/parser"
)

// Event command flags.
var (
	eventFlagDate        string
	eventFlagDescription string
	eventFlagColor       string

	eventUpdTitle       string
	eventUpdDate        string
	eventUpdDescription string
	eventUpdColor       string

	eventListPeriod string
	eventListOn     string
)

// eventCmd represents the event command.
var eventCmd = &cobra.Command{
	Use:     "event",
	Aliases: []string{"events", "cal", "calendar"},
	Short:   "Manage calendar events",
	Long: `Add day-granular events to the calendar.

Examples:
  lifeledger event add "Dentist" --date "next tuesday"
  lifeledger event list --period "this week"
  lifeledger event list --on tomorrow`,
	RunE: runEventList,
}

var eventAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventAdd,
}

var eventListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List events",
	RunE:    runEventList,
}

var eventUpdateCmd = &cobra.Command{
	Use:     "update ID",
	Aliases: []string{"edit"},
	Short:   "Update an event",
	Args:    cobra.ExactArgs(1),
	RunE:    runEventUpdate,
}

var eventDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete an event",
	Args:    cobra.ExactArgs(1),
	RunE:    runEventDelete,
}

func init() {
	eventAddCmd.Flags().StringVar(&eventFlagDate, "date", "today", "Event day (e.g. 'next friday', 2026-05-01)")
	eventAddCmd.Flags().StringVarP(&eventFlagDescription, "description", "d", "", "Description")
	eventAddCmd.Flags().StringVar(&eventFlagColor, "hex", "", "Hex color")

	eventUpdateCmd.Flags().StringVar(&eventUpdTitle, "title", "", "New title")
	eventUpdateCmd.Flags().StringVar(&eventUpdDate, "date", "", "New day")
	eventUpdateCmd.Flags().StringVarP(&eventUpdDescription, "description", "d", "", "Description")
	eventUpdateCmd.Flags().StringVar(&eventUpdColor, "hex", "", "Hex color")

	eventListCmd.Flags().StringVarP(&eventListPeriod, "period", "p", "", "Period: today, this week, last month, ...")
	eventListCmd.Flags().StringVar(&eventListOn, "on", "", "Only events on this day")
	_ = eventListCmd.RegisterFlagCompletionFunc("period", completeValues(
		"today", "yesterday", "tomorrow", "this week", "last week", "this month", "last month", "this year"))

	eventCmd.AddCommand(eventAddCmd, eventListCmd, eventUpdateCmd, eventDeleteCmd)
	rootCmd.AddCommand(eventCmd)
}

func runEventAdd(cmd *cobra.Command, args []string) error {
	day, err := parser.ParseDay(eventFlagDate, ctx.Now())
	if err != nil {
		return err
	}

	event := &model.CalendarEvent{
		Title:       args[0],
		Description: eventFlagDescription,
		Date:        day,
		Color:       eventFlagColor,
	}
	if err := ctx.Store.Events.Add(event); err != nil {
		return err
	}
	return printRecord("created", "event", event.ID, event,
		"Added event "+event.Title+" on "+parser.FormatDay(event.Date, ctx.Now()))
}

func runEventList(cmd *cobra.Command, args []string) error {
	if eventListPeriod != "" && eventListOn != "" {
		return errors.NewUserError("--period and --on cannot be combined", "Pass one of them")
	}

	events := ctx.Store.Events.List()
	switch {
	case eventListOn != "":
		day, err := parser.ParseDay(eventListOn, ctx.Now())
		if err != nil {
			return err
		}
		events = ctx.Store.Events.ListOn(day)
	case eventListPeriod != "":
		r, err := parser.ParsePeriod(eventListPeriod, ctx.Now())
		if err != nil {
			return err
		}
		events = ctx.Store.Events.ListBetween(r.Millis())
	}
	return printList("events", events, (*output.CLIFormatter).PrintEvents)
}

func runEventUpdate(cmd *cobra.Command, args []string) error {
	event, err := findRecord("event", ctx.Store.Events.List(), args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		event.Title = eventUpdTitle
	}
	if flags.Changed("description") {
		event.Description = eventUpdDescription
	}
	if flags.Changed("hex") {
		event.Color = eventUpdColor
	}
	if flags.Changed("date") {
		if event.Date, err = parser.ParseDay(eventUpdDate, ctx.Now()); err != nil {
			return err
		}
	}

	if err := ctx.Store.Events.Update(event); err != nil {
		return err
	}
	return printRecord("updated", "event", event.ID, event, "Updated event "+event.Title)
}

func runEventDelete(cmd *cobra.Command, args []string) error {
	event, err := findRecord("event", ctx.Store.Events.List(), args[0])
	if err != nil {
		return err
	}
	if err := ctx.Store.Events.Delete(event.ID); err != nil {
		return err
	}
	return printRecord("deleted", "event", event.ID, nil, "Deleted event "+event.Title)
}
