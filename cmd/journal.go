package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/output"
	"github.com/manav03panchal/lifeledger/internal/parser"
)

// Journal command flags.
var (
	journalFlagContent      string
	journalFlagMood         string
	journalFlagDate         string
	journalFlagTags         string
	journalFlagGratitude    string
	journalFlagAchievements string
	journalFlagChallenges   string
	journalFlagGoals        string

	journalUpdTitle   string
	journalUpdContent string
	journalUpdMood    string
	journalUpdDate    string
	journalUpdTags    string

	journalListOn   string
	journalListMood string
	journalListTag  string
)

// journalCmd represents the journal command.
var journalCmd = &cobra.Command{
	Use:     "journal",
	Aliases: []string{"j"},
	Short:   "Write dated journal entries",
	Long: `Keep a journal with a mood per entry, gratitude lists and tags.

Examples:
  lifeledger journal add "Long walk" --mood great --gratitude "sun,friends"
  lifeledger journal list --on yesterday
  lifeledger journal moods
  lifeledger journal prompts`,
	RunE: runJournalList,
}

var journalAddCmd = &cobra.Command{
	Use:   "add [TITLE]",
	Short: "Write a journal entry",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalAdd,
}

var journalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List journal entries, newest first",
	RunE:    runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:               "show ID",
	Short:             "Print a journal entry",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeJournal,
	RunE:              runJournalShow,
}

var journalUpdateCmd = &cobra.Command{
	Use:               "update ID",
	Aliases:           []string{"edit"},
	Short:             "Edit a journal entry",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeJournal,
	RunE:              runJournalUpdate,
}

var journalDeleteCmd = &cobra.Command{
	Use:               "delete ID",
	Aliases:           []string{"rm"},
	Short:             "Delete a journal entry",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeJournal,
	RunE:              runJournalDelete,
}

var journalMoodsCmd = &cobra.Command{
	Use:   "moods",
	Short: "Count entries per mood",
	RunE:  runJournalMoods,
}

var journalTagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags used in the journal",
	RunE:  runJournalTags,
}

var journalPromptsCmd = &cobra.Command{
	Use:   "prompts [PROMPT...]",
	Short: "Show writing prompts, or replace them",
	Long: `Without arguments, print the writing prompts. With arguments, save them
as the new prompt list. "lifeledger journal prompts --reset" restores the
built-in prompts.`,
	RunE: runJournalPrompts,
}

var journalPromptsReset bool

func init() {
	journalAddCmd.Flags().StringVarP(&journalFlagContent, "content", "c", "", "Entry text")
	journalAddCmd.Flags().StringVarP(&journalFlagMood, "mood", "m", "okay", "Mood: "+strings.ToLower(moodNames()))
	journalAddCmd.Flags().StringVar(&journalFlagDate, "date", "today", "Entry date")
	journalAddCmd.Flags().StringVarP(&journalFlagTags, "tags", "t", "", "Comma-separated tags")
	journalAddCmd.Flags().StringVar(&journalFlagGratitude, "gratitude", "", "Comma-separated things you are grateful for")
	journalAddCmd.Flags().StringVar(&journalFlagAchievements, "achievements", "", "Comma-separated achievements")
	journalAddCmd.Flags().StringVar(&journalFlagChallenges, "challenges", "", "Comma-separated challenges")
	journalAddCmd.Flags().StringVar(&journalFlagGoals, "goals", "", "Comma-separated goal ids or numbers to link")
	_ = journalAddCmd.RegisterFlagCompletionFunc("mood", completeMoods)

	journalUpdateCmd.Flags().StringVar(&journalUpdTitle, "title", "", "New title")
	journalUpdateCmd.Flags().StringVarP(&journalUpdContent, "content", "c", "", "New text")
	journalUpdateCmd.Flags().StringVarP(&journalUpdMood, "mood", "m", "", "New mood")
	journalUpdateCmd.Flags().StringVar(&journalUpdDate, "date", "", "New date")
	journalUpdateCmd.Flags().StringVarP(&journalUpdTags, "tags", "t", "", "Replace tags")
	_ = journalUpdateCmd.RegisterFlagCompletionFunc("mood", completeMoods)

	journalListCmd.Flags().StringVar(&journalListOn, "on", "", "Only entries on this day")
	journalListCmd.Flags().StringVar(&journalListMood, "mood", "", "Only entries with this mood")
	journalListCmd.Flags().StringVar(&journalListTag, "tag", "", "Only entries with this tag")

	journalPromptsCmd.Flags().BoolVar(&journalPromptsReset, "reset", false, "Restore the built-in prompts")

	journalCmd.AddCommand(journalAddCmd, journalListCmd, journalShowCmd, journalUpdateCmd,
		journalDeleteCmd, journalMoodsCmd, journalTagsCmd, journalPromptsCmd)
	rootCmd.AddCommand(journalCmd)
}

func moodNames() string {
	moods := model.Moods()
	names := make([]string, len(moods))
	for i, m := range moods {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	day, err := parser.ParseDay(journalFlagDate, ctx.Now())
	if err != nil {
		return err
	}

	entry := &model.JournalEntry{
		Date:         day,
		Content:      journalFlagContent,
		Mood:         model.Mood(enumValue(journalFlagMood)),
		Tags:         splitList(journalFlagTags),
		Gratitude:    splitList(journalFlagGratitude),
		Achievements: splitList(journalFlagAchievements),
		Challenges:   splitList(journalFlagChallenges),
	}
	if len(args) > 0 {
		entry.Title = args[0]
	}
	for _, ref := range splitList(journalFlagGoals) {
		goal, err := findGoal(ref)
		if err != nil {
			return err
		}
		entry.LinkedGoalIDs = append(entry.LinkedGoalIDs, goal.ID)
	}

	if err := ctx.Store.Journal.Add(entry); err != nil {
		return err
	}
	return printRecord("created", "journalEntry", entry.ID, entry,
		fmt.Sprintf("Saved journal entry for %s (%s)", parser.FormatDay(entry.Date, ctx.Now()), short(entry.ID)))
}

func runJournalList(cmd *cobra.Command, args []string) error {
	var entries []*model.JournalEntry
	if journalListOn != "" {
		day, err := parser.ParseDay(journalListOn, ctx.Now())
		if err != nil {
			return err
		}
		entries = ctx.Store.Journal.ListOn(day)
	} else {
		entries = ctx.Store.Journal.List()
	}

	mood := model.Mood(enumValue(journalListMood))
	var kept []*model.JournalEntry
	for _, j := range entries {
		if mood != "" && j.Mood != mood {
			continue
		}
		if journalListTag != "" && !hasTag(j.Tags, journalListTag) {
			continue
		}
		kept = append(kept, j)
	}
	return printList("journalEntries", kept, (*output.CLIFormatter).PrintJournal)
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	entry, err := findRecord("journal entry", ctx.Store.Journal.List(), args[0])
	if err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintRecord("ok", "journalEntry", entry.ID, entry)
	}

	cli := ctx.CLIFormatter()
	title := entry.Title
	if title == "" {
		title = "Journal"
	}
	cli.Title(title)
	cli.KeyValue("Date", output.FormatDate(entry.Date))
	cli.KeyValue("Mood", entry.Mood.Emoji()+" "+cli.Colored(entry.Mood.Color(), string(entry.Mood)))
	if len(entry.Tags) > 0 {
		cli.KeyValue("Tags", strings.Join(entry.Tags, ", "))
	}
	if entry.Content != "" {
		cli.Println("")
		cli.Println(entry.Content)
	}
	for _, section := range []struct {
		label string
		items []string
	}{
		{"Grateful for", entry.Gratitude},
		{"Achievements", entry.Achievements},
		{"Challenges", entry.Challenges},
	} {
		if len(section.items) == 0 {
			continue
		}
		cli.Println("")
		cli.Println(cli.Accent(section.label))
		for _, item := range section.items {
			cli.Println("  - " + item)
		}
	}
	return nil
}

func runJournalUpdate(cmd *cobra.Command, args []string) error {
	entry, err := findRecord("journal entry", ctx.Store.Journal.List(), args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		entry.Title = journalUpdTitle
	}
	if flags.Changed("content") {
		entry.Content = journalUpdContent
	}
	if flags.Changed("mood") {
		entry.Mood = model.Mood(enumValue(journalUpdMood))
	}
	if flags.Changed("tags") {
		entry.Tags = splitList(journalUpdTags)
	}
	if flags.Changed("date") {
		day, err := parser.ParseDay(journalUpdDate, ctx.Now())
		if err != nil {
			return err
		}
		entry.Date = day
	}

	if err := ctx.Store.Journal.Update(entry); err != nil {
		return err
	}
	return printRecord("updated", "journalEntry", entry.ID, entry, "Updated journal entry "+short(entry.ID))
}

func runJournalDelete(cmd *cobra.Command, args []string) error {
	entry, err := findRecord("journal entry", ctx.Store.Journal.List(), args[0])
	if err != nil {
		return err
	}
	if err := ctx.Store.Journal.Delete(entry.ID); err != nil {
		return err
	}
	return printRecord("deleted", "journalEntry", entry.ID, nil, "Deleted journal entry "+short(entry.ID))
}

// MoodCount is one row of the mood tally.
type MoodCount struct {
	Mood  model.Mood `json:"mood"`
	Count int        `json:"count"`
}

func runJournalMoods(cmd *cobra.Command, args []string) error {
	counts := ctx.Store.Journal.MoodCounts()
	tally := make([]MoodCount, 0, len(model.Moods()))
	for _, m := range model.Moods() {
		tally = append(tally, MoodCount{Mood: m, Count: counts[m]})
	}

	return printList("moods", tally, func(c *output.CLIFormatter, items []MoodCount) {
		total := 0
		for _, mc := range items {
			total += mc.Count
		}
		if total == 0 {
			c.Muted("No journal entries.")
			return
		}
		rows := make([]output.TableRow, 0, len(items))
		for _, mc := range items {
			share := float64(mc.Count) / float64(total)
			rows = append(rows, output.TableRow{Columns: []string{
				mc.Mood.Emoji() + " " + c.Colored(mc.Mood.Color(), string(mc.Mood)),
				fmt.Sprint(mc.Count),
				output.FormatPercent(share),
			}})
		}
		c.PrintTable([]string{"MOOD", "ENTRIES", "SHARE"}, rows)
	})
}

func runJournalTags(cmd *cobra.Command, args []string) error {
	return printList("tags", ctx.Store.Journal.Tags(), func(c *output.CLIFormatter, tags []string) {
		if len(tags) == 0 {
			c.Muted("No tags yet.")
			return
		}
		c.Println(strings.Join(tags, ", "))
	})
}

func runJournalPrompts(cmd *cobra.Command, args []string) error {
	if journalPromptsReset {
		if err := ctx.Store.Prompts.Save(nil); err != nil {
			return err
		}
		return printStatus("ok", "Restored the built-in prompts")
	}
	if len(args) > 0 {
		if err := ctx.Store.Prompts.Save(args); err != nil {
			return err
		}
		return printStatus("ok", fmt.Sprintf("Saved %d prompts", len(ctx.Store.Prompts.List())))
	}

	return printList("prompts", ctx.Store.Prompts.List(), func(c *output.CLIFormatter, prompts []string) {
		for i, p := range prompts {
			c.Printf("%d. %s\n", i+1, p)
		}
	})
}
