package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/output"
)

// Note command flags.
var (
	noteFlagContent string
	noteFlagTags    string
	noteFlagColor   string
	noteFlagPin     bool

	noteUpdTitle   string
	noteUpdContent string
	noteUpdTags    string
	noteUpdColor   string

	noteListTag       string
	noteSearchesClear bool
)

// noteCmd represents the note command.
var noteCmd = &cobra.Command{
	Use:     "note",
	Aliases: []string{"notes", "n"},
	Short:   "Manage notes",
	Long: `Keep free-form notes with tags. Pinned notes list first.

Examples:
  lifeledger note add "Gift ideas" --content "Book, plant" --tags family,shopping
  lifeledger note search plant
  lifeledger note pin 3f2a`,
	RunE: runNoteList,
}

var noteAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteAdd,
}

var noteListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes",
	RunE:    runNoteList,
}

var noteShowCmd = &cobra.Command{
	Use:               "show ID",
	Short:             "Print a note",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeNotes,
	RunE:              runNoteShow,
}

var noteSearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search note titles, content and tags",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNoteSearch,
}

var noteSearchesCmd = &cobra.Command{
	Use:   "searches",
	Short: "Show recent searches",
	RunE:  runNoteSearches,
}

var notePinCmd = &cobra.Command{
	Use:               "pin ID",
	Aliases:           []string{"unpin"},
	Short:             "Toggle a note's pinned flag",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeNotes,
	RunE:              runNotePin,
}

var noteUpdateCmd = &cobra.Command{
	Use:               "update ID",
	Aliases:           []string{"edit"},
	Short:             "Update a note",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeNotes,
	RunE:              runNoteUpdate,
}

var noteDeleteCmd = &cobra.Command{
	Use:               "delete ID",
	Aliases:           []string{"rm", "remove"},
	Short:             "Delete a note",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeNotes,
	RunE:              runNoteDelete,
}

func init() {
	noteAddCmd.Flags().StringVarP(&noteFlagContent, "content", "c", "", "Note body")
	noteAddCmd.Flags().StringVarP(&noteFlagTags, "tags", "t", "", "Comma-separated tags")
	noteAddCmd.Flags().StringVar(&noteFlagColor, "hex", "", "Hex color")
	noteAddCmd.Flags().BoolVar(&noteFlagPin, "pin", false, "Pin the note")

	noteUpdateCmd.Flags().StringVar(&noteUpdTitle, "title", "", "New title")
	noteUpdateCmd.Flags().StringVarP(&noteUpdContent, "content", "c", "", "New body")
	noteUpdateCmd.Flags().StringVarP(&noteUpdTags, "tags", "t", "", "Replace tags (comma-separated)")
	noteUpdateCmd.Flags().StringVar(&noteUpdColor, "hex", "", "Hex color")

	noteListCmd.Flags().StringVar(&noteListTag, "tag", "", "Only notes with this tag")
	noteSearchesCmd.Flags().BoolVar(&noteSearchesClear, "clear", false, "Forget recent searches")

	noteCmd.AddCommand(noteAddCmd, noteListCmd, noteShowCmd, noteSearchCmd, noteSearchesCmd,
		notePinCmd, noteUpdateCmd, noteDeleteCmd)
	rootCmd.AddCommand(noteCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	note := &model.Note{
		Title:    args[0],
		Content:  noteFlagContent,
		Tags:     splitList(noteFlagTags),
		Color:    noteFlagColor,
		IsPinned: noteFlagPin,
	}
	if err := ctx.Store.Notes.Add(note); err != nil {
		return err
	}
	return printRecord("created", "note", note.ID, note, "Added note "+note.Title+" ("+short(note.ID)+")")
}

func runNoteList(cmd *cobra.Command, args []string) error {
	notes := ctx.Store.Notes.List()
	if noteListTag != "" {
		var tagged []*model.Note
		for _, n := range notes {
			for _, t := range n.Tags {
				if strings.EqualFold(t, noteListTag) {
					tagged = append(tagged, n)
					break
				}
			}
		}
		notes = tagged
	}
	return printList("notes", notes, (*output.CLIFormatter).PrintNotes)
}

func runNoteShow(cmd *cobra.Command, args []string) error {
	note, err := findRecord("note", ctx.Store.Notes.List(), args[0])
	if err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintRecord("ok", "note", note.ID, note)
	}

	cli := ctx.CLIFormatter()
	cli.Title(note.Title)
	if len(note.Tags) > 0 {
		cli.KeyValue("Tags", strings.Join(note.Tags, ", "))
	}
	cli.KeyValue("Updated", output.FormatDateTime(note.UpdatedAt))
	if note.Content != "" {
		cli.Println("")
		cli.Println(note.Content)
	}
	return nil
}

func runNoteSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	if err := ctx.Store.Searches.Record(query); err != nil {
		return err
	}
	return printList("notes", ctx.Store.Notes.Search(query), (*output.CLIFormatter).PrintNotes)
}

func runNoteSearches(cmd *cobra.Command, args []string) error {
	if noteSearchesClear {
		if err := ctx.Store.Searches.Clear(); err != nil {
			return err
		}
		return printStatus("ok", "Cleared recent searches")
	}

	searches := ctx.Store.Searches.List()
	return printList("searches", searches, func(c *output.CLIFormatter, items []string) {
		if len(items) == 0 {
			c.Muted("No recent searches.")
			return
		}
		for _, q := range items {
			c.Println(q)
		}
	})
}

func runNotePin(cmd *cobra.Command, args []string) error {
	note, err := findRecord("note", ctx.Store.Notes.List(), args[0])
	if err != nil {
		return err
	}
	if err := ctx.Store.Notes.TogglePinned(note.ID); err != nil {
		return err
	}
	msg := "Pinned " + note.Title
	if note.IsPinned {
		msg = "Unpinned " + note.Title
	}
	updated, _ := ctx.Store.Notes.Get(note.ID)
	return printRecord("updated", "note", note.ID, updated, msg)
}

func runNoteUpdate(cmd *cobra.Command, args []string) error {
	note, err := findRecord("note", ctx.Store.Notes.List(), args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		note.Title = noteUpdTitle
	}
	if flags.Changed("content") {
		note.Content = noteUpdContent
	}
	if flags.Changed("tags") {
		note.Tags = splitList(noteUpdTags)
	}
	if flags.Changed("hex") {
		note.Color = noteUpdColor
	}

	if err := ctx.Store.Notes.Update(note); err != nil {
		return err
	}
	return printRecord("updated", "note", note.ID, note, "Updated note "+note.Title)
}

func runNoteDelete(cmd *cobra.Command, args []string) error {
	note, err := findRecord("note", ctx.Store.Notes.List(), args[0])
	if err != nil {
		return err
	}
	if err := ctx.Store.Notes.Delete(note.ID); err != nil {
		return err
	}
	return printRecord("deleted", "note", note.ID, nil, "Deleted note "+note.Title)
}
