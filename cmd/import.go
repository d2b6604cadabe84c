package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifeledger/internal/backup"
	"github.com/manav03panchal/lifeledger/internal/errors"
	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/output"
)

var importFlagDryRun bool

// importCmd represents the import command.
var importCmd = &cobra.Command{
	Use:     "import FILE",
	Aliases: []string{"imp", "restore"},
	Short:   "Restore data from a JSON backup",
	Long: `Restore a backup written by "lifeledger export". Collections in the
backup replace the stored ones. Collections newer than the backup's version,
or missing from it, are left as they are. A file that cannot be parsed
changes nothing.

Examples:
  lifeledger import backup.json
  lifeledger import backup.json --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importFlagDryRun, "dry-run", false, "Show what would be replaced without changing anything")

	rootCmd.AddCommand(importCmd)
}

// importLine is one collection in an import preview. Count is -1 when the
// collection is left untouched.
type importLine struct {
	Collection string `json:"collection"`
	Count      int    `json:"count"`
}

func runImport(cmd *cobra.Command, args []string) error {
	filename := args[0]

	if importFlagDryRun {
		raw, err := os.ReadFile(filename)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.NewUserErrorWithField("file", filename, "Backup file not found", "Check the path and try again")
			}
			return errors.NewSystemErrorWithOp("read backup", "failed to read backup file", err)
		}
		data, err := backup.Parse(string(raw))
		if err != nil {
			return err
		}
		return printImportPreview(data.Version, backup.Gate(data))
	}

	if err := ctx.Backup.ImportFromFile(filename); err != nil {
		return err
	}
	return printStatus("ok", "Imported "+filename)
}

func previewLines(gated *model.AppData) []importLine {
	count := func(n int, present bool) int {
		if !present {
			return -1
		}
		return n
	}
	return []importLine{
		{"goals", count(len(gated.Goals), gated.Goals != nil)},
		{"notes", count(len(gated.Notes), gated.Notes != nil)},
		{"tasks", count(len(gated.Tasks), gated.Tasks != nil)},
		{"events", count(len(gated.Events), gated.Events != nil)},
		{"habitEntries", count(len(gated.HabitEntries), gated.HabitEntries != nil)},
		{"reminders", count(len(gated.Reminders), gated.Reminders != nil)},
		{"habits", count(len(gated.Habits), gated.Habits != nil)},
		{"journalEntries", count(len(gated.JournalEntries), gated.JournalEntries != nil)},
		{"transactions", count(len(gated.Transactions), gated.Transactions != nil)},
		{"budgets", count(len(gated.Budgets), gated.Budgets != nil)},
		{"financeLogs", count(len(gated.Logs), gated.Logs != nil)},
	}
}

func printImportPreview(version int, gated *model.AppData) error {
	lines := previewLines(gated)
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(struct {
			Version     int          `json:"version"`
			Collections []importLine `json:"collections"`
			Profile     bool         `json:"profile"`
		}{version, lines, gated.UserProfile != nil})
	}

	cli := ctx.CLIFormatter()
	cli.Title(fmt.Sprintf("Backup version %d (dry run)", version))
	rows := make([]output.TableRow, 0, len(lines))
	for _, l := range lines {
		effect := fmt.Sprintf("replace with %d", l.Count)
		if l.Count < 0 {
			effect = "unchanged"
		}
		rows = append(rows, output.TableRow{Columns: []string{l.Collection, effect}})
	}
	cli.PrintTable([]string{"COLLECTION", "EFFECT"}, rows)
	if gated.UserProfile != nil {
		cli.KeyValue("Profile", "replace")
	}
	cli.Muted("Nothing was changed.")
	return nil
}
