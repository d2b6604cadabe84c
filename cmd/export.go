package cmd

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/output"
	"github.com/manav03panchal/lifeledger/internal/storage"
	"github.com/manav03panchal/lifeledger/internal/validate"
)

// Export command flags.
var (
	exportFlagOutput string
	exportFlagAuto   bool
	exportFlagCSV    bool
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"backup", "dump"},
	Short:   "Export all data as a JSON backup",
	Long: `Export every collection, the settings and the profile as one versioned
JSON document. The backup can be restored with "lifeledger import".

Examples:
  lifeledger export > backup.json
  lifeledger export -o backup.json
  lifeledger export --auto
  lifeledger export --transactions-csv -o spending.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFlagOutput, "output", "o", "", "Output file (stdout if omitted)")
	exportCmd.Flags().BoolVar(&exportFlagAuto, "auto", false, "Write a dated backup file into the data directory")
	exportCmd.Flags().BoolVar(&exportFlagCSV, "transactions-csv", false, "Export transactions as CSV instead")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFlagCSV {
		return runExportCSV(cmd)
	}

	path := exportFlagOutput
	if exportFlagAuto && path == "" {
		path = defaultBackupPath()
	}

	if path == "" {
		text, err := ctx.Backup.ExportAllData()
		if err != nil {
			return err
		}
		ctx.Formatter.Println(text)
		return nil
	}

	if err := ctx.Backup.ExportToFile(path); err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintStatus("ok", path)
	}

	cli := ctx.CLIFormatter()
	cli.Success("Backup created: " + path)
	snap := ctx.Backup.Snapshot()
	cli.Printf("  Goals: %d\n", len(snap.Goals))
	cli.Printf("  Tasks: %d\n", len(snap.Tasks))
	cli.Printf("  Notes: %d\n", len(snap.Notes))
	cli.Printf("  Habits: %d\n", len(snap.Habits))
	cli.Printf("  Journal entries: %d\n", len(snap.JournalEntries))
	cli.Printf("  Transactions: %d\n", len(snap.Transactions))
	return nil
}

// defaultBackupPath names a backup after the current day.
func defaultBackupPath() string {
	name := validate.SafeFilename("lifeledger-backup-" + ctx.Now().Format("2006-01-02T15:04") + ".json")
	return filepath.Join(ctx.Config.DataDir, "backups", name)
}

func runExportCSV(cmd *cobra.Command) error {
	txs := ctx.Store.Transactions.List()
	if exportFlagOutput == "" {
		return writeTransactionsCSV(cmd.OutOrStdout(), txs)
	}

	var buf bytes.Buffer
	if err := writeTransactionsCSV(&buf, txs); err != nil {
		return err
	}
	if err := storage.SafeWrite(exportFlagOutput, buf.Bytes(), 0o600); err != nil {
		return err
	}
	return printStatus("ok", "Exported transactions: "+exportFlagOutput)
}

func writeTransactionsCSV(w io.Writer, txs []*model.Transaction) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{
		"id", "date", "type", "category", "amount", "person", "settled", "note",
	}); err != nil {
		return err
	}

	for _, tx := range txs {
		settled := "false"
		if tx.IsSettled {
			settled = "true"
		}
		if err := writer.Write([]string{
			tx.ID,
			output.FormatDateTime(tx.Date),
			string(tx.Type),
			string(tx.Category),
			tx.Amount.StringFixed(2),
			tx.PersonName,
			settled,
			tx.Note,
		}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

