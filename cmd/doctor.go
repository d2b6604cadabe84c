package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifeledger/internal/errors"
	"github.com/manav03panchal/lifeledger/internal/storage"
)

var doctorFlagSalvage string

// doctorCmd represents the doctor command.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check stored data for damage",
	Long: `Decode every stored collection and report record counts and any value
that cannot be read. With --salvage, write every readable value to a JSON
file before attempting repairs by hand.

Examples:
  lifeledger doctor
  lifeledger doctor --salvage salvage.json`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().StringVar(&doctorFlagSalvage, "salvage", "", "Write readable raw values to this file")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	report := ctx.Store.CheckIntegrity()

	if doctorFlagSalvage != "" {
		values, err := ctx.Store.Salvage()
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return errors.NewSystemErrorWithOp("salvage", "failed to encode salvaged values", err)
		}
		if err := storage.SafeWrite(doctorFlagSalvage, data, 0o600); err != nil {
			return err
		}
		if !ctx.IsJSON() {
			ctx.CLIFormatter().Success(fmt.Sprintf("Salvaged %d keys to %s", len(values), doctorFlagSalvage))
		}
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(report)
	}
	ctx.CLIFormatter().PrintIntegrity(report)
	return nil
}
