package cmd

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/manav03panchal/lifeledger/internal/errors"
)

var resetFlagYes bool

// stdinIsTerminal reports whether a confirmation prompt can be answered.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// resetCmd represents the reset command.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all data",
	Long: `Erase every record, the settings and the profile. This cannot be undone;
export a backup first if you may want the data back.

Without --yes the command asks for confirmation, which needs an interactive
terminal.

Examples:
  lifeledger export -o before-reset.json && lifeledger reset --yes`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetFlagYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetFlagYes {
		if !stdinIsTerminal() {
			return errors.NewUserError("Refusing to erase data without confirmation", "Pass --yes to confirm")
		}
		ctx.CLIFormatter().Warning("This erases all Lifeledger data. Type 'yes' to continue:")
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if strings.TrimSpace(strings.ToLower(answer)) != "yes" {
			return printStatus("cancelled", "Nothing was erased")
		}
	}

	if err := ctx.Backup.ClearAllData(); err != nil {
		return err
	}
	return printStatus("ok", "All data erased")
}
