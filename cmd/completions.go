package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/output"
)

// completeRecords returns a completion function offering short ids of the
// records list returns, described by label.
func completeRecords[T model.Record](list func() []T, label func(T) string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		// Only complete the first argument
		if len(args) > 0 || ctx == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var completions []string
		for _, item := range list() {
			id := output.ShortID(item.GetID())
			if strings.HasPrefix(id, toComplete) {
				completions = append(completions, id+"\t"+label(item))
			}
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeValues completes a fixed set of words, case-insensitively.
func completeValues(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, v := range values {
			if strings.HasPrefix(v, strings.ToLower(toComplete)) {
				out = append(out, v)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

func completeGoals(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeRecords(ctx.Store.Goals.List, func(g *model.Goal) string { return g.Title })(cmd, args, toComplete)
}

func completeTasks(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeRecords(ctx.Store.Tasks.List, func(t *model.Task) string { return t.Title })(cmd, args, toComplete)
}

func completeNotes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeRecords(ctx.Store.Notes.List, func(n *model.Note) string { return n.Title })(cmd, args, toComplete)
}

func completeReminders(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeRecords(ctx.Store.Reminders.List, func(r *model.Reminder) string { return r.Title })(cmd, args, toComplete)
}

func completeHabits(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeRecords(ctx.Store.Habits.Active, func(h *model.Habit) string { return h.Name })(cmd, args, toComplete)
}

func completeTransactions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeRecords(ctx.Store.Transactions.List, func(t *model.Transaction) string { return t.Describe() })(cmd, args, toComplete)
}

func completeBudgets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeRecords(ctx.Store.Budgets.List, func(b *model.Budget) string { return b.Describe() })(cmd, args, toComplete)
}

func completeJournal(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeRecords(ctx.Store.Journal.List, func(j *model.JournalEntry) string {
		return output.FormatDate(j.Date) + " " + j.Title
	})(cmd, args, toComplete)
}

var completeMoods = completeValues("great", "good", "okay", "bad", "terrible")
