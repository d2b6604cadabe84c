package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/parser"
	"github.com/manav03panchal/lifeledger/internal/stats"
	"github.com/manav03panchal/lifeledger/internal/storage"
)

func check(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// PrintGoals prints goals with their progress.
func (c *CLIFormatter) PrintGoals(goals []*model.Goal) {
	if len(goals) == 0 {
		c.Muted("No goals yet. Add one with 'lifeledger goal add <title>'.")
		return
	}
	rows := make([]TableRow, 0, len(goals))
	for _, g := range goals {
		target := ""
		if g.TargetDate != nil {
			target = FormatDate(*g.TargetDate)
		}
		rows = append(rows, TableRow{Columns: []string{
			fmt.Sprintf("#%d", g.Number),
			ShortID(g.ID),
			c.Colored(g.Color, g.Title),
			string(g.Category),
			fmt.Sprintf("%s %d/%d", ProgressBar(g.Progress(), 10), g.CompletedMilestones(), len(g.Milestones)),
			target,
		}})
	}
	c.PrintTable([]string{"NO", "ID", "TITLE", "CATEGORY", "PROGRESS", "TARGET"}, rows)
}

// PrintGoal prints one goal with its milestones.
func (c *CLIFormatter) PrintGoal(g *model.Goal) {
	c.Title(fmt.Sprintf("#%d %s", g.Number, g.Title))
	c.KeyValue("ID", g.ID)
	c.KeyValue("Category", g.Category)
	if g.Description != "" {
		c.KeyValue("Description", g.Description)
	}
	if g.TargetDate != nil {
		c.KeyValue("Target", parser.FormatDay(*g.TargetDate, c.now()))
	}
	c.KeyValue("Progress", fmt.Sprintf("%s %s", ProgressBar(g.Progress(), 20), FormatPercent(g.Progress())))
	for _, m := range g.Milestones {
		line := fmt.Sprintf("    %s %s  %s", check(m.IsCompleted), m.Title, c.render(styleMuted, ShortID(m.ID)))
		if m.Rating != nil {
			line += "  " + strings.Repeat("★", *m.Rating)
		}
		c.Println(line)
	}
}

// PrintTasks prints tasks with due dates relative to now.
func (c *CLIFormatter) PrintTasks(tasks []*model.Task) {
	if len(tasks) == 0 {
		c.Muted("No tasks.")
		return
	}
	now := c.now()
	rows := make([]TableRow, 0, len(tasks))
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = parser.FormatDue(*t.DueDate, now)
		}
		rows = append(rows, TableRow{Columns: []string{
			check(t.IsCompleted),
			ShortID(t.ID),
			t.Title,
			c.Colored(t.Priority.Color(), string(t.Priority)),
			due,
			string(t.RepeatType),
		}})
	}
	c.PrintTable([]string{"", "ID", "TITLE", "PRIORITY", "DUE", "REPEAT"}, rows)
}

// PrintNotes prints notes, pinned first.
func (c *CLIFormatter) PrintNotes(notes []*model.Note) {
	if len(notes) == 0 {
		c.Muted("No notes.")
		return
	}
	sorted := append([]*model.Note(nil), notes...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].IsPinned && !sorted[j].IsPinned })

	rows := make([]TableRow, 0, len(sorted))
	for _, n := range sorted {
		pin := ""
		if n.IsPinned {
			pin = "📌"
		}
		rows = append(rows, TableRow{Columns: []string{
			pin, ShortID(n.ID), n.Title, strings.Join(n.Tags, ", "), FormatDate(n.UpdatedAt),
		}})
	}
	c.PrintTable([]string{"", "ID", "TITLE", "TAGS", "UPDATED"}, rows)
}

// PrintEvents prints calendar events.
func (c *CLIFormatter) PrintEvents(events []*model.CalendarEvent) {
	if len(events) == 0 {
		c.Muted("No events.")
		return
	}
	now := c.now()
	rows := make([]TableRow, 0, len(events))
	for _, e := range events {
		rows = append(rows, TableRow{Columns: []string{
			ShortID(e.ID), FormatDate(e.Date), parser.FormatDay(e.Date, now), c.Colored(e.Color, e.Title),
		}})
	}
	c.PrintTable([]string{"ID", "DATE", "WHEN", "TITLE"}, rows)
}

// PrintReminders prints reminders.
func (c *CLIFormatter) PrintReminders(reminders []*model.Reminder) {
	if len(reminders) == 0 {
		c.Muted("No reminders.")
		return
	}
	rows := make([]TableRow, 0, len(reminders))
	for _, r := range reminders {
		state := "on"
		if !r.IsEnabled {
			state = "off"
		}
		rows = append(rows, TableRow{Columns: []string{
			ShortID(r.ID), FormatDateTime(r.ReminderTime), c.Colored(r.Color, r.Title), string(r.Priority), string(r.RepeatType), state,
		}})
	}
	c.PrintTable([]string{"ID", "WHEN", "TITLE", "PRIORITY", "REPEAT", "STATE"}, rows)
}

// PrintHabits prints habits with their streaks.
func (c *CLIFormatter) PrintHabits(streaks []stats.HabitStreak) {
	if len(streaks) == 0 {
		c.Muted("No active habits.")
		return
	}
	rows := make([]TableRow, 0, len(streaks))
	for _, s := range streaks {
		rows = append(rows, TableRow{Columns: []string{
			check(s.CompletedToday), ShortID(s.HabitID), s.Name,
			fmt.Sprintf("%d", s.Current), fmt.Sprintf("%d", s.Longest), fmt.Sprintf("%d", s.CompletedDays),
		}})
	}
	c.PrintTable([]string{"TODAY", "ID", "HABIT", "STREAK", "BEST", "DAYS"}, rows)
}

// PrintJournal prints journal entries.
func (c *CLIFormatter) PrintJournal(entries []*model.JournalEntry) {
	if len(entries) == 0 {
		c.Muted("No journal entries.")
		return
	}
	rows := make([]TableRow, 0, len(entries))
	for _, j := range entries {
		rows = append(rows, TableRow{Columns: []string{
			ShortID(j.ID), FormatDate(j.Date), j.Mood.Emoji() + " " + c.Colored(j.Mood.Color(), string(j.Mood)), j.Title, strings.Join(j.Tags, ", "),
		}})
	}
	c.PrintTable([]string{"ID", "DATE", "MOOD", "TITLE", "TAGS"}, rows)
}

// amount renders a signed, colored amount for a transaction.
func (c *CLIFormatter) amount(tx *model.Transaction) string {
	s := FormatMoney(tx.Amount, c.Currency)
	switch tx.Type {
	case model.TransactionIncome, model.TransactionBorrowed:
		return c.Good("+" + s)
	default:
		return c.Bad("-" + s)
	}
}

// PrintTransactions prints transactions.
func (c *CLIFormatter) PrintTransactions(txs []*model.Transaction) {
	if len(txs) == 0 {
		c.Muted("No transactions.")
		return
	}
	rows := make([]TableRow, 0, len(txs))
	for _, tx := range txs {
		who := tx.PersonName
		if tx.IsSettled {
			who += " (settled)"
		}
		rows = append(rows, TableRow{Columns: []string{
			ShortID(tx.ID), FormatDate(tx.Date), string(tx.Type), tx.Category.Icon() + " " + string(tx.Category), c.amount(tx), strings.TrimSpace(who), tx.Note,
		}})
	}
	c.PrintTable([]string{"ID", "DATE", "TYPE", "CATEGORY", "AMOUNT", "PERSON", "NOTE"}, rows)
}

// PrintBudgets prints budget consumption.
func (c *CLIFormatter) PrintBudgets(statuses []stats.BudgetStatus) {
	if len(statuses) == 0 {
		c.Muted("No budgets.")
		return
	}
	rows := make([]TableRow, 0, len(statuses))
	for _, s := range statuses {
		used := fmt.Sprintf("%s %s", ProgressBar(s.PercentUsed, 10), FormatPercent(s.PercentUsed))
		if s.OverLimit {
			used = c.Bad(used)
		}
		rows = append(rows, TableRow{Columns: []string{
			ShortID(s.BudgetID), s.Label, FormatMoney(s.Spent, c.Currency), FormatMoney(s.Limit, c.Currency), used,
		}})
	}
	c.PrintTable([]string{"ID", "BUDGET", "SPENT", "LIMIT", "USED"}, rows)
}

// PrintFinanceLogs prints audit log entries, newest first.
func (c *CLIFormatter) PrintFinanceLogs(logs []*model.FinanceLog) {
	if len(logs) == 0 {
		c.Muted("Finance log is empty.")
		return
	}
	rows := make([]TableRow, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, TableRow{Columns: []string{
			FormatDateTime(l.Timestamp), string(l.Action), string(l.EntityType), ShortID(l.EntityID), l.Description,
		}})
	}
	c.PrintTable([]string{"WHEN", "ACTION", "ENTITY", "ID", "DESCRIPTION"}, rows)
}

// PrintDashboard prints the dashboard summary.
func (c *CLIFormatter) PrintDashboard(s stats.DashboardStats) {
	c.Title("Dashboard")
	c.KeyValue("Goals", s.TotalGoals)
	c.KeyValue("Milestones", fmt.Sprintf("%d/%d  %s %s", s.CompletedMilestones, s.TotalMilestones,
		ProgressBar(s.OverallProgress, 20), FormatPercent(s.OverallProgress)))
	c.KeyValue("Tasks today", fmt.Sprintf("%d/%d done", s.TasksCompletedToday, s.TotalTasksToday))
	c.KeyValue("Streak", fmt.Sprintf("%d days (best %d)", s.CurrentStreak, s.LongestStreak))
}

// PrintFinance prints the finance summary.
func (c *CLIFormatter) PrintFinance(s stats.FinanceStats) {
	c.Title("Finance")
	c.KeyValue("Income", c.Good(FormatMoney(s.TotalIncome, c.Currency)))
	c.KeyValue("Expenses", c.Bad(FormatMoney(s.TotalExpense, c.Currency)))
	c.KeyValue("Borrowed", FormatMoney(s.TotalBorrowed, c.Currency))
	c.KeyValue("Lent", FormatMoney(s.TotalLent, c.Currency))
	balance := FormatMoney(s.CurrentBalance, c.Currency)
	if s.CurrentBalance.IsNegative() {
		balance = c.Bad(balance)
	} else {
		balance = c.Good(balance)
	}
	c.KeyValue("Balance", balance)

	if len(s.RecentTransactions) > 0 {
		c.Println("")
		c.Title("Recent transactions")
		c.PrintTransactions(s.RecentTransactions)
	}
}

// PrintCategoryTotals prints expenses grouped by category.
func (c *CLIFormatter) PrintCategoryTotals(totals []stats.CategoryTotal) {
	if len(totals) == 0 {
		c.Muted("No expenses.")
		return
	}
	rows := make([]TableRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, TableRow{Columns: []string{
			t.Category.Icon() + " " + string(t.Category), FormatMoney(t.Total, c.Currency), fmt.Sprintf("%d", t.Count),
		}})
	}
	c.PrintTable([]string{"CATEGORY", "TOTAL", "COUNT"}, rows)
}

// PrintGoalSummaries prints per-goal progress and linked tasks.
func (c *CLIFormatter) PrintGoalSummaries(sums []stats.GoalSummary) {
	if len(sums) == 0 {
		return
	}
	rows := make([]TableRow, 0, len(sums))
	for _, s := range sums {
		rows = append(rows, TableRow{Columns: []string{
			s.Title, s.Category, fmt.Sprintf("%s %s", ProgressBar(s.Progress, 10), FormatPercent(s.Progress)),
			fmt.Sprintf("%d/%d", s.OpenTasks, s.LinkedTasks),
		}})
	}
	c.PrintTable([]string{"GOAL", "CATEGORY", "PROGRESS", "OPEN TASKS"}, rows)
}

// PrintIntegrity prints a store health report.
func (c *CLIFormatter) PrintIntegrity(r *storage.IntegrityReport) {
	if r.Healthy {
		c.Success("Store is healthy")
	} else {
		c.Error("Store has unreadable data")
	}
	c.KeyValue("Keys", r.KeyCount)

	kinds := make([]string, 0, len(r.Records))
	for k := range r.Records {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		c.KeyValue(k, r.Records[k])
	}

	bad := make([]string, 0, len(r.Unreadable))
	for k := range r.Unreadable {
		bad = append(bad, k)
	}
	sort.Strings(bad)
	for _, k := range bad {
		c.Warning(fmt.Sprintf("%s: %s", k, r.Unreadable[k]))
	}
	for _, k := range r.UnknownKeys {
		c.Muted("unknown key: " + k)
	}
}
