package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/manav03panchal/lifeledger/internal/output"
	"github.com/manav03panchal/lifeledger/internal/stats"
)

// boxWidth is the inner width for a panel drawn in a terminal of width w.
func boxWidth(w int) int {
	if w < 24 {
		return 20
	}
	return w - 4
}

// barWidth leaves room for labels beside a progress bar.
func barWidth(w int) int {
	b := boxWidth(w) - 60
	if b < 10 {
		return 10
	}
	return b
}

// OverviewView renders the dashboard counters.
func OverviewView(s stats.DashboardStats, width int) string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Overview"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %s\n", StyleSubtitle.Render("Goals       "), StyleValue.Render(fmt.Sprint(s.TotalGoals)))
	fmt.Fprintf(&b, "%s %s %s\n", StyleSubtitle.Render("Milestones  "),
		ProgressBar(s.OverallProgress, barWidth(width)),
		fmt.Sprintf("%d/%d", s.CompletedMilestones, s.TotalMilestones))
	fmt.Fprintf(&b, "%s %s\n", StyleSubtitle.Render("Tasks today "),
		StyleValue.Render(fmt.Sprintf("%d/%d", s.TasksCompletedToday, s.TotalTasksToday)))
	fmt.Fprintf(&b, "%s %s %s", StyleSubtitle.Render("Streak      "),
		StyleValue.Render(fmt.Sprintf("%d days", s.CurrentStreak)),
		StyleSubtitle.Render(fmt.Sprintf("(best %d)", s.LongestStreak)))

	return StyleBox.Width(boxWidth(width)).Render(b.String())
}

// HabitsView renders per-habit streaks.
func HabitsView(habits []stats.HabitStreak, width int) string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Habits"))
	b.WriteString("\n\n")

	if len(habits) == 0 {
		b.WriteString(StyleSubtitle.Render("No active habits"))
		return StyleBox.Width(boxWidth(width)).Render(b.String())
	}

	for i, h := range habits {
		if i > 0 {
			b.WriteString("\n")
		}
		mark := StyleSubtitle.Render("○")
		if h.CompletedToday {
			mark = StyleSuccess.Render("●")
		}
		fmt.Fprintf(&b, "%s %-20s %s %s", mark, h.Name,
			StyleValue.Render(fmt.Sprintf("%3d", h.Current)),
			StyleSubtitle.Render(fmt.Sprintf("best %d, %d days", h.Longest, h.CompletedDays)))
	}
	return StyleBox.Width(boxWidth(width)).Render(b.String())
}

// FinanceView renders balances and budget consumption.
func FinanceView(f stats.FinanceStats, budgets []stats.BudgetStatus, currency string, width int) string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Finance"))
	b.WriteString("\n\n")

	money := func(label string, style lipgloss.Style, v decimal.Decimal) {
		fmt.Fprintf(&b, "%s %s\n", StyleSubtitle.Render(fmt.Sprintf("%-9s", label)), style.Render(output.FormatMoney(v, currency)))
	}
	money("Income", StyleSuccess, f.TotalIncome)
	money("Expenses", StyleError, f.TotalExpense)
	money("Borrowed", StyleSubtitle, f.TotalBorrowed)
	money("Lent", StyleSubtitle, f.TotalLent)

	balance := StyleSuccess
	if f.CurrentBalance.IsNegative() {
		balance = StyleError
	}
	money("Balance", balance.Bold(true), f.CurrentBalance)

	over := false
	if len(budgets) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleTitle.Render("Budgets"))
		b.WriteString("\n")
		for _, bs := range budgets {
			line := fmt.Sprintf("%-14s %s %s / %s", bs.Label,
				ProgressBar(bs.PercentUsed, barWidth(width)),
				output.FormatMoney(bs.Spent, ""), output.FormatMoney(bs.Limit, currency))
			if bs.OverLimit {
				over = true
				line += " " + StyleError.Render("over")
			}
			b.WriteString("\n" + line)
		}
	}

	box := StyleBox
	if over {
		box = StyleAlertBox
	}
	return box.Width(boxWidth(width)).Render(b.String())
}

// GoalsView renders goal progress.
func GoalsView(goals []stats.GoalSummary, width int) string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Goals"))
	b.WriteString("\n\n")

	if len(goals) == 0 {
		b.WriteString(StyleSubtitle.Render("No goals yet"))
		return StyleBox.Width(boxWidth(width)).Render(b.String())
	}

	for i, g := range goals {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%-20s %s %s %s", truncate(g.Title, 20),
			ProgressBar(g.Progress, barWidth(width)),
			output.FormatPercent(g.Progress),
			StyleSubtitle.Render(fmt.Sprintf("%d open", g.OpenTasks)))
	}
	return StyleBox.Width(boxWidth(width)).Render(b.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// HelpBar renders the help bar at the bottom.
func HelpBar() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"tab", "next"},
		{"1-4", "jump"},
		{"r", "refresh"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, StyleHelpKey.Render(k.key)+" "+StyleHelpDesc.Render(k.desc))
	}
	return StyleHelp.Render(strings.Join(parts, "  •  "))
}
