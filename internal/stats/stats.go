// Package stats computes read-only aggregates from the current store
// contents. Nothing here is persisted; every call re-reads the collections.
package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/storage"
)

// DefaultRecentTransactions is how many transactions Finance reports.
const DefaultRecentTransactions = 10

// Engine derives stats from a store.
type Engine struct {
	st     *storage.Store
	clock  func() time.Time
	recent int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for "today".
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithRecentTransactions overrides how many recent transactions Finance returns.
func WithRecentTransactions(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.recent = n
		}
	}
}

// New creates an engine reading from st. The store's clock is used by default.
func New(st *storage.Store, opts ...Option) *Engine {
	e := &Engine{st: st, clock: st.Now, recent: DefaultRecentTransactions}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DashboardStats summarizes goals, today's tasks and habit streaks.
type DashboardStats struct {
	TotalGoals          int     `json:"totalGoals"`
	CompletedMilestones int     `json:"completedMilestones"`
	TotalMilestones     int     `json:"totalMilestones"`
	TasksCompletedToday int     `json:"tasksCompletedToday"`
	TotalTasksToday     int     `json:"totalTasksToday"`
	OverallProgress     float64 `json:"overallProgress"`
	CurrentStreak       int     `json:"currentStreak"`
	LongestStreak       int     `json:"longestStreak"`
}

// Dashboard computes the dashboard stats as of now.
func (e *Engine) Dashboard() DashboardStats {
	now := e.clock()
	var s DashboardStats

	goals := e.st.Goals.List()
	s.TotalGoals = len(goals)
	for _, g := range goals {
		s.CompletedMilestones += g.CompletedMilestones()
		s.TotalMilestones += len(g.Milestones)
	}
	if s.TotalMilestones > 0 {
		s.OverallProgress = float64(s.CompletedMilestones) / float64(s.TotalMilestones)
	}

	start := model.StartOfDay(now)
	from, to := model.Millis(start), model.Millis(start.AddDate(0, 0, 1))
	for _, t := range e.st.Tasks.List() {
		if t.DueDate == nil || *t.DueDate < from || *t.DueDate >= to {
			continue
		}
		s.TotalTasksToday++
		if t.IsCompleted {
			s.TasksCompletedToday++
		}
	}

	days := CompletedDays(e.st.HabitEntries.List())
	s.CurrentStreak = CurrentStreak(days, now)
	s.LongestStreak = LongestStreak(days)
	return s
}

// FinanceStats summarizes balances, budgets and recent activity.
type FinanceStats struct {
	TotalIncome        decimal.Decimal      `json:"totalIncome"`
	TotalExpense       decimal.Decimal      `json:"totalExpense"`
	TotalBorrowed      decimal.Decimal      `json:"totalBorrowed"`
	TotalLent          decimal.Decimal      `json:"totalLent"`
	CurrentBalance     decimal.Decimal      `json:"currentBalance"`
	Budgets            []*model.Budget      `json:"budgets"`
	RecentTransactions []*model.Transaction `json:"recentTransactions"`
}

// Finance computes finance stats. Only unsettled borrowed and lent amounts
// count toward their totals.
func (e *Engine) Finance() FinanceStats {
	s := FinanceStats{
		TotalIncome:   decimal.Zero,
		TotalExpense:  decimal.Zero,
		TotalBorrowed: decimal.Zero,
		TotalLent:     decimal.Zero,
	}

	txs := e.st.Transactions.List()
	for _, tx := range txs {
		switch tx.Type {
		case model.TransactionIncome:
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
		case model.TransactionExpense:
			s.TotalExpense = s.TotalExpense.Add(tx.Amount)
		case model.TransactionBorrowed:
			if !tx.IsSettled {
				s.TotalBorrowed = s.TotalBorrowed.Add(tx.Amount)
			}
		case model.TransactionLent:
			if !tx.IsSettled {
				s.TotalLent = s.TotalLent.Add(tx.Amount)
			}
		}
	}
	s.CurrentBalance = s.TotalIncome.Sub(s.TotalExpense).Add(s.TotalBorrowed).Sub(s.TotalLent)

	s.Budgets = e.st.Budgets.List()
	if len(txs) > e.recent {
		txs = txs[:e.recent]
	}
	s.RecentTransactions = txs
	return s
}

// GoalSummary is one goal's progress and linked work.
type GoalSummary struct {
	GoalID              string  `json:"goalId"`
	Title               string  `json:"title"`
	Category            string  `json:"category"`
	Progress            float64 `json:"progress"`
	CompletedMilestones int     `json:"completedMilestones"`
	TotalMilestones     int     `json:"totalMilestones"`
	LinkedTasks         int     `json:"linkedTasks"`
	OpenTasks           int     `json:"openTasks"`
}

// GoalSummaries returns per-goal progress in stored order.
func (e *Engine) GoalSummaries() []GoalSummary {
	linked := make(map[string]int)
	open := make(map[string]int)
	for _, t := range e.st.Tasks.List() {
		if t.LinkedGoalID == "" {
			continue
		}
		linked[t.LinkedGoalID]++
		if !t.IsCompleted {
			open[t.LinkedGoalID]++
		}
	}

	goals := e.st.Goals.List()
	out := make([]GoalSummary, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalSummary{
			GoalID:              g.ID,
			Title:               g.Title,
			Category:            string(g.Category),
			Progress:            g.Progress(),
			CompletedMilestones: g.CompletedMilestones(),
			TotalMilestones:     len(g.Milestones),
			LinkedTasks:         linked[g.ID],
			OpenTasks:           open[g.ID],
		})
	}
	return out
}

// BudgetStatus is one budget's consumption.
type BudgetStatus struct {
	BudgetID    string          `json:"budgetId"`
	Label       string          `json:"label"`
	Limit       decimal.Decimal `json:"limit"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed float64         `json:"percentUsed"`
	OverLimit   bool            `json:"overLimit"`
}

// BudgetStatuses returns every budget's consumption in stored order.
func (e *Engine) BudgetStatuses() []BudgetStatus {
	budgets := e.st.Budgets.List()
	out := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, BudgetStatus{
			BudgetID:    b.ID,
			Label:       b.Label(),
			Limit:       b.LimitAmount,
			Spent:       b.SpentAmount,
			Remaining:   b.Remaining(),
			PercentUsed: b.PercentUsed(),
			OverLimit:   b.SpentAmount.GreaterThan(b.LimitAmount),
		})
	}
	return out
}

// HabitStreak is one habit's streaks.
type HabitStreak struct {
	HabitID        string `json:"habitId"`
	Name           string `json:"name"`
	Current        int    `json:"current"`
	Longest        int    `json:"longest"`
	CompletedDays  int    `json:"completedDays"`
	CompletedToday bool   `json:"completedToday"`
}

// HabitStreaks returns streaks for every non-archived habit.
func (e *Engine) HabitStreaks() []HabitStreak {
	now := e.clock()
	today := model.Millis(model.StartOfDay(now))

	byHabit := make(map[string][]*model.HabitEntry)
	for _, entry := range e.st.HabitEntries.List() {
		byHabit[entry.HabitID] = append(byHabit[entry.HabitID], entry)
	}

	var out []HabitStreak
	for _, h := range e.st.Habits.Active() {
		days := CompletedDays(byHabit[h.ID])
		out = append(out, HabitStreak{
			HabitID:        h.ID,
			Name:           h.Name,
			Current:        CurrentStreak(days, now),
			Longest:        LongestStreak(days),
			CompletedDays:  len(days),
			CompletedToday: len(days) > 0 && days[len(days)-1] == today,
		})
	}
	return out
}

// CategoryTotal is the expense total for one category.
type CategoryTotal struct {
	Category model.FinanceCategory `json:"category"`
	Total    decimal.Decimal       `json:"total"`
	Count    int                   `json:"count"`
}

// ExpenseByCategory totals expenses per category, largest first.
func (e *Engine) ExpenseByCategory() []CategoryTotal {
	agg := make(map[model.FinanceCategory]*CategoryTotal)
	for _, tx := range e.st.Transactions.List() {
		if !tx.IsExpense() {
			continue
		}
		ct, ok := agg[tx.Category]
		if !ok {
			ct = &CategoryTotal{Category: tx.Category, Total: decimal.Zero}
			agg[tx.Category] = ct
		}
		ct.Total = ct.Total.Add(tx.Amount)
		ct.Count++
	}

	out := make([]CategoryTotal, 0, len(agg))
	for _, ct := range agg {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}
