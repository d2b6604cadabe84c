package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/storage"
)

var fixedNow = time.Date(2026, 3, 14, 15, 0, 0, 0, time.Local)

func setupEngine(t *testing.T) (*storage.Store, *Engine) {
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := func() time.Time { return fixedNow }
	st := storage.NewStore(db, storage.WithClock(clock))
	return st, New(st)
}

// day returns noon of the local day offset days from fixedNow.
func day(offset int) int64 {
	d := model.StartOfDay(fixedNow).AddDate(0, 0, offset).Add(12 * time.Hour)
	return model.Millis(d)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// =============================================================================
// Streaks
// =============================================================================

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int
		want    int
	}{
		{"empty", nil, 0},
		{"today_yesterday_before", []int{0, -1, -2}, 3},
		{"only_two_days_ago", []int{-2}, 0},
		{"yesterday_run_survives_missing_today", []int{-1, -2, -3}, 3},
		{"gap_stops_walk", []int{0, -1, -3, -4}, 2},
		{"today_only", []int{0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var days []int64
			for _, o := range tt.offsets {
				days = append(days, model.DayStart(day(o)))
			}
			assert.Equal(t, tt.want, CurrentStreak(days, fixedNow))
		})
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int
		want    int
	}{
		{"empty", nil, 0},
		{"single", []int{5}, 1},
		{"non_contiguous", []int{0, 1, 2, 5, 6}, 3},
		{"unsorted_input", []int{6, 0, 5, 2, 1}, 3},
		{"long_tail", []int{0, 10, 11, 12, 13}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var days []int64
			for _, o := range tt.offsets {
				days = append(days, model.DayStart(day(o-30)))
			}
			assert.Equal(t, tt.want, LongestStreak(days))
		})
	}
}

func TestCompletedDays(t *testing.T) {
	entries := []*model.HabitEntry{
		{HabitID: "a", Date: day(0), IsCompleted: true},
		{HabitID: "b", Date: day(0) + 1000, IsCompleted: true},
		{HabitID: "a", Date: day(-1), IsCompleted: false},
		{HabitID: "a", Date: day(-2), IsCompleted: true},
	}

	days := CompletedDays(entries)
	require.Len(t, days, 2)
	assert.Equal(t, model.DayStart(day(-2)), days[0])
	assert.Equal(t, model.DayStart(day(0)), days[1])
}

// =============================================================================
// Dashboard
// =============================================================================

func TestDashboardEmpty(t *testing.T) {
	_, e := setupEngine(t)
	assert.Equal(t, DashboardStats{}, e.Dashboard())
}

func TestDashboard(t *testing.T) {
	st, e := setupEngine(t)

	require.NoError(t, st.Goals.Add(&model.Goal{Title: "Empty", Category: model.GoalCategoryOther}))
	require.NoError(t, st.Goals.Add(&model.Goal{Title: "Three", Category: model.GoalCategoryCareer, Milestones: []model.Milestone{
		{Title: "a", IsCompleted: true}, {Title: "b", IsCompleted: true}, {Title: "c"},
	}}))

	today, tomorrow := day(0), day(1)
	done := &model.Task{Title: "done", DueDate: &today}
	require.NoError(t, st.Tasks.Add(done))
	require.NoError(t, st.Tasks.ToggleCompletion(done.ID))
	require.NoError(t, st.Tasks.Add(&model.Task{Title: "open", DueDate: &today}))
	require.NoError(t, st.Tasks.Add(&model.Task{Title: "later", DueDate: &tomorrow}))

	habit := &model.Habit{Name: "Walk"}
	require.NoError(t, st.Habits.Add(habit))
	for _, o := range []int{-1, -2, -5, -6, -7, -8} {
		require.NoError(t, st.HabitEntries.Add(&model.HabitEntry{HabitID: habit.ID, Date: day(o), IsCompleted: true}))
	}

	s := e.Dashboard()
	assert.Equal(t, 2, s.TotalGoals)
	assert.Equal(t, 2, s.CompletedMilestones)
	assert.Equal(t, 3, s.TotalMilestones)
	assert.InDelta(t, 0.667, s.OverallProgress, 0.001)
	assert.Equal(t, 1, s.TasksCompletedToday)
	assert.Equal(t, 2, s.TotalTasksToday)
	assert.Equal(t, 2, s.CurrentStreak)
	assert.Equal(t, 4, s.LongestStreak)
}

func TestGoalProgress(t *testing.T) {
	empty := &model.Goal{}
	assert.Equal(t, 0.0, empty.Progress())

	g := &model.Goal{Milestones: []model.Milestone{{IsCompleted: true}, {IsCompleted: true}, {}}}
	assert.InDelta(t, 0.667, g.Progress(), 0.001)
	assert.False(t, g.IsCompleted())
}

// =============================================================================
// Finance
// =============================================================================

func TestFinance(t *testing.T) {
	st, e := setupEngine(t)

	food := model.CategoryFood
	require.NoError(t, st.Budgets.Add(&model.Budget{Category: &food, LimitAmount: dec("300")}))

	add := func(amount string, typ model.TransactionType, c model.FinanceCategory) *model.Transaction {
		tx := &model.Transaction{Amount: dec(amount), Type: typ, Category: c}
		require.NoError(t, st.Transactions.Add(tx))
		return tx
	}
	add("1000", model.TransactionIncome, model.CategorySalary)
	add("200", model.TransactionExpense, model.CategoryFood)
	add("50", model.TransactionBorrowed, model.CategoryOther)
	settled := add("70", model.TransactionLent, model.CategoryOther)
	add("30", model.TransactionLent, model.CategoryOther)
	require.NoError(t, st.Transactions.Settle(settled.ID))

	s := e.Finance()
	assert.True(t, dec("1000").Equal(s.TotalIncome))
	assert.True(t, dec("200").Equal(s.TotalExpense))
	assert.True(t, dec("50").Equal(s.TotalBorrowed))
	assert.True(t, dec("30").Equal(s.TotalLent))
	assert.True(t, dec("820").Equal(s.CurrentBalance), s.CurrentBalance.String())
	require.Len(t, s.Budgets, 1)
	assert.True(t, dec("200").Equal(s.Budgets[0].SpentAmount))
	assert.Len(t, s.RecentTransactions, 5)
	assert.Equal(t, model.TransactionLent, s.RecentTransactions[0].Type)
}

func TestFinanceRecentLimit(t *testing.T) {
	st, _ := setupEngine(t)
	for i := 0; i < 15; i++ {
		require.NoError(t, st.Transactions.Add(&model.Transaction{
			Amount: decimal.NewFromInt(int64(i + 1)), Type: model.TransactionIncome, Category: model.CategorySalary,
		}))
	}

	assert.Len(t, New(st).Finance().RecentTransactions, DefaultRecentTransactions)
	assert.Len(t, New(st, WithRecentTransactions(3)).Finance().RecentTransactions, 3)
}

func TestFinanceEmptyBalanceIsZero(t *testing.T) {
	_, e := setupEngine(t)
	s := e.Finance()
	assert.True(t, s.CurrentBalance.IsZero())
	assert.Empty(t, s.RecentTransactions)
}

func TestStatsIgnoreCorruptCollections(t *testing.T) {
	st, e := setupEngine(t)
	require.NoError(t, st.KV().Set(model.KeyTransactions, []byte("garbage")))
	require.NoError(t, st.KV().Set(model.KeyGoals, []byte("garbage")))

	assert.True(t, e.Finance().TotalIncome.IsZero())
	assert.Equal(t, 0, e.Dashboard().TotalGoals)
}

// =============================================================================
// Breakdowns
// =============================================================================

func TestGoalSummaries(t *testing.T) {
	st, e := setupEngine(t)
	g := &model.Goal{Title: "Launch", Category: model.GoalCategoryCareer, Milestones: []model.Milestone{{Title: "a", IsCompleted: true}, {Title: "b"}}}
	require.NoError(t, st.Goals.Add(g))
	require.NoError(t, st.Tasks.Add(&model.Task{Title: "t1", LinkedGoalID: g.ID}))
	closed := &model.Task{Title: "t2", LinkedGoalID: g.ID}
	require.NoError(t, st.Tasks.Add(closed))
	require.NoError(t, st.Tasks.ToggleCompletion(closed.ID))
	require.NoError(t, st.Tasks.Add(&model.Task{Title: "dangling", LinkedGoalID: "gone"}))

	sums := e.GoalSummaries()
	require.Len(t, sums, 1)
	assert.Equal(t, "Launch", sums[0].Title)
	assert.InDelta(t, 0.5, sums[0].Progress, 1e-9)
	assert.Equal(t, 2, sums[0].LinkedTasks)
	assert.Equal(t, 1, sums[0].OpenTasks)
}

func TestBudgetStatuses(t *testing.T) {
	st, e := setupEngine(t)
	require.NoError(t, st.Budgets.Add(&model.Budget{LimitAmount: dec("100")}))
	require.NoError(t, st.Transactions.Add(&model.Transaction{Amount: dec("150"), Type: model.TransactionExpense, Category: model.CategoryBills}))

	statuses := e.BudgetStatuses()
	require.Len(t, statuses, 1)
	assert.Equal(t, "Overall", statuses[0].Label)
	assert.True(t, statuses[0].OverLimit)
	assert.InDelta(t, 1.5, statuses[0].PercentUsed, 1e-9)
	assert.True(t, dec("-50").Equal(statuses[0].Remaining))
}

func TestHabitStreaks(t *testing.T) {
	st, e := setupEngine(t)
	walk := &model.Habit{Name: "Walk"}
	old := &model.Habit{Name: "Old"}
	require.NoError(t, st.Habits.Add(walk))
	require.NoError(t, st.Habits.Add(old))
	require.NoError(t, st.Habits.SetArchived(old.ID, true))

	for _, o := range []int{0, -1, -4} {
		require.NoError(t, st.HabitEntries.Add(&model.HabitEntry{HabitID: walk.ID, Date: day(o), IsCompleted: true}))
	}

	streaks := e.HabitStreaks()
	require.Len(t, streaks, 1)
	assert.Equal(t, "Walk", streaks[0].Name)
	assert.Equal(t, 2, streaks[0].Current)
	assert.Equal(t, 2, streaks[0].Longest)
	assert.Equal(t, 3, streaks[0].CompletedDays)
	assert.True(t, streaks[0].CompletedToday)
}

func TestExpenseByCategory(t *testing.T) {
	st, e := setupEngine(t)
	for _, tx := range []*model.Transaction{
		{Amount: dec("10"), Type: model.TransactionExpense, Category: model.CategoryFood},
		{Amount: dec("15"), Type: model.TransactionExpense, Category: model.CategoryFood},
		{Amount: dec("40"), Type: model.TransactionExpense, Category: model.CategoryBills},
		{Amount: dec("999"), Type: model.TransactionIncome, Category: model.CategorySalary},
	} {
		require.NoError(t, st.Transactions.Add(tx))
	}

	totals := e.ExpenseByCategory()
	require.Len(t, totals, 2)
	assert.Equal(t, model.CategoryBills, totals[0].Category)
	assert.Equal(t, model.CategoryFood, totals[1].Category)
	assert.True(t, dec("25").Equal(totals[1].Total))
	assert.Equal(t, 2, totals[1].Count)
}
