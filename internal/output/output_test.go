package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/stats"
	"github.com/manav03panchal/lifeledger/internal/storage"
)

var fixedNow = time.Date(2026, 3, 14, 15, 0, 0, 0, time.Local)

func newCLI() (*CLIFormatter, *bytes.Buffer) {
	var buf bytes.Buffer
	f := &Formatter{
		Writer:    &buf,
		ColorMode: ColorNever,
		Currency:  "USD",
		Now:       func() time.Time { return fixedNow },
	}
	return NewCLIFormatter(f), &buf
}

func newJSON() (*JSONFormatter, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewJSONFormatter(&Formatter{Writer: &buf, Format: FormatJSON}), &buf
}

// =============================================================================
// Formatter
// =============================================================================

func TestNewFormatter(t *testing.T) {
	f := NewFormatter()
	assert.Equal(t, FormatCLI, f.Format)
	assert.Equal(t, ColorAuto, f.ColorMode)
	assert.Equal(t, "USD", f.Currency)
}

func TestFormatterIsColorEnabled(t *testing.T) {
	t.Run("color_always", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorAlways}
		assert.True(t, f.IsColorEnabled())
	})

	t.Run("color_never", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorNever}
		assert.False(t, f.IsColorEnabled())
	})

	t.Run("plain_format_disables_color", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorAlways, Format: FormatPlain}
		assert.False(t, f.IsColorEnabled())
	})

	t.Run("color_auto_non_terminal", func(t *testing.T) {
		var buf bytes.Buffer
		f := &Formatter{Writer: &buf, ColorMode: ColorAuto}
		assert.False(t, f.IsColorEnabled())
	})
}

func TestParseFlags(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatPlain, ParseFormat("plain"))
	assert.Equal(t, FormatCLI, ParseFormat("fancy"))
	assert.Equal(t, ColorNever, ParseColorMode("never"))
	assert.Equal(t, ColorAuto, ParseColorMode(""))
}

func TestFormatterJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}
	require.NoError(t, f.JSON(map[string]int{"a": 1}))
	assert.JSONEq(t, `{"a":1}`, buf.String())
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "12.50 EUR", FormatMoney(decimal.RequireFromString("12.5"), "EUR"))
	assert.Equal(t, "-3.00", FormatMoney(decimal.NewFromInt(-3), ""))
	assert.Equal(t, "67%", FormatPercent(0.666))
	assert.Equal(t, "150%", FormatPercent(1.5))

	ms := model.Millis(time.Date(2026, 1, 2, 9, 5, 0, 0, time.Local))
	assert.Equal(t, "2026-01-02", FormatDate(ms))
	assert.Equal(t, "2026-01-02 09:05", FormatDateTime(ms))
	assert.Equal(t, "09:05", FormatTimeOnly(ms))

	assert.Equal(t, "abcdefgh", ShortID("abcdefgh-1234"))
	assert.Equal(t, "abc", ShortID("abc"))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░", ProgressBar(0, 4))
	assert.Equal(t, "██░░", ProgressBar(0.5, 4))
	assert.Equal(t, "████", ProgressBar(1.7, 4))
	assert.Equal(t, "░░░░", ProgressBar(-1, 4))
}

// =============================================================================
// CLI
// =============================================================================

func TestCLIMessages(t *testing.T) {
	c, buf := newCLI()
	c.Title("My Title")
	c.Success("Saved")
	c.Warning("Careful")
	c.Error("Broken")
	c.Muted("quiet")

	out := buf.String()
	assert.Contains(t, out, "My Title")
	assert.Contains(t, out, "✓ Saved")
	assert.Contains(t, out, "⚠ Careful")
	assert.Contains(t, out, "✗ Broken")
	assert.Contains(t, out, "quiet")
}

func TestCLIColoredWithoutColor(t *testing.T) {
	c, _ := newCLI()
	assert.Equal(t, "name", c.Colored("#FF0000", "name"))
	assert.Equal(t, "name", c.Accent("name"))
}

func TestPrintTableAlignment(t *testing.T) {
	c, buf := newCLI()
	c.PrintTable([]string{"A", "B"}, []TableRow{
		{Columns: []string{"long value", "x"}},
		{Columns: []string{"s", "y"}},
	})
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Equal(t, "A           B", string(lines[0]))
	assert.Equal(t, "s           y", string(lines[3]))
}

func TestPrintTableEmpty(t *testing.T) {
	c, buf := newCLI()
	c.PrintTable([]string{"A"}, nil)
	assert.Empty(t, buf.String())
}

func TestPrintGoals(t *testing.T) {
	c, buf := newCLI()
	c.PrintGoals([]*model.Goal{{
		ID: "goal-1234567890", Number: 3, Title: "Run a marathon", Category: model.GoalCategoryHealth,
		Milestones: []model.Milestone{{IsCompleted: true}, {}},
	}})
	out := buf.String()
	assert.Contains(t, out, "#3")
	assert.Contains(t, out, "goal-123")
	assert.Contains(t, out, "Run a marathon")
	assert.Contains(t, out, "1/2")
}

func TestPrintGoalDetail(t *testing.T) {
	c, buf := newCLI()
	rating := 4
	c.PrintGoal(&model.Goal{Number: 1, Title: "Ship", Milestones: []model.Milestone{
		{ID: "m1", Title: "Design", IsCompleted: true, Rating: &rating},
		{ID: "m2", Title: "Build"},
	}})
	out := buf.String()
	assert.Contains(t, out, "[x] Design")
	assert.Contains(t, out, "★★★★")
	assert.Contains(t, out, "[ ] Build")
	assert.Contains(t, out, "50%")
}

func TestPrintTasks(t *testing.T) {
	c, buf := newCLI()
	due := model.Millis(fixedNow.AddDate(0, 0, 1))
	c.PrintTasks([]*model.Task{{ID: "t1", Title: "File taxes", Priority: model.PriorityHigh, DueDate: &due, RepeatType: model.RepeatNone}})
	out := buf.String()
	assert.Contains(t, out, "File taxes")
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "due tomorrow")
}

func TestPrintEmptyViews(t *testing.T) {
	c, buf := newCLI()
	c.PrintGoals(nil)
	c.PrintTasks(nil)
	c.PrintNotes(nil)
	c.PrintTransactions(nil)
	c.PrintBudgets(nil)
	out := buf.String()
	assert.Contains(t, out, "No goals yet")
	assert.Contains(t, out, "No tasks.")
	assert.Contains(t, out, "No transactions.")
}

func TestPrintNotesPinnedFirst(t *testing.T) {
	c, buf := newCLI()
	c.PrintNotes([]*model.Note{
		{ID: "n1", Title: "Loose"},
		{ID: "n2", Title: "Pinned", IsPinned: true},
	})
	out := buf.String()
	assert.Less(t, bytes.Index([]byte(out), []byte("Pinned")), bytes.Index([]byte(out), []byte("Loose")))
}

func TestPrintTransactionsSigns(t *testing.T) {
	c, buf := newCLI()
	c.PrintTransactions([]*model.Transaction{
		{ID: "a", Amount: decimal.NewFromInt(100), Type: model.TransactionIncome, Category: model.CategorySalary},
		{ID: "b", Amount: decimal.NewFromInt(20), Type: model.TransactionLent, Category: model.CategoryOther, PersonName: "Sam", IsSettled: true},
	})
	out := buf.String()
	assert.Contains(t, out, "+100.00 USD")
	assert.Contains(t, out, "-20.00 USD")
	assert.Contains(t, out, "Sam (settled)")
}

func TestPrintFinance(t *testing.T) {
	c, buf := newCLI()
	c.PrintFinance(stats.FinanceStats{
		TotalIncome:    decimal.NewFromInt(1000),
		TotalExpense:   decimal.NewFromInt(200),
		CurrentBalance: decimal.NewFromInt(800),
	})
	out := buf.String()
	assert.Contains(t, out, "1000.00 USD")
	assert.Contains(t, out, "800.00 USD")
	assert.NotContains(t, out, "Recent transactions")
}

func TestPrintBudgetsOverLimit(t *testing.T) {
	c, buf := newCLI()
	c.PrintBudgets([]stats.BudgetStatus{{
		BudgetID: "b1", Label: "FOOD", Limit: decimal.NewFromInt(100), Spent: decimal.NewFromInt(150), PercentUsed: 1.5, OverLimit: true,
	}})
	assert.Contains(t, buf.String(), "150%")
}

func TestPrintDashboard(t *testing.T) {
	c, buf := newCLI()
	c.PrintDashboard(stats.DashboardStats{TotalGoals: 2, TasksCompletedToday: 1, TotalTasksToday: 3, CurrentStreak: 4, LongestStreak: 9})
	out := buf.String()
	assert.Contains(t, out, "1/3 done")
	assert.Contains(t, out, "4 days (best 9)")
}

func TestPrintIntegrity(t *testing.T) {
	c, buf := newCLI()
	c.PrintIntegrity(&storage.IntegrityReport{
		Healthy:    false,
		KeyCount:   2,
		Records:    map[string]int{"goals": 3},
		Unreadable: map[string]string{"tasks": "bad json"},
	})
	out := buf.String()
	assert.Contains(t, out, "✗ Store has unreadable data")
	assert.Contains(t, out, "tasks: bad json")
}

// =============================================================================
// JSON
// =============================================================================

func TestPrintListNilIsEmptyArray(t *testing.T) {
	j, buf := newJSON()
	require.NoError(t, PrintList[*model.Goal](j, "goal", nil))

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.JSONEq(t, `"goal"`, string(resp["kind"]))
	assert.JSONEq(t, `0`, string(resp["count"]))
	assert.JSONEq(t, `[]`, string(resp["items"]))
}

func TestPrintRecordAndError(t *testing.T) {
	j, buf := newJSON()
	require.NoError(t, j.PrintRecord("created", "task", "t1", map[string]string{"title": "x"}))
	assert.JSONEq(t, `{"status":"created","kind":"task","id":"t1","record":{"title":"x"}}`, buf.String())

	buf.Reset()
	require.NoError(t, j.PrintError("not found", "user", "list first"))
	assert.JSONEq(t, `{"status":"error","error":"not found","category":"user","suggestion":"list first"}`, buf.String())

	buf.Reset()
	require.NoError(t, j.PrintStatus("ok", ""))
	assert.JSONEq(t, `{"status":"ok"}`, buf.String())
}
