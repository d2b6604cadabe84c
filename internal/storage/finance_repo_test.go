package storage

import (
	stderrors "errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/lifeledger/internal/errors"
	"github.com/manav03panchal/lifeledger/internal/model"
)

func category(c model.FinanceCategory) *model.FinanceCategory { return &c }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func budgetByID(t *testing.T, st *Store, id string) *model.Budget {
	t.Helper()
	b, ok := st.Budgets.Get(id)
	require.True(t, ok, "budget %s missing", id)
	return b
}

// setupBudgets adds a FOOD budget (limit 100) and an overall budget (limit 500).
func setupBudgets(t *testing.T, st *Store) (food, overall *model.Budget) {
	food = &model.Budget{Category: category(model.CategoryFood), LimitAmount: dec("100")}
	overall = &model.Budget{LimitAmount: dec("500")}
	require.NoError(t, st.Budgets.Add(food))
	require.NoError(t, st.Budgets.Add(overall))
	return food, overall
}

func TestBudgetFanOut(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			st := NewStore(kv)
			food, overall := setupBudgets(t, st)

			tx := &model.Transaction{Amount: dec("50"), Type: model.TransactionExpense, Category: model.CategoryFood}
			require.NoError(t, st.Transactions.Add(tx))

			assertDecimal(t, "50", budgetByID(t, st, food.ID).SpentAmount)
			assertDecimal(t, "50", budgetByID(t, st, overall.ID).SpentAmount)

			require.NoError(t, st.Transactions.Delete(tx.ID))
			assertDecimal(t, "0", budgetByID(t, st, food.ID).SpentAmount)
			assertDecimal(t, "0", budgetByID(t, st, overall.ID).SpentAmount)
		})
	}
}

func TestExpenseInOtherCategoryHitsOverallOnly(t *testing.T) {
	st, _ := setupTestStore(t)
	food, overall := setupBudgets(t, st)

	require.NoError(t, st.Transactions.Add(&model.Transaction{
		Amount: dec("20"), Type: model.TransactionExpense, Category: model.CategoryTransport,
	}))

	assertDecimal(t, "0", budgetByID(t, st, food.ID).SpentAmount)
	assertDecimal(t, "20", budgetByID(t, st, overall.ID).SpentAmount)
}

func TestNonExpenseNeverTouchesBudgets(t *testing.T) {
	st, _ := setupTestStore(t)
	food, overall := setupBudgets(t, st)

	for _, typ := range []model.TransactionType{model.TransactionIncome, model.TransactionBorrowed, model.TransactionLent} {
		tx := &model.Transaction{Amount: dec("30"), Type: typ, Category: model.CategoryFood}
		require.NoError(t, st.Transactions.Add(tx))
		require.NoError(t, st.Transactions.Delete(tx.ID))
	}

	assertDecimal(t, "0", budgetByID(t, st, food.ID).SpentAmount)
	assertDecimal(t, "0", budgetByID(t, st, overall.ID).SpentAmount)
}

func TestTransactionUpdateMovesSpend(t *testing.T) {
	st, _ := setupTestStore(t)
	food, overall := setupBudgets(t, st)

	tx := &model.Transaction{Amount: dec("40"), Type: model.TransactionExpense, Category: model.CategoryFood}
	require.NoError(t, st.Transactions.Add(tx))

	edited := &model.Transaction{ID: tx.ID, Amount: dec("25.5"), Type: model.TransactionExpense, Category: model.CategoryShopping}
	require.NoError(t, st.Transactions.Update(edited))

	assertDecimal(t, "0", budgetByID(t, st, food.ID).SpentAmount)
	assertDecimal(t, "25.5", budgetByID(t, st, overall.ID).SpentAmount)

	got, ok := st.Transactions.Get(tx.ID)
	require.True(t, ok)
	assert.Equal(t, tx.CreatedAt, got.CreatedAt)

	err := st.Transactions.Update(&model.Transaction{ID: "ghost", Amount: dec("1"), Type: model.TransactionIncome, Category: model.CategorySalary})
	assert.True(t, errors.IsNotFound(err))
	assert.Len(t, st.Transactions.List(), 1)
}

func TestBudgetLifecycle(t *testing.T) {
	st, _ := setupTestStore(t)

	b := &model.Budget{Category: category(model.CategoryFood), LimitAmount: dec("300"), SpentAmount: dec("999")}
	require.NoError(t, st.Budgets.Add(b))
	assertDecimal(t, "0", budgetByID(t, st, b.ID).SpentAmount)
	assert.Equal(t, model.BudgetMonthly, b.Period)

	require.NoError(t, st.Transactions.Add(&model.Transaction{Amount: dec("200"), Type: model.TransactionExpense, Category: model.CategoryFood}))

	require.NoError(t, st.Budgets.Update(&model.Budget{ID: b.ID, Category: category(model.CategoryFood), LimitAmount: dec("400"), SpentAmount: dec("0")}))
	got := budgetByID(t, st, b.ID)
	assertDecimal(t, "400", got.LimitAmount)
	assertDecimal(t, "200", got.SpentAmount)
	assert.InDelta(t, 0.5, got.PercentUsed(), 1e-9)

	assert.True(t, errors.IsNotFound(st.Budgets.Update(&model.Budget{ID: "ghost", LimitAmount: dec("1")})))

	require.NoError(t, st.Budgets.Delete(b.ID))
	assert.Empty(t, st.Budgets.List())
	assert.NoError(t, st.Budgets.Delete(b.ID))
}

func TestSettle(t *testing.T) {
	st, _ := setupTestStore(t)

	lent := &model.Transaction{Amount: dec("15"), Type: model.TransactionLent, Category: model.CategoryOther, PersonName: "Sam"}
	expense := &model.Transaction{Amount: dec("15"), Type: model.TransactionExpense, Category: model.CategoryFood}
	require.NoError(t, st.Transactions.Add(lent))
	require.NoError(t, st.Transactions.Add(expense))

	require.NoError(t, st.Transactions.Settle(lent.ID))
	got, _ := st.Transactions.Get(lent.ID)
	assert.True(t, got.IsSettled)

	err := st.Transactions.Settle(expense.ID)
	assert.ErrorIs(t, err, errors.ErrNotSettleable)
	assert.True(t, errors.IsNotFound(st.Transactions.Settle("ghost")))

	logs := st.FinanceLogs.List()
	assert.Equal(t, model.ActionSettle, logs[0].Action)
	assert.Contains(t, logs[0].Description, "Sam")
}

func TestTransactionValidation(t *testing.T) {
	st, _ := setupTestStore(t)

	err := st.Transactions.Add(&model.Transaction{Amount: dec("-5"), Type: model.TransactionExpense, Category: model.CategoryFood})
	assert.ErrorIs(t, err, errors.ErrInvalidAmount)

	err = st.Transactions.Add(&model.Transaction{Amount: dec("5"), Type: "GIFTED", Category: model.CategoryFood})
	assert.ErrorIs(t, err, errors.ErrInvalidType)

	err = st.Transactions.Add(&model.Transaction{Amount: dec("5"), Type: model.TransactionIncome, Category: "PETS"})
	assert.ErrorIs(t, err, errors.ErrInvalidCategory)

	assert.Empty(t, st.Transactions.List())
	assert.Empty(t, st.FinanceLogs.List())
}

func TestFinanceLog(t *testing.T) {
	st, _ := setupTestStore(t)

	b := &model.Budget{LimitAmount: dec("10")}
	require.NoError(t, st.Budgets.Add(b))
	tx := &model.Transaction{Amount: dec("3"), Type: model.TransactionExpense, Category: model.CategoryFood}
	require.NoError(t, st.Transactions.Add(tx))
	require.NoError(t, st.Transactions.Delete(tx.ID))
	require.NoError(t, st.Transactions.Delete(tx.ID))

	logs := st.FinanceLogs.List()
	require.Len(t, logs, 3)
	assert.Equal(t, model.ActionDelete, logs[0].Action)
	assert.Equal(t, model.ActionAdd, logs[1].Action)
	assert.Equal(t, model.EntityTransaction, logs[1].EntityType)
	assert.Equal(t, model.EntityBudget, logs[2].EntityType)
	assert.NotEmpty(t, logs[0].ID)
	assert.NotZero(t, logs[0].Timestamp)

	assert.Len(t, st.FinanceLogs.ForEntity(tx.ID), 2)
}

func TestFinanceLogCap(t *testing.T) {
	st, _ := setupTestStore(t, WithFinanceLogCap(3))

	for i := 0; i < 5; i++ {
		require.NoError(t, st.Transactions.Add(&model.Transaction{
			Amount: decimal.NewFromInt(int64(i + 1)), Type: model.TransactionIncome, Category: model.CategorySalary,
		}))
	}
	require.NoError(t, st.FinanceLogs.Add(&model.FinanceLog{Action: model.ActionAdd, EntityType: model.EntityBudget}))

	logs := st.FinanceLogs.List()
	require.Len(t, logs, 3)
	assert.Equal(t, model.EntityBudget, logs[0].EntityType)
	assert.Contains(t, logs[1].Description, "5.00")
}

func TestDefaultFinanceLogCap(t *testing.T) {
	st, _ := setupTestStore(t)

	logs := make([]*model.FinanceLog, DefaultFinanceLogCap)
	for i := range logs {
		logs[i] = &model.FinanceLog{ID: "old", Action: model.ActionAdd, EntityType: model.EntityTransaction, Timestamp: 1}
	}
	require.NoError(t, st.FinanceLogs.Save(logs))

	require.NoError(t, st.Transactions.Add(&model.Transaction{Amount: dec("1"), Type: model.TransactionIncome, Category: model.CategoryGift}))

	got := st.FinanceLogs.List()
	assert.Len(t, got, DefaultFinanceLogCap)
	assert.NotEqual(t, "old", got[0].ID)
}

// failingBatchKV rejects every batch, simulating a write failure mid-ledger.
type failingBatchKV struct {
	KV
}

func (failingBatchKV) Update(func(w Writer) error) error {
	return stderrors.New("batch rejected")
}

func TestLedgerWriteIsAllOrNothing(t *testing.T) {
	db := setupTestDB(t)
	st := NewStore(db)
	food, _ := setupBudgets(t, st)

	broken := NewStore(failingBatchKV{KV: db})
	err := broken.Transactions.Add(&model.Transaction{Amount: dec("50"), Type: model.TransactionExpense, Category: model.CategoryFood})
	require.Error(t, err)
	assert.True(t, errors.IsSystemError(err))

	assert.Empty(t, st.Transactions.List())
	assertDecimal(t, "0", budgetByID(t, st, food.ID).SpentAmount)
	assert.Len(t, st.FinanceLogs.List(), 2)
}

func TestRecentTransactions(t *testing.T) {
	st, _ := setupTestStore(t)
	for i := 0; i < 12; i++ {
		require.NoError(t, st.Transactions.Add(&model.Transaction{
			Amount: decimal.NewFromInt(int64(i + 1)), Type: model.TransactionIncome, Category: model.CategorySalary,
		}))
	}

	recent := st.Transactions.Recent(10)
	require.Len(t, recent, 10)
	assertDecimal(t, "12", recent[0].Amount)
}
