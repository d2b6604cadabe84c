package storage

import (
	"github.com/shopspring/decimal"

	"github.com/manav03panchal/lifeledger/internal/errors"
	"github.com/manav03panchal/lifeledger/internal/logging"
	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/validate"
)

// ledger is the in-memory view of the finance collections for one mutation.
// Transactions, budgets and the log are committed together.
type ledger struct {
	st      *Store
	txs     []*model.Transaction
	budgets []*model.Budget
	logs    []*model.FinanceLog
}

// withLedger loads the finance collections, applies fn and commits all
// three in a single KV batch. Nothing is written if fn fails.
func (s *Store) withLedger(op string, fn func(l *ledger) error) error {
	s.ledgerMu.Lock()
	defer s.ledgerMu.Unlock()

	l := &ledger{
		st:      s,
		txs:     s.Transactions.list(),
		budgets: s.Budgets.list(),
		logs:    s.FinanceLogs.list(),
	}
	if err := fn(l); err != nil {
		return err
	}

	err := s.kv.Update(func(w Writer) error {
		if err := s.Transactions.writeTo(w, l.txs); err != nil {
			return err
		}
		if err := s.Budgets.writeTo(w, l.budgets); err != nil {
			return err
		}
		return s.FinanceLogs.writeTo(w, l.logs)
	})
	if err != nil {
		return errors.NewSystemErrorWithOp(op, "failed to save finance data", err)
	}
	return nil
}

// spend adds delta to every budget matching an expense in category c.
func (l *ledger) spend(c model.FinanceCategory, delta decimal.Decimal) {
	for _, b := range l.budgets {
		if b.Matches(c) {
			b.SpentAmount = b.SpentAmount.Add(delta)
		}
	}
}

// apply records tx's budget effect; sign is +1 to apply and -1 to reverse.
func (l *ledger) apply(tx *model.Transaction, sign int64) {
	if !tx.IsExpense() {
		return
	}
	l.spend(tx.Category, tx.Amount.Mul(decimal.NewFromInt(sign)))
}

// log prepends an audit entry, dropping the oldest beyond the cap.
func (l *ledger) log(action model.FinanceAction, entity model.FinanceEntity, id, desc string) {
	entry := &model.FinanceLog{
		Action:      action,
		EntityType:  entity,
		EntityID:    id,
		Description: desc,
	}
	l.st.FinanceLogs.prepare(entry)
	l.logs = capLogs(append([]*model.FinanceLog{entry}, l.logs...), l.st.financeLogCap)
}

func (l *ledger) txIndex(id string) int {
	for i, tx := range l.txs {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

func (l *ledger) budgetIndex(id string) int {
	for i, b := range l.budgets {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func capLogs(logs []*model.FinanceLog, limit int) []*model.FinanceLog {
	if limit > 0 && len(logs) > limit {
		return logs[:limit]
	}
	return logs
}

// TransactionRepo provides transaction persistence. New transactions are
// prepended. Every mutation updates matching budgets and the finance log in
// the same batch.
type TransactionRepo struct {
	*collection[*model.Transaction]
}

// Add validates and stores a new transaction. An expense increments every
// matching budget.
func (r *TransactionRepo) Add(tx *model.Transaction) error {
	tx.Note = validate.CleanText(tx.Note)
	if err := validate.Transaction(tx); err != nil {
		return err
	}
	r.prepare(tx)

	err := r.st.withLedger("add transaction", func(l *ledger) error {
		l.txs = r.insert(l.txs, tx)
		l.apply(tx, 1)
		l.log(model.ActionAdd, model.EntityTransaction, tx.ID, tx.Describe())
		return nil
	})
	if err == nil {
		logging.DebugLog("transaction added", logging.KeyID, tx.ID, logging.KeyEntity, string(tx.Type))
	}
	return err
}

// Update replaces an existing transaction. The stored version's budget effect
// is reversed and the new version's applied.
func (r *TransactionRepo) Update(tx *model.Transaction) error {
	tx.Note = validate.CleanText(tx.Note)
	if err := validate.Transaction(tx); err != nil {
		return err
	}

	return r.st.withLedger("update transaction", func(l *ledger) error {
		i := l.txIndex(tx.ID)
		if i < 0 {
			return errors.NotFound(r.kind, tx.ID)
		}
		old := l.txs[i]
		l.apply(old, -1)
		tx.Stamp(old.CreatedAt, r.st.nowMillis())
		l.txs[i] = tx
		l.apply(tx, 1)
		l.log(model.ActionUpdate, model.EntityTransaction, tx.ID, tx.Describe())
		return nil
	})
}

// Delete removes a transaction, reversing its budget effect with the stored
// amount. An unknown id is a no-op.
func (r *TransactionRepo) Delete(id string) error {
	var missing bool
	err := r.st.withLedger("delete transaction", func(l *ledger) error {
		i := l.txIndex(id)
		if i < 0 {
			missing = true
			return errNoChange
		}
		old := l.txs[i]
		l.txs = append(l.txs[:i], l.txs[i+1:]...)
		l.apply(old, -1)
		l.log(model.ActionDelete, model.EntityTransaction, old.ID, old.Describe())
		return nil
	})
	if missing {
		return nil
	}
	return err
}

// Settle marks a borrowed or lent transaction as settled.
func (r *TransactionRepo) Settle(id string) error {
	return r.st.withLedger("settle transaction", func(l *ledger) error {
		i := l.txIndex(id)
		if i < 0 {
			return errors.NotFound(r.kind, id)
		}
		tx := l.txs[i]
		if tx.Type != model.TransactionBorrowed && tx.Type != model.TransactionLent {
			return errors.Invalid(errors.ErrNotSettleable, "type", string(tx.Type), "")
		}
		tx.IsSettled = true
		tx.Stamp(tx.CreatedAt, r.st.nowMillis())
		l.log(model.ActionSettle, model.EntityTransaction, tx.ID, tx.Describe())
		return nil
	})
}

// Recent returns the first n transactions in stored (newest-first) order.
func (r *TransactionRepo) Recent(n int) []*model.Transaction {
	txs := r.list()
	if n >= 0 && len(txs) > n {
		txs = txs[:n]
	}
	return txs
}

// errNoChange aborts a ledger mutation without writing.
var errNoChange = errors.New("no change")

// BudgetRepo provides budget persistence. New budgets are appended. The
// spent amount is maintained by transaction mutations only.
type BudgetRepo struct {
	*collection[*model.Budget]
}

// Add validates and stores a new budget with nothing spent.
func (r *BudgetRepo) Add(b *model.Budget) error {
	if err := validate.Budget(b); err != nil {
		return err
	}
	if b.Period == "" {
		b.Period = model.BudgetMonthly
	}
	b.SpentAmount = decimal.Zero
	r.prepare(b)

	return r.st.withLedger("add budget", func(l *ledger) error {
		l.budgets = r.insert(l.budgets, b)
		l.log(model.ActionAdd, model.EntityBudget, b.ID, b.Describe())
		return nil
	})
}

// Update replaces a budget's limit, category and period. The stored spent
// amount is preserved.
func (r *BudgetRepo) Update(b *model.Budget) error {
	if err := validate.Budget(b); err != nil {
		return err
	}
	if b.Period == "" {
		b.Period = model.BudgetMonthly
	}

	return r.st.withLedger("update budget", func(l *ledger) error {
		i := l.budgetIndex(b.ID)
		if i < 0 {
			return errors.NotFound(r.kind, b.ID)
		}
		old := l.budgets[i]
		b.SpentAmount = old.SpentAmount
		b.Stamp(old.CreatedAt, r.st.nowMillis())
		l.budgets[i] = b
		l.log(model.ActionUpdate, model.EntityBudget, b.ID, b.Describe())
		return nil
	})
}

// Delete removes a budget. An unknown id is a no-op.
func (r *BudgetRepo) Delete(id string) error {
	var missing bool
	err := r.st.withLedger("delete budget", func(l *ledger) error {
		i := l.budgetIndex(id)
		if i < 0 {
			missing = true
			return errNoChange
		}
		old := l.budgets[i]
		l.budgets = append(l.budgets[:i], l.budgets[i+1:]...)
		l.log(model.ActionDelete, model.EntityBudget, old.ID, old.Describe())
		return nil
	})
	if missing {
		return nil
	}
	return err
}

// FinanceLogRepo exposes the append-only finance audit log, newest first.
type FinanceLogRepo struct {
	*collection[*model.FinanceLog]
}

// Add prepends an entry, keeping only the newest entries up to the cap.
func (r *FinanceLogRepo) Add(entry *model.FinanceLog) error {
	r.prepare(entry)
	return r.mutate(func(logs []*model.FinanceLog) ([]*model.FinanceLog, bool, error) {
		return capLogs(r.insert(logs, entry), r.st.financeLogCap), true, nil
	})
}

// ForEntity returns the log entries about one record.
func (r *FinanceLogRepo) ForEntity(id string) []*model.FinanceLog {
	var out []*model.FinanceLog
	for _, entry := range r.list() {
		if entry.EntityID == id {
			out = append(out, entry)
		}
	}
	return out
}
