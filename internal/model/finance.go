package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a money movement.
type TransactionType string

const (
	TransactionIncome   TransactionType = "INCOME"
	TransactionExpense  TransactionType = "EXPENSE"
	TransactionBorrowed TransactionType = "BORROWED"
	TransactionLent     TransactionType = "LENT"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionBorrowed, TransactionLent:
		return true
	}
	return false
}

// FinanceCategory groups transactions and scopes budgets.
type FinanceCategory string

const (
	CategoryFood          FinanceCategory = "FOOD"
	CategoryTransport     FinanceCategory = "TRANSPORT"
	CategoryShopping      FinanceCategory = "SHOPPING"
	CategoryBills         FinanceCategory = "BILLS"
	CategoryEntertainment FinanceCategory = "ENTERTAINMENT"
	CategoryHealth        FinanceCategory = "HEALTH"
	CategoryEducation     FinanceCategory = "EDUCATION"
	CategorySalary        FinanceCategory = "SALARY"
	CategoryInvestment    FinanceCategory = "INVESTMENT"
	CategoryGift          FinanceCategory = "GIFT"
	CategoryOther         FinanceCategory = "OTHER"
)

var categoryIcons = map[FinanceCategory]string{
	CategoryFood:          "🍔",
	CategoryTransport:     "🚌",
	CategoryShopping:      "🛍",
	CategoryBills:         "🧾",
	CategoryEntertainment: "🎬",
	CategoryHealth:        "💊",
	CategoryEducation:     "📚",
	CategorySalary:        "💼",
	CategoryInvestment:    "📈",
	CategoryGift:          "🎁",
	CategoryOther:         "•",
}

// Icon returns the display icon for the category.
func (c FinanceCategory) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return categoryIcons[CategoryOther]
}

// IsValid reports whether c is a known category.
func (c FinanceCategory) IsValid() bool {
	_, ok := categoryIcons[c]
	return ok
}

// Transaction is a single money movement.
type Transaction struct {
	ID         string          `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Type       TransactionType `json:"type"`
	Category   FinanceCategory `json:"category"`
	Note       string          `json:"note"`
	PersonName string          `json:"personName,omitempty"`
	IsSettled  bool            `json:"isSettled"`
	Date       int64           `json:"date"`
	CreatedAt  int64           `json:"createdAt"`
	UpdatedAt  int64           `json:"updatedAt"`
}

func (t *Transaction) GetID() string { return t.ID }
func (t *Transaction) SetID(id string) { t.ID = id }
func (t *Transaction) Stamp(created, now int64) { stamp(&t.CreatedAt, &t.UpdatedAt, created, now) }
func (t *Transaction) CreatedMillis() int64 { return t.CreatedAt }

// IsExpense reports whether the transaction affects budgets.
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionExpense
}

// Describe returns a short human-readable summary used in the finance log.
func (t *Transaction) Describe() string {
	desc := fmt.Sprintf("%s %s in %s", t.Type, t.Amount.StringFixed(2), t.Category)
	if t.PersonName != "" {
		desc += " with " + t.PersonName
	}
	return desc
}

// BudgetPeriod is the window a budget limit applies to.
type BudgetPeriod string

const (
	BudgetWeekly  BudgetPeriod = "WEEKLY"
	BudgetMonthly BudgetPeriod = "MONTHLY"
	BudgetYearly  BudgetPeriod = "YEARLY"
)

// IsValid reports whether p is a known period. Empty is valid and means monthly.
func (p BudgetPeriod) IsValid() bool {
	switch p {
	case "", BudgetWeekly, BudgetMonthly, BudgetYearly:
		return true
	}
	return false
}

// Budget caps spending in a category. A nil Category is an overall budget.
type Budget struct {
	ID          string           `json:"id"`
	Category    *FinanceCategory `json:"category,omitempty"`
	LimitAmount decimal.Decimal  `json:"limitAmount"`
	// SpentAmount is maintained by transaction mutations only.
	SpentAmount decimal.Decimal `json:"spentAmount"`
	Period      BudgetPeriod    `json:"period"`
	CreatedAt   int64           `json:"createdAt"`
	UpdatedAt   int64           `json:"updatedAt"`
}

func (b *Budget) GetID() string { return b.ID }
func (b *Budget) SetID(id string) { b.ID = id }
func (b *Budget) Stamp(created, now int64) { stamp(&b.CreatedAt, &b.UpdatedAt, created, now) }
func (b *Budget) CreatedMillis() int64 { return b.CreatedAt }

// IsOverall reports whether the budget applies to every category.
func (b *Budget) IsOverall() bool {
	return b.Category == nil
}

// Matches reports whether an expense in category c counts against this budget.
func (b *Budget) Matches(c FinanceCategory) bool {
	return b.Category == nil || *b.Category == c
}

// PercentUsed returns spent/limit as a fraction. A non-positive limit yields 0.
func (b *Budget) PercentUsed() float64 {
	if !b.LimitAmount.IsPositive() {
		return 0
	}
	return b.SpentAmount.Div(b.LimitAmount).InexactFloat64()
}

// Remaining returns limit - spent, which may be negative.
func (b *Budget) Remaining() decimal.Decimal {
	return b.LimitAmount.Sub(b.SpentAmount)
}

// Label returns the category name, or "Overall".
func (b *Budget) Label() string {
	if b.Category == nil {
		return "Overall"
	}
	return string(*b.Category)
}

// Describe returns a short human-readable summary used in the finance log.
func (b *Budget) Describe() string {
	return fmt.Sprintf("%s budget limit %s", b.Label(), b.LimitAmount.StringFixed(2))
}

// FinanceAction is the verb recorded in a finance log entry.
type FinanceAction string

const (
	ActionAdd    FinanceAction = "ADD"
	ActionUpdate FinanceAction = "UPDATE"
	ActionDelete FinanceAction = "DELETE"
	ActionSettle FinanceAction = "SETTLE"
)

// FinanceEntity names the kind of record a finance log entry is about.
type FinanceEntity string

const (
	EntityTransaction FinanceEntity = "TRANSACTION"
	EntityBudget      FinanceEntity = "BUDGET"
)

// FinanceLog is a write-once audit record.
type FinanceLog struct {
	ID          string        `json:"id"`
	Action      FinanceAction `json:"action"`
	EntityType  FinanceEntity `json:"entityType"`
	EntityID    string        `json:"entityId"`
	Description string        `json:"description"`
	Timestamp   int64         `json:"timestamp"`
}

func (l *FinanceLog) GetID() string { return l.ID }
func (l *FinanceLog) SetID(id string) { l.ID = id }

// Stamp sets Timestamp to created, or to now for a new entry.
func (l *FinanceLog) Stamp(created, now int64) {
	if created == 0 {
		created = now
	}
	l.Timestamp = created
}

func (l *FinanceLog) CreatedMillis() int64 { return l.Timestamp }
