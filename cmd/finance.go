package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/output"
	"github.com/manav03panchal/lifeledger/internal/parser"
	"github.com/manav03panchal/lifeledger/internal/validate"
)

// Finance command flags.
var (
	txFlagType     string
	txFlagCategory string
	txFlagNote     string
	txFlagPerson   string
	txFlagDate     string

	txUpdAmount   string
	txUpdType     string
	txUpdCategory string
	txUpdNote     string
	txUpdPerson   string
	txUpdDate     string

	txListLimit    int
	txListType     string
	txListCategory string

	budgetFlagCategory string
	budgetFlagPeriod   string

	budgetUpdLimit    string
	budgetUpdCategory string
	budgetUpdPeriod   string

	financeLogEntity string
)

var transactionTypeNames = []string{"income", "expense", "borrowed", "lent"}

var financeCategoryNames = []string{
	"food", "transport", "shopping", "bills", "entertainment", "health",
	"education", "salary", "investment", "gift", "other",
}

var budgetPeriodNames = []string{"weekly", "monthly", "yearly"}

// financeCmd represents the finance command.
var financeCmd = &cobra.Command{
	Use:     "finance",
	Aliases: []string{"money", "fin"},
	Short:   "Track money, budgets and debts",
	Long: `Record income, expenses and money borrowed or lent. Expenses count
against the budget for their category and against any overall budget.
Every change is written to the finance log.

Examples:
  lifeledger finance tx add 12.50 --category food --note lunch
  lifeledger finance tx add 40 --type lent --person Sam
  lifeledger finance budget add 300 --category food
  lifeledger finance summary`,
	RunE: runFinanceSummary,
}

var txCmd = &cobra.Command{
	Use:     "tx",
	Aliases: []string{"transaction", "transactions"},
	Short:   "Manage transactions",
	RunE:    runTxList,
}

var txAddCmd = &cobra.Command{
	Use:   "add AMOUNT",
	Short: "Record a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxAdd,
}

var txListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List transactions, newest first",
	RunE:    runTxList,
}

var txUpdateCmd = &cobra.Command{
	Use:               "update ID",
	Aliases:           []string{"edit"},
	Short:             "Change a transaction",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTransactions,
	RunE:              runTxUpdate,
}

var txSettleCmd = &cobra.Command{
	Use:               "settle ID",
	Short:             "Mark a borrowed or lent transaction as settled",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTransactions,
	RunE:              runTxSettle,
}

var txDeleteCmd = &cobra.Command{
	Use:               "delete ID",
	Aliases:           []string{"rm"},
	Short:             "Delete a transaction",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTransactions,
	RunE:              runTxDelete,
}

var budgetCmd = &cobra.Command{
	Use:     "budget",
	Aliases: []string{"budgets"},
	Short:   "Manage budgets",
	RunE:    runBudgetList,
}

var budgetAddCmd = &cobra.Command{
	Use:   "add LIMIT",
	Short: "Create a budget",
	Long: `Create a budget with a spending limit. Without --category the budget is
overall and every expense counts against it. A new budget starts with
nothing spent.`,
	Args: cobra.ExactArgs(1),
	RunE: runBudgetAdd,
}

var budgetListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show budget consumption",
	RunE:    runBudgetList,
}

var budgetUpdateCmd = &cobra.Command{
	Use:               "update ID",
	Aliases:           []string{"edit"},
	Short:             "Change a budget's limit, category or period",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeBudgets,
	RunE:              runBudgetUpdate,
}

var budgetDeleteCmd = &cobra.Command{
	Use:               "delete ID",
	Aliases:           []string{"rm"},
	Short:             "Delete a budget",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeBudgets,
	RunE:              runBudgetDelete,
}

var financeSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show balances, budgets and recent transactions",
	RunE:  runFinanceSummary,
}

var financeCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show expenses grouped by category",
	RunE:  runFinanceCategories,
}

var financeLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the finance audit log",
	RunE:  runFinanceLog,
}

func init() {
	txAddCmd.Flags().StringVarP(&txFlagType, "type", "t", "expense", "Type: "+strings.Join(transactionTypeNames, ", "))
	txAddCmd.Flags().StringVarP(&txFlagCategory, "category", "c", "other", "Category")
	txAddCmd.Flags().StringVarP(&txFlagNote, "note", "n", "", "Note")
	txAddCmd.Flags().StringVar(&txFlagPerson, "person", "", "Who you borrowed from or lent to")
	txAddCmd.Flags().StringVar(&txFlagDate, "date", "now", "When it happened")
	_ = txAddCmd.RegisterFlagCompletionFunc("type", completeValues(transactionTypeNames...))
	_ = txAddCmd.RegisterFlagCompletionFunc("category", completeValues(financeCategoryNames...))

	txUpdateCmd.Flags().StringVar(&txUpdAmount, "amount", "", "New amount")
	txUpdateCmd.Flags().StringVarP(&txUpdType, "type", "t", "", "New type")
	txUpdateCmd.Flags().StringVarP(&txUpdCategory, "category", "c", "", "New category")
	txUpdateCmd.Flags().StringVarP(&txUpdNote, "note", "n", "", "New note")
	txUpdateCmd.Flags().StringVar(&txUpdPerson, "person", "", "New person")
	txUpdateCmd.Flags().StringVar(&txUpdDate, "date", "", "New date")

	txListCmd.Flags().IntVarP(&txListLimit, "limit", "l", 0, "Show only the newest N transactions")
	txListCmd.Flags().StringVarP(&txListType, "type", "t", "", "Only this type")
	txListCmd.Flags().StringVarP(&txListCategory, "category", "c", "", "Only this category")

	budgetAddCmd.Flags().StringVarP(&budgetFlagCategory, "category", "c", "", "Category (omit for an overall budget)")
	budgetAddCmd.Flags().StringVarP(&budgetFlagPeriod, "period", "p", "monthly", "Period: "+strings.Join(budgetPeriodNames, ", "))
	_ = budgetAddCmd.RegisterFlagCompletionFunc("category", completeValues(financeCategoryNames...))
	_ = budgetAddCmd.RegisterFlagCompletionFunc("period", completeValues(budgetPeriodNames...))

	budgetUpdateCmd.Flags().StringVar(&budgetUpdLimit, "limit", "", "New limit")
	budgetUpdateCmd.Flags().StringVarP(&budgetUpdCategory, "category", "c", "", `New category, or "overall"`)
	budgetUpdateCmd.Flags().StringVarP(&budgetUpdPeriod, "period", "p", "", "New period")

	financeLogCmd.Flags().StringVar(&financeLogEntity, "entity", "", "Only entries about this transaction or budget id")

	txCmd.AddCommand(txAddCmd, txListCmd, txUpdateCmd, txSettleCmd, txDeleteCmd)
	budgetCmd.AddCommand(budgetAddCmd, budgetListCmd, budgetUpdateCmd, budgetDeleteCmd)
	financeCmd.AddCommand(txCmd, budgetCmd, financeSummaryCmd, financeCategoriesCmd, financeLogCmd)
	rootCmd.AddCommand(financeCmd)
}

func runTxAdd(cmd *cobra.Command, args []string) error {
	amount, err := validate.ParseAmount("amount", args[0])
	if err != nil {
		return err
	}
	date, err := parser.ParseMillis(txFlagDate, ctx.Now())
	if err != nil {
		return err
	}

	tx := &model.Transaction{
		Amount:     amount,
		Type:       model.TransactionType(enumValue(txFlagType)),
		Category:   model.FinanceCategory(enumValue(txFlagCategory)),
		Note:       txFlagNote,
		PersonName: strings.TrimSpace(txFlagPerson),
		Date:       date,
	}
	if err := ctx.Store.Transactions.Add(tx); err != nil {
		return err
	}
	return printRecord("created", "transaction", tx.ID, tx, "Recorded "+tx.Describe()+" ("+short(tx.ID)+")")
}

func runTxList(cmd *cobra.Command, args []string) error {
	var txs []*model.Transaction
	if txListLimit > 0 {
		txs = ctx.Store.Transactions.Recent(txListLimit)
	} else {
		txs = ctx.Store.Transactions.List()
	}

	typ := model.TransactionType(enumValue(txListType))
	category := model.FinanceCategory(enumValue(txListCategory))
	var kept []*model.Transaction
	for _, tx := range txs {
		if typ != "" && tx.Type != typ {
			continue
		}
		if category != "" && tx.Category != category {
			continue
		}
		kept = append(kept, tx)
	}
	return printList("transactions", kept, (*output.CLIFormatter).PrintTransactions)
}

func runTxUpdate(cmd *cobra.Command, args []string) error {
	tx, err := findRecord("transaction", ctx.Store.Transactions.List(), args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("amount") {
		amount, err := validate.ParseAmount("amount", txUpdAmount)
		if err != nil {
			return err
		}
		tx.Amount = amount
	}
	if flags.Changed("type") {
		tx.Type = model.TransactionType(enumValue(txUpdType))
	}
	if flags.Changed("category") {
		tx.Category = model.FinanceCategory(enumValue(txUpdCategory))
	}
	if flags.Changed("note") {
		tx.Note = txUpdNote
	}
	if flags.Changed("person") {
		tx.PersonName = strings.TrimSpace(txUpdPerson)
	}
	if flags.Changed("date") {
		date, err := parser.ParseMillis(txUpdDate, ctx.Now())
		if err != nil {
			return err
		}
		tx.Date = date
	}

	if err := ctx.Store.Transactions.Update(tx); err != nil {
		return err
	}
	return printRecord("updated", "transaction", tx.ID, tx, "Updated "+tx.Describe())
}

func runTxSettle(cmd *cobra.Command, args []string) error {
	tx, err := findRecord("transaction", ctx.Store.Transactions.List(), args[0])
	if err != nil {
		return err
	}
	if err := ctx.Store.Transactions.Settle(tx.ID); err != nil {
		return err
	}
	settled, _ := ctx.Store.Transactions.Get(tx.ID)
	return printRecord("updated", "transaction", tx.ID, settled, "Settled "+tx.Describe())
}

func runTxDelete(cmd *cobra.Command, args []string) error {
	tx, err := findRecord("transaction", ctx.Store.Transactions.List(), args[0])
	if err != nil {
		return err
	}
	if err := ctx.Store.Transactions.Delete(tx.ID); err != nil {
		return err
	}
	return printRecord("deleted", "transaction", tx.ID, nil, "Deleted "+tx.Describe())
}

// budgetCategory maps a --category value to a budget scope. Empty or
// "overall" means every category.
func budgetCategory(raw string) *model.FinanceCategory {
	v := enumValue(raw)
	if v == "" || v == "OVERALL" {
		return nil
	}
	c := model.FinanceCategory(v)
	return &c
}

func runBudgetAdd(cmd *cobra.Command, args []string) error {
	limit, err := validate.ParseAmount("limit", args[0])
	if err != nil {
		return err
	}

	budget := &model.Budget{
		Category:    budgetCategory(budgetFlagCategory),
		LimitAmount: limit,
		Period:      model.BudgetPeriod(enumValue(budgetFlagPeriod)),
	}
	if err := ctx.Store.Budgets.Add(budget); err != nil {
		return err
	}
	return printRecord("created", "budget", budget.ID, budget, "Added "+budget.Describe()+" ("+short(budget.ID)+")")
}

func runBudgetList(cmd *cobra.Command, args []string) error {
	return printList("budgets", ctx.Stats.BudgetStatuses(), (*output.CLIFormatter).PrintBudgets)
}

func runBudgetUpdate(cmd *cobra.Command, args []string) error {
	budget, err := findRecord("budget", ctx.Store.Budgets.List(), args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("limit") {
		limit, err := validate.ParseAmount("limit", budgetUpdLimit)
		if err != nil {
			return err
		}
		budget.LimitAmount = limit
	}
	if flags.Changed("category") {
		budget.Category = budgetCategory(budgetUpdCategory)
	}
	if flags.Changed("period") {
		budget.Period = model.BudgetPeriod(enumValue(budgetUpdPeriod))
	}

	if err := ctx.Store.Budgets.Update(budget); err != nil {
		return err
	}
	return printRecord("updated", "budget", budget.ID, budget, "Updated "+budget.Describe())
}

func runBudgetDelete(cmd *cobra.Command, args []string) error {
	budget, err := findRecord("budget", ctx.Store.Budgets.List(), args[0])
	if err != nil {
		return err
	}
	if err := ctx.Store.Budgets.Delete(budget.ID); err != nil {
		return err
	}
	return printRecord("deleted", "budget", budget.ID, nil, "Deleted "+budget.Describe())
}

func runFinanceSummary(cmd *cobra.Command, args []string) error {
	s := ctx.Stats.Finance()
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(s)
	}
	ctx.CLIFormatter().PrintFinance(s)
	return nil
}

func runFinanceCategories(cmd *cobra.Command, args []string) error {
	return printList("categories", ctx.Stats.ExpenseByCategory(), (*output.CLIFormatter).PrintCategoryTotals)
}

func runFinanceLog(cmd *cobra.Command, args []string) error {
	var logs []*model.FinanceLog
	if financeLogEntity != "" {
		logs = ctx.Store.FinanceLogs.ForEntity(resolveFinanceEntity(financeLogEntity))
	} else {
		logs = ctx.Store.FinanceLogs.List()
	}
	return printList("financeLogs", logs, (*output.CLIFormatter).PrintFinanceLogs)
}

// resolveFinanceEntity expands a short id to a full transaction or budget
// id. Records that no longer exist keep their log, so an unmatched ref is
// used as typed.
func resolveFinanceEntity(ref string) string {
	if tx, err := findRecord("transaction", ctx.Store.Transactions.List(), ref); err == nil {
		return tx.ID
	}
	if b, err := findRecord("budget", ctx.Store.Budgets.List(), ref); err == nil {
		return b.ID
	}
	return ref
}
