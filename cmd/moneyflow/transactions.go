package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/moneyflow/internal/aggregate"
	"github.com/Veraticus/moneyflow/internal/cli"
	"github.com/Veraticus/moneyflow/internal/common"
	"github.com/Veraticus/moneyflow/internal/model"
	"github.com/Veraticus/moneyflow/internal/query"
)

func transactionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Record and review income and expenses",
	}

	cmd.AddCommand(listTransactionsCmd(a))
	cmd.AddCommand(addTransactionCmd(a))
	cmd.AddCommand(updateTransactionCmd(a))
	cmd.AddCommand(deleteTransactionCmd(a))

	return cmd
}

func listTransactionsCmd(a *app) *cobra.Command {
	var (
		search    string
		category  string
		entryType string
		from      string
		to        string
		sortBy    string
		order     string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long: `List transactions matching every given filter, followed by a summary of
the matching rows.

Examples:
  moneyflow transactions list --type expense --sort amount
  moneyflow transactions list --search coffee --from 2024-03-01 --to 2024-03-31`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filters := query.DefaultFilters()
			filters.SearchTerm = search

			if entryType != query.All {
				t, err := model.ParseEntryType(entryType)
				if err != nil {
					return common.NewUserError("Invalid --type", err)
				}
				filters.Type = string(t)
			}
			if from != "" {
				d, err := parseDate(from)
				if err != nil {
					return err
				}
				filters.DateFrom = &d
			}
			if to != "" {
				d, err := parseDate(to)
				if err != nil {
					return err
				}
				filters.DateTo = &d
			}

			by, err := query.ParseSortKey(sortBy)
			if err != nil {
				return common.NewUserError("Invalid --sort", err)
			}
			dir, err := query.ParseSortOrder(order)
			if err != nil {
				return common.NewUserError("Invalid --order", err)
			}

			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer l.Close()

			snapshot := l.Snapshot()
			if category != query.All {
				c, err := resolveCategory(snapshot.Categories, category)
				if err != nil {
					return err
				}
				filters.Category = c.ID
			}

			txns := query.Transactions(snapshot.Transactions, snapshot.Categories, filters, query.Sort{By: by, Order: dir})
			if len(txns) == 0 {
				printInfo(cmd, "No transactions found.")
				return nil
			}

			summary := aggregate.Summarize(txns)
			if limit > 0 && len(txns) > limit {
				txns = txns[:limit]
			}

			money := a.money()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.TransactionTable(txns, snapshot.Categories, money))
			fmt.Fprintln(out, cli.SummaryLine(summary, money))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show descriptions containing this text")
	cmd.Flags().StringVarP(&category, "category", "c", query.All, "Category id or name")
	cmd.Flags().StringVarP(&entryType, "type", "t", query.All, "income, expense or all")
	cmd.Flags().StringVar(&from, "from", "", "Earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Latest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sortBy, "sort", string(query.SortByDate), "Sort by date, amount, description or category")
	cmd.Flags().StringVar(&order, "order", string(query.Descending), "Sort order (asc or desc)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many rows (0 for all)")

	return cmd
}

func addTransactionCmd(a *app) *cobra.Command {
	var (
		entryType   string
		amount      string
		description string
		category    string
		date        string
		id          string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: `Record an income or expense.

Examples:
  moneyflow transactions add --amount 45.50 --description "Groceries" --category Alimentación
  moneyflow transactions add --type income --amount 2500 --description "Salary" --category 4`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := model.ParseEntryType(entryType)
			if err != nil {
				return common.NewUserError("Invalid --type", err)
			}
			value, err := parseAmount(amount)
			if err != nil {
				return err
			}

			now, err := a.referenceNow()
			if err != nil {
				return err
			}
			when := model.DateOf(now)
			if date != "" {
				if when, err = parseDate(date); err != nil {
					return err
				}
			}

			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer l.Close()

			c, err := resolveCategory(l.Categories(), category)
			if err != nil {
				return err
			}

			txn, err := l.AddTransaction(cmd.Context(), model.Transaction{
				ID:          id,
				Type:        t,
				Amount:      value,
				Description: description,
				CategoryID:  c.ID,
				Date:        when,
			})
			if err != nil {
				return mutationError("add transaction", err)
			}

			printSuccess(cmd, "Recorded %s %s %q (ID: %s)", txn.Type, a.money().Format(txn.Amount), txn.Description, txn.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&entryType, "type", "t", string(model.TypeExpense), "income or expense")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount (always positive)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category id or name")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&id, "id", "", "Explicit id (generated when empty)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func updateTransactionCmd(a *app) *cobra.Command {
	var (
		entryType   string
		amount      string
		description string
		category    string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.TransactionPatch
			flags := cmd.Flags()

			if flags.Changed("type") {
				t, err := model.ParseEntryType(entryType)
				if err != nil {
					return common.NewUserError("Invalid --type", err)
				}
				patch.Type = &t
			}
			if flags.Changed("amount") {
				value, err := parseAmount(amount)
				if err != nil {
					return err
				}
				patch.Amount = &value
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("date") {
				d, err := parseDate(date)
				if err != nil {
					return err
				}
				patch.Date = &d
			}
			if patch == (model.TransactionPatch{}) && !flags.Changed("category") {
				return common.NewUserError("Specify at least one field to update", common.ErrValidation)
			}

			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer l.Close()

			if flags.Changed("category") {
				c, err := resolveCategory(l.Categories(), category)
				if err != nil {
					return err
				}
				patch.CategoryID = &c.ID
			}

			txn, err := l.UpdateTransaction(cmd.Context(), args[0], patch)
			if err != nil {
				return mutationError("update transaction", err)
			}

			printSuccess(cmd, "Updated transaction %s", txn.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&entryType, "type", "t", "", "income or expense")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category id or name")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD)")

	return cmd
}

func deleteTransactionCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer l.Close()

			ok, err := confirm(cmd, force, fmt.Sprintf("Delete transaction %s?", args[0]))
			if err != nil {
				return err
			}
			if !ok {
				printInfo(cmd, "Deletion cancelled.")
				return nil
			}

			if err := l.RemoveTransaction(cmd.Context(), args[0]); err != nil {
				return mutationError("delete transaction", err)
			}

			printSuccess(cmd, "Deleted transaction %s", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
