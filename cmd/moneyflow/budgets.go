package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/moneyflow/internal/aggregate"
	"github.com/Veraticus/moneyflow/internal/cli"
	"github.com/Veraticus/moneyflow/internal/common"
	"github.com/Veraticus/moneyflow/internal/model"
)

func budgetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage spending limits per category",
	}

	cmd.AddCommand(listBudgetsCmd(a))
	cmd.AddCommand(addBudgetCmd(a))
	cmd.AddCommand(updateBudgetCmd(a))
	cmd.AddCommand(deleteBudgetCmd(a))

	return cmd
}

// expenseCategory resolves ref and checks that budgets may target it.
func expenseCategory(categories []model.Category, ref string) (model.Category, error) {
	c, err := resolveCategory(categories, ref)
	if err != nil {
		return model.Category{}, err
	}
	if c.Type != model.TypeExpense {
		return model.Category{}, common.NewUserError(
			fmt.Sprintf("Budgets can only track expense categories, %q is %s", c.Name, c.Type),
			common.ErrValidation)
	}
	return c, nil
}

func listBudgetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show budgets with this month's spending",
		RunE: func(cmd *cobra.Command, _ []string) error {
			now, err := a.referenceNow()
			if err != nil {
				return err
			}

			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer l.Close()

			snapshot := l.Snapshot()
			if len(snapshot.Budgets) == 0 {
				printInfo(cmd, "No budgets found. Use 'moneyflow budgets add' to create one.")
				return nil
			}

			statuses := aggregate.ComputeBudgetStatus(snapshot.Budgets, snapshot.Categories, snapshot.Transactions, now)
			fmt.Fprintln(cmd.OutOrStdout(), cli.BudgetTable(statuses, a.money()))
			return nil
		},
	}
}

func addBudgetCmd(a *app) *cobra.Command {
	var (
		category string
		amount   string
		period   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a budget for an expense category",
		Long: `Add a spending limit for an expense category. Each category can have at
most one budget. Spending is always measured over the current calendar month.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			value, err := parseAmount(amount)
			if err != nil {
				return err
			}
			p, err := model.ParseBudgetPeriod(period)
			if err != nil {
				return common.NewUserError("Invalid --period", err)
			}

			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer l.Close()

			c, err := expenseCategory(l.Categories(), category)
			if err != nil {
				return err
			}

			budget, err := l.AddBudget(cmd.Context(), model.Budget{
				CategoryID: c.ID,
				Amount:     value,
				Period:     p,
			})
			if err != nil {
				return mutationError("add budget", err)
			}

			printSuccess(cmd, "Created %s budget of %s for %q (ID: %s)", budget.Period, a.money().Format(budget.Amount), c.Name, budget.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Expense category id or name")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Spending limit")
	cmd.Flags().StringVarP(&period, "period", "p", string(model.PeriodMonthly), "weekly, monthly or yearly")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func updateBudgetCmd(a *app) *cobra.Command {
	var (
		category string
		amount   string
		period   string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.BudgetPatch
			flags := cmd.Flags()

			if flags.Changed("amount") {
				value, err := parseAmount(amount)
				if err != nil {
					return err
				}
				patch.Amount = &value
			}
			if flags.Changed("period") {
				p, err := model.ParseBudgetPeriod(period)
				if err != nil {
					return common.NewUserError("Invalid --period", err)
				}
				patch.Period = &p
			}
			if patch == (model.BudgetPatch{}) && !flags.Changed("category") {
				return common.NewUserError("Specify --category, --amount or --period to update", common.ErrValidation)
			}

			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer l.Close()

			if flags.Changed("category") {
				c, err := expenseCategory(l.Categories(), category)
				if err != nil {
					return err
				}
				patch.CategoryID = &c.ID
			}

			budget, err := l.UpdateBudget(cmd.Context(), args[0], patch)
			if err != nil {
				return mutationError("update budget", err)
			}

			printSuccess(cmd, "Updated budget %s", budget.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Expense category id or name")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Spending limit")
	cmd.Flags().StringVarP(&period, "period", "p", "", "weekly, monthly or yearly")

	return cmd
}

func deleteBudgetCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer l.Close()

			ok, err := confirm(cmd, force, fmt.Sprintf("Delete budget %s?", args[0]))
			if err != nil {
				return err
			}
			if !ok {
				printInfo(cmd, "Deletion cancelled.")
				return nil
			}

			if err := l.RemoveBudget(cmd.Context(), args[0]); err != nil {
				return mutationError("delete budget", err)
			}

			printSuccess(cmd, "Deleted budget %s", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
