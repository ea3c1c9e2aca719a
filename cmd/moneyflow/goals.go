package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/moneyflow/internal/aggregate"
	"github.com/Veraticus/moneyflow/internal/cli"
	"github.com/Veraticus/moneyflow/internal/common"
	"github.com/Veraticus/moneyflow/internal/model"
	"github.com/Veraticus/moneyflow/internal/store"
)

func goalsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Track savings goals",
	}

	cmd.AddCommand(listGoalsCmd(a))
	cmd.AddCommand(addGoalCmd(a))
	cmd.AddCommand(updateGoalCmd(a))
	cmd.AddCommand(adjustGoalCmd(a, store.Deposit, "Add money to a goal"))
	cmd.AddCommand(adjustGoalCmd(a, store.Withdraw, "Take money out of a goal"))
	cmd.AddCommand(deleteGoalCmd(a))

	return cmd
}

func listGoalsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show goals with progress and deadlines",
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

			goals := l.SavingsGoals()
			if len(goals) == 0 {
				printInfo(cmd, "No savings goals found. Use 'moneyflow goals add' to create one.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.GoalList(aggregate.ComputeGoalStatuses(goals, now), a.money()))
			return nil
		},
	}
}

func addGoalCmd(a *app) *cobra.Command {
	var (
		target  string
		current string
		date    string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targetAmount, err := parseAmount(target)
			if err != nil {
				return err
			}

			goal := model.SavingsGoal{Name: args[0], TargetAmount: targetAmount}
			if current != "" {
				if goal.CurrentAmount, err = parseBalance(current); err != nil {
					return err
				}
			}
			if date != "" {
				d, err := parseDate(date)
				if err != nil {
					return err
				}
				goal.TargetDate = &d
			}

			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer l.Close()

			goal, err = l.AddSavingsGoal(cmd.Context(), goal)
			if err != nil {
				return mutationError("add savings goal", err)
			}

			printSuccess(cmd, "Created goal %q of %s (ID: %s)", goal.Name, a.money().Format(goal.TargetAmount), goal.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Target amount")
	cmd.Flags().StringVar(&current, "current", "", "Amount already saved")
	cmd.Flags().StringVar(&date, "date", "", "Target date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func updateGoalCmd(a *app) *cobra.Command {
	var (
		name      string
		target    string
		current   string
		date      string
		clearDate bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.SavingsGoalPatch
			flags := cmd.Flags()

			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("target") {
				value, err := parseAmount(target)
				if err != nil {
					return err
				}
				patch.TargetAmount = &value
			}
			if flags.Changed("current") {
				value, err := parseBalance(current)
				if err != nil {
					return err
				}
				patch.CurrentAmount = &value
			}
			if flags.Changed("date") {
				d, err := parseDate(date)
				if err != nil {
					return err
				}
				patch.TargetDate = &d
			}
			patch.ClearTargetDate = clearDate
			if patch == (model.SavingsGoalPatch{}) {
				return common.NewUserError("Specify at least one field to update", common.ErrValidation)
			}

			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer l.Close()

			goal, err := l.UpdateSavingsGoal(cmd.Context(), args[0], patch)
			if err != nil {
				return mutationError("update savings goal", err)
			}

			printSuccess(cmd, "Updated goal %q", goal.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&target, "target", "", "New target amount")
	cmd.Flags().StringVar(&current, "current", "", "New saved amount")
	cmd.Flags().StringVar(&date, "date", "", "New target date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearDate, "clear-date", false, "Remove the target date")

	return cmd
}

func adjustGoalCmd(a *app, mode store.Adjustment, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(mode) + " <id> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer l.Close()

			goal, err := l.AdjustGoal(cmd.Context(), args[0], amount, mode)
			if err != nil {
				return mutationError(string(mode)+" to savings goal", err)
			}

			money := a.money()
			progress := aggregate.ComputeGoalProgress(goal)
			printSuccess(cmd, "%q now at %s of %s (%.0f%%)",
				goal.Name, money.Format(goal.CurrentAmount), money.Format(goal.TargetAmount), progress.Progress)
			return nil
		},
	}
}

func deleteGoalCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer l.Close()

			ok, err := confirm(cmd, force, fmt.Sprintf("Delete savings goal %s?", args[0]))
			if err != nil {
				return err
			}
			if !ok {
				printInfo(cmd, "Deletion cancelled.")
				return nil
			}

			if err := l.RemoveSavingsGoal(cmd.Context(), args[0]); err != nil {
				return mutationError("delete savings goal", err)
			}

			printSuccess(cmd, "Deleted savings goal %s", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
