package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/moneyflow/internal/aggregate"
	"github.com/Veraticus/moneyflow/internal/cli"
)

func dashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show this month's overview",
		Long: `Show this month's income, expenses, balance and savings rate together with
budget status, spending by category, recent transactions and savings goals.`,
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
			d := aggregate.BuildDashboard(snapshot, now, a.cfg.RecentCount)
			fmt.Fprintln(cmd.OutOrStdout(), cli.Dashboard(d, snapshot.Categories, a.money()))
			return nil
		},
	}
}

func breakdownCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "breakdown",
		Short: "Show this month's spending by category",
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
			shares := aggregate.ComputeCategoryBreakdown(snapshot.Transactions, snapshot.Categories, now)
			if len(shares) == 0 {
				printInfo(cmd, "No expenses recorded in "+now.Format("January 2006")+".")
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle(cli.ChartIcon+" Spending in "+now.Format("January 2006")))
			fmt.Fprintln(out, cli.BreakdownTable(shares, a.money()))
			return nil
		},
	}
}
