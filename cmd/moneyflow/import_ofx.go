package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/moneyflow/internal/aggregate"
	"github.com/Veraticus/moneyflow/internal/cli"
	"github.com/Veraticus/moneyflow/internal/common"
	"github.com/Veraticus/moneyflow/internal/model"
	"github.com/Veraticus/moneyflow/internal/ofx"
)

func importOFXCmd(a *app) *cobra.Command {
	var (
		incomeCategory  string
		expenseCategory string
		dryRun          bool
	)

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank.
Credits are recorded as income and debits as expenses. Re-importing a file
skips transactions that were already imported.

Examples:
  # Import single file
  moneyflow import-ofx ~/Downloads/checking_jan_2024.qfx

  # Import every file in a directory into chosen categories
  moneyflow import-ofx ~/Downloads/*.qfx --income-category Salario --expense-category Alimentación`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer l.Close()

			categories := l.Categories()
			mapping, err := importMapping(categories, incomeCategory, expenseCategory)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			handler := cli.NewInterruptHandler(out, "OFX import", "Nothing was saved; run the import again to retry.")
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			ctx = handler.HandleInterrupts(ctx)

			slog.Info("Importing OFX files", "file_count", len(files), "dry_run", dryRun)

			bar := progressbar.NewOptions(len(files),
				progressbar.OptionSetWriter(out),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan][bold]Reading statements...[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(out)
				}),
			)

			parser := ofx.NewParser(mapping)
			var batch []model.Transaction
			seen := make(map[string]bool)
			skipped := 0

			for _, path := range files {
				stmt, err := parseStatement(ctx, parser, path)
				if err != nil {
					if handler.WasInterrupted() || ctx.Err() != nil {
						return ctx.Err()
					}
					slog.Error("Failed to parse OFX file", "file", path, "error", err)
				} else {
					skipped += stmt.Skipped
					for _, t := range stmt.Transactions {
						if !seen[t.ID] {
							seen[t.ID] = true
							batch = append(batch, t)
						}
					}
				}
				_ = bar.Add(1)
			}

			if len(batch) == 0 {
				printInfo(cmd, "No transactions found to import.")
				return nil
			}

			// Newest first, like every other list in the store.
			slices.SortStableFunc(batch, func(x, y model.Transaction) int {
				return y.Date.Compare(x.Date)
			})

			money := a.money()
			if dryRun {
				fmt.Fprintln(out, cli.TransactionTable(batch, categories, money))
				fmt.Fprintln(out, cli.SummaryLine(aggregate.Summarize(batch), money))
				printInfo(cmd, "Dry run complete - no data saved.")
				return nil
			}

			added, err := l.ImportTransactions(ctx, batch)
			if err != nil {
				return mutationError("import transactions", err)
			}

			printSuccess(cmd, "Imported %d transactions (%d already present, %d zero-amount entries skipped)",
				len(added), len(batch)-len(added), skipped)
			if len(added) > 0 {
				fmt.Fprintln(out, cli.SummaryLine(aggregate.Summarize(added), money))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&incomeCategory, "income-category", "", "Category for credits (default: first income category)")
	cmd.Flags().StringVar(&expenseCategory, "expense-category", "", "Category for debits (default: first expense category)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Preview import without saving")

	return cmd
}

// expandFiles resolves glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("Invalid pattern %s", pattern), err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, common.NewUserError("No files found to import", common.ErrNotFound)
	}
	return files, nil
}

// importMapping picks the categories imported transactions land in.
func importMapping(categories []model.Category, income, expense string) (ofx.CategoryMapping, error) {
	pick := func(ref string, t model.EntryType) (string, error) {
		if ref == "" {
			candidates := model.CategoriesByType(categories, t)
			if len(candidates) == 0 {
				return "", common.NewUserError(fmt.Sprintf("No %s category exists; create one first", t), common.ErrNotFound)
			}
			return candidates[0].ID, nil
		}
		c, err := resolveCategory(categories, ref)
		if err != nil {
			return "", err
		}
		if c.Type != t {
			return "", common.NewUserError(fmt.Sprintf("Category %q is not an %s category", c.Name, t), common.ErrValidation)
		}
		return c.ID, nil
	}

	var (
		mapping ofx.CategoryMapping
		err     error
	)
	if mapping.Income, err = pick(income, model.TypeIncome); err != nil {
		return mapping, err
	}
	if mapping.Expense, err = pick(expense, model.TypeExpense); err != nil {
		return mapping, err
	}
	return mapping, nil
}

func parseStatement(ctx context.Context, parser *ofx.Parser, path string) (*ofx.Statement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return parser.ParseFile(ctx, f)
}
