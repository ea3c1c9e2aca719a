package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/moneyflow/internal/cli"
	"github.com/Veraticus/moneyflow/internal/common"
	"github.com/Veraticus/moneyflow/internal/config"
	"github.com/Veraticus/moneyflow/internal/model"
	"github.com/Veraticus/moneyflow/internal/storage"
	"github.com/Veraticus/moneyflow/internal/store"
)

// app carries the state shared by every command of one invocation.
type app struct {
	viper   *viper.Viper
	cfg     *config.Config
	cfgFile string
	asOf    string
}

// ledger is a store together with the database backing it.
type ledger struct {
	*store.Store
	db *storage.SQLiteStorage
}

func (l *ledger) Close() error {
	return l.db.Close()
}

// openLedger opens the database, runs migrations and loads the store.
func (a *app) openLedger(ctx context.Context) (*ledger, error) {
	db, err := storage.Open(ctx, a.cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	policy := store.FailOnMalformed
	if a.cfg.ResetMalformed {
		policy = store.ResetMalformed
	}

	s, err := store.Open(ctx, db, store.WithMalformedPolicy(policy))
	if err != nil {
		_ = db.Close()
		if errors.Is(err, common.ErrMalformedSlot) {
			return nil, common.NewUserError("Stored data could not be read (set storage.reset_malformed to start over)", err)
		}
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	return &ledger{Store: s, db: db}, nil
}

// referenceNow is the instant month windows and deadlines are computed from.
func (a *app) referenceNow() (time.Time, error) {
	if a.asOf == "" {
		return time.Now(), nil
	}
	d, err := model.ParseDate(a.asOf)
	if err != nil {
		return time.Time{}, common.NewUserError("Invalid --as-of date", err)
	}
	return d.Time, nil
}

func (a *app) money() cli.Money {
	return cli.NewMoney(a.cfg.Currency)
}

// mutationError turns store rejections into messages for the user.
func mutationError(action string, err error) error {
	if common.IsRejectedMutation(err) || errors.Is(err, common.ErrNotFound) {
		return common.NewUserError("Could not "+action, err)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// parseAmount reads a positive amount rounded to cents.
func parseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, common.NewUserError(fmt.Sprintf("Invalid amount %q", s), common.ErrValidation)
	}
	if !d.IsPositive() {
		return 0, common.NewUserError("Amount must be greater than zero", common.ErrValidation)
	}
	return d.Round(2).InexactFloat64(), nil
}

// parseBalance reads an amount that may be zero, rounded to cents.
func parseBalance(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, common.NewUserError(fmt.Sprintf("Invalid amount %q", s), common.ErrValidation)
	}
	if d.IsNegative() {
		return 0, common.NewUserError("Amount cannot be negative", common.ErrValidation)
	}
	return d.Round(2).InexactFloat64(), nil
}

func parseDate(s string) (model.Date, error) {
	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, common.NewUserError("Invalid date", err)
	}
	return d, nil
}

// resolveCategory finds a category by id, or by case-insensitive name.
func resolveCategory(categories []model.Category, ref string) (model.Category, error) {
	if c := model.FindCategory(categories, ref); c != nil {
		return *c, nil
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, strings.TrimSpace(ref)) {
			return c, nil
		}
	}
	return model.Category{}, common.NewUserError(fmt.Sprintf("Unknown category %q", ref), common.ErrNotFound)
}

// confirm asks before a destructive command unless force is set.
func confirm(cmd *cobra.Command, force bool, question string) (bool, error) {
	if force {
		return true, nil
	}
	prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	ok, err := prompter.Confirm(cmd.Context(), question)
	if errors.Is(err, cli.ErrInputTerminated) {
		return false, nil
	}
	return ok, err
}

func printSuccess(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(format, args...)))
}

func printInfo(cmd *cobra.Command, message string) {
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(message))
}
