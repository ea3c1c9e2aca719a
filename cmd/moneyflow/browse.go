package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/moneyflow/internal/tui"
	"github.com/Veraticus/moneyflow/internal/tui/themes"
)

func browseCmd(a *app) *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse transactions interactively",
		Long: `Open a full-screen browser over your transactions. Filter by type and
category, search descriptions, change the sort order, and switch to the
monthly overview with tab.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now, err := a.referenceNow()
			if err != nil {
				return err
			}
			clock := time.Now
			if a.asOf != "" {
				clock = func() time.Time { return now }
			}

			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer l.Close()

			return tui.Run(cmd.Context(),
				tui.WithSource(l.Store),
				tui.WithTheme(themes.GetTheme(theme)),
				tui.WithReferenceNow(clock),
				tui.WithCurrency(a.cfg.Currency),
				tui.WithRecentCount(a.cfg.RecentCount),
			)
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "default", "Color theme (default, catppuccin-mocha)")

	return cmd
}
