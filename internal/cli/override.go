package cli

import (
	"time"

	"github.com/spf13/cobra"

	"apac-settle/internal/clock"
	"apac-settle/internal/models"
)

func newOverrideCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Manage manual calendar overrides",
		Long: `Record unscheduled closures (typhoon days, mourning days) or force
a date open when the exchange calendar is wrong. Overrides take
precedence over every other holiday source.`,
	}

	cmd.AddCommand(newOverrideAddCmd(app))
	cmd.AddCommand(newOverrideRemoveCmd(app))
	cmd.AddCommand(newOverrideListCmd(app))

	return cmd
}

func newOverrideAddCmd(app *App) *cobra.Command {
	var (
		nameFlag    string
		reasonFlag  string
		forceOpen   bool
		tradingOnly bool
	)

	cmd := &cobra.Command{
		Use:   "add MARKET DATE",
		Short: "Add a manual override",
		Long: `Add a manual closure for a market and date, or force the date
open with --force-open. --trading-only closes trading but lets
settlement proceed.

Examples:
  settle override add HK 2026-07-20 --name "Typhoon Signal 8" --reason "T8 hoisted 07:40"
  settle override add JP 2026-10-12 --force-open --name "Special session"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.Registry.Get(args[0])
			if err != nil {
				return err
			}
			day, err := clock.ParseDate(args[1])
			if err != nil {
				return err
			}

			override := models.Override{
				Date:              day,
				MarketCode:        m.Code,
				Name:              nameFlag,
				Reason:            reasonFlag,
				IsClosure:         !forceOpen,
				AffectsTrading:    !forceOpen,
				AffectsSettlement: !forceOpen && !tradingOnly,
			}
			if err := app.Holidays.Overrides().Add(override); err != nil {
				return err
			}

			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(override)
			}
			if forceOpen {
				output.Success("✓ %s forced open on %s", m.Code, args[1])
			} else {
				output.Success("✓ %s closure recorded for %s: %s", m.Code, args[1], nameFlag)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "Special Closure", "override name")
	cmd.Flags().StringVar(&reasonFlag, "reason", "", "free-form reason")
	cmd.Flags().BoolVar(&forceOpen, "force-open", false, "force the date open instead of closed")
	cmd.Flags().BoolVar(&tradingOnly, "trading-only", false, "close trading but allow settlement")

	return cmd
}

func newOverrideRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove MARKET DATE",
		Short: "Remove a manual override",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.Registry.Get(args[0])
			if err != nil {
				return err
			}
			day, err := clock.ParseDate(args[1])
			if err != nil {
				return err
			}
			if err := app.Holidays.RemoveSpecialClosure(m, day); err != nil {
				return err
			}

			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]string{"removed": args[1], "market": m.Code})
			}
			output.Success("✓ Override removed for %s on %s", m.Code, args[1])
			return nil
		},
	}
}

func newOverrideListCmd(app *App) *cobra.Command {
	var (
		fromFlag string
		toFlag   string
	)

	cmd := &cobra.Command{
		Use:   "list MARKET",
		Short: "List a market's manual overrides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.Registry.Get(args[0])
			if err != nil {
				return err
			}

			var from, to *time.Time
			if fromFlag != "" {
				parsed, err := clock.ParseDate(fromFlag)
				if err != nil {
					return err
				}
				from = &parsed
			}
			if toFlag != "" {
				parsed, err := clock.ParseDate(toFlag)
				if err != nil {
					return err
				}
				to = &parsed
			}

			overrides := app.Holidays.Overrides().List(m.Code, from, to)

			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(overrides)
			}
			if len(overrides) == 0 {
				output.Info("No overrides for %s", m.Code)
				return nil
			}

			table := NewTable(output, "Date", "Kind", "Name", "Settlement", "Added")
			for _, o := range overrides {
				kind := output.Red("closure")
				if !o.IsClosure {
					kind = output.Green("force-open")
				}
				settlement := "blocked"
				if !o.IsClosure || !o.AffectsSettlement {
					settlement = "allowed"
				}
				table.AddRow(
					o.Date.Format("2006-01-02"),
					kind,
					o.Name,
					settlement,
					o.CreatedAt,
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "end date (YYYY-MM-DD)")

	return cmd
}
