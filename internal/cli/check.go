package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"apac-settle/internal/clock"
	"apac-settle/internal/models"
)

func newCheckCmd(app *App) *cobra.Command {
	var (
		dateFlag       string
		timeFlag       string
		instrumentFlag string
	)

	cmd := &cobra.Command{
		Use:   "check [MARKET_A] [MARKET_B]",
		Short: "Check settlement feasibility for a market pair",
		Long: `Check whether a trade between two markets can settle on time.

The trade date defaults to today. An execution time, given as HH:MM in
market A's local time, enables depository cut-off checks.

Examples:
  settle check HK JP
  settle check HK SG --date 2026-03-02
  settle check HK SG --date 2026-03-02 --time 15:30
  settle check HK JP --instrument bond`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			codeA, codeB := app.Config.Defaults.MarketA, app.Config.Defaults.MarketB
			if len(args) >= 1 {
				codeA = args[0]
			}
			if len(args) >= 2 {
				codeB = args[1]
			}

			tradeDate := clock.Date(time.Now())
			if dateFlag != "" {
				parsed, err := clock.ParseDate(dateFlag)
				if err != nil {
					return err
				}
				tradeDate = parsed
			}

			var execution *time.Time
			if timeFlag != "" {
				marketA, err := app.Registry.Get(codeA)
				if err != nil {
					return err
				}
				t, err := app.Clock.Localize(marketA, tradeDate, timeFlag)
				if err != nil {
					return err
				}
				execution = &t
			}

			result, err := app.Engine.Check(cmd.Context(), codeA, codeB, tradeDate, execution,
				models.InstrumentType(instrumentFlag))
			if err != nil {
				return err
			}

			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(result)
			}
			renderCheckResult(output, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "trade date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&timeFlag, "time", "", "execution time in market A local time (HH:MM)")
	cmd.Flags().StringVar(&instrumentFlag, "instrument", "equity", "instrument type (equity, etf, bond)")

	return cmd
}

func renderCheckResult(output *Output, result *models.CheckResult) {
	output.Printf("%s  %s ↔ %s  %s\n\n",
		output.FeasibilityTag(result.Status),
		result.MarketA, result.MarketB,
		output.DimText(result.TradeDate.Format("2006-01-02")))
	output.Println(result.Message)
	output.Println()

	if result.Details != nil && result.Details.OverlapSummary != "" {
		output.Dim("Trading hours: %s", result.Details.OverlapSummary)
		output.Println()
	}

	if result.SettlementA != nil && result.SettlementB != nil {
		table := NewTable(output, "Market", "Cycle", "Settlement Date", "Calendar Days")
		for _, sr := range []*models.SettlementDateResult{result.SettlementA, result.SettlementB} {
			table.AddRow(
				sr.MarketCode,
				fmt.Sprintf("T+%d", sr.DaysToSettle-len(sr.SkippedDays)),
				sr.SettlementDate.Format("2006-01-02 (Mon)"),
				fmt.Sprintf("%d", sr.DaysToSettle),
			)
		}
		table.Render()
		output.Println()

		for _, sr := range []*models.SettlementDateResult{result.SettlementA, result.SettlementB} {
			for _, skipped := range sr.SkippedDays {
				output.Dim("  %s skips %s: %s", sr.MarketCode,
					skipped.Date.Format("2006-01-02"), skipped.Reason)
			}
		}
		if result.CommonSettlementDate != nil {
			output.Printf("Common settlement date: %s\n\n",
				result.CommonSettlementDate.Format("2006-01-02 (Mon)"))
		}
	}

	if len(result.Deadlines) > 0 {
		table := NewTable(output, "Deadline", "Time", "Status", "Remaining")
		for _, d := range result.Deadlines {
			status := output.Green("OK")
			if !d.IsBefore {
				status = output.Red("PASSED")
			}
			table.AddRow(d.Description, d.Time.Format("15:04 MST"), status, d.TimeRemaining)
		}
		table.Render()
		output.Println()
	}

	if len(result.Warnings) > 0 {
		output.Bold("Warnings")
		for _, w := range result.Warnings {
			output.Warning("  ⚠ %s", w)
		}
		output.Println()
	}

	if len(result.Recommendations) > 0 {
		output.Bold("Recommendations")
		for _, r := range result.Recommendations {
			output.Printf("  • %s\n", r)
		}
	}
}
