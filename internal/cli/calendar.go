package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"apac-settle/internal/clock"
	"apac-settle/internal/models"
)

func newCalendarCmd(app *App) *cobra.Command {
	var monthFlag string

	cmd := &cobra.Command{
		Use:   "calendar MARKET",
		Short: "Show a market's trading calendar for a month",
		Long: `Show the trading calendar for one market and month, marking
holidays, weekends, and manual closures.

Examples:
  settle calendar HK
  settle calendar JP --month 2026-02`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.Clock.NowFunc()
			year, month := now.Year(), now.Month()
			if monthFlag != "" {
				parsed, err := time.Parse("2006-01", monthFlag)
				if err != nil {
					return fmt.Errorf("invalid month %q (want YYYY-MM)", monthFlag)
				}
				year, month = parsed.Year(), parsed.Month()
			}

			cells, err := app.Calendar.MonthGrid(cmd.Context(), args[0], year, month)
			if err != nil {
				return err
			}

			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(cells)
			}

			output.Bold("%s - %s %d", args[0], month, year)
			table := NewTable(output, "Date", "Day", "Status")
			trading := 0
			for _, cell := range cells {
				status := output.Green("trading")
				if !cell.IsTrading {
					status = output.Red("closed")
					if cell.HolidayName != "" {
						status += " " + output.DimText("("+cell.HolidayName+")")
					}
				} else {
					trading++
				}
				table.AddRow(cell.Date.Format("2006-01-02"), cell.Weekday, status)
			}
			table.Render()
			output.Println()
			output.Dim("%d trading days of %d", trading, len(cells))
			return nil
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", "month to show (YYYY-MM, default: current)")

	return cmd
}

func newHolidaysCmd(app *App) *cobra.Command {
	var (
		yearFlag int
		daysFlag int
	)

	cmd := &cobra.Command{
		Use:   "holidays MARKET",
		Short: "List a market's holidays",
		Long: `List upcoming holidays for a market, or a full-year summary
with --year.

Examples:
  settle holidays HK
  settle holidays HK --days 90
  settle holidays CN --year 2026`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.Registry.Get(args[0])
			if err != nil {
				return err
			}
			output := NewOutput(cmd)

			if yearFlag > 0 {
				summary := app.Calendar.Holidays().Summary(cmd.Context(), m, yearFlag)
				if output.IsJSON() {
					return output.JSON(summary)
				}
				output.Bold("%s holidays in %d: %d total (%d exchange, %d public, %d manual)",
					m.Code, summary.Year, summary.TotalHolidays,
					summary.ByExchange, summary.ByPublic, summary.ByManual)
				renderHolidayTable(output, summary.Holidays)
				return nil
			}

			now := app.Clock.NowFunc()
			holidays := app.Calendar.Holidays().UpcomingHolidays(cmd.Context(), m, now, daysFlag, false)
			if output.IsJSON() {
				return output.JSON(holidays)
			}
			if len(holidays) == 0 {
				output.Info("No holidays for %s in the next %d days", m.Code, daysFlag)
				return nil
			}
			output.Bold("%s holidays in the next %d days", m.Code, daysFlag)
			renderHolidayTable(output, holidays)
			return nil
		},
	}

	cmd.Flags().IntVar(&yearFlag, "year", 0, "show a full-year summary")
	cmd.Flags().IntVar(&daysFlag, "days", 60, "days ahead to scan")

	return cmd
}

func renderHolidayTable(output *Output, holidays []models.HolidayInfo) {
	table := NewTable(output, "Date", "Day", "Name", "Source")
	for _, h := range holidays {
		table.AddRow(
			h.Date.Format("2006-01-02"),
			h.Date.Format("Mon"),
			h.Name,
			string(h.Source),
		)
	}
	table.Render()
}

func newOverlapCmd(app *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "overlap [MARKET_A] [MARKET_B]",
		Short: "Show trading hour overlap for a market pair",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			codeA, codeB := app.Config.Defaults.MarketA, app.Config.Defaults.MarketB
			if len(args) >= 1 {
				codeA = args[0]
			}
			if len(args) >= 2 {
				codeB = args[1]
			}

			marketA, err := app.Registry.Get(codeA)
			if err != nil {
				return err
			}
			marketB, err := app.Registry.Get(codeB)
			if err != nil {
				return err
			}

			day := clock.Date(app.Clock.NowFunc())
			if dateFlag != "" {
				parsed, err := clock.ParseDate(dateFlag)
				if err != nil {
					return err
				}
				day = parsed
			}

			windows, err := app.Overlap.Windows(cmd.Context(), marketA, marketB, day)
			if err != nil {
				return err
			}
			summary, err := app.Overlap.Summarize(windows, marketA)
			if err != nil {
				return err
			}

			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(struct {
					Date    string                 `json:"date"`
					Windows []models.OverlapWindow `json:"windows,omitempty"`
					Summary models.OverlapSummary  `json:"summary"`
				}{day.Format("2006-01-02"), windows, summary})
			}

			output.Bold("%s ↔ %s on %s", marketA.Code, marketB.Code, day.Format("2006-01-02 (Mon)"))
			output.Println(summary.Text)
			if len(windows) == 0 {
				return nil
			}
			output.Println()
			table := NewTable(output,
				"Window ("+marketA.Code+" time)", marketA.Code+" session", marketB.Code+" session", "Duration")
			for _, w := range windows {
				start, errS := app.Clock.Convert(w.Start, marketA)
				end, errE := app.Clock.Convert(w.End, marketA)
				if errS != nil || errE != nil {
					continue
				}
				table.AddRow(
					fmt.Sprintf("%s - %s", start.Format("15:04"), end.Format("15:04")),
					string(w.SessionA),
					string(w.SessionB),
					fmt.Sprintf("%dm", w.DurationMinutes),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "date to evaluate (YYYY-MM-DD, default: today)")

	return cmd
}
