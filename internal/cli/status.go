package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"apac-settle/internal/models"
	"apac-settle/pkg/utils"
)

func newStatusCmd(app *App) *cobra.Command {
	var allFlag bool

	cmd := &cobra.Command{
		Use:   "status [MARKET]",
		Short: "Show current market status",
		Long: `Show the live session state of one market, or every registered
market with --all.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			now := app.Clock.NowFunc()

			if allFlag || len(args) == 0 {
				statuses, err := app.Status.AllStatuses(cmd.Context(), now)
				if err != nil {
					return err
				}
				if output.IsJSON() {
					return output.JSON(statuses)
				}
				renderStatusTable(output, statuses)
				return nil
			}

			st, err := app.Status.Status(cmd.Context(), args[0], now)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(st)
			}
			renderStatus(output, st)
			return nil
		},
	}

	cmd.Flags().BoolVar(&allFlag, "all", false, "show every registered market")

	return cmd
}

func renderStatusTable(output *Output, statuses []models.MarketStatus) {
	table := NewTable(output, "Market", "Local Time", "State", "Session", "Cut-off")
	for _, st := range statuses {
		cutOff := output.DimText("-")
		if st.PastCutOff {
			cutOff = output.Red("passed")
		} else if st.TimeToCutOff != "" {
			cutOff = st.TimeToCutOff
		}
		table.AddRow(
			st.MarketCode,
			st.LocalTime.Format("15:04 Mon"),
			output.OpenClosedTag(st.IsOpen),
			string(st.CurrentSession),
			cutOff,
		)
	}
	table.Render()
}

func renderStatus(output *Output, st *models.MarketStatus) {
	lines := []string{
		fmt.Sprintf("Local time:  %s", st.LocalTime.Format("2006-01-02 15:04 MST")),
		fmt.Sprintf("State:       %s", st.StatusText()),
	}
	if st.NextClose != nil {
		lines = append(lines, fmt.Sprintf("Closes in:   %s (%s)",
			st.TimeToClose, st.NextClose.Format("15:04")))
	}
	if st.NextOpen != nil {
		lines = append(lines, fmt.Sprintf("Opens in:    %s (%s)",
			st.TimeToOpen, st.NextOpen.Format("Mon 15:04")))
	}
	switch {
	case st.PastCutOff:
		lines = append(lines, "Cut-off:     passed for today")
	case st.TimeToCutOff != "":
		lines = append(lines, fmt.Sprintf("Cut-off in:  %s", st.TimeToCutOff))
	}
	output.Box(fmt.Sprintf("%s  %s", st.MarketCode, output.OpenClosedTag(st.IsOpen)), lines)
}

func newCompareCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [MARKET_A] [MARKET_B]",
		Short: "Compare two markets side by side",
		Long: `Compare two markets at this instant: timezone gap, today's trading
hour overlap, and whether both are open.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			codeA, codeB := app.Config.Defaults.MarketA, app.Config.Defaults.MarketB
			if len(args) >= 1 {
				codeA = args[0]
			}
			if len(args) >= 2 {
				codeB = args[1]
			}

			now := app.Clock.NowFunc()
			cmp, err := app.Status.PairComparison(cmd.Context(), codeA, codeB, now)
			if err != nil {
				return err
			}

			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(cmp)
			}
			renderComparison(output, app, cmp)
			return nil
		},
	}

	return cmd
}

func renderComparison(output *Output, app *App, cmp *models.PairComparison) {
	output.Bold("%s ↔ %s", cmp.MarketA, cmp.MarketB)
	output.Printf("Timezone gap:  %s (%s ahead of %s)\n",
		utils.FormatOffsetHours(cmp.OffsetDifferenceHours), cmp.MarketA, cmp.MarketB)
	output.Printf("Overlap today: %s\n", cmp.OverlapSummary)
	output.Printf("Both open now: %s\n", yesNo(output, cmp.BothOpenNow))
	output.Printf("Both trading:  %s\n", yesNo(output, cmp.BothTradingToday))

	if len(cmp.Overlaps) > 0 {
		output.Println()
		marketA, err := app.Registry.Get(cmp.MarketA)
		if err != nil {
			return
		}
		table := NewTable(output, "Window ("+cmp.MarketA+" time)", "Sessions", "Duration")
		for _, w := range cmp.Overlaps {
			start, errS := app.Clock.Convert(w.Start, marketA)
			end, errE := app.Clock.Convert(w.End, marketA)
			if errS != nil || errE != nil {
				continue
			}
			table.AddRow(
				fmt.Sprintf("%s - %s", start.Format("15:04"), end.Format("15:04")),
				fmt.Sprintf("%s / %s", w.SessionA, w.SessionB),
				utils.FormatMinutes(w.DurationMinutes),
			)
		}
		table.Render()
	}
}

func yesNo(output *Output, b bool) string {
	if b {
		return output.Green("yes")
	}
	return output.Red("no")
}
