package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"apac-settle/internal/models"
	"apac-settle/internal/registry"
)

func newMarketsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markets",
		Short: "Market registry operations",
		Long:  "List, inspect, and validate the configured markets.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all registered markets",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			markets := app.Registry.All()
			if output.IsJSON() {
				return output.JSON(markets)
			}

			table := NewTable(output, "Code", "Name", "Exchange", "Timezone", "Hours", "Cycle", "Cut-off")
			for _, m := range markets {
				table.AddRow(
					m.Code,
					m.Name,
					m.ExchangeCalendarCode,
					m.Timezone,
					hoursText(m.Hours),
					m.SettlementLabel(),
					m.DepositoryCutOff,
				)
			}
			table.Render()
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show MARKET",
		Short: "Show one market's full configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.Registry.Get(args[0])
			if err != nil {
				return err
			}

			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(m)
			}

			instruments := make([]string, 0, len(m.Instruments))
			for _, it := range m.Instruments {
				instruments = append(instruments, string(it))
			}
			lines := []string{
				fmt.Sprintf("Exchange:     %s (%s)", m.ExchangeName, m.ExchangeCalendarCode),
				fmt.Sprintf("Timezone:     %s", m.Timezone),
				fmt.Sprintf("Hours:        %s", hoursText(m.Hours)),
				fmt.Sprintf("Settlement:   %s", m.SettlementLabel()),
				fmt.Sprintf("Currency:     %s", m.Currency),
				fmt.Sprintf("Cut-off:      %s", m.DepositoryCutOff),
				fmt.Sprintf("Instruments:  %s", strings.Join(instruments, ", ")),
			}
			output.Box(fmt.Sprintf("%s - %s", m.Code, m.Name), lines)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the market configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			result := registry.Validate(app.Registry.All())
			if output.IsJSON() {
				return output.JSON(result)
			}

			for _, issue := range result.Errors {
				output.Error("  ✗ [%s] %s: %s", issue.MarketCode, issue.Field, issue.Message)
			}
			for _, issue := range result.Warnings {
				output.Warning("  ⚠ [%s] %s: %s", issue.MarketCode, issue.Field, issue.Message)
			}
			if result.IsValid {
				output.Success("✓ %d markets valid (%d warnings)",
					len(app.Registry.Codes()), len(result.Warnings))
				return nil
			}
			return fmt.Errorf("market configuration has %d errors", len(result.Errors))
		},
	})

	return cmd
}

func hoursText(h models.TradingHours) string {
	if h.HasLunchBreak() {
		return fmt.Sprintf("%s-%s, %s-%s", h.Open, h.LunchStart, h.LunchEnd, h.Close)
	}
	return fmt.Sprintf("%s-%s", h.Open, h.Close)
}
