package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"apac-settle/internal/errors"
	"apac-settle/internal/models"
)

type marketsFile struct {
	Markets []models.Market `mapstructure:"markets"`
}

// Load reads market definitions from markets.toml in the config
// directory. A missing file gets a template written from the built-in
// set, which is then used directly. Definition errors are fatal;
// warnings are logged.
func Load(configDir string, logger zerolog.Logger) (*Registry, error) {
	v := viper.New()
	v.SetConfigName("markets")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if werr := writeMarketsTemplate(configDir); werr != nil {
				logger.Warn().Err(werr).Msg("Could not write markets.toml template")
			}
			return New(BuiltIn()), nil
		}
		return nil, errors.Wrap(err, "reading markets.toml")
	}

	var mf marketsFile
	if err := v.Unmarshal(&mf); err != nil {
		return nil, errors.Wrap(err, "parsing markets.toml")
	}
	if len(mf.Markets) == 0 {
		logger.Warn().Msg("markets.toml defines no markets, using built-in set")
		return New(BuiltIn()), nil
	}

	result := Validate(mf.Markets)
	for _, w := range result.Warnings {
		logger.Warn().
			Str("market", w.MarketCode).
			Str("field", w.Field).
			Msg(w.Message)
	}
	if !result.IsValid {
		for _, e := range result.Errors {
			logger.Error().
				Str("market", e.MarketCode).
				Str("field", e.Field).
				Msg(e.Message)
		}
		return nil, errors.Wrapf(errors.ErrConfigInvalid,
			"markets.toml has %d definition errors", len(result.Errors))
	}

	return New(mf.Markets), nil
}

func writeMarketsTemplate(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	path := filepath.Join(configDir, "markets.toml")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, "# Market definitions. Edit to adjust hours, cut-offs, or cycles.")
	fmt.Fprintln(f, "# Codes must be unique; timezone is an IANA name.")
	for _, m := range BuiltIn() {
		fmt.Fprintln(f)
		fmt.Fprintln(f, "[[markets]]")
		fmt.Fprintf(f, "code = %q\n", m.Code)
		fmt.Fprintf(f, "name = %q\n", m.Name)
		fmt.Fprintf(f, "exchange_name = %q\n", m.ExchangeName)
		fmt.Fprintf(f, "exchange_calendar_code = %q\n", m.ExchangeCalendarCode)
		fmt.Fprintf(f, "timezone = %q\n", m.Timezone)
		fmt.Fprintf(f, "settlement_cycle = %d\n", m.SettlementCycle)
		fmt.Fprintf(f, "currency = %q\n", m.Currency)
		if m.DepositoryCutOff != "" {
			fmt.Fprintf(f, "depository_cut_off = %q\n", m.DepositoryCutOff)
		}
		if len(m.Instruments) > 0 {
			fmt.Fprintf(f, "instruments = [")
			for i, inst := range m.Instruments {
				if i > 0 {
					fmt.Fprintf(f, ", ")
				}
				fmt.Fprintf(f, "%q", string(inst))
			}
			fmt.Fprintln(f, "]")
		}
		fmt.Fprintln(f)
		fmt.Fprintf(f, "[markets.trading_hours]\n")
		fmt.Fprintf(f, "open = %q\n", m.Hours.Open)
		fmt.Fprintf(f, "close = %q\n", m.Hours.Close)
		if m.Hours.HasLunchBreak() {
			fmt.Fprintf(f, "lunch_start = %q\n", m.Hours.LunchStart)
			fmt.Fprintf(f, "lunch_end = %q\n", m.Hours.LunchEnd)
		}
	}

	return nil
}
