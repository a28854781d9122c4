// Command odds prints aggregated match-winner probabilities for upcoming fixtures.
//
// Usage:
//
//	odds --leagues epl,la_liga
//	odds --polymarket-only --regions uk --bookmakers pinnacle,bet365
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Alias1177/OddsPredictor/internal/analyze"
	"github.com/Alias1177/OddsPredictor/internal/config"
	"github.com/Alias1177/OddsPredictor/internal/eligibility"
	"github.com/Alias1177/OddsPredictor/internal/render"
	"github.com/Alias1177/OddsPredictor/internal/schedule"
	"github.com/Alias1177/OddsPredictor/models"
)

// exitError carries a process exit status
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

type options struct {
	leagues            []string
	regions            string
	bookmakers         []string
	polymarketOnly     bool
	polymarketEndpoint string
	days               int
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	setupSignalHandling(cancel)

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.msg)
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "odds",
		Short:         "Aggregate football match-winner odds from The Odds API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			config.SetupLogger(cfg.LogLevel)
			applyFlags(cmd, cfg, opts)
			return run(cmd.Context(), cfg, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&opts.leagues, "leagues", nil, "League keys to fetch (default: all supported leagues)")
	f.StringVar(&opts.regions, "regions", "uk,eu", "Comma-separated regions to request from The Odds API")
	f.StringSliceVar(&opts.bookmakers, "bookmakers", nil, "Bookmaker keys to restrict responses")
	f.BoolVar(&opts.polymarketOnly, "polymarket-only", false, "Only display matches that exist as active Polymarket markets")
	f.StringVar(&opts.polymarketEndpoint, "polymarket-endpoint", "", "Override the Polymarket markets endpoint")
	f.IntVar(&opts.days, "days", 0, "Days ahead to fetch (default: DAYS_AHEAD)")
	return cmd
}

// applyFlags overrides configuration with the flags the user set
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts options) {
	f := cmd.Flags()
	if f.Changed("regions") {
		cfg.Regions = opts.regions
	}
	if f.Changed("bookmakers") {
		cfg.Bookmakers = opts.bookmakers
	}
	if f.Changed("polymarket-only") {
		cfg.PolymarketOnly = opts.polymarketOnly
	}
	if f.Changed("polymarket-endpoint") {
		cfg.PolymarketEndpoint = opts.polymarketEndpoint
	}
	if f.Changed("days") && opts.days > 0 {
		cfg.DaysAhead = opts.days
	}
}

func run(ctx context.Context, cfg *config.Config, opts options, out, errOut io.Writer) error {
	leagues, err := resolveLeagues(cfg.Leagues, opts.leagues)
	if err != nil {
		return err
	}

	if err := cfg.Require(config.SecretOddsAPIKey); err != nil {
		return err
	}

	analyzer, _, closeStore := analyze.FromConfig(ctx, cfg)
	defer closeStore()

	log.Debug().Strs("leagues", config.LeagueKeys(leagues)).Int("days", cfg.DaysAhead).Msg("Fetching odds")
	results := analyzer.FetchMany(ctx, leagues)

	return printResults(ctx, out, errOut, results, analyzer.Location(), eligibility.AllowAll{})
}

// resolveLeagues maps requested keys to leagues; no keys means all of them
func resolveLeagues(catalog []models.League, requested []string) ([]models.League, error) {
	if len(requested) == 0 {
		return catalog, nil
	}

	var leagues []models.League
	var unknown []string
	seen := make(map[string]bool)
	for _, key := range requested {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		l, ok := config.FindLeague(catalog, key)
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		if !seen[l.Key] {
			seen[l.Key] = true
			leagues = append(leagues, l)
		}
	}

	if len(unknown) > 0 {
		return nil, &exitError{
			code: 2,
			msg: fmt.Sprintf("Unsupported league key(s): %s. Supported: %s",
				strings.Join(unknown, ", "), strings.Join(config.LeagueKeys(catalog), ", ")),
		}
	}
	return leagues, nil
}

// printResults writes warnings for failed steps, then walks league → day → fixture
func printResults(ctx context.Context, out, errOut io.Writer, results []analyze.LeagueResult, loc *time.Location, checker models.EligibilityChecker) error {
	var reports []models.FixtureReport
	marketWarned := false
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(errOut, "Warning: %s unavailable: %v\n", res.League.Key, res.Err)
			continue
		}
		if res.MarketErr != nil && !marketWarned {
			fmt.Fprintf(errOut, "Warning: failed to fetch Polymarket markets (%v).\n", res.MarketErr)
			marketWarned = true
		}
		reports = append(reports, res.Reports...)
	}

	printer := render.NewPrinter(out, loc)
	caller := models.Caller{Source: "cli"}
	printed := 0
	for _, s := range schedule.Group(reports, loc) {
		for _, day := range s.Days {
			for _, r := range day.Reports {
				ok, err := checker.Eligible(ctx, caller, r.Fixture.ID)
				if err != nil {
					return fmt.Errorf("checking eligibility: %w", err)
				}
				if !ok {
					continue
				}
				if err := printer.Fixture(r); err != nil {
					return err
				}
				printed++
			}
		}
	}

	if printed == 0 {
		fmt.Fprintln(out, "No upcoming matches returned by The Odds API.")
	}
	return nil
}

// setupSignalHandling cancels the context on SIGINT/SIGTERM
func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, exiting...")
		cancel()
	}()
}
