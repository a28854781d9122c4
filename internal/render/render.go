// Package render prints fixture reports as plain-text tables.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alias1177/OddsPredictor/models"
)

var hundred = decimal.NewFromInt(100)

// Percent formats a probability as a percentage with two decimals
func Percent(p float64) string {
	return decimal.NewFromFloat(p).Mul(hundred).StringFixed(2) + "%"
}

// Recommendation formats a recommendation, e.g. "HOME (Δ 24.00%)"
func Recommendation(rec models.Recommendation) string {
	return fmt.Sprintf("%s (Δ %s)", strings.ToUpper(string(rec.Outcome)), Percent(rec.Delta))
}

// Header is the one-line fixture title
func Header(r models.FixtureReport, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	f := r.Fixture
	header := fmt.Sprintf("%s | %s vs %s | %s",
		strings.ToUpper(f.League), f.HomeTeam, f.AwayTeam, f.Kickoff.In(loc).Format("2006-01-02 15:04 MST"))
	if r.Polymarket != nil {
		header = "[Polymarket] " + header
	}
	return header
}

// Printer writes fixture reports to w
type Printer struct {
	w   io.Writer
	loc *time.Location
}

// NewPrinter creates a printer showing kick-off times in loc
func NewPrinter(w io.Writer, loc *time.Location) *Printer {
	if loc == nil {
		loc = time.UTC
	}
	return &Printer{w: w, loc: loc}
}

// Fixture prints one report: header, per-source table and summary
func (p *Printer) Fixture(r models.FixtureReport) error {
	header := Header(r, p.loc)
	rule := strings.Repeat("=", len([]rune(header)))
	fmt.Fprintf(p.w, "%s\n%s\n%s\n", rule, header, rule)

	if r.Polymarket != nil {
		line := "Polymarket: " + r.Polymarket.Question
		if r.Polymarket.Volume.Valid {
			line += " (volume " + r.Polymarket.Volume.Decimal.StringFixed(0) + ")"
		}
		fmt.Fprintln(p.w, line)
	}

	if r.OddsUnavailable || r.Average == nil {
		_, err := fmt.Fprint(p.w, "Odds unavailable\n\n")
		return err
	}

	fmt.Fprintln(p.w, "Per-source probabilities:")
	if err := p.sources(r.Sources); err != nil {
		return err
	}
	fmt.Fprintln(p.w)

	fmt.Fprintln(p.w, "Aggregated summary:")
	if err := p.summary(r); err != nil {
		return err
	}
	_, err := fmt.Fprint(p.w, "\n\n")
	return err
}

func (p *Printer) sources(sets []models.ImpliedProbabilitySet) error {
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Source\tHome\tDraw\tAway")
	for _, s := range sets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Bookmaker, Percent(s.Home), Percent(s.Draw), Percent(s.Away))
	}
	return tw.Flush()
}

func (p *Printer) summary(r models.FixtureReport) error {
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	for _, o := range models.OutcomePriority {
		label := strings.ToUpper(string(o[:1])) + string(o[1:])
		fmt.Fprintf(tw, "%s\t%s\n", label, Percent(r.Average.Probability(o)))
	}
	if r.Recommendation != nil {
		fmt.Fprintf(tw, "Recommendation\t%s\n", Recommendation(*r.Recommendation))
	}
	return tw.Flush()
}
