// Package renderer turns a marketrisk.Report into documents: a markdown
// report for the terminal and optional PNG charts.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/marketrisk"
)

// ReportMarkdown renders the full analysis report as a markdown document.
func ReportMarkdown(r *marketrisk.Report) string {
	var b strings.Builder
	WriteReport(&b, r)
	return b.String()
}

// VolatilityMarkdown renders only the per-asset GARCH sections.
func VolatilityMarkdown(r *marketrisk.Report) string {
	var b strings.Builder
	writeVolatility(&b, r)
	return b.String()
}

// RiskMarkdown renders only the correlation and value-at-risk sections.
func RiskMarkdown(r *marketrisk.Report) string {
	var b strings.Builder
	writeRisk(&b, r)
	return b.String()
}

// PerformanceMarkdown renders only the performance section.
func PerformanceMarkdown(r *marketrisk.Report) string {
	var b strings.Builder
	writePerformance(&b, r)
	return b.String()
}

// WriteReport writes the markdown report to w, section by section.
func WriteReport(w io.Writer, r *marketrisk.Report) {
	s := r.Scenario
	fmt.Fprintf(w, "# Market Risk Report on %s\n\n", r.On)
	fmt.Fprintf(w, "*%s vs %s, window %s to %s, %s data, %s confidence*\n\n",
		assetLabel(s.Assets[0]), assetLabel(s.Assets[1]),
		s.Window.Start, s.Window.End, s.Source, confidence(s.Confidence))

	writeData(w, r)
	writeVolatility(w, r)
	writeRisk(w, r)
	writePerformance(w, r)
	writeMethodology(w, r)
}

func writeData(w io.Writer, r *marketrisk.Report) {
	// Rows are labelled on the left, one column per asset.
	printRow := func(label string, getValue func(a *marketrisk.AssetAnalysis) string) {
		fmt.Fprintf(w, "| %s ", label)
		for i := range r.Assets {
			fmt.Fprintf(w, " | %s", getValue(&r.Assets[i]))
		}
		fmt.Fprintln(w, " |")
	}

	fmt.Fprintln(w, "## Market Data")
	fmt.Fprintln(w, "")
	printAssetHeader(w, r)
	printRow("Trading days", func(a *marketrisk.AssetAnalysis) string {
		return fmt.Sprint(a.Prices.Len())
	})
	printRow("First close", func(a *marketrisk.AssetAnalysis) string {
		day, v := a.Prices.First()
		return fmt.Sprintf("%.2f on %s", v, day)
	})
	printRow("Latest close", func(a *marketrisk.AssetAnalysis) string {
		day, v := a.Prices.Latest()
		return fmt.Sprintf("%.2f on %s", v, day)
	})
	printRow("Daily returns", func(a *marketrisk.AssetAnalysis) string {
		return fmt.Sprint(a.Log.Len())
	})
	fmt.Fprintln(w, "")
}

func writeVolatility(w io.Writer, r *marketrisk.Report) {
	fmt.Fprintln(w, "## Volatility Models")
	fmt.Fprintln(w, "")
	for i := range r.Assets {
		a := &r.Assets[i]
		fmt.Fprintf(w, "### %s GARCH(1,1)\n\n", a.Asset.Ticker)
		fmt.Fprintln(w, "| Coefficient | Estimate | Std Err | z | p-value |")
		fmt.Fprintln(w, "|:---|---:|---:|---:|---:|")
		for _, p := range a.Fit.Params() {
			fmt.Fprintf(w, "| %s | %.6g | %.3g | %.2f | %.3f |\n", p.Name, p.Value, p.StdErr, p.Z, p.PValue)
		}
		fmt.Fprintln(w, "")
		fmt.Fprintf(w, "- log-likelihood %.2f over %d observations\n", a.Fit.LogLikelihood, a.Fit.Observations)
		fmt.Fprintf(w, "- persistence alpha+beta = %.4f\n", a.Fit.Persistence())
		fmt.Fprintf(w, "- long-run daily volatility %s\n", marketrisk.Percent(100*a.Fit.LongRunVol()))
		fmt.Fprintf(w, "- conditional volatility on %s: %s\n", r.On, marketrisk.Percent(100*a.LastVol()))
		fmt.Fprintln(w, "")
	}
}

func writeRisk(w io.Writer, r *marketrisk.Report) {
	s := r.Scenario

	fmt.Fprintln(w, "## Correlation")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "- daily return correlation: %.4f\n", r.ReturnCorrelation)
	fmt.Fprintf(w, "- price level correlation: %.4f\n", r.PriceCorrelation)
	fmt.Fprintln(w, "")

	printRow, printRowBold := portfolioRows(w, r)

	fmt.Fprintf(w, "## Value at Risk (%s one-day)\n", confidence(s.Confidence))
	fmt.Fprintln(w, "")
	printPortfolioHeader(w, r)
	printRow("Capital", func(p *marketrisk.PortfolioAnalysis) string {
		return marketrisk.USD(p.Portfolio.Notional).String()
	})
	printRowBold("Historical VaR", func(p *marketrisk.PortfolioAnalysis) string {
		return marketrisk.USD(p.HistoricalVaR).String()
	})
	printRow("Expected shortfall", func(p *marketrisk.PortfolioAnalysis) string {
		return marketrisk.USD(p.Shortfall).String()
	})
	printRow("Delta-normal VaR", func(p *marketrisk.PortfolioAnalysis) string {
		return marketrisk.USD(p.DeltaNormalVaR).String()
	})
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Holding the blend rather than the parts saves %s of historical VaR.\n", marketrisk.USD(r.Diversification))
	fmt.Fprintln(w, "")
}

func writePerformance(w io.Writer, r *marketrisk.Report) {
	printRow, printRowBold := portfolioRows(w, r)

	days := "days"
	if r.HoldingDays == 1 {
		days = "day"
	}
	fmt.Fprintf(w, "## Performance on %s (%d %s held)\n", r.On, r.HoldingDays, days)
	fmt.Fprintln(w, "")
	printPortfolioHeader(w, r)
	printRow("Realized return", func(p *marketrisk.PortfolioAnalysis) string {
		return marketrisk.Percent(100 * p.Realized).SignedString()
	})
	printRow("Realized P&L", func(p *marketrisk.PortfolioAnalysis) string {
		return marketrisk.USD(p.RealizedDollars).SignedString()
	})
	printRow("Conditional volatility", func(p *marketrisk.PortfolioAnalysis) string {
		return marketrisk.Percent(100 * p.Vol).String()
	})
	printRowBold("Sharpe ratio", func(p *marketrisk.PortfolioAnalysis) string {
		return fmt.Sprintf("%.2f", p.Sharpe)
	})
	printRowBold("RAROC", func(p *marketrisk.PortfolioAnalysis) string {
		return marketrisk.Percent(100 * p.RAROC).SignedString()
	})
	fmt.Fprintln(w, "")
}

func writeMethodology(w io.Writer, r *marketrisk.Report) {
	s := r.Scenario
	fmt.Fprintln(w, "## Methodology")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "- Daily log returns feed a GARCH(1,1) model fitted by maximum likelihood under normal innovations.")
	fmt.Fprintf(w, "- Historical VaR is the empirical %s quantile of the daily returns, scaled by the portfolio notional.\n", tail(s.Confidence))
	fmt.Fprintln(w, "- Expected shortfall averages the returns at or beyond that quantile.")
	fmt.Fprintf(w, "- Delta-normal VaR scales the standard deviation of the daily returns by the normal %s quantile.\n", confidence(s.Confidence))
	fmt.Fprintf(w, "- The Sharpe ratio nets the risk-free rate (%s annual) out of the realized return, per unit of conditional volatility.\n", marketrisk.Percent(100*s.RiskFreeRate))
	fmt.Fprintln(w, "- RAROC divides the realized gain net of funding cost by the delta-normal VaR as economic capital.")
}

// portfolioRows returns the row printers of the portfolio tables: plain and
// bold, one column per portfolio.
func portfolioRows(w io.Writer, r *marketrisk.Report) (printRow, printRowBold func(string, func(*marketrisk.PortfolioAnalysis) string)) {
	printRow = func(label string, getValue func(p *marketrisk.PortfolioAnalysis) string) {
		fmt.Fprintf(w, "| %s ", label)
		for i := range r.Portfolios {
			fmt.Fprintf(w, " | %s", getValue(&r.Portfolios[i]))
		}
		fmt.Fprintln(w, " |")
	}
	printRowBold = func(label string, getValue func(p *marketrisk.PortfolioAnalysis) string) {
		fmt.Fprintf(w, "| **%s** ", label)
		for i := range r.Portfolios {
			fmt.Fprintf(w, " | **%s**", getValue(&r.Portfolios[i]))
		}
		fmt.Fprintln(w, " |")
	}
	return printRow, printRowBold
}

func printAssetHeader(w io.Writer, r *marketrisk.Report) {
	fmt.Fprint(w, "| |")
	for i := range r.Assets {
		fmt.Fprintf(w, " %s |", r.Assets[i].Asset.Ticker)
	}
	fmt.Fprintln(w, "")
	fmt.Fprint(w, "|:---|")
	for range r.Assets {
		fmt.Fprint(w, "---:|")
	}
	fmt.Fprintln(w, "")
}

func printPortfolioHeader(w io.Writer, r *marketrisk.Report) {
	fmt.Fprint(w, "| |")
	for i := range r.Portfolios {
		fmt.Fprintf(w, " %s |", r.Portfolios[i].Portfolio.Name)
	}
	fmt.Fprintln(w, "")
	fmt.Fprint(w, "|:---|")
	for range r.Portfolios {
		fmt.Fprint(w, "---:|")
	}
	fmt.Fprintln(w, "")
}

func assetLabel(a marketrisk.Asset) string {
	if a.Name == "" {
		return a.Ticker
	}
	return fmt.Sprintf("%s (%s)", a.Name, a.Ticker)
}

// confidence formats 0.99 as "99%". Plain %g would leak float dust.
func confidence(c float64) string { return fmt.Sprintf("%.0f%%", 100*c) }

// tail formats the VaR tail mass, "1%" for 99% confidence.
func tail(c float64) string { return fmt.Sprintf("%.0f%%", 100*(1-c)) }
