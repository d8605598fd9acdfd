// Package marketrisk measures the one-day market risk of a two-security
// portfolio from public daily price data. Everything it computes is derived
// from a single Scenario: two tickers, an observation window, a position in
// each, a risk-free rate and a confidence level.
//
// The analysis runs as a pipeline:
//   - Returns: daily adjusted closes become simple and log return series,
//     aligned on the trading days both securities share.
//   - Volatility: a GARCH(1,1) model is fitted to each security's log
//     returns by maximum likelihood, yielding a conditional volatility
//     series and coefficient standard errors.
//   - Risk: Pearson correlation between the two return series, historical
//     value at risk, expected shortfall and delta-normal value at risk for
//     three portfolios (each security alone and a 50/50 blend).
//   - Performance: realized return on the last day of the window, Sharpe
//     ratio and RAROC per portfolio.
//
// The Report produced by Analyze is a plain data structure; rendering to
// markdown and PNG charts lives in the renderer subpackage, price fetching
// in marketdata, and the mrk command line tool in cmd and mrk.
package marketrisk
