package renderer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/marketrisk"
	"github.com/vicanso/go-charts/v2"
)

// PriceChartPNG renders both assets' adjusted closes, indexed to 100 on
// the first common trading day, and writes dir/prices.png.
func PriceChartPNG(dir string, r *marketrisk.Report) (string, error) {
	a, b := &r.Assets[0], &r.Assets[1]
	days, x, y := marketrisk.Align(a.Prices, b.Prices)
	if len(days) < 2 {
		return "", fmt.Errorf("could not render price chart: %w", marketrisk.ErrNoOverlap)
	}

	title := fmt.Sprintf("Adjusted closes %s to %s (indexed to 100)", days[0], days[len(days)-1])
	path := filepath.Join(dir, "prices.png")
	err := lineChartPNG(path, title,
		dateLabels(days),
		[]string{a.Asset.Ticker, b.Asset.Ticker},
		[][]float64{indexed(x), indexed(y)},
		nil)
	if err != nil {
		return "", fmt.Errorf("could not render price chart: %w", err)
	}
	return path, nil
}

// VolatilityChartPNG renders both assets' conditional volatility series in
// daily percent and writes dir/volatility.png.
func VolatilityChartPNG(dir string, r *marketrisk.Report) (string, error) {
	a, b := &r.Assets[0], &r.Assets[1]
	days, x, y := marketrisk.Align(a.Fit.Vols(), b.Fit.Vols())
	if len(days) < 2 {
		return "", fmt.Errorf("could not render volatility chart: %w", marketrisk.ErrNoOverlap)
	}

	title := fmt.Sprintf("GARCH(1,1) daily volatility %s to %s (%%)", days[0], days[len(days)-1])
	path := filepath.Join(dir, "volatility.png")
	floor := 0.0
	err := lineChartPNG(path, title,
		dateLabels(days),
		[]string{a.Asset.Ticker, b.Asset.Ticker},
		[][]float64{percents(x), percents(y)},
		&floor)
	if err != nil {
		return "", fmt.Errorf("could not render volatility chart: %w", err)
	}
	return path, nil
}

func lineChartPNG(path, title string, labels, names []string, values [][]float64, yMin *float64) error {
	painter, err := charts.LineRender(values,
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: 8}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: yMin, DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return err
	}
	img, err := painter.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, img, 0o644)
}

func dateLabels(days []marketrisk.Date) []string {
	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = d.String()
	}
	return labels
}

// indexed rebases a price series to 100 at its first point, so two assets
// on very different levels share one axis.
func indexed(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = 100 * x / v[0]
	}
	return out
}

func percents(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = 100 * x
	}
	return out
}
