package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// barWidth is the number of characters of a full progress bar.
const barWidth = 30

// WriteText renders a View as a plain-text report.
func WriteText(w io.Writer, v View) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Sua pegada de carbono\n")
	fmt.Fprintf(tw, "  Anual:\t%s kg CO2e\t(%s)\n", v.Annual, v.AnnualBR)
	fmt.Fprintf(tw, "  Mensal:\t%s kg CO2e\t\n", v.Monthly)
	fmt.Fprintf(tw, "\nPor categoria\n")
	for _, c := range v.Categories {
		fmt.Fprintf(tw, "  %s:\t%s kg\t%s %.1f%%\n", c.Label, c.Display, bar(c.Percent), c.Percent)
	}
	fmt.Fprintf(tw, "\nEquivale a\n")
	for _, e := range v.Equivalences {
		fmt.Fprintf(tw, "  %s\t%s\t\n", e.Display, e.Label)
	}
	fmt.Fprintf(tw, "\nComparativo\n")
	fmt.Fprintf(tw, "  Você:\t%s kg\t%s %s\n", v.Annual, bar(v.Comparison.BarWidthPercent), v.ComparisonBar)
	fmt.Fprintf(tw, "  Média brasileira:\t%s kg\t\n", formatKg(v.Comparison.AverageKg))
	fmt.Fprintf(tw, "  Meta sustentável:\t%s kg\t\n", formatKg(v.Comparison.GoalKg))
	fmt.Fprintf(tw, "  %s\t\t\n", v.Verdict)

	return tw.Flush()
}

// bar draws a fixed-width progress bar for a 0-100 percentage.
func bar(percent float64) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent/100*barWidth + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}
