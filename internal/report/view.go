// Package report is the presentation side of the calculator: it turns a
// carbon.Result into display strings and renders them as text, CSV, XLSX or PDF.
package report

import (
	"fmt"

	"github.com/ecotrip/co2calc/internal/carbon"
)

// Category is one row of the per-category breakdown.
type Category struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Kg      float64 `json:"kg"`
	Display string  `json:"display"`

	// Percent is the progress bar width, 0-100.
	Percent float64 `json:"percent"`
}

// Equivalence is one "your footprint equals ..." card.
type Equivalence struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// View is the presentation model for one Result.
type View struct {
	AnnualKg      float64           `json:"annual_kg"`
	MonthlyKg     float64           `json:"monthly_kg"`
	Annual        string            `json:"annual"`
	Monthly       string            `json:"monthly"`
	AnnualBR      string            `json:"annual_br"`
	Categories    []Category        `json:"categories"`
	Equivalences  []Equivalence     `json:"equivalences"`
	Comparison    carbon.Comparison `json:"comparison"`
	ComparisonBar string            `json:"comparison_bar"`
	Verdict       string            `json:"verdict"`
}

// NewView formats a Result for display: the annual total with no decimals,
// the monthly total with one, categories with none.
func NewView(r carbon.Result) View {
	return View{
		AnnualKg:  r.AnnualKg,
		MonthlyKg: r.MonthlyKg,
		Annual:    fmt.Sprintf("%.0f", r.AnnualKg),
		Monthly:   fmt.Sprintf("%.1f", r.MonthlyKg),
		AnnualBR:  carbon.FormatNumberBR(r.AnnualKg),
		Categories: []Category{
			newCategory("transport", "Transporte", r.TransportKg, r.Percentages.Transport),
			newCategory("energy", "Energia", r.EnergyKg, r.Percentages.Energy),
			newCategory("consumption", "Alimentação e consumo", r.ConsumptionKg, r.Percentages.Consumption),
		},
		Equivalences: []Equivalence{
			{Key: "trees", Label: "árvores para absorver em um ano", Value: r.Equivalences.Trees, Display: fmt.Sprintf("%.0f", r.Equivalences.Trees)},
			{Key: "flights", Label: "voos internacionais ida e volta", Value: r.Equivalences.Flights, Display: fmt.Sprintf("%.1f", r.Equivalences.Flights)},
			{Key: "streaming_hours", Label: "horas de streaming em 4K", Value: r.Equivalences.StreamingHours, Display: fmt.Sprintf("%.0f", r.Equivalences.StreamingHours)},
			{Key: "phone_charges", Label: "cargas completas de smartphone", Value: r.Equivalences.PhoneCharges, Display: fmt.Sprintf("%.0f", r.Equivalences.PhoneCharges)},
			{Key: "car_km", Label: "km em carro a gasolina", Value: r.Equivalences.CarKm, Display: fmt.Sprintf("%.0f", r.Equivalences.CarKm)},
			{Key: "heated_homes", Label: "casas abastecidas por um ano", Value: r.Equivalences.HeatedHomes, Display: fmt.Sprintf("%.1f", r.Equivalences.HeatedHomes)},
		},
		Comparison:    r.Comparison,
		ComparisonBar: formatPercent(r.Comparison.BarWidthPercent) + "%",
		Verdict:       verdict(r.Comparison),
	}
}

func newCategory(key, label string, kg, percent float64) Category {
	return Category{
		Key:     key,
		Label:   label,
		Kg:      kg,
		Display: fmt.Sprintf("%.0f", kg),
		Percent: percent,
	}
}

func formatKg(kg float64) string {
	return fmt.Sprintf("%.0f", kg)
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.1f", p)
}

func verdict(c carbon.Comparison) string {
	switch {
	case c.WithinGoal:
		return "Dentro da meta sustentável"
	case c.AboveAverage:
		return "Acima da média brasileira"
	default:
		return "Abaixo da média brasileira, acima da meta sustentável"
	}
}
