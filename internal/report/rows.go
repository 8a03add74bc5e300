package report

// Row is one line of a tabular export.
type Row struct {
	Section string
	Item    string
	Value   float64
	Display string
	Unit    string
}

// Header is the column header shared by the tabular exporters.
var Header = []string{"Seção", "Item", "Valor", "Unidade"}

// Rows flattens a View into export rows: totals, categories, equivalences
// and the reference comparison.
func (v View) Rows() []Row {
	rows := []Row{
		{Section: "Total", Item: "Emissão anual", Value: v.AnnualKg, Display: v.Annual, Unit: "kg CO2e/ano"},
		{Section: "Total", Item: "Emissão mensal", Value: v.MonthlyKg, Display: v.Monthly, Unit: "kg CO2e/mês"},
	}

	for _, c := range v.Categories {
		rows = append(rows, Row{Section: "Categoria", Item: c.Label, Value: c.Kg, Display: c.Display, Unit: "kg CO2e/ano"})
	}
	for _, e := range v.Equivalences {
		rows = append(rows, Row{Section: "Equivalência", Item: e.Label, Value: e.Value, Display: e.Display})
	}

	rows = append(rows,
		Row{Section: "Comparativo", Item: "Média brasileira", Value: v.Comparison.AverageKg, Display: formatKg(v.Comparison.AverageKg), Unit: "kg CO2e/ano"},
		Row{Section: "Comparativo", Item: "Meta sustentável", Value: v.Comparison.GoalKg, Display: formatKg(v.Comparison.GoalKg), Unit: "kg CO2e/ano"},
		Row{Section: "Comparativo", Item: "Sua pegada vs. média", Value: v.Comparison.PercentOfAverage, Display: formatPercent(v.Comparison.PercentOfAverage), Unit: "%"},
	)
	return rows
}
