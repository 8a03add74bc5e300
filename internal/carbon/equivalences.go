package carbon

// ComputeEquivalences converts an annual footprint into comparison units.
//
// Each equivalence is totalKg divided by the table entry:
//   - trees, streaming hours, phone charges and car km are rounded to integers
//   - flights are rounded to one decimal
//   - heated homes divide by a home-year (HomeMonth × 12) and round to one decimal
func ComputeEquivalences(totalKg float64, table EquivalenceTable) Equivalences {
	total := nonNegative(totalKg)

	return Equivalences{
		Trees:          roundTo(safeDiv(total, table.TreeYear), 0),
		Flights:        roundTo(safeDiv(total, table.LongHaulFlight), 1),
		StreamingHours: roundTo(safeDiv(total, table.StreamingHour), 0),
		PhoneCharges:   roundTo(safeDiv(total, table.PhoneCharge), 0),
		CarKm:          roundTo(safeDiv(total, table.CarKm), 0),
		HeatedHomes:    roundTo(safeDiv(total, table.HomeMonth*MonthsPerYear), 1),
	}
}

// safeDiv returns 0 for a non-positive divisor. Validated tables never hit it.
func safeDiv(v, divisor float64) float64 {
	if divisor <= 0 {
		return 0
	}
	return v / divisor
}

// Compare positions an annual footprint against the Brazilian average and
// the sustainable goal.
func Compare(annualKg float64) Comparison {
	annual := nonNegative(annualKg)
	percent := annual / BrazilAverageKg * PercentScale

	return Comparison{
		AverageKg:        BrazilAverageKg,
		GoalKg:           SustainableGoalKg,
		PercentOfAverage: percent,
		BarWidthPercent:  Clamp(percent, 0, PercentScale),
		AboveAverage:     annual > BrazilAverageKg,
		WithinGoal:       annual <= SustainableGoalKg,
	}
}
