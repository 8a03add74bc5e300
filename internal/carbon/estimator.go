package carbon

import (
	"fmt"
	"math"
)

// Calculator computes household carbon footprints.
type Calculator interface {
	// Calculate turns one User Input Record into a Result Record.
	// Returns an error wrapping ErrInvalidInput if the input cannot be calculated.
	Calculate(in Input) (Result, error)
}

// Estimator implements Calculator over immutable factor and equivalence tables.
// An Estimator holds no mutable state and is safe for concurrent use.
type Estimator struct {
	factors      FactorTable
	equivalences EquivalenceTable
}

// NewEstimator creates an estimator over the given tables. The tables are
// copied so later changes by the caller cannot leak into calculations.
func NewEstimator(factors FactorTable, equivalences EquivalenceTable) *Estimator {
	return &Estimator{
		factors:      factors.Clone(),
		equivalences: equivalences,
	}
}

// NewDefaultEstimator creates an estimator over the built-in tables.
func NewDefaultEstimator() *Estimator {
	t := DefaultTables()
	return NewEstimator(t.Factors, t.Equivalences)
}

// Factors returns a copy of the emission factor table.
func (e *Estimator) Factors() FactorTable {
	return e.factors.Clone()
}

// Equivalences returns the equivalence table.
func (e *Estimator) Equivalences() EquivalenceTable {
	return e.equivalences
}

// Calculate computes the annual footprint for one input.
//
// The calculation:
//  1. Transport = km/day × days/week × 52 × factor[mode]
//  2. Energy = kWh/month × 12 × ((1 - r) × fossil + r × renewable)
//  3. Consumption = diet × 52 + unrecycled plastic × 12 × plastic + orders × 12 × order
//  4. Annual = transport + energy + consumption; Monthly = Annual / 12
//  5. Percentages, equivalences and the reference comparison derive from the totals
//
// Out-of-range quantities are clamped before use. A missing or unknown diet,
// or an unknown transport mode, returns an error wrapping ErrInvalidInput and
// no partial result. So does an input large enough to overflow the total.
func (e *Estimator) Calculate(in Input) (Result, error) {
	transport, err := e.TransportEmission(in)
	if err != nil {
		return Result{}, err
	}

	consumption, err := e.ConsumptionEmission(in)
	if err != nil {
		return Result{}, err
	}

	energy := e.EnergyEmission(in)

	annual := transport + energy + consumption.Total()
	if !isFinite(annual) {
		return Result{}, fmt.Errorf("%w: footprint overflow", ErrInvalidInput)
	}

	return Result{
		AnnualKg:      annual,
		MonthlyKg:     annual / MonthsPerYear,
		TransportKg:   transport,
		EnergyKg:      energy,
		ConsumptionKg: consumption.Total(),
		Consumption:   consumption,
		Percentages:   CategoryPercentages(transport, energy, consumption.Total()),
		Equivalences:  ComputeEquivalences(annual, e.equivalences),
		Comparison:    Compare(annual),
	}, nil
}

// TransportEmission returns annual commuting emissions in kgCO2e.
// Zero-emission modes (e.g., "bicicleta") are valid and yield 0.
func (e *Estimator) TransportEmission(in Input) (float64, error) {
	factor, ok := e.factors.TransportFactor(in.TransportMode)
	if !ok {
		return 0, fmt.Errorf("%w: unknown transport mode %q", ErrInvalidInput, in.TransportMode)
	}

	km := nonNegative(in.KmPerDay)
	days := Clamp(nonNegative(in.DaysPerWeek), 0, MaxDaysPerWeek)

	return km * days * WeeksPerYear * factor, nil
}

// EnergyEmission returns annual residential electricity emissions in kgCO2e.
func (e *Estimator) EnergyEmission(in Input) float64 {
	kwh := nonNegative(in.KWhPerMonth)
	factor := WeightedEnergyFactor(in.RenewablePercent, e.factors.Energy.Fossil, e.factors.Energy.Renewable)

	return kwh * MonthsPerYear * factor
}

// WeightedEnergyFactor blends the fossil and renewable factors by the
// renewable share (0-100, clamped):
//
//	factor = (1 - r) × fossil + r × renewable
//
// The result is fossil at r=0, renewable at r=1, and non-increasing in r
// whenever renewable <= fossil.
func WeightedEnergyFactor(renewablePercent, fossil, renewable float64) float64 {
	r := percentToFraction(renewablePercent)
	return (1-r)*fossil + r*renewable
}

// ConsumptionEmission returns annual diet, plastic and shopping emissions in kgCO2e.
func (e *Estimator) ConsumptionEmission(in Input) (ConsumptionBreakdown, error) {
	if in.Diet == "" {
		return ConsumptionBreakdown{}, fmt.Errorf("%w: no diet selected", ErrInvalidInput)
	}
	dietFactor, ok := e.factors.DietFactor(in.Diet)
	if !ok {
		return ConsumptionBreakdown{}, fmt.Errorf("%w: unknown diet %q", ErrInvalidInput, in.Diet)
	}

	// Only the unrecycled share of plastic counts
	recycled := percentToFraction(in.RecyclingPercent)
	unrecycled := nonNegative(in.PlasticKgPerMonth) * (1 - recycled)

	return ConsumptionBreakdown{
		Diet:     dietFactor * WeeksPerYear,
		Plastic:  unrecycled * MonthsPerYear * e.factors.Plastic,
		Shopping: nonNegative(in.OrdersPerMonth) * MonthsPerYear * e.factors.OnlineOrder,
	}, nil
}

// CategoryPercentages returns each category's share of the sum, on a 0-100
// scale. When the sum is zero or not finite every share is 0 rather than NaN.
func CategoryPercentages(transport, energy, consumption float64) Percentages {
	total := transport + energy + consumption
	if total <= 0 || math.IsInf(total, 0) || math.IsNaN(total) {
		return Percentages{}
	}
	return Percentages{
		Transport:   transport / total * PercentScale,
		Energy:      energy / total * PercentScale,
		Consumption: consumption / total * PercentScale,
	}
}
