package carbon

import (
	"fmt"
	"maps"
	"slices"
)

// EnergyFactors holds electricity emission factors in kgCO2e per kWh.
type EnergyFactors struct {
	Fossil            float64 `json:"fossil" yaml:"fossil"`
	Renewable         float64 `json:"renewable" yaml:"renewable"`
	BrazilGridAverage float64 `json:"brazil_grid_average" yaml:"brazil_grid_average"`
}

// FactorTable is the Emission Factor Table. A FactorTable is built once at
// startup and must not be mutated afterwards; use Clone to derive a variant.
type FactorTable struct {
	// Transport maps a transport mode to kgCO2e per km.
	Transport map[string]float64 `json:"transport" yaml:"transport"`

	// Energy holds the electricity factors used by the weighted energy formula.
	Energy EnergyFactors `json:"energy" yaml:"energy"`

	// Diet maps a diet choice to kgCO2e per week.
	Diet map[string]float64 `json:"diet" yaml:"diet"`

	// Plastic is kgCO2e per kg of unrecycled plastic.
	Plastic float64 `json:"plastic" yaml:"plastic"`

	// OnlineOrder is kgCO2e per online order.
	OnlineOrder float64 `json:"online_order" yaml:"online_order"`
}

// EquivalenceTable is the Equivalence Table: each entry is the kgCO2e of one
// comparison unit. Dividing a footprint by an entry yields the equivalence.
type EquivalenceTable struct {
	TreeYear       float64 `json:"tree_year" yaml:"tree_year"`
	LongHaulFlight float64 `json:"long_haul_flight" yaml:"long_haul_flight"`
	StreamingHour  float64 `json:"streaming_hour" yaml:"streaming_hour"`
	PhoneCharge    float64 `json:"phone_charge" yaml:"phone_charge"`
	CarKm          float64 `json:"car_km" yaml:"car_km"`
	HomeMonth      float64 `json:"home_month" yaml:"home_month"`
}

// DefaultFactors returns a fresh copy of the built-in emission factors.
func DefaultFactors() FactorTable {
	return defaultTables().Factors.Clone()
}

// DefaultEquivalences returns the built-in equivalence divisors.
func DefaultEquivalences() EquivalenceTable {
	return defaultTables().Equivalences
}

// TransportFactor returns the factor for mode and whether the mode is known.
func (f FactorTable) TransportFactor(mode string) (float64, bool) {
	factor, ok := f.Transport[mode]
	return factor, ok
}

// DietFactor returns the weekly factor for diet and whether the diet is known.
func (f FactorTable) DietFactor(diet string) (float64, bool) {
	factor, ok := f.Diet[diet]
	return factor, ok
}

// TransportModes returns the known transport modes in sorted order.
func (f FactorTable) TransportModes() []string {
	return slices.Sorted(maps.Keys(f.Transport))
}

// Diets returns the known diet choices in sorted order.
func (f FactorTable) Diets() []string {
	return slices.Sorted(maps.Keys(f.Diet))
}

// Clone returns a deep copy so callers can derive a table without sharing maps.
func (f FactorTable) Clone() FactorTable {
	c := f
	c.Transport = maps.Clone(f.Transport)
	c.Diet = maps.Clone(f.Diet)
	return c
}

// Validate rejects negative coefficients and empty enumerations.
func (f FactorTable) Validate() error {
	if len(f.Transport) == 0 {
		return fmt.Errorf("%w: no transport modes", ErrInvalidFactors)
	}
	if len(f.Diet) == 0 {
		return fmt.Errorf("%w: no diets", ErrInvalidFactors)
	}
	for mode, v := range f.Transport {
		if v < 0 {
			return fmt.Errorf("%w: transport %q is negative (%v)", ErrInvalidFactors, mode, v)
		}
	}
	for diet, v := range f.Diet {
		if v < 0 {
			return fmt.Errorf("%w: diet %q is negative (%v)", ErrInvalidFactors, diet, v)
		}
	}
	scalars := []struct {
		name  string
		value float64
	}{
		{"energy.fossil", f.Energy.Fossil},
		{"energy.renewable", f.Energy.Renewable},
		{"energy.brazil_grid_average", f.Energy.BrazilGridAverage},
		{"plastic", f.Plastic},
		{"online_order", f.OnlineOrder},
	}
	for _, s := range scalars {
		if s.value < 0 {
			return fmt.Errorf("%w: %s is negative (%v)", ErrInvalidFactors, s.name, s.value)
		}
	}
	return nil
}

// Validate rejects non-positive divisors, which would yield Inf or NaN equivalences.
func (e EquivalenceTable) Validate() error {
	divisors := []struct {
		name  string
		value float64
	}{
		{"tree_year", e.TreeYear},
		{"long_haul_flight", e.LongHaulFlight},
		{"streaming_hour", e.StreamingHour},
		{"phone_charge", e.PhoneCharge},
		{"car_km", e.CarKm},
		{"home_month", e.HomeMonth},
	}
	for _, d := range divisors {
		if d.value <= 0 {
			return fmt.Errorf("%w: equivalence %s must be positive (%v)", ErrInvalidFactors, d.name, d.value)
		}
	}
	return nil
}
