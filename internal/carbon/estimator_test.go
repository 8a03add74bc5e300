package carbon

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-9

// baseInput is a complete input with every category contributing.
func baseInput() Input {
	return Input{
		TransportMode:     ModeGasolineCar,
		KmPerDay:          10,
		DaysPerWeek:       5,
		KWhPerMonth:       300,
		RenewablePercent:  50,
		Diet:              DietVegan,
		PlasticKgPerMonth: 2,
		RecyclingPercent:  0,
		OrdersPerMonth:    1,
	}
}

func TestEstimator_TransportEmission(t *testing.T) {
	e := NewDefaultEstimator()

	tests := []struct {
		name string
		mode string
		km   float64
		days float64
		want float64
	}{
		{"gasoline car 10km x 5 days", ModeGasolineCar, 10, 5, 499.2},
		{"diesel car", ModeDieselCar, 20, 5, 20 * 5 * 52 * 0.165},
		{"bicycle is zero emission", ModeBicycle, 35, 7, 0},
		{"zero km", ModeBus, 0, 5, 0},
		{"days clamped to seven", ModeTrain, 10, 9, 10 * 7 * 52 * 0.041},
		{"negative km clamped to zero", ModeMotorcycle, -10, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			in.TransportMode = tt.mode
			in.KmPerDay = tt.km
			in.DaysPerWeek = tt.days

			got, err := e.TransportEmission(in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, delta)
		})
	}
}

func TestEstimator_TransportEmission_ZeroModeForAnyDistance(t *testing.T) {
	e := NewDefaultEstimator()

	for _, km := range []float64{0, 1, 12.5, 1000} {
		for days := 0.0; days <= MaxDaysPerWeek; days++ {
			in := baseInput()
			in.TransportMode = ModeBicycle
			in.KmPerDay = km
			in.DaysPerWeek = days

			got, err := e.TransportEmission(in)
			require.NoError(t, err)
			assert.Zero(t, got, "km=%v days=%v", km, days)
		}
	}
}

func TestEstimator_TransportEmission_ScalesLinearlyWithDays(t *testing.T) {
	e := NewDefaultEstimator()

	for _, days := range []float64{0.5, 1, 2, 3, 3.5} {
		in := baseInput()
		in.DaysPerWeek = days
		single, err := e.TransportEmission(in)
		require.NoError(t, err)

		in.DaysPerWeek = days * 2
		doubled, err := e.TransportEmission(in)
		require.NoError(t, err)

		assert.InDelta(t, single*2, doubled, delta, "days=%v", days)
	}
}

func TestEstimator_TransportEmission_UnknownMode(t *testing.T) {
	e := NewDefaultEstimator()

	in := baseInput()
	in.TransportMode = "teleporte"

	got, err := e.TransportEmission(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "teleporte")
	assert.Zero(t, got)
}

func TestEstimator_EnergyEmission(t *testing.T) {
	e := NewDefaultEstimator()

	tests := []struct {
		name      string
		kwh       float64
		renewable float64
		want      float64
	}{
		{"300 kWh at 50% renewable", 300, 50, 1746},
		{"all fossil", 100, 0, 100 * 12 * 0.92},
		{"all renewable", 100, 100, 100 * 12 * 0.05},
		{"renewable above 100 clamped", 100, 150, 100 * 12 * 0.05},
		{"renewable below 0 clamped", 100, -20, 100 * 12 * 0.92},
		{"no consumption", 0, 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			in.KWhPerMonth = tt.kwh
			in.RenewablePercent = tt.renewable

			assert.InDelta(t, tt.want, e.EnergyEmission(in), delta)
		})
	}
}

func TestWeightedEnergyFactor(t *testing.T) {
	const fossil, renewable = 0.92, 0.05

	assert.InDelta(t, fossil, WeightedEnergyFactor(0, fossil, renewable), delta)
	assert.InDelta(t, renewable, WeightedEnergyFactor(100, fossil, renewable), delta)
	assert.InDelta(t, 0.485, WeightedEnergyFactor(50, fossil, renewable), delta)

	prev := WeightedEnergyFactor(0, fossil, renewable)
	for r := 1.0; r <= 100; r++ {
		got := WeightedEnergyFactor(r, fossil, renewable)
		assert.LessOrEqual(t, got, prev, "factor must not increase at r=%v", r)
		assert.GreaterOrEqual(t, got, renewable)
		assert.LessOrEqual(t, got, fossil)
		prev = got
	}
}

func TestEstimator_ConsumptionEmission(t *testing.T) {
	e := NewDefaultEstimator()

	got, err := e.ConsumptionEmission(baseInput())
	require.NoError(t, err)

	assert.InDelta(t, 78, got.Diet, delta)
	assert.InDelta(t, 60, got.Plastic, delta)
	assert.InDelta(t, 14.4, got.Shopping, delta)
	assert.InDelta(t, 152.4, got.Total(), delta)
}

func TestEstimator_ConsumptionEmission_FullRecycling(t *testing.T) {
	e := NewDefaultEstimator()

	for _, plastic := range []float64{0, 1, 7.5, 500} {
		in := baseInput()
		in.PlasticKgPerMonth = plastic
		in.RecyclingPercent = 100

		got, err := e.ConsumptionEmission(in)
		require.NoError(t, err)
		assert.Zero(t, got.Plastic, "plastic=%v", plastic)
	}

	// Out-of-range recycling share is clamped to 100
	in := baseInput()
	in.RecyclingPercent = 250
	got, err := e.ConsumptionEmission(in)
	require.NoError(t, err)
	assert.Zero(t, got.Plastic)
}

func TestEstimator_ConsumptionEmission_Diets(t *testing.T) {
	e := NewDefaultEstimator()

	tests := []struct {
		diet string
		want float64
	}{
		{DietVegan, 1.5 * 52},
		{DietVegetarian, 2.8 * 52},
		{DietMixed, 4.5 * 52},
		{DietLowCarb, 6.2 * 52},
	}

	for _, tt := range tests {
		t.Run(tt.diet, func(t *testing.T) {
			in := baseInput()
			in.Diet = tt.diet

			got, err := e.ConsumptionEmission(in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.Diet, delta)
		})
	}
}

func TestEstimator_ConsumptionEmission_InvalidDiet(t *testing.T) {
	e := NewDefaultEstimator()

	tests := []struct {
		name    string
		diet    string
		wantMsg string
	}{
		{"no diet selected", "", "no diet selected"},
		{"unknown diet", "carnivora", `unknown diet "carnivora"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			in.Diet = tt.diet

			_, err := e.ConsumptionEmission(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestEstimator_Calculate(t *testing.T) {
	e := NewDefaultEstimator()

	got, err := e.Calculate(baseInput())
	require.NoError(t, err)

	wantAnnual := 499.2 + 1746 + 152.4
	assert.InDelta(t, 499.2, got.TransportKg, delta)
	assert.InDelta(t, 1746, got.EnergyKg, delta)
	assert.InDelta(t, 152.4, got.ConsumptionKg, delta)
	assert.InDelta(t, wantAnnual, got.AnnualKg, delta)
	assert.InDelta(t, wantAnnual/12, got.MonthlyKg, delta)

	sum := got.Percentages.Transport + got.Percentages.Energy + got.Percentages.Consumption
	assert.InDelta(t, 100, sum, 1e-6)

	assert.Equal(t, ComputeEquivalences(wantAnnual, DefaultEquivalences()), got.Equivalences)
	assert.False(t, got.Comparison.AboveAverage)
	assert.True(t, got.Comparison.WithinGoal)
}

func TestEstimator_Calculate_MissingDietSkipsCalculation(t *testing.T) {
	e := NewDefaultEstimator()

	in := baseInput()
	in.Diet = ""

	got, err := e.Calculate(in)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, Result{}, got, "no partial result on invalid input")
}

func TestEstimator_Calculate_Overflow(t *testing.T) {
	e := NewDefaultEstimator()

	tests := []struct {
		name   string
		mutate func(in *Input)
	}{
		{"huge commute", func(in *Input) { in.KmPerDay = 1e308 }},
		{"huge commute on zero-emission mode", func(in *Input) {
			in.TransportMode = ModeBicycle
			in.KmPerDay = math.MaxFloat64
		}},
		{"huge electricity use", func(in *Input) { in.KWhPerMonth = 1e308 }},
		{"infinite orders", func(in *Input) { in.OrdersPerMonth = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			tt.mutate(&in)

			got, err := e.Calculate(in)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), "overflow")
			assert.Equal(t, Result{}, got)
		})
	}
}

func TestEstimator_Calculate_CopiesTables(t *testing.T) {
	factors := DefaultFactors()
	e := NewEstimator(factors, DefaultEquivalences())

	// Mutating the caller's map must not affect the estimator
	factors.Transport[ModeGasolineCar] = 100

	got, err := e.TransportEmission(baseInput())
	require.NoError(t, err)
	assert.InDelta(t, 499.2, got, delta)
}

func TestCategoryPercentages(t *testing.T) {
	tests := []struct {
		name                           string
		transport, energy, consumption float64
		want                           Percentages
	}{
		{"all zero yields zero, not NaN", 0, 0, 0, Percentages{}},
		{"single category", 0, 50, 0, Percentages{Energy: 100}},
		{"even split", 10, 10, 20, Percentages{Transport: 25, Energy: 25, Consumption: 50}},
		{"infinite sum yields zero, not NaN", math.Inf(1), 10, 0, Percentages{}},
		{"NaN sum yields zero", math.NaN(), 10, 0, Percentages{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategoryPercentages(tt.transport, tt.energy, tt.consumption)
			assert.InDelta(t, tt.want.Transport, got.Transport, delta)
			assert.InDelta(t, tt.want.Energy, got.Energy, delta)
			assert.InDelta(t, tt.want.Consumption, got.Consumption, delta)
		})
	}
}

func TestCategoryPercentages_SumTo100(t *testing.T) {
	samples := [][3]float64{
		{499.2, 1746, 152.4},
		{0.001, 0, 0},
		{1e6, 3, 0.5},
		{12.3, 45.6, 78.9},
	}

	for _, s := range samples {
		got := CategoryPercentages(s[0], s[1], s[2])
		assert.InDelta(t, 100, got.Transport+got.Energy+got.Consumption, 1e-9, "sample=%v", s)
	}
}
