// Package carbon provides household carbon footprint estimation from
// transport, residential energy and consumption habits.
package carbon

const (
	// WeeksPerYear scales weekly activity (commuting days, diet) to a year.
	WeeksPerYear = 52.0

	// MonthsPerYear scales monthly activity (kWh, plastic, orders) to a year.
	MonthsPerYear = 12.0

	// PercentScale converts a 0-100 share into a 0-1 fraction.
	PercentScale = 100.0

	// MaxDaysPerWeek is the upper bound for commuting days.
	MaxDaysPerWeek = 7.0

	// BrazilAverageKg is the average annual footprint of a Brazilian resident in kgCO2e.
	BrazilAverageKg = 4620.0

	// SustainableGoalKg is the annual per-capita footprint target in kgCO2e.
	SustainableGoalKg = 2500.0
)

// Transport modes accepted by the default factor table.
const (
	ModeGasolineCar = "carro-gasolina"
	ModeDieselCar   = "carro-diesel"
	ModeElectricCar = "carro-eletrico"
	ModeMotorcycle  = "moto"
	ModeBus         = "onibus"
	ModeTrain       = "trem"
	ModeBicycle     = "bicicleta"
)

// Diet choices accepted by the default factor table.
const (
	DietVegan      = "vegan"
	DietVegetarian = "vegetariana"
	DietMixed      = "mista"
	DietLowCarb    = "baixo-carboidrato"
)
