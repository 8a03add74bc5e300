package carbon

// Input is the User Input Record collected by the calculator form.
// Percent fields are expressed on a 0-100 scale.
type Input struct {
	// TransportMode is the key into FactorTable.Transport (e.g., "carro-gasolina").
	TransportMode string `json:"transport_mode" yaml:"transport_mode"`

	// KmPerDay is the distance travelled per commuting day.
	KmPerDay float64 `json:"km_per_day" yaml:"km_per_day"`

	// DaysPerWeek is the number of commuting days per week (0-7).
	DaysPerWeek float64 `json:"days_per_week" yaml:"days_per_week"`

	// KWhPerMonth is the residential electricity consumption.
	KWhPerMonth float64 `json:"kwh_per_month" yaml:"kwh_per_month"`

	// RenewablePercent is the share of electricity from renewable sources (0-100).
	RenewablePercent float64 `json:"renewable_percent" yaml:"renewable_percent"`

	// Diet is the key into FactorTable.Diet. Exactly one diet must be chosen.
	Diet string `json:"diet" yaml:"diet"`

	// PlasticKgPerMonth is the plastic consumed per month.
	PlasticKgPerMonth float64 `json:"plastic_kg_per_month" yaml:"plastic_kg_per_month"`

	// RecyclingPercent is the share of plastic that is recycled (0-100).
	RecyclingPercent float64 `json:"recycling_percent" yaml:"recycling_percent"`

	// OrdersPerMonth is the number of online orders per month.
	OrdersPerMonth float64 `json:"orders_per_month" yaml:"orders_per_month"`
}

// ConsumptionBreakdown splits the consumption category into its parts, in kgCO2e/year.
type ConsumptionBreakdown struct {
	Diet     float64 `json:"diet_kg"`
	Plastic  float64 `json:"plastic_kg"`
	Shopping float64 `json:"shopping_kg"`
}

// Total returns diet + plastic + shopping.
func (b ConsumptionBreakdown) Total() float64 {
	return b.Diet + b.Plastic + b.Shopping
}

// Percentages is the share of each category in the total, on a 0-100 scale.
type Percentages struct {
	Transport   float64 `json:"transport"`
	Energy      float64 `json:"energy"`
	Consumption float64 `json:"consumption"`
}

// Equivalences expresses an annual footprint in everyday comparison units.
type Equivalences struct {
	// Trees is the number of trees needed to absorb the footprint in one year.
	Trees float64 `json:"trees"`

	// Flights is the number of long-haul round trips, rounded to one decimal.
	Flights float64 `json:"flights"`

	// StreamingHours is the number of hours of 4K video streaming.
	StreamingHours float64 `json:"streaming_hours"`

	// PhoneCharges is the number of full smartphone charges.
	PhoneCharges float64 `json:"phone_charges"`

	// CarKm is the distance driven in a gasoline car.
	CarKm float64 `json:"car_km"`

	// HeatedHomes is the number of average homes powered for a year, rounded to one decimal.
	HeatedHomes float64 `json:"heated_homes"`
}

// Comparison positions an annual footprint against reference values.
type Comparison struct {
	AverageKg        float64 `json:"average_kg"`
	GoalKg           float64 `json:"goal_kg"`
	PercentOfAverage float64 `json:"percent_of_average"`

	// BarWidthPercent is PercentOfAverage capped at 100 for display.
	BarWidthPercent float64 `json:"bar_width_percent"`
	AboveAverage    bool    `json:"above_average"`
	WithinGoal      bool    `json:"within_goal"`
}

// Result is the Result Record produced by one calculation. All masses are kgCO2e.
type Result struct {
	AnnualKg      float64              `json:"annual_kg"`
	MonthlyKg     float64              `json:"monthly_kg"`
	TransportKg   float64              `json:"transport_kg"`
	EnergyKg      float64              `json:"energy_kg"`
	ConsumptionKg float64              `json:"consumption_kg"`
	Consumption   ConsumptionBreakdown `json:"consumption"`
	Percentages   Percentages          `json:"percentages"`
	Equivalences  Equivalences         `json:"equivalences"`
	Comparison    Comparison           `json:"comparison"`
}
