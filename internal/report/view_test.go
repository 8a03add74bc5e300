package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrip/co2calc/internal/carbon"
)

func sampleResult(t *testing.T) carbon.Result {
	t.Helper()
	r, err := carbon.NewDefaultEstimator().Calculate(carbon.Input{
		TransportMode:     carbon.ModeGasolineCar,
		KmPerDay:          10,
		DaysPerWeek:       5,
		KWhPerMonth:       300,
		RenewablePercent:  50,
		Diet:              carbon.DietVegan,
		PlasticKgPerMonth: 2,
		OrdersPerMonth:    1,
	})
	require.NoError(t, err)
	return r
}

func TestNewView(t *testing.T) {
	r := sampleResult(t)
	v := NewView(r)

	assert.Equal(t, "2398", v.Annual)
	assert.Equal(t, "199.8", v.Monthly)
	assert.Equal(t, "2.397,60", v.AnnualBR)
	assert.InDelta(t, 2397.6, v.AnnualKg, 1e-9)

	require.Len(t, v.Categories, 3)
	assert.Equal(t, "transport", v.Categories[0].Key)
	assert.Equal(t, "499", v.Categories[0].Display)
	assert.Equal(t, "1746", v.Categories[1].Display)
	assert.Equal(t, "152", v.Categories[2].Display)

	sum := 0.0
	for _, c := range v.Categories {
		sum += c.Percent
	}
	assert.InDelta(t, 100, sum, 1e-9)

	require.Len(t, v.Equivalences, 6)
	keys := make([]string, 0, len(v.Equivalences))
	for _, e := range v.Equivalences {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"trees", "flights", "streaming_hours", "phone_charges", "car_km", "heated_homes"}, keys)

	assert.Equal(t, "51.9%", v.ComparisonBar)
	assert.Equal(t, "Dentro da meta sustentável", v.Verdict)
}

func TestNewView_ZeroResult(t *testing.T) {
	v := NewView(carbon.Result{})

	assert.Equal(t, "0", v.Annual)
	assert.Equal(t, "0.0", v.Monthly)
	assert.Equal(t, "0,00", v.AnnualBR)
	assert.Equal(t, "0.0%", v.ComparisonBar)
	for _, c := range v.Categories {
		assert.Zero(t, c.Percent)
	}
}

func TestVerdict(t *testing.T) {
	tests := []struct {
		name string
		c    carbon.Comparison
		want string
	}{
		{"within goal", carbon.Comparison{WithinGoal: true}, "Dentro da meta sustentável"},
		{"above average", carbon.Comparison{AboveAverage: true}, "Acima da média brasileira"},
		{"between goal and average", carbon.Comparison{}, "Abaixo da média brasileira, acima da meta sustentável"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, verdict(tt.c))
		})
	}
}

func TestView_Rows(t *testing.T) {
	v := NewView(sampleResult(t))
	rows := v.Rows()

	// totals + categories + equivalences + comparison
	require.Len(t, rows, 2+3+6+3)
	assert.Equal(t, "Emissão anual", rows[0].Item)
	assert.Equal(t, v.Annual, rows[0].Display)
	assert.InDelta(t, v.AnnualKg, rows[0].Value, 1e-9)

	last := rows[len(rows)-1]
	assert.Equal(t, "Comparativo", last.Section)
	assert.Equal(t, "%", last.Unit)
}
