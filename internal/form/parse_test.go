package form

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrip/co2calc/internal/carbon"
)

func testSchema() Schema {
	f := carbon.DefaultFactors()
	return NewSchema(f.TransportModes(), f.Diets())
}

func validValues() url.Values {
	return url.Values{
		FieldTransportMode: {"carro-gasolina"},
		FieldKmPerDay:      {"10"},
		FieldDaysPerWeek:   {"5"},
		FieldKWhPerMonth:   {"300"},
		FieldRenewable:     {"50"},
		FieldDiet:          {"vegan"},
		FieldPlastic:       {"2"},
		FieldRecycling:     {"0"},
		FieldOrders:        {"1"},
	}
}

func TestSchema_Parse(t *testing.T) {
	got, err := testSchema().Parse(validValues())
	require.NoError(t, err)

	assert.Equal(t, carbon.Input{
		TransportMode:     "carro-gasolina",
		KmPerDay:          10,
		DaysPerWeek:       5,
		KWhPerMonth:       300,
		RenewablePercent:  50,
		Diet:              "vegan",
		PlasticKgPerMonth: 2,
		RecyclingPercent:  0,
		OrdersPerMonth:    1,
	}, got)
}

func TestSchema_Parse_LenientAndClamped(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		check func(t *testing.T, in carbon.Input)
	}{
		{"empty km is zero", FieldKmPerDay, "", func(t *testing.T, in carbon.Input) {
			assert.Zero(t, in.KmPerDay)
		}},
		{"non-numeric kWh is zero", FieldKWhPerMonth, "muito", func(t *testing.T, in carbon.Input) {
			assert.Zero(t, in.KWhPerMonth)
		}},
		{"decimal comma accepted", FieldPlastic, "1,5", func(t *testing.T, in carbon.Input) {
			assert.Equal(t, 1.5, in.PlasticKgPerMonth)
		}},
		{"days above max clamped", FieldDaysPerWeek, "12", func(t *testing.T, in carbon.Input) {
			assert.Equal(t, 7.0, in.DaysPerWeek)
		}},
		{"negative km raised to min", FieldKmPerDay, "-4", func(t *testing.T, in carbon.Input) {
			assert.Zero(t, in.KmPerDay)
		}},
		{"renewable above 100 clamped", FieldRenewable, "180", func(t *testing.T, in carbon.Input) {
			assert.Equal(t, 100.0, in.RenewablePercent)
		}},
		{"recycling below 0 clamped", FieldRecycling, "-1", func(t *testing.T, in carbon.Input) {
			assert.Zero(t, in.RecyclingPercent)
		}},
		{"orders have no max", FieldOrders, "500", func(t *testing.T, in carbon.Input) {
			assert.Equal(t, 500.0, in.OrdersPerMonth)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validValues()
			values.Set(tt.field, tt.value)

			got, err := testSchema().Parse(values)
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestSchema_Parse_Diet(t *testing.T) {
	tests := []struct {
		name    string
		diet    []string
		want    string
		wantErr string
	}{
		{"single option", []string{"mista"}, "mista", ""},
		{"same option sent twice", []string{"mista", "mista"}, "mista", ""},
		{"blank entries ignored", []string{"", "vegetariana"}, "vegetariana", ""},
		{"none selected", nil, "", "no diet selected"},
		{"only blanks", []string{" "}, "", "no diet selected"},
		{"two options", []string{"vegan", "mista"}, "", "more than one option"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validValues()
			values[FieldDiet] = tt.diet

			got, err := testSchema().Parse(values)
			if tt.wantErr != "" {
				require.ErrorIs(t, err, carbon.ErrInvalidInput)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, carbon.Input{}, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Diet)
		})
	}
}

func TestSchema_Normalize(t *testing.T) {
	in := carbon.Input{
		TransportMode:    " moto ",
		KmPerDay:         -1,
		DaysPerWeek:      8,
		RenewablePercent: 120,
		RecyclingPercent: -5,
		Diet:             "vegan ",
		OrdersPerMonth:   3,
	}

	got := testSchema().Normalize(in)

	assert.Equal(t, "moto", got.TransportMode)
	assert.Equal(t, "vegan", got.Diet)
	assert.Zero(t, got.KmPerDay)
	assert.Equal(t, 7.0, got.DaysPerWeek)
	assert.Equal(t, 100.0, got.RenewablePercent)
	assert.Zero(t, got.RecyclingPercent)
	assert.Equal(t, 3.0, got.OrdersPerMonth)
}

func TestSchema_Fields(t *testing.T) {
	s := testSchema()
	assert.Len(t, s, 9)

	diet, ok := s.Field(FieldDiet)
	require.True(t, ok)
	assert.Equal(t, KindRadio, diet.Kind)
	assert.Contains(t, diet.Options, "vegan")
	assert.False(t, diet.Numeric())

	days, ok := s.Field(FieldDaysPerWeek)
	require.True(t, ok)
	require.NotNil(t, days.Max)
	assert.Equal(t, 7.0, *days.Max)
	assert.True(t, days.Numeric())

	_, ok = s.Field("unknown")
	assert.False(t, ok)
}

func TestField_Bound(t *testing.T) {
	open := Field{Name: "open", Kind: KindNumber}
	assert.Equal(t, -3.0, open.Bound(-3))
	assert.Equal(t, 1e9, open.Bound(1e9))

	ranged := Field{Name: "r", Kind: KindRange, Min: bound(0), Max: bound(100)}
	assert.Equal(t, 0.0, ranged.Bound(-1))
	assert.Equal(t, 100.0, ranged.Bound(101))
	assert.Equal(t, 42.0, ranged.Bound(42))
}
