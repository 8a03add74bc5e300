package form

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ecotrip/co2calc/internal/carbon"
)

// Parse maps submitted form values onto a carbon.Input.
//
// Numeric fields go through carbon.ParseOrZero and are then clamped to the
// field bounds, so empty, non-numeric and out-of-range values never fail.
// The diet radio group must carry exactly one value: none, or two different
// values, returns an error wrapping carbon.ErrInvalidInput.
func (s Schema) Parse(values url.Values) (carbon.Input, error) {
	diet, err := singleChoice(values, FieldDiet)
	if err != nil {
		return carbon.Input{}, err
	}

	return carbon.Input{
		TransportMode:     strings.TrimSpace(values.Get(FieldTransportMode)),
		KmPerDay:          s.number(values, FieldKmPerDay),
		DaysPerWeek:       s.number(values, FieldDaysPerWeek),
		KWhPerMonth:       s.number(values, FieldKWhPerMonth),
		RenewablePercent:  s.number(values, FieldRenewable),
		Diet:              diet,
		PlasticKgPerMonth: s.number(values, FieldPlastic),
		RecyclingPercent:  s.number(values, FieldRecycling),
		OrdersPerMonth:    s.number(values, FieldOrders),
	}, nil
}

// number reads, coerces and bounds one numeric field.
func (s Schema) number(values url.Values, name string) float64 {
	v := carbon.ParseOrZero(values.Get(name))
	if f, ok := s.Field(name); ok {
		return f.Bound(v)
	}
	return v
}

// singleChoice returns the one non-empty value of a radio group.
func singleChoice(values url.Values, name string) (string, error) {
	var chosen string
	for _, v := range values[name] {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if chosen != "" && v != chosen {
			return "", fmt.Errorf("%w: %s has more than one option selected", carbon.ErrInvalidInput, name)
		}
		chosen = v
	}
	if chosen == "" {
		return "", fmt.Errorf("%w: no diet selected", carbon.ErrInvalidInput)
	}
	return chosen, nil
}

// Normalize applies the schema bounds to an input that did not come through
// Parse (for example a JSON body), so every front end sees the same clamping.
func (s Schema) Normalize(in carbon.Input) carbon.Input {
	apply := func(name string, v float64) float64 {
		if f, ok := s.Field(name); ok {
			return f.Bound(v)
		}
		return v
	}

	in.TransportMode = strings.TrimSpace(in.TransportMode)
	in.Diet = strings.TrimSpace(in.Diet)
	in.KmPerDay = apply(FieldKmPerDay, in.KmPerDay)
	in.DaysPerWeek = apply(FieldDaysPerWeek, in.DaysPerWeek)
	in.KWhPerMonth = apply(FieldKWhPerMonth, in.KWhPerMonth)
	in.RenewablePercent = apply(FieldRenewable, in.RenewablePercent)
	in.PlasticKgPerMonth = apply(FieldPlastic, in.PlasticKgPerMonth)
	in.RecyclingPercent = apply(FieldRecycling, in.RecyclingPercent)
	in.OrdersPerMonth = apply(FieldOrders, in.OrdersPerMonth)
	return in
}
