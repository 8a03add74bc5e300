// Package form is the input boundary of the calculator: it maps submitted
// form fields onto a carbon.Input.
package form

import "math"

// Form field names, matching the calculator page.
const (
	FieldTransportMode = "transport-type"
	FieldKmPerDay      = "km-diarios"
	FieldDaysPerWeek   = "dias-semana"
	FieldKWhPerMonth   = "kwh-mensal"
	FieldRenewable     = "energia-renovavel"
	FieldDiet          = "dieta"
	FieldPlastic       = "consumo-plastico"
	FieldRecycling     = "reciclagem"
	FieldOrders        = "compras-online"
)

// Kind is the declared type of a form field.
type Kind string

const (
	KindNumber Kind = "number"
	KindRange  Kind = "range"
	KindSelect Kind = "select"
	KindRadio  Kind = "radio"
)

// Field declares one form field and its optional numeric bounds.
type Field struct {
	Name  string   `json:"name"`
	Kind  Kind     `json:"kind"`
	Label string   `json:"label"`
	Unit  string   `json:"unit,omitempty"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`

	// Options lists the accepted values of select and radio fields.
	Options []string `json:"options,omitempty"`
}

// Bound clamps v the way a browser number input does: values below Min are
// raised to Min, values above Max are lowered to Max. A nil bound is open.
func (f Field) Bound(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if f.Min != nil && v < *f.Min {
		return *f.Min
	}
	if f.Max != nil && v > *f.Max {
		return *f.Max
	}
	return v
}

// Numeric reports whether the field carries a number.
func (f Field) Numeric() bool {
	return f.Kind == KindNumber || f.Kind == KindRange
}

func bound(v float64) *float64 { return &v }

// Schema is the ordered list of fields making up the calculator form.
type Schema []Field

// Field returns the named field.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// NewSchema builds the calculator form schema. The enumerated fields list the
// transport modes and diets of the active factor table.
func NewSchema(transportModes, diets []string) Schema {
	return Schema{
		{Name: FieldTransportMode, Kind: KindSelect, Label: "Meio de transporte", Options: transportModes},
		{Name: FieldKmPerDay, Kind: KindNumber, Label: "Km por dia", Unit: "km", Min: bound(0)},
		{Name: FieldDaysPerWeek, Kind: KindNumber, Label: "Dias por semana", Unit: "dias", Min: bound(0), Max: bound(7)},
		{Name: FieldKWhPerMonth, Kind: KindNumber, Label: "Consumo mensal", Unit: "kWh", Min: bound(0)},
		{Name: FieldRenewable, Kind: KindRange, Label: "Energia renovável", Unit: "%", Min: bound(0), Max: bound(100)},
		{Name: FieldDiet, Kind: KindRadio, Label: "Dieta", Options: diets},
		{Name: FieldPlastic, Kind: KindNumber, Label: "Plástico por mês", Unit: "kg", Min: bound(0)},
		{Name: FieldRecycling, Kind: KindRange, Label: "Reciclagem", Unit: "%", Min: bound(0), Max: bound(100)},
		{Name: FieldOrders, Kind: KindNumber, Label: "Compras online por mês", Unit: "pedidos", Min: bound(0)},
	}
}
