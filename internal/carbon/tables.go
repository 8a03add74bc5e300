package carbon

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

//go:embed data/factors.yaml
var defaultTablesYAML []byte

// Tables bundles the two immutable coefficient tables handed to an Estimator.
type Tables struct {
	Factors      FactorTable      `json:"emission_factors" yaml:"emission_factors"`
	Equivalences EquivalenceTable `json:"equivalences" yaml:"equivalences"`
}

// Validate checks both tables.
func (t Tables) Validate() error {
	if err := t.Factors.Validate(); err != nil {
		return err
	}
	return t.Equivalences.Validate()
}

var (
	builtinTables     Tables
	builtinTablesOnce sync.Once
)

// defaultTables parses the embedded YAML once. The embedded document is part
// of the binary, so a parse failure is a build defect and panics.
func defaultTables() Tables {
	builtinTablesOnce.Do(func() {
		t, err := ParseTables(defaultTablesYAML)
		if err != nil {
			panic(fmt.Sprintf("carbon: embedded factors.yaml: %v", err))
		}
		builtinTables = t
	})
	return builtinTables
}

// DefaultTables returns the built-in factor and equivalence tables.
func DefaultTables() Tables {
	t := defaultTables()
	t.Factors = t.Factors.Clone()
	return t
}

// ParseTables decodes a YAML tables document and validates it.
func ParseTables(data []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("failed to parse factor tables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

// LoadTables returns the built-in tables when path is empty, otherwise the
// tables read from the YAML file at path. Sections absent from the file keep
// their built-in values; a section present in the file replaces the built-in
// section as a whole (a transport map lists every accepted mode).
func LoadTables(path string, logger zerolog.Logger) (Tables, error) {
	if path == "" {
		logger.Debug().Msg("using built-in emission factors")
		return DefaultTables(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("failed to read factor file %s: %w", path, err)
	}

	// Decode over the defaults so a partial file only overrides what it names.
	t := DefaultTables()
	override := struct {
		Factors struct {
			Transport   map[string]float64 `yaml:"transport"`
			Energy      *EnergyFactors     `yaml:"energy"`
			Diet        map[string]float64 `yaml:"diet"`
			Plastic     *float64           `yaml:"plastic"`
			OnlineOrder *float64           `yaml:"online_order"`
		} `yaml:"emission_factors"`
		Equivalences *EquivalenceTable `yaml:"equivalences"`
	}{}
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Tables{}, fmt.Errorf("failed to parse factor file %s: %w", path, err)
	}

	if len(override.Factors.Transport) > 0 {
		t.Factors.Transport = override.Factors.Transport
	}
	if override.Factors.Energy != nil {
		t.Factors.Energy = *override.Factors.Energy
	}
	if len(override.Factors.Diet) > 0 {
		t.Factors.Diet = override.Factors.Diet
	}
	if override.Factors.Plastic != nil {
		t.Factors.Plastic = *override.Factors.Plastic
	}
	if override.Factors.OnlineOrder != nil {
		t.Factors.OnlineOrder = *override.Factors.OnlineOrder
	}
	if override.Equivalences != nil {
		t.Equivalences = *override.Equivalences
	}

	if err := t.Validate(); err != nil {
		return Tables{}, fmt.Errorf("factor file %s: %w", path, err)
	}

	logger.Info().
		Str("path", path).
		Int("transport_modes", len(t.Factors.Transport)).
		Int("diets", len(t.Factors.Diet)).
		Msg("loaded emission factors")

	return t, nil
}
