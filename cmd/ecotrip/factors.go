package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/ecotrip/co2calc/internal/carbon"
)

func runFactors(e env, args []string) error {
	fs := newFlagSet("factors", e.stderr)
	format := fs.String("format", "yaml", "output format: yaml or json")
	factorsFile := fs.String("factors", "", "YAML file overriding the emission factors")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	estimator, err := e.loadEstimator(*factorsFile)
	if err != nil {
		return err
	}
	tables := carbon.Tables{Factors: estimator.Factors(), Equivalences: estimator.Equivalences()}

	switch *format {
	case "yaml":
		enc := yaml.NewEncoder(e.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(tables); err != nil {
			return fmt.Errorf("failed to encode tables: %w", err)
		}
		return enc.Close()
	case "json":
		b, err := json.MarshalIndent(tables, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode tables: %w", err)
		}
		_, err = fmt.Fprintf(e.stdout, "%s\n", b)
		return err
	default:
		return fmt.Errorf("unknown factors format %q", *format)
	}
}
