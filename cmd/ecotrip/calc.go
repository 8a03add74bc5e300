package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/ecotrip/co2calc/internal/carbon"
	"github.com/ecotrip/co2calc/internal/form"
	"github.com/ecotrip/co2calc/internal/metrics"
	"github.com/ecotrip/co2calc/internal/report"
	"github.com/ecotrip/co2calc/internal/share"
)

const formatJSON = "json"

// calcOutput is the JSON shape of "ecotrip calc -format json".
type calcOutput struct {
	Result carbon.Result `json:"result"`
	View   report.View   `json:"view"`
	Share  []share.Link  `json:"share"`
}

func runCalc(e env, args []string) error {
	fs := newFlagSet("calc", e.stderr)

	// Values are read as text so the form's lenient parsing applies.
	fields := []struct{ flag, field, def, help string }{
		{"transport", form.FieldTransportMode, carbon.ModeGasolineCar, "transport mode"},
		{"km", form.FieldKmPerDay, "0", "km commuted per day"},
		{"days", form.FieldDaysPerWeek, "0", "commuting days per week"},
		{"kwh", form.FieldKWhPerMonth, "0", "electricity in kWh per month"},
		{"renewable", form.FieldRenewable, "0", "renewable electricity share, 0-100"},
		{"diet", form.FieldDiet, "", "diet"},
		{"plastic", form.FieldPlastic, "0", "plastic in kg per month"},
		{"recycling", form.FieldRecycling, "0", "recycled plastic share, 0-100"},
		{"orders", form.FieldOrders, "0", "online orders per month"},
	}
	values := make(map[string]*string, len(fields))
	for _, f := range fields {
		values[f.field] = fs.String(f.flag, f.def, f.help)
	}
	format := fs.String("format", "", "output format: text, json, csv, xlsx or pdf (default from -o, else text)")
	output := fs.String("o", "", "write the report to this file instead of stdout")
	factorsFile := fs.String("factors", "", "YAML file overriding the emission factors")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	estimator, err := e.loadEstimator(*factorsFile)
	if err != nil {
		return err
	}

	factors := estimator.Factors()
	schema := form.NewSchema(factors.TransportModes(), factors.Diets())

	submitted := url.Values{}
	for name, v := range values {
		submitted.Set(name, *v)
	}
	in, err := schema.Parse(submitted)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := estimator.Calculate(in)
	metrics.RecordCalculation(metrics.SourceCLI, time.Since(start), result.AnnualKg, err)
	if err != nil {
		return err
	}
	e.logger.Debug().Float64("annual_kg", result.AnnualKg).Msg("footprint calculated")

	name := *format
	if name == "" && *output != "" {
		if f, err := report.FormatFromPath(*output); err == nil {
			name = string(f)
		} else if filepath.Ext(*output) == "."+formatJSON {
			name = formatJSON
		}
	}
	if name == "" {
		name = string(report.FormatText)
	}

	sharer := share.NewSharer(e.cfg.ShareSite)
	if *output == "" {
		return writeCalc(e.stdout, name, result, sharer)
	}
	if err := writeCalcFile(*output, name, result, sharer); err != nil {
		return err
	}
	e.logger.Info().Str("path", *output).Str("format", name).Msg("report written")
	return nil
}

// writeCalcFile writes the report to path. On failure no partial file is
// left behind.
func writeCalcFile(path, name string, result carbon.Result, sharer *share.Sharer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	return writeCalc(f, name, result, sharer)
}

func writeCalc(w io.Writer, name string, result carbon.Result, sharer *share.Sharer) error {
	view := report.NewView(result)

	if name == formatJSON {
		b, err := json.MarshalIndent(calcOutput{Result: result, View: view, Share: sharer.Links(result.AnnualKg)}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	}

	f, err := report.ParseFormat(name)
	if err != nil {
		return err
	}
	if err := report.Write(w, f, view); err != nil {
		return err
	}
	metrics.RecordExport(string(f))

	if f == report.FormatText {
		fmt.Fprintf(w, "\nCompartilhe:\n%s\n", sharer.Clipboard(share.FormatTotal(result.AnnualKg)).Message)
	}
	return nil
}
