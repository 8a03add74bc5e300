// Package mcptools exposes the calculator as Model Context Protocol tools.
package mcptools

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/ecotrip/co2calc/internal/carbon"
	"github.com/ecotrip/co2calc/internal/form"
	"github.com/ecotrip/co2calc/internal/metrics"
	"github.com/ecotrip/co2calc/internal/report"
	"github.com/ecotrip/co2calc/internal/share"
)

// Tool names.
const (
	ToolCalculateFootprint = "calculate_footprint"
	ToolGetEquivalences    = "get_equivalences"
	ToolGetFactors         = "get_emission_factors"
	ToolGetShareLinks      = "get_share_links"
)

// Definition pairs a tool with its handler.
type Definition struct {
	Tool    mcp.Tool
	Handler mcpserver.ToolHandlerFunc
}

// Toolset holds the dependencies shared by the tool handlers.
type Toolset struct {
	estimator *carbon.Estimator
	schema    form.Schema
	sharer    *share.Sharer
	logger    zerolog.Logger
}

// New creates a Toolset over estimator.
func New(estimator *carbon.Estimator, sharer *share.Sharer, logger zerolog.Logger) *Toolset {
	factors := estimator.Factors()
	return &Toolset{
		estimator: estimator,
		schema:    form.NewSchema(factors.TransportModes(), factors.Diets()),
		sharer:    sharer,
		logger:    logger.With().Str("component", "mcp").Logger(),
	}
}

// FootprintOutput is the result of calculate_footprint.
type FootprintOutput struct {
	RequestID string        `json:"request_id"`
	Result    carbon.Result `json:"result"`
	View      report.View   `json:"view"`
	Share     []share.Link  `json:"share"`
}

// EquivalencesOutput is the result of get_equivalences.
type EquivalencesOutput struct {
	TotalKg      float64             `json:"total_kg"`
	Equivalences carbon.Equivalences `json:"equivalences"`
	Comparison   carbon.Comparison   `json:"comparison"`
}

// ShareOutput is the result of get_share_links.
type ShareOutput struct {
	Total string       `json:"total"`
	Links []share.Link `json:"links"`
}

// Definitions returns every tool with its handler.
func (t *Toolset) Definitions() []Definition {
	factors := t.estimator.Factors()
	return []Definition{
		{Tool: calculateFootprintTool(factors.TransportModes(), factors.Diets()), Handler: t.HandleCalculateFootprint},
		{Tool: getEquivalencesTool(), Handler: t.HandleGetEquivalences},
		{Tool: getFactorsTool(), Handler: t.HandleGetFactors},
		{Tool: getShareLinksTool(), Handler: t.HandleGetShareLinks},
	}
}

// Register adds every tool to srv.
func (t *Toolset) Register(srv *mcpserver.MCPServer) {
	for _, def := range t.Definitions() {
		t.logger.Debug().Str("tool", def.Tool.Name).Msg("registering tool")
		srv.AddTool(def.Tool, def.Handler)
	}
}

func calculateFootprintTool(modes, diets []string) mcp.Tool {
	return mcp.NewTool(ToolCalculateFootprint,
		mcp.WithDescription("Calculate a household's annual carbon footprint (kg CO2e) from commuting, electricity and consumption habits, with equivalences and a comparison against the Brazilian average"),
		mcp.WithString("transport_mode",
			mcp.Required(),
			mcp.Description("Main commuting mode"),
			mcp.Enum(modes...),
		),
		mcp.WithNumber("km_per_day", mcp.Description("Distance commuted per day in km"), mcp.Min(0)),
		mcp.WithNumber("days_per_week", mcp.Description("Commuting days per week"), mcp.Min(0), mcp.Max(carbon.MaxDaysPerWeek)),
		mcp.WithNumber("kwh_per_month", mcp.Description("Household electricity consumption in kWh per month"), mcp.Min(0)),
		mcp.WithNumber("renewable_percent", mcp.Description("Share of renewable electricity, 0-100"), mcp.Min(0), mcp.Max(100)),
		mcp.WithString("diet",
			mcp.Required(),
			mcp.Description("Diet"),
			mcp.Enum(diets...),
		),
		mcp.WithNumber("plastic_kg_per_month", mcp.Description("Plastic consumed per month in kg"), mcp.Min(0)),
		mcp.WithNumber("recycling_percent", mcp.Description("Share of plastic recycled, 0-100"), mcp.Min(0), mcp.Max(100)),
		mcp.WithNumber("orders_per_month", mcp.Description("Online orders per month"), mcp.Min(0)),
	)
}

func getEquivalencesTool() mcp.Tool {
	return mcp.NewTool(ToolGetEquivalences,
		mcp.WithDescription("Express an annual footprint in trees, flights, streaming hours, phone charges, car km and powered homes"),
		mcp.WithNumber("total_kg", mcp.Required(), mcp.Description("Annual footprint in kg CO2e"), mcp.Min(0)),
	)
}

func getFactorsTool() mcp.Tool {
	return mcp.NewTool(ToolGetFactors,
		mcp.WithDescription("Return the emission factor and equivalence tables used by the calculator"),
	)
}

func getShareLinksTool() mcp.Tool {
	return mcp.NewTool(ToolGetShareLinks,
		mcp.WithDescription("Build pre-filled share messages and share URLs for an annual footprint"),
		mcp.WithNumber("total_kg", mcp.Required(), mcp.Description("Annual footprint in kg CO2e"), mcp.Min(0)),
		mcp.WithString("target",
			mcp.Description("Single target to return; all targets when omitted"),
			mcp.Enum(string(share.TargetWhatsApp), string(share.TargetTwitter), string(share.TargetFacebook), string(share.TargetClipboard)),
		),
	)
}

// HandleCalculateFootprint implements calculate_footprint.
func (t *Toolset) HandleCalculateFootprint(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requestID := uuid.NewString()
	logger := t.logger.With().Str("tool", ToolCalculateFootprint).Str("request_id", requestID).Logger()

	var in carbon.Input
	if err := decodeArguments(req, &in); err != nil {
		logger.Warn().Err(err).Msg("invalid arguments")
		metrics.RecordCalculation(metrics.SourceMCP, 0, 0, err)
		return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
	}
	in = t.schema.Normalize(in)

	start := time.Now()
	result, err := t.estimator.Calculate(in)
	metrics.RecordCalculation(metrics.SourceMCP, time.Since(start), result.AnnualKg, err)
	if err != nil {
		if errors.Is(err, carbon.ErrInvalidInput) {
			logger.Warn().Err(err).Msg("invalid input")
			return mcp.NewToolResultError(err.Error()), nil
		}
		logger.Error().Err(err).Msg("calculation failed")
		return mcp.NewToolResultError("calculation failed"), nil
	}

	logger.Debug().Float64("annual_kg", result.AnnualKg).Msg("footprint calculated")
	return jsonResult(FootprintOutput{
		RequestID: requestID,
		Result:    result,
		View:      report.NewView(result),
		Share:     t.sharer.Links(result.AnnualKg),
	})
}

// HandleGetEquivalences implements get_equivalences.
func (t *Toolset) HandleGetEquivalences(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	total, err := totalArgument(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(EquivalencesOutput{
		TotalKg:      total,
		Equivalences: carbon.ComputeEquivalences(total, t.estimator.Equivalences()),
		Comparison:   carbon.Compare(total),
	})
}

// HandleGetFactors implements get_emission_factors.
func (t *Toolset) HandleGetFactors(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(carbon.Tables{
		Factors:      t.estimator.Factors(),
		Equivalences: t.estimator.Equivalences(),
	})
}

// HandleGetShareLinks implements get_share_links.
func (t *Toolset) HandleGetShareLinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	total, err := totalArgument(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	target, _ := req.GetArguments()["target"].(string)
	if target == "" {
		return jsonResult(ShareOutput{Total: share.FormatTotal(total), Links: t.sharer.Links(total)})
	}

	link, err := t.sharer.Link(share.Target(target), total)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(ShareOutput{Total: share.FormatTotal(total), Links: []share.Link{link}})
}

// decodeArguments round-trips the argument map through JSON into out.
func decodeArguments(req mcp.CallToolRequest, out any) error {
	raw, err := json.Marshal(req.GetArguments())
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func totalArgument(req mcp.CallToolRequest) (float64, error) {
	var args struct {
		TotalKg *float64 `json:"total_kg"`
	}
	if err := decodeArguments(req, &args); err != nil {
		return 0, fmt.Errorf("invalid arguments: %w", err)
	}
	if args.TotalKg == nil {
		return 0, errors.New("total_kg is required")
	}
	total := *args.TotalKg
	if math.IsNaN(total) || total < 0 {
		return 0, errors.New("total_kg must be a non-negative number")
	}
	return total, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError("failed to encode result"), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
