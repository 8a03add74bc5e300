// Command ecotrip estimates household carbon footprints from the command
// line, over HTTP, or as an MCP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/ecotrip/co2calc/internal/carbon"
	"github.com/ecotrip/co2calc/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const usage = `usage: ecotrip <command> [flags]

Commands:
  calc      calculate a footprint and print or export the report
  serve     run the HTTP API
  mcp       run the MCP server on stdin/stdout
  factors   print the emission factor tables
  version   print the version

Run "ecotrip <command> -h" for command flags.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// env bundles what every command needs.
type env struct {
	cfg    config.Config
	logger zerolog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(stderr, "[ecotrip] failed to load .env: %v\n", err)
		return 1
	}
	bootstrap := config.NewLogger(os.Getenv(config.EnvLogLevel), os.Getenv(config.EnvLogFormat))
	cfg := config.Load(bootstrap)
	e := env{
		cfg:    cfg,
		logger: config.NewLogger(cfg.LogLevel, cfg.LogFormat),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	var err error
	switch args[0] {
	case "calc":
		err = runCalc(e, args[1:])
	case "serve":
		err = runServe(ctx, e, args[1:])
	case "mcp":
		err = runMCP(ctx, e, args[1:])
	case "factors":
		err = runFactors(e, args[1:])
	case "version", "-version", "--version":
		fmt.Fprintf(stdout, "ecotrip %s\n", version)
		return 0
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "[ecotrip] unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err != nil {
		if errors.Is(err, errUsage) {
			return 2
		}
		fmt.Fprintf(stderr, "[ecotrip] Error: %v\n", err)
		return 1
	}
	return 0
}

// loadEstimator builds an estimator over the built-in tables or an override file.
func (e env) loadEstimator(factorsFile string) (*carbon.Estimator, error) {
	if factorsFile == "" {
		factorsFile = e.cfg.FactorsFile
	}
	tables, err := carbon.LoadTables(factorsFile, e.logger)
	if err != nil {
		return nil, err
	}
	return carbon.NewEstimator(tables.Factors, tables.Equivalences), nil
}
