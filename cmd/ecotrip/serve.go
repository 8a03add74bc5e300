package main

import (
	"context"

	"github.com/ecotrip/co2calc/internal/mcptools"
	"github.com/ecotrip/co2calc/internal/server"
	"github.com/ecotrip/co2calc/internal/share"
)

func runServe(ctx context.Context, e env, args []string) error {
	fs := newFlagSet("serve", e.stderr)
	addr := fs.String("addr", e.cfg.HTTPAddr, "listen address")
	factorsFile := fs.String("factors", "", "YAML file overriding the emission factors")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	estimator, err := e.loadEstimator(*factorsFile)
	if err != nil {
		return err
	}

	cfg := e.cfg
	cfg.HTTPAddr = *addr
	return server.New(estimator, cfg, e.logger).Run(ctx)
}

func runMCP(ctx context.Context, e env, args []string) error {
	fs := newFlagSet("mcp", e.stderr)
	factorsFile := fs.String("factors", "", "YAML file overriding the emission factors")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	estimator, err := e.loadEstimator(*factorsFile)
	if err != nil {
		return err
	}

	tools := mcptools.New(estimator, share.NewSharer(e.cfg.ShareSite), e.logger)
	return tools.Serve(ctx, version, e.stdin, e.stdout)
}
