package main

import (
	"github.com/lox/pokerquery/internal/config"
	"github.com/lox/pokerquery/internal/runner"
	"github.com/lox/pokerquery/internal/server"
)

// ServeCmd runs the websocket query service.
type ServeCmd struct {
	Addr    string `short:"a" default:"localhost:8080" help:"Listen address"`
	Config  string `short:"c" default:"pokerquery.hcl" help:"HCL config file"`
	Trials  int    `short:"t" help:"Number of Monte Carlo trials per query"`
	Workers int    `short:"w" help:"Number of worker goroutines (default: CPUs)"`
	Seed    int64  `help:"Seed for deterministic sampling"`
	Debug   bool   `short:"d" help:"Enable debug logging"`
}

func (c *ServeCmd) Run() error {
	logger := newLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	r := runner.New(runner.Options{
		Trials:  firstPositive(c.Trials, cfg.Trials),
		Workers: firstPositive(c.Workers, cfg.Workers),
		Seed:    firstNonZero(c.Seed, cfg.Seed),
		Logger:  logger,
	})

	return server.New(r, logger).ListenAndServe(c.Addr)
}
