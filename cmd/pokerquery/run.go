package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/pokerquery/internal/config"
	"github.com/lox/pokerquery/internal/runner"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)

// RunCmd executes PQL statements given inline, from a file, or from a
// named query in the config.
type RunCmd struct {
	Query   []string `arg:"" optional:"" help:"PQL statements to execute"`
	File    string   `short:"f" help:"Read statements from a file"`
	Name    string   `short:"n" help:"Run a named query from the config file"`
	Config  string   `short:"c" default:"pokerquery.hcl" help:"HCL config file"`
	Trials  int      `short:"t" help:"Number of Monte Carlo trials"`
	Workers int      `short:"w" help:"Number of worker goroutines (default: CPUs)"`
	Seed    int64    `help:"Seed for deterministic sampling"`
	Debug   bool     `short:"d" help:"Enable debug logging"`
}

func (c *RunCmd) Run() error {
	logger := newLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	src, err := c.source(cfg)
	if err != nil {
		return err
	}

	r := runner.New(runner.Options{
		Trials:  firstPositive(c.Trials, cfg.Trials),
		Workers: firstPositive(c.Workers, cfg.Workers),
		Seed:    firstNonZero(c.Seed, cfg.Seed),
		Logger:  logger,
	})

	start := time.Now()
	err = r.Run(src, styledWriter{}, os.Stderr)
	logger.Debug("finished", "elapsed", time.Since(start))
	return err
}

// source resolves, in priority order, the inline query, the query file,
// or a named config query.
func (c *RunCmd) source(cfg *config.Config) (string, error) {
	if len(c.Query) > 0 {
		return strings.Join(c.Query, " "), nil
	}

	if c.File != "" {
		data, err := os.ReadFile(c.File)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", c.File, err)
		}
		return string(data), nil
	}

	if c.Name != "" {
		q, ok := cfg.Query(c.Name)
		if !ok {
			return "", fmt.Errorf("no query named %q in %s", c.Name, c.Config)
		}
		return q.PQL, nil
	}

	return "", fmt.Errorf("nothing to run: pass statements, --file or --name")
}

// styledWriter renders "name = value" result lines with the name
// highlighted.
type styledWriter struct{}

func (styledWriter) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	if name, value, ok := strings.Cut(line, " = "); ok {
		fmt.Printf("%s = %s\n", headerStyle.Render(name), valueStyle.Render(value))
	} else {
		fmt.Println(line)
	}
	return len(p), nil
}

func newLogger(debug bool) *log.Logger {
	logger := log.New(os.Stderr)
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

func firstNonZero(vals ...int64) int64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}
