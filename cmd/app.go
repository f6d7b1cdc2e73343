// Package cmd implements the wlt command line application.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/wealth/config"
	"github.com/etnz/wealth/logger"
	"github.com/etnz/wealth/report"
	"github.com/google/subcommands"
)

// EnvConfig is the environment variable holding the default configuration file.
const EnvConfig = "WEALTH_CONFIG"

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", defaultConfig(), "Path to the YAML configuration file")
	Verbose    = flag.Bool("v", false, "Verbose logging, overrides the configured log level")
	jsonLog    = flag.Bool("json-log", false, "Write logs as JSON")
	raw        = flag.Bool("raw", false, "Print raw markdown instead of rendering it for the terminal")
)

// stdout is where reports are printed.
var stdout io.Writer = os.Stdout

func defaultConfig() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return "wealth.yaml"
}

// Commands are all the wlt subcommands.
var Commands = []subcommands.Command{
	&windowCmd{},
	&networthCmd{},
	&performanceCmd{},
	&positionsCmd{},
	&spendingCmd{},
	&flowCmd{},
	&topicCmd{},
	&assistCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		group := "reports"
		switch cmd.Name() {
		case "topic", "assist":
			group = "help"
		}
		c.Register(cmd, group)
	}
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
}

// setup loads the configuration and initializes the logger.
func setup() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	level := "info"
	if err == nil {
		level = cfg.LogLevel
	}
	if *Verbose {
		level = "debug"
	}
	logger.Init(os.Stderr, level, *jsonLog)
	if err != nil {
		return nil, fmt.Errorf("could not load configuration %q: %w", *configFile, err)
	}
	slog.Debug("configuration loaded", "file", *configFile, "workbook", cfg.Workbook)
	return cfg, nil
}

// loadReports loads the configuration and the workbook.
func loadReports() (*report.Builder, subcommands.ExitStatus) {
	cfg, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	b, err := report.Load(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return b, subcommands.ExitSuccess
}

// renderMarkdown renders md for the terminal, unless raw output is requested.
func renderMarkdown(md string) (string, error) {
	if *raw {
		return md, nil
	}
	return glamour.Render(md, "auto")
}

func printMarkdown(md string) {
	out, err := renderMarkdown(md)
	if err != nil {
		slog.Warn("could not render markdown", "error", err)
		out = md
	}
	fmt.Fprint(stdout, out)
}
