package cli

import (
	"log/slog"
	"os"

	"github.com/hyswd/mailpeek/internal/config"
	"github.com/hyswd/mailpeek/internal/output"
)

var Version = "0.1.0"

type Globals struct {
	JSON    bool   `help:"Output as JSON" name:"json"`
	Config  string `help:"Path to config file" short:"c" type:"path"`
	Verbose bool   `help:"Verbose output" short:"v"`
	Quiet   bool   `help:"Suppress non-essential output" short:"q"`
}

type CLI struct {
	Globals

	Config  ConfigCmd  `cmd:"" help:"Configuration management"`
	Fetch   FetchCmd   `cmd:"" help:"Fetch and parse all messages in a folder"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

type Context struct {
	Config    *config.Config
	Formatter *output.Formatter
	Logger    *slog.Logger
	Globals   *Globals
}

func NewContext(globals *Globals) (*Context, error) {
	formatter := output.New(globals.JSON, globals.Verbose, globals.Quiet)

	level := slog.LevelWarn
	if globals.Verbose {
		level = slog.LevelDebug
	}
	if globals.Quiet {
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var cfg *config.Config
	var err error

	if globals.Config != "" {
		cfg, err = config.Load(globals.Config)
	} else if config.Exists() {
		cfg, err = config.Load("")
	}

	if err != nil && cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Context{
		Config:    cfg,
		Formatter: formatter,
		Logger:    logger,
		Globals:   globals,
	}, nil
}

// ConfigCmd handles configuration management
type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Interactive setup wizard"`
	Show ConfigShowCmd `cmd:"" help:"Display current configuration"`
	Set  ConfigSetCmd  `cmd:"" help:"Set a configuration value"`
}

type ConfigInitCmd struct{}

type ConfigShowCmd struct{}

type ConfigSetCmd struct {
	Key   string `arg:"" help:"Configuration key (e.g., server.host, defaults.folder)"`
	Value string `arg:"" help:"Value to set"`
}

// FetchCmd reads every message in one folder without marking anything
// as seen.
type FetchCmd struct {
	Folder string `help:"Folder to read" short:"f"`
	Body   bool   `help:"Include message bodies in text output" short:"b"`
}

// VersionCmd shows version information
type VersionCmd struct{}
