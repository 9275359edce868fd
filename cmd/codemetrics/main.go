// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

// Command codemetrics measures Java and C-family source trees.
//
// Subcommands:
//
//   - analyze: scan a source tree, compute metrics and persist a JSON report
//   - report:  render the last saved report (text, json, yaml, markdown, dot)
//   - metrics: list the available metric groups and identifiers
//   - block:   print one brace-delimited block of a file and its complexity
//   - version: print the build version
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	gitadapter "github.com/rafaelvolkmer/codemetrics/internal/adapter/git"
	"github.com/rafaelvolkmer/codemetrics/internal/adapter/manifest"
	outputadapter "github.com/rafaelvolkmer/codemetrics/internal/adapter/output"
	"github.com/rafaelvolkmer/codemetrics/internal/adapter/parser"
	"github.com/rafaelvolkmer/codemetrics/internal/adapter/spotbugs"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
	"github.com/rafaelvolkmer/codemetrics/internal/infrastructure"
)

const (
	// envPrefix is the prefix of environment overrides, e.g.
	//
	//   CODEMETRICS_WORKERS=8
	//   CODEMETRICS_NO_CACHE=true
	envPrefix = "CODEMETRICS"

	configName = ".codemetrics"
)

var version = "dev"

// App wires configuration, the logger and shared adapters for the commands.
type App struct {
	config *viper.Viper
	logger *zap.Logger
	deps   *Dependencies
}

// Dependencies groups the adapters shared by the commands.
type Dependencies struct {
	Scanner   *infrastructure.FSScanner
	Storage   *infrastructure.FileStorage
	GitClient ports.GitClient
	Manifest  ports.ManifestReader
	Renderers *outputadapter.RendererRegistry
}

func NewApp() *App {
	config := viper.New()
	config.SetEnvPrefix(envPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	config.AutomaticEnv()

	return &App{
		config: config,
		logger: zap.NewNop(),
	}
}

// setup builds the logger and the shared adapters once flags are parsed.
func (a *App) setup(cmd *cobra.Command) error {
	if err := a.config.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags to viper: %w", err)
	}

	logger, err := newLogger(a.config.GetString("log-level"), a.config.GetBool("verbose"))
	if err != nil {
		return err
	}
	a.logger = logger

	a.deps = &Dependencies{
		Scanner:   infrastructure.NewFSScanner(),
		Storage:   infrastructure.NewFileStorage(),
		GitClient: gitadapter.NewGitCLI(logger),
		Manifest:  manifest.NewGradleReader(logger),
		Renderers: outputadapter.NewDefaultRegistry(),
	}
	return nil
}

// loadConfig merges .codemetrics.yaml from root or $HOME, if present.
// Flags and environment variables still win over file values.
func (a *App) loadConfig(root string) error {
	a.config.SetConfigName(configName)
	a.config.SetConfigType("yaml")
	a.config.AddConfigPath(root)
	if home, err := os.UserHomeDir(); err == nil {
		a.config.AddConfigPath(home)
	}

	if err := a.config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	a.logger.Debug("config loaded", zap.String("file", a.config.ConfigFileUsed()))
	return nil
}

// newLogger logs to stderr so rendered reports on stdout stay clean.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		if level == "" {
			level = "debug"
		}
	}
	if level == "" {
		level = "warn"
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// resolveRoot returns the positional path, else the --path value.
func (a *App) resolveRoot(args []string) (string, error) {
	root := a.config.GetString("path")
	if len(args) > 0 {
		root = args[0]
	}
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	return abs, nil
}

func (a *App) locator() (ports.MethodLocator, error) {
	return parser.NewMethodLocator(a.config.GetString("engine"))
}

func (a *App) parsers(locator ports.MethodLocator) []ports.CodeParser {
	return []ports.CodeParser{
		parser.NewJavaParser(locator),
		parser.NewGoParser(),
		parser.NewCParser(),
		parser.NewCppParser(),
		parser.NewCSharpParser(),
	}
}

func (a *App) bugAnalyzer() ports.BugAnalyzer {
	return spotbugs.NewGradleSpotBugs(
		a.config.GetBool("spotbugs"),
		a.logger,
		spotbugs.WithTimeout(a.config.GetDuration("spotbugs-timeout")),
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := NewApp()
	err := newRootCommand(app).ExecuteContext(ctx)
	_ = app.logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
