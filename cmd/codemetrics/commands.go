// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	outputadapter "github.com/rafaelvolkmer/codemetrics/internal/adapter/output"
	"github.com/rafaelvolkmer/codemetrics/internal/adapter/spotbugs"
	"github.com/rafaelvolkmer/codemetrics/internal/infrastructure"
	"github.com/rafaelvolkmer/codemetrics/internal/usecase"
)

const defaultExtensions = ".java,.go,.c,.h,.cpp,.hpp,.cc,.hh,.cxx,.cs"

func newRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "codemetrics",
		Short:         "Source metrics for Java and C-family code",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}

	root.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	root.PersistentFlags().Bool("verbose", false, "Human-readable debug logging")

	root.AddCommand(
		newAnalyzeCommand(app),
		newReportCommand(app),
		newMetricsCommand(app),
		newBlockCommand(app),
		newVersionCommand(),
	)
	return root
}

func newAnalyzeCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze a source tree and save the report under .codemetrics/report.json",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runAnalyze(cmd, args)
		},
	}

	flags := cmd.Flags()
	addReportFlags(flags)
	flags.Int("workers", 0, "Number of worker goroutines (0 = use NumCPU)")
	flags.String("ext", defaultExtensions, "Comma-separated list of file extensions to include")
	flags.Int("top", usecase.DefaultTopN, "Number of methods in the complexity ranking")
	flags.String("engine", usecase.DefaultEngine, "Java method locator (regex|ast)")
	flags.StringSlice("internal-prefix", nil, "Import prefixes counted as package dependencies")
	flags.StringSlice("source-root", nil, "Directories to analyze, relative to the project root (repeatable)")
	flags.Bool("include-tests", false, "Also analyze test sources (src/test trees, _test.go files)")
	flags.Bool("no-cache", false, "Ignore and do not update .codemetrics/cache.msgpack")
	flags.Bool("spotbugs", false, "Run SpotBugs through the Gradle wrapper")
	flags.Duration("spotbugs-timeout", spotbugs.DefaultTimeout, "Timeout of each SpotBugs Gradle step")
	return cmd
}

func (a *App) runAnalyze(cmd *cobra.Command, args []string) error {
	rootPath, err := a.resolveRoot(args)
	if err != nil {
		return err
	}
	if err := a.loadConfig(rootPath); err != nil {
		return err
	}

	locator, err := a.locator()
	if err != nil {
		return err
	}

	noCache := a.config.GetBool("no-cache")
	deps := usecase.AnalyzeDependencies{
		Scanner:  a.deps.Scanner,
		Reader:   a.deps.Scanner,
		Parsers:  a.parsers(locator),
		Manifest: a.deps.Manifest,
		Bugs:     a.bugAnalyzer(),
		Git:      a.deps.GitClient,
		Storage:  a.deps.Storage,
	}
	if !noCache {
		cache := infrastructure.OpenMsgpackCache(rootPath, a.logger)
		a.logger.Debug("cache opened", zap.Int("entries", cache.Len()))
		deps.Cache = cache
	}

	analyze := usecase.NewAnalyzeProjectUseCase(deps, a.config.GetInt("workers"), a.logger)
	report, err := analyze.Execute(cmd.Context(), usecase.AnalyzeProjectRequest{
		RootPath:         rootPath,
		IncludeExt:       parseExtensions(a.config.GetString("ext")),
		TopN:             a.config.GetInt("top"),
		Engine:           locator.Name(),
		InternalPrefixes: a.config.GetStringSlice("internal-prefix"),
		NoCache:          noCache,
		SourceRoots:      a.config.GetStringSlice("source-root"),
		IncludeTests:     a.config.GetBool("include-tests"),
	})
	if err != nil {
		return err
	}

	rendered, err := usecase.NewGenerateReportUseCase(a.deps.Storage, a.deps.Renderers).
		Render(report, a.config.GetString("format"))
	if err != nil {
		return err
	}
	return a.emit(cmd.OutOrStdout(), rendered)
}

func newReportCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [path]",
		Short: "Render the last saved report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runReport(cmd, args)
		},
	}

	addReportFlags(cmd.Flags())
	return cmd
}

// addReportFlags registers the flags shared by analyze and report.
func addReportFlags(flags *pflag.FlagSet) {
	flags.SortFlags = false
	flags.String("path", ".", "Path to project root (can also be given as positional argument)")
	formats := outputadapter.NewDefaultRegistry().Formats()
	flags.String("format", "text", "Output format ("+strings.Join(formats, "|")+")")
	flags.StringP("output", "o", "", "Write the rendered output to this file instead of stdout")
}

func (a *App) runReport(cmd *cobra.Command, args []string) error {
	rootPath, err := a.resolveRoot(args)
	if err != nil {
		return err
	}
	if err := a.loadConfig(rootPath); err != nil {
		return err
	}

	rendered, err := usecase.NewGenerateReportUseCase(a.deps.Storage, a.deps.Renderers).
		Execute(cmd.Context(), usecase.GenerateReportRequest{
			RootPath: rootPath,
			Format:   a.config.GetString("format"),
		})
	if err != nil {
		return err
	}
	return a.emit(cmd.OutOrStdout(), rendered)
}

func newMetricsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "List supported metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Supported metrics:")
			for _, metric := range usecase.NewListMetricsUseCase().Execute(cmd.Context()) {
				fmt.Fprintf(out, "- [%s] %s (%s)\n    %s\n",
					metric.Group, metric.Name, metric.ID, metric.Description)
			}
			return nil
		},
	}
}

func newBlockCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block <file>",
		Short: "Print the block opening at or after a position and its complexity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runBlock(cmd, args[0])
		},
	}

	flags := cmd.Flags()
	flags.Int("offset", 0, "Byte offset to search for the opening brace from")
	flags.Int("line", 0, "1-based line to search from (overrides --offset)")
	flags.Bool("json", false, "Print the result as JSON")
	return cmd
}

func (a *App) runBlock(cmd *cobra.Command, path string) error {
	res, err := usecase.NewExtractBlockUseCase(a.deps.Scanner).Execute(usecase.ExtractBlockRequest{
		Path:   path,
		Offset: a.config.GetInt("offset"),
		Line:   a.config.GetInt("line"),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if a.config.GetBool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(res)
	}

	fmt.Fprintf(out, "%s:%d-%d complexity %d\n", res.Path, res.StartLine, res.EndLine, res.Complexity)
	d := res.Decisions
	fmt.Fprintf(out, "if=%d for=%d while=%d case=%d catch=%d ?=%d &&=%d ||=%d\n\n",
		d.If, d.For, d.While, d.Case, d.Catch, d.Ternary, d.And, d.Or)
	fmt.Fprintln(out, res.Text)
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "codemetrics %s\n", version)
			return nil
		},
	}
}

// emit writes rendered to --output when set, else to out.
func (a *App) emit(out io.Writer, rendered string) error {
	target := a.config.GetString("output")
	if target == "" {
		_, err := fmt.Fprintln(out, rendered)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(target, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.logger.Info("output written", zap.String("file", target))
	return nil
}

// parseExtensions normalizes a comma-separated list of file extensions into a
// slice of dot-prefixed extensions.
//
// Examples:
//
//	parseExtensions("java,c")       -> []string{".java", ".c"}
//	parseExtensions(".go,.c,.h")    -> []string{".go", ".c", ".h"}
func parseExtensions(raw string) []string {
	var extensions []string
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		extensions = append(extensions, trimmed)
	}
	return extensions
}
