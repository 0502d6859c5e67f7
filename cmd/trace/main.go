// Package main provides the CLI entrypoint for trace.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/trace/internal/config"
	"github.com/verte-zerg/trace/internal/corpus"
	"github.com/verte-zerg/trace/internal/history"
	"github.com/verte-zerg/trace/internal/model"
	"github.com/verte-zerg/trace/internal/stats"
	"github.com/verte-zerg/trace/internal/store"
	"github.com/verte-zerg/trace/internal/tui"
	"github.com/verte-zerg/trace/internal/userstore"
	"github.com/verte-zerg/trace/internal/window"
)

const (
	defaultCurveWindow = 1
	defaultPlotHeight  = 12
	debugEnv           = "TRACE_DEBUG"
)

var (
	flagDataDir string
	flagCorpus  string
	flagHistory string

	statsCurveWindow int
	runsLast         int
	importAppend     bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := config.Defaults()
	rootCmd := &cobra.Command{
		Use:           "trace",
		Short:         "Terminal typing practice",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", defaults.DataDir, "directory for the run log and username")
	rootCmd.PersistentFlags().StringVar(&flagCorpus, "corpus", defaults.CorpusPath, "practice text file (.csv, .json, .yaml or .txt)")
	rootCmd.PersistentFlags().StringVar(&flagHistory, "history", defaults.History, "run history backend (csv or sqlite)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newRunsCmd())
	rootCmd.AddCommand(newImportCmd())

	return rootCmd
}

func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "data-dir", &flagDataDir, fileCfg.Game.DataDir)
	applyStringConfig(cmd, "corpus", &flagCorpus, fileCfg.Game.Corpus)
	applyStringConfig(cmd, "history", &flagHistory, fileCfg.Game.History)

	cfg := model.Config{
		DataDir:    config.ExpandHome(flagDataDir),
		CorpusPath: config.ExpandHome(flagCorpus),
		History:    strings.ToLower(strings.TrimSpace(flagHistory)),
	}
	if err := config.Validate(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

// openHistory returns the configured run log and a function releasing it.
func openHistory(cfg model.Config) (history.Log, func(), error) {
	if cfg.History != model.HistorySQLite {
		return history.NewCSVLog(config.RunsLogPath(cfg.DataDir)), func() {}, nil
	}
	st, err := store.Open(config.DBPath(cfg.DataDir))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}, nil
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	closeLog, err := setupDebugLog()
	if err != nil {
		return err
	}
	defer closeLog()

	runLog, closeHistory, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeHistory()

	log.Printf("starting: data-dir=%s corpus=%s history=%s", cfg.DataDir, cfg.CorpusPath, cfg.History)
	machine := window.New(window.Deps{
		Corpus:  corpus.NewFileSource(cfg.CorpusPath),
		History: runLog,
		Users:   userstore.NewFile(config.UsernamePath(cfg.DataDir)),
		Context: cmd.Context(),
	})
	program := tea.NewProgram(tui.NewModel(machine), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// setupDebugLog routes the standard logger to the file named by TRACE_DEBUG,
// or discards it so nothing is written over the alt screen.
func setupDebugLog() (func(), error) {
	path := strings.TrimSpace(os.Getenv(debugEnv))
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "trace")
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close debug log: %v\n", cerr)
		}
	}, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print a summary and chart of the run history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	if statsCurveWindow < 1 {
		return fmt.Errorf("--curve-window must be >= 1")
	}
	runs, err := loadRuns(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, runs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderCurves(out, runs, statsCurveWindow, 0, defaultPlotHeight, false); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs",
		Args:  cobra.NoArgs,
		RunE:  runRunsCmd,
	}
	cmd.Flags().IntVar(&runsLast, "last", 0, "limit to last N runs")
	return cmd
}

func runRunsCmd(cmd *cobra.Command, _ []string) error {
	if runsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	runs, err := loadRuns(cmd)
	if err != nil {
		return err
	}
	if err := stats.RenderRuns(cmd.OutOrStdout(), runs, runsLast); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func loadRuns(cmd *cobra.Command) ([]model.RunRecord, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	runLog, closeHistory, err := openHistory(cfg)
	if err != nil {
		return nil, err
	}
	defer closeHistory()
	runs, err := runLog.LoadAll(cmdContext(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}
	return runs, nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the CSV run log into the SQLite history",
		Long: "Copy the CSV run log into the SQLite history.\n\n" +
			"The import is refused when the database already holds runs, so running it\n" +
			"twice does not duplicate them. Pass --append to add the runs anyway.",
		Args: cobra.NoArgs,
		RunE: runImportCmd,
	}
	cmd.Flags().BoolVar(&importAppend, "append", false, "add runs even when the database already holds some")
	return cmd
}

func runImportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	csvLog := history.NewCSVLog(config.RunsLogPath(cfg.DataDir))
	runs, err := csvLog.LoadAll(cmdContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to load runs: %w", err)
	}
	if len(runs) == 0 {
		logErrf("No runs found in %s\n", csvLog.Path())
		return nil
	}
	st, err := store.Open(config.DBPath(cfg.DataDir))
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	var n int
	if importAppend {
		n, err = st.AppendAll(cmdContext(cmd), runs)
	} else {
		n, err = st.Import(cmdContext(cmd), runs)
	}
	if errors.Is(err, store.ErrNotEmpty) {
		return fmt.Errorf("%s already holds runs; pass --append to add them again", config.DBPath(cfg.DataDir))
	}
	if err != nil {
		return fmt.Errorf("failed to import runs: %w", err)
	}
	logErrf("Imported %d runs into %s\n", n, config.DBPath(cfg.DataDir))
	if cfg.History != model.HistorySQLite {
		logErrln(`Set history = "sqlite" in the config to use them.`)
	}
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
