// Package main provides the CLI entrypoint for guessnum.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/verte-zerg/guessnum/internal/config"
	"github.com/verte-zerg/guessnum/internal/console"
	"github.com/verte-zerg/guessnum/internal/game"
	"github.com/verte-zerg/guessnum/internal/generator"
	"github.com/verte-zerg/guessnum/internal/logging"
	"github.com/verte-zerg/guessnum/internal/model"
	"github.com/verte-zerg/guessnum/internal/session"
	"github.com/verte-zerg/guessnum/internal/stats"
	"github.com/verte-zerg/guessnum/internal/statsui"
	"github.com/verte-zerg/guessnum/internal/store"
)

const (
	defaultLow       = 1
	defaultHigh      = 100
	defaultAttempts  = 7
	defaultHintAfter = 3
	defaultStatsLast = 20
)

const (
	exitOK     = 0
	exitFailed = 1
	exitConfig = 2
)

var (
	playLow       int
	playHigh      int
	playAttempts  int
	playHintAfter int
	playNoStats   bool
	playStatsFile string
	playSeed      uint64

	logLevel string

	statsPlain bool
	statsLast  int
	statsFile  string
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args when given nil.
		args = []string{}
	}
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	err := rootCmd.ExecuteContext(context.Background())
	return exitCode(err, out)
}

func exitCode(err error, out io.Writer) int {
	if err == nil || console.IsAbort(err) {
		return exitOK
	}
	con := console.New(out)
	var cfgErr *model.ConfigError
	if errors.As(err, &cfgErr) {
		con.Errorf("%s", cfgErr.Error())
		return exitConfig
	}
	con.Errorf("%v", err)
	return exitFailed
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "guessnum",
		Short:         "Guess the secret number",
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noArgs,
		RunE:          runPlayCmd,
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &model.ConfigError{Msg: err.Error()}
	})

	rootCmd.Flags().IntVar(&playLow, "low", defaultLow, "lower bound of the range (inclusive)")
	rootCmd.Flags().IntVar(&playHigh, "high", defaultHigh, "upper bound of the range (inclusive)")
	rootCmd.Flags().IntVar(&playAttempts, "attempts", defaultAttempts, "number of attempts per round")
	rootCmd.Flags().IntVar(&playHintAfter, "hint-after", defaultHintAfter, "show a hint after the N-th attempt (0 = off)")
	rootCmd.Flags().BoolVar(&playNoStats, "no-stats", false, "do not load or save statistics")
	rootCmd.Flags().StringVar(&playStatsFile, "stats-file", stats.DefaultFileName, "statistics file")
	rootCmd.Flags().Uint64Var(&playSeed, "seed", 0, "random seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.DefaultLevel, "diagnostic log level (debug, info, warn, error)")

	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &model.ConfigError{Msg: fmt.Sprintf("unexpected argument %q", args[0])}
	}
	return nil
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	changed := changedFlags(cmd)
	applyIntConfig(changed, "low", &playLow, fileCfg.Game.Low)
	applyIntConfig(changed, "high", &playHigh, fileCfg.Game.High)
	applyIntConfig(changed, "attempts", &playAttempts, fileCfg.Game.Attempts)
	applyIntConfig(changed, "hint-after", &playHintAfter, fileCfg.Game.HintAfter)
	applyBoolConfig(changed, "no-stats", &playNoStats, fileCfg.Game.NoStats)
	applyStringConfig(changed, "stats-file", &playStatsFile, fileCfg.Game.StatsFile)

	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	cfg := model.Config{
		Low:          playLow,
		High:         playHigh,
		Attempts:     playAttempts,
		HintAfter:    playHintAfter,
		PersistStats: !playNoStats,
		StatsPath:    playStatsFile,
		HistoryPath:  config.DefaultHistoryPath(),
		Seed:         playSeed,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.Debug().Interface("config", cfg).Msg("configuration")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := console.New(cmd.OutOrStdout())
	reader := console.NewReader(cmd.InOrStdin(), out)
	deps := session.Deps{
		Round:  game.NewEngine(cfg, newPicker(cfg.Seed), reader, out),
		In:     reader,
		Out:    out,
		Logger: logger,
	}
	if cfg.PersistStats {
		deps.Stats = stats.NewFileStore(cfg.StatsPath)
		st, err := store.Open(cfg.HistoryPath)
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.HistoryPath).Msg("round history disabled")
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logger.Warn().Err(cerr).Msg("failed to close history db")
				}
			}()
			deps.History = st
		}
	}

	_, err = session.New(cfg, deps).Run(ctx)
	return err
}

func newPicker(seed uint64) *generator.Generator {
	if seed == 0 {
		return generator.New()
	}
	return generator.NewSeeded(seed, seed)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics and round history",
		Args:  noArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print plain text instead of the interactive view")
	cmd.Flags().IntVar(&statsLast, "last", defaultStatsLast, "limit history to the last N rounds (0 = all)")
	cmd.Flags().StringVar(&statsFile, "stats-file", stats.DefaultFileName, "statistics file")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyStringConfig(changedFlags(cmd), "stats-file", &statsFile, fileCfg.Game.StatsFile)
	if statsLast < 0 {
		return &model.ConfigError{Msg: "--last must be >= 0"}
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	statistics, err := stats.NewFileStore(statsFile).Load()
	if err != nil {
		logger.Warn().Err(err).Str("path", statsFile).Msg("statistics unavailable")
	}

	var st *store.Store
	historyPath := config.DefaultHistoryPath()
	if _, err := os.Stat(historyPath); err == nil {
		st, err = store.Open(historyPath)
		if err != nil {
			logger.Warn().Err(err).Str("path", historyPath).Msg("round history unavailable")
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logger.Warn().Err(cerr).Msg("failed to close history db")
				}
			}()
		}
	}

	report, err := stats.BuildReport(cmd.Context(), statistics, st, model.HistoryConfig{Last: statsLast})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if statsPlain || !isTerminal(out) {
		for _, line := range report.Lines() {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		return nil
	}

	program := tea.NewProgram(statsui.NewModel(report), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  noArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeConfigTemplate(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	editorCmd := exec.Command(parts[0], append(parts[1:], path)...)
	editorCmd.Stdin = cmd.InOrStdin()
	editorCmd.Stdout = cmd.OutOrStdout()
	editorCmd.Stderr = cmd.ErrOrStderr()
	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeConfigTemplate creates the config file unless it already exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func loadFileConfig(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, &model.ConfigError{Msg: fmt.Sprintf("failed to load config: %v", err)}
	}
	applyStringConfig(changedFlags(cmd), "log-level", &logLevel, fileCfg.Log.Level)
	return fileCfg, nil
}

func newLogger(cmd *cobra.Command) (zerolog.Logger, error) {
	logger, err := logging.New(cmd.ErrOrStderr(), logLevel)
	if err != nil {
		return logger, &model.ConfigError{Msg: err.Error()}
	}
	return logger, nil
}

func changedFlags(cmd *cobra.Command) map[string]bool {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
	return changed
}

func applyStringConfig(changed map[string]bool, name string, target, value *string) {
	if value == nil || changed[name] {
		return
	}
	*target = *value
}

func applyIntConfig(changed map[string]bool, name string, target, value *int) {
	if value == nil || changed[name] {
		return
	}
	*target = *value
}

func applyBoolConfig(changed map[string]bool, name string, target, value *bool) {
	if value == nil || changed[name] {
		return
	}
	*target = *value
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# guessnum configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# low = %d                     # Lower bound (inclusive)
# high = %d                  # Upper bound (inclusive)
# attempts = %d                # Attempts per round
# hint-after = %d              # Hint after the N-th attempt (0 = off)
# no-stats = false            # Do not load or save statistics
# stats-file = %q # Statistics file

[log]
# level = %q               # Diagnostic log level (debug, info, warn, error)
`,
		defaultLow,
		defaultHigh,
		defaultAttempts,
		defaultHintAfter,
		stats.DefaultFileName,
		logging.DefaultLevel,
	)
}
