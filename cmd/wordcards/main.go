// Package main provides the CLI entrypoint for wordcards.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordcards/internal/app"
	"github.com/verte-zerg/wordcards/internal/config"
	"github.com/verte-zerg/wordcards/internal/logging"
	"github.com/verte-zerg/wordcards/internal/model"
	"github.com/verte-zerg/wordcards/internal/session"
	"github.com/verte-zerg/wordcards/internal/setfile"
	"github.com/verte-zerg/wordcards/internal/stats"
	"github.com/verte-zerg/wordcards/internal/store"
	"github.com/verte-zerg/wordcards/internal/tui"
	"github.com/verte-zerg/wordcards/internal/wordlist"
)

var (
	rootData      string
	rootSeed      int64
	rootNoHistory bool
	rootLogLevel  string
	rootHistoryDB string

	importForce bool
	deleteForce bool

	historySet   string
	historySince string
	historyLast  int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordcards",
		Short:         "Terminal flashcards for word sets",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runReviewCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootData, "data", config.DefaultDataPath(), "word set file")
	flags.Int64Var(&rootSeed, "seed", 0, "shuffle seed (0 uses the clock)")
	flags.BoolVar(&rootNoHistory, "no-history", false, "do not record reviews")
	flags.StringVar(&rootLogLevel, "log-level", logging.DefaultLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&rootHistoryDB, "history-db", config.DefaultDBPath(), "review history database")

	rootCmd.AddCommand(newSetsCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// resolveConfig merges the config file into flags the user did not set.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	review := fileCfg.Review
	applyStringConfig(cmd, "data", &rootData, review.DataFile)
	applyInt64Config(cmd, "seed", &rootSeed, review.Seed)
	applyStringConfig(cmd, "history-db", &rootHistoryDB, review.HistoryDB)
	applyStringConfig(cmd, "log-level", &rootLogLevel, review.LogLevel)
	if review.History != nil && !cmd.Flags().Changed("no-history") {
		rootNoHistory = !*review.History
	}

	cfg := model.Config{
		DataPath:  rootData,
		Seed:      rootSeed,
		History:   !rootNoHistory,
		LogLevel:  rootLogLevel,
		HistoryDB: rootHistoryDB,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if strings.TrimSpace(cfg.DataPath) == "" {
		return fmt.Errorf("--data must not be empty")
	}
	if cfg.History && strings.TrimSpace(cfg.HistoryDB) == "" {
		return fmt.Errorf("--history-db must not be empty")
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

func newShuffler(seed int64) *session.Shuffler {
	if seed != 0 {
		return session.NewSeededShuffler(seed)
	}
	return session.NewShuffler()
}

func runReviewCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log, logFile, err := logging.OpenFile(config.DefaultLogPath(), level)
	if err != nil {
		return err
	}
	defer func() {
		_ = logFile.Close()
	}()

	prompter := tui.NewPrompter()
	opts := []app.Option{
		app.WithPrompter(prompter),
		app.WithLogger(log),
		app.WithShuffler(newShuffler(cfg.Seed)),
	}

	var history stats.ReviewLister
	if cfg.History {
		st, err := store.Open(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("failed to open history db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				log.Error().Err(cerr).Msg("failed to close history db")
			}
		}()
		history = st
		opts = append(opts, app.WithRecorder(st))
	}

	sets := setfile.New(cfg.DataPath).WithLogger(log)
	ctrl := app.New(sets, opts...)
	log.Info().Str("data", sets.Path()).Bool("history", cfg.History).Msg("starting review UI")

	m := tui.NewModel(ctrl, prompter, history, log)
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, runErr := program.Run()
	ctrl.Close()
	if runErr != nil {
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}
	return nil
}

// openController builds a controller for the non-interactive commands.
func openController(cmd *cobra.Command, force bool) (*app.Controller, zerolog.Logger, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logging.Console(cmd.ErrOrStderr(), level)
	prompter := &cliPrompter{
		in:    cmd.InOrStdin(),
		out:   cmd.ErrOrStderr(),
		log:   log,
		force: force,
	}
	sets := setfile.New(cfg.DataPath).WithLogger(log)
	ctrl := app.New(sets,
		app.WithPrompter(prompter),
		app.WithLogger(log),
		app.WithShuffler(newShuffler(cfg.Seed)),
	)
	return ctrl, log, nil
}

func newSetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sets",
		Short: "List word sets",
		Args:  cobra.NoArgs,
		RunE:  runSetsCmd,
	}
}

func runSetsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctrl, log, err := openController(cmd, false)
	if err != nil {
		return err
	}
	names := ctrl.SetNames()
	if len(names) == 0 {
		log.Info().Msg("no word sets yet; create one with: wordcards import NAME FILE")
		return nil
	}

	var st *store.Store
	if cfg.History {
		st, err = store.Open(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("failed to open history db: %w", err)
		}
		defer func() {
			_ = st.Close()
		}()
	}

	for _, name := range names {
		words, _ := ctrl.Words(name)
		line := fmt.Sprintf("%s\t%d", name, len(words))
		if st != nil {
			last, err := lastReviewed(cmd.Context(), st, name)
			if err != nil {
				return err
			}
			line += "\t" + last
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// lastReviewed formats the end of the latest review of name, or "-" if none.
func lastReviewed(ctx context.Context, st *store.Store, name string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	rec, ok, err := st.LastReview(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to load last review of %q: %w", name, err)
	}
	if !ok {
		return "-", nil
	}
	return rec.EndedAt.In(time.Local).Format("2006-01-02 15:04"), nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import NAME FILE",
		Short: "Create or overwrite a set from a file with one word per line",
		Args:  cobra.ExactArgs(2),
		RunE:  runImportCmd,
	}
	cmd.Flags().BoolVar(&importForce, "force", false, "overwrite an existing set without asking")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	name, path := args[0], args[1]
	words, err := wordlist.LoadWords(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	ctrl, _, err := openController(cmd, importForce)
	if err != nil {
		return err
	}
	if err := ctrl.CreateOrUpdateSet(name, wordlist.Join(words)); err != nil {
		if errors.Is(err, app.ErrDeclined) {
			return fmt.Errorf("set %q already exists (use --force to overwrite)", name)
		}
		return err
	}
	return nil
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export NAME",
		Short: "Print the words of a set, one per line",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportCmd,
	}
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	ctrl, _, err := openController(cmd, false)
	if err != nil {
		return err
	}
	words, ok := ctrl.Words(args[0])
	if !ok {
		return fmt.Errorf("%w: %q", app.ErrNotFound, args[0])
	}
	for _, word := range words {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), word); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a set",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteCmd,
	}
	cmd.Flags().BoolVar(&deleteForce, "force", false, "delete without asking")
	return cmd
}

func runDeleteCmd(cmd *cobra.Command, args []string) error {
	ctrl, _, err := openController(cmd, deleteForce)
	if err != nil {
		return err
	}
	if err := ctrl.DeleteSet(args[0]); err != nil {
		if errors.Is(err, app.ErrDeclined) {
			return fmt.Errorf("not deleted (use --force to skip confirmation)")
		}
		return err
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show review history per set",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySet, "set", "", "set name filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N reviews")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if !cfg.History {
		return fmt.Errorf("review history is disabled")
	}

	st, err := store.Open(cfg.HistoryDB)
	if err != nil {
		return fmt.Errorf("failed to open history db: %w", err)
	}
	defer func() {
		_ = st.Close()
	}()

	filter := model.HistoryFilter{SetName: historySet, Since: sinceTime, Last: historyLast}
	report, err := stats.BuildReport(context.Background(), st, filter)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	return stats.RenderHistory(cmd.OutOrStdout(), report.Summaries, time.Local)
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
	if err := writeDefaultConfig(path); err != nil {
		return err
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

// writeDefaultConfig creates the commented template unless path exists.
func writeDefaultConfig(path string) error {
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

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordcards configuration
# Uncomment a value to enable it. CLI flags override config values.

[review]
# data-file = %q
# seed = 0                # Shuffle seed, 0 uses the clock
# history = true          # Record finished reviews
# history-db = %q
# log-level = %q
`,
		config.DefaultDataPath(),
		config.DefaultDBPath(),
		logging.DefaultLevel,
	)
}

// cliPrompter asks on the terminal and reports through the logger.
type cliPrompter struct {
	in    io.Reader
	out   io.Writer
	log   zerolog.Logger
	force bool
}

func (p *cliPrompter) Confirm(pr app.Prompt) bool {
	if p.force {
		return true
	}
	if !isTerminal(p.in) {
		return false
	}
	if _, err := fmt.Fprintf(p.out, "%s %s [y/N] ", pr.Title, oneLine(pr.Message)); err != nil {
		return false
	}
	return readYes(p.in)
}

func (p *cliPrompter) Show(pr app.Prompt) {
	var ev *zerolog.Event
	switch pr.Kind {
	case app.PromptWarn:
		ev = p.log.Warn()
	case app.PromptError:
		ev = p.log.Error()
	default:
		ev = p.log.Info()
	}
	ev.Msg(pr.Title + ": " + oneLine(pr.Message))
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
