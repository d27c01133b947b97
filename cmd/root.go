package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/askframe/internal/llm"
	"github.com/abhisek/askframe/internal/store"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "askframe",
		Short: "Ask questions about your data with an LLM",
		Long: "askframe renders prompts, sends them to a text generation backend " +
			"(Gemini by default) and presents tagged results in the terminal.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env is normal; a malformed one is not.
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load .env: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ASKFRAME_DB env var)")
	root.PersistentFlags().String("config", "", "Path to a YAML config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log every generation call to stderr")

	root.AddCommand(newAskCmd())
	root.AddCommand(newFormatCmd())
	root.AddCommand(newEventsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func Execute() error {
	return newRootCmd().Execute()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ASKFRAME_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the event store selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadConfig layers defaults, the --config file and the environment. When
// neither --config nor ASKFRAME_LLM_PROVIDER picks a provider and the default
// one has no key, the provider is switched to whichever standard API key
// variable is set. Only the provider and its key change.
func loadConfig(cmd *cobra.Command) (llm.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := llm.LoadConfig(path)
	if err != nil {
		return llm.Config{}, err
	}

	if path != "" || os.Getenv("ASKFRAME_LLM_PROVIDER") != "" {
		return cfg, nil
	}
	if key, _ := cfg.Credentials(); key == "" {
		cfg.Discover()
	}
	return cfg, nil
}

// newLogger returns a development logger with --verbose, otherwise a
// production logger that only reports warnings and errors.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return zap.NewDevelopment()
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return zc.Build()
}
