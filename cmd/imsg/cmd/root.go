package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/imsgtools/imsg/internal/config"
	"github.com/imsgtools/imsg/internal/contacts"
	"github.com/imsgtools/imsg/internal/msgstore"
)

var (
	cfgFile string
	homeDir string
	verbose bool
	cfg     *config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "imsg",
	Short: "Query and analyze the local Messages archive",
	Long: `imsg reads the Messages database (chat.db) on this Mac and answers
questions about it: recent and unread messages, per-contact history,
full conversation analytics, and threads that need a reply.

The archive is only ever opened read-only. Contact names come from a
small JSON contact book (see the contacts command).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Set up logging
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))

		var err error
		cfg, err = config.Load(cfgFile, homeDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Debug("config loaded", "db_path", cfg.Messages.DBPath, "contacts", cfg.Contacts.Path)

		return nil
	},
}

// Execute runs the root command with a background context.
// Prefer ExecuteContext for signal-aware execution.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with the given context,
// enabling graceful shutdown when the context is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// openStore returns a Store for the configured archive, failing fast when
// the file cannot be reached so an empty database never masquerades as an
// empty result.
func openStore() (*msgstore.Store, error) {
	s := msgstore.New(cfg.Messages.DBPath)
	if err := s.Accessible(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadBook loads the contact book. A missing book is normal on first run
// and comes back empty; any other failure is surfaced.
func loadBook() (*contacts.Book, error) {
	book, err := contacts.Load(cfg.Contacts.Path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("no contact book", "path", cfg.Contacts.Path)
		return &contacts.Book{}, nil
	}
	if err != nil {
		return nil, err
	}
	return book, nil
}

// resolveAddress turns a contact name into its address, falling back to
// the argument itself so raw numbers and Apple IDs work unresolved.
func resolveAddress(arg string) (string, string) {
	book, err := loadBook()
	if err != nil {
		logger.Warn("contact book unavailable", "error", err)
		return arg, ""
	}
	if c, ok := book.Resolve(arg); ok {
		return c.Phone, c.Name
	}
	return arg, ""
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.imsg/config.toml)")
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "home directory (overrides IMSG_HOME)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
