// Package cli implements the command-line interface for gitlet.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/kilupskalvis/gitlet/internal/config"
	"github.com/kilupskalvis/gitlet/internal/core"
	"github.com/spf13/cobra"
)

// cmdContext holds common resources for CLI commands
type cmdContext struct {
	Ctx  context.Context
	Repo *core.Repo
}

// Close releases resources held by cmdContext
func (c *cmdContext) Close() {
	if c.Repo != nil {
		c.Repo.Close()
	}
}

// initContext opens the repository containing the current directory
func initContext() *cmdContext {
	cfg, err := config.Load()
	if err != nil {
		exitError("%v", err)
	}

	repo, err := core.Open(cfg, newLogger(cfg.SlogLevel()))
	if err != nil {
		exitError("failed to open repository: %v", err)
	}

	return &cmdContext{Ctx: context.Background(), Repo: repo}
}

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "gitlet",
	Short: "A miniature distributed version-control system",
	Long: `Gitlet tracks snapshots of a flat directory of files. It supports staging,
commits, branches, three-way merges and push/fetch/pull between repositories
on the local filesystem.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides GITLET_LOG_LEVEL and the config")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(globalLogCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(rmBranchCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(remoteCmd)
	rootCmd.AddCommand(addRemoteCmd)
	rootCmd.AddCommand(rmRemoteCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(pullCmd)
}

// newLogger builds the stderr logger. The --log-level flag wins over
// GITLET_LOG_LEVEL, which wins over the configured level.
func newLogger(level slog.Level) *slog.Logger {
	if env := os.Getenv("GITLET_LOG_LEVEL"); env != "" {
		level = config.ParseLevel(env)
	}
	if logLevel != "" {
		level = config.ParseLevel(logLevel)
	}
	opts := &slog.HandlerOptions{Level: level}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// exitError prints an error and exits
func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

// shortID returns first 7 characters of an ID
func shortID(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}
