// Package cmd is for command line interactions with glyco-studio
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wagnerlima/glyco-studio/config"
	"github.com/wagnerlima/glyco-studio/internal/antibody"
	"github.com/wagnerlima/glyco-studio/internal/server"
	"github.com/wagnerlima/glyco-studio/internal/studio"
)

var (
	cfgFile string

	// settings resolved before any subcommand runs
	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "glyco-studio",
	Short: "Design glycan-conjugate vaccine antigens and the antibodies that bind them",
	Long: `Design glycan-conjugate vaccine antigens and the antibodies that bind them.

"glyco-studio serve" exposes every design step as an MCP tool over stdio or HTTP,
recording results per campaign. The remaining commands run single steps locally
and print their result.`,
	Version:       server.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(viper.GetViper(), cfgFile); err != nil {
			return err
		}
		c, err := config.New(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = c
		// stdout is reserved for command output and the stdio transport
		slog.SetDefault(cfg.Log.Logger(os.Stderr))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("glyco-studio failed", "err", err)
		cancel()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./glyco.yaml or $HOME/.glyco/glyco.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "./data", "directory for SQLite databases")
	rootCmd.PersistentFlags().String("preset", "alpha", "backbone preset used when none is requested")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")

	viper.BindPFlag("data-dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("preset", rootCmd.PersistentFlags().Lookup("preset"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func newStudio() (*studio.Studio, error) {
	return studio.New(antibody.DefaultGrafter(), antibody.DefaultRanker(), cfg.Preset)
}

// writeOutput writes text to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path, text string) error {
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	slog.Info("wrote output", "path", path, "bytes", len(text))
	return nil
}
