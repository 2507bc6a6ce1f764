package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/handling-analyzer/internal/cli"
	"github.com/Veraticus/handling-analyzer/internal/common"
	"github.com/Veraticus/handling-analyzer/internal/config"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "handling",
		Short: "🏎️  handling.meta analyzer",
		Long: `handling: inspect, grade and repair vehicle handling.meta data.

Paste a full handling.meta or just a block of fields, pick a vehicle class,
and get a graded report against that class's guidelines. The same document
can be auto-fixed and written back out in canonical order.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/handling/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("class", "import", "vehicle class to grade against")
	rootCmd.PersistentFlags().String("guidelines", "", "guideline table YAML (default: built-in table)")
	rootCmd.PersistentFlags().String("db", "", "history database path")

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag(config.KeyClass, rootCmd.PersistentFlags().Lookup("class"))
	_ = viper.BindPFlag(config.KeyGuidelinesPath, rootCmd.PersistentFlags().Lookup("guidelines"))
	_ = viper.BindPFlag(config.KeyStoragePath, rootCmd.PersistentFlags().Lookup("db"))

	// Add commands
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(analyzeDirCmd())
	rootCmd.AddCommand(fixCmd())
	rootCmd.AddCommand(formatCmd())
	rootCmd.AddCommand(flagsCmd())
	rootCmd.AddCommand(guidelinesCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(common.UserMessage(err)))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(fmt.Sprintf("%s/.config/handling", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables: HANDLING_ANALYSIS_CLASS, HANDLING_STORAGE_PATH, ...
	viper.SetEnvPrefix("HANDLING")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	// Set up logging
	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging() error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	level, err := common.ParseLevel(settings.LogLevel)
	if err != nil {
		return err
	}
	return common.SetupLogger(level, settings.LogFormat)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "handling version %s\n", version)
		},
	}
}
