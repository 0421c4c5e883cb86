package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/phseiff/gender-render/pkg/genderrender"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	logLevel   string
	nounsPath  string
	quiet      bool

	// Set up by the root command before any subcommand runs
	engine *genderrender.Engine
	logger *genderrender.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "genderrender",
	Short: "Render gender-neutral text templates for specific people",
	Long: `genderrender fills text templates with the pronouns, names and gendered nouns
of the people they talk about.

Templates (.gr) contain tags such as {They}, {id:sam*their} or {actor}.
Pronoun data (.grpd, .idpd, JSON or YAML) describes the people.

Example:
  genderrender render letter.gr sam.idpd`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		genderrender.SetGlobalConfig(config)
		logger = genderrender.GetLogger()

		opts := []genderrender.Option{
			genderrender.WithConfig(config),
			genderrender.WithLogger(logger),
		}
		if quiet {
			opts = append(opts, genderrender.WithDiagnostics(genderrender.SilentDiagnostics()))
		}
		engine = genderrender.NewWithOptions(opts...)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if engine != nil {
			_ = engine.Close()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "genderrender version %s\n", version)
	},
}

// loadConfig builds the configuration from the environment or --config, then applies
// the flags on top.
func loadConfig() (*genderrender.Config, error) {
	config := genderrender.ConfigFromEnvironment()
	if configPath != "" {
		var err error
		config, err = genderrender.LoadConfigFile(configPath)
		if err != nil {
			return nil, err
		}
	}
	if logLevel != "" {
		config.LogLevel = logLevel
	}
	if nounsPath != "" {
		config.NounDataPath = nounsPath
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error or off")
	rootCmd.PersistentFlags().StringVar(&nounsPath, "nouns", "", "Noun dataset file (.gdn, .xz or .db) instead of the built-in one")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Do not report diagnostics")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(nounsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
