// Package cmd contains all CLI commands for the conjugateur tool.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cbueth/conjugateur-fr/internal/config"
	"github.com/cbueth/conjugateur-fr/internal/tui"
	"github.com/cbueth/conjugateur-fr/internal/verbdata"
)

var (
	cfgFile string
	verbose bool

	logger *zap.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "conjugateur",
	Short: "French verb conjugation tables with irregularity highlighting",
	Long: `conjugateur renders French verb conjugations for the présent, imparfait,
passé simple and futur simple, coloring every character by how it relates
to the regular pattern of the verb's group:

  - stem characters in black
  - regular endings in the tense color
  - deviations from the regular form underlined in the highlight color

Each verb carries an irregularity marker: 🟢 regular, 🟠 stem change,
🟡 medium, 🔴 highly irregular.

Running 'conjugateur' without arguments launches the interactive TUI.`,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Assigned here rather than in the composite literal: the closure refers
	// to rootCmd, which would otherwise be an initialization cycle.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// The bare command runs the TUI, which owns the terminal.
		if cmd == rootCmd {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.config/conjugateur/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig resolves the config file path and wires ENV variables.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_file", cfgFile)
	} else if path, err := config.DefaultPath(); err == nil {
		viper.Set("config_file", path)
	}

	viper.SetEnvPrefix("CONJUGATEUR")
	viper.AutomaticEnv()
}

// loadConfig reads the resolved config file, defaults when absent.
func loadConfig() (*config.Config, error) {
	path := viper.GetString("config_file")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// openStore opens a built dataset directory.
func openStore(dir string) (*verbdata.Store, error) {
	store, err := verbdata.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("opening dataset in %s (run 'conjugateur build' first): %w", dir, err)
	}
	return store, nil
}

// runTUI launches the interactive TUI over the configured dataset.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg.DataDir)
	if err != nil {
		return err
	}
	return tui.Run(store, cfg)
}
