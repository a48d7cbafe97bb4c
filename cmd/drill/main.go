package main

import (
	"drill/book"
	"drill/config"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	sourceName string
	treePath   string
	seed       uint64

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:           "drill",
		Short:         "Practice opening lines against a weighted book",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("source") {
				loaded.Source = sourceName
			}
			if cmd.Flags().Changed("tree") {
				loaded.TreePath = treePath
			}
			if cmd.Flags().Changed("seed") {
				loaded.Seed = seed
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			cfg = loaded
			return setupLogging(cfg.LogLevel)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&sourceName, "source", "", "bundled opening tree to drill")
	rootCmd.PersistentFlags().StringVar(&treePath, "tree", "", "opening tree file (.json, .yaml), takes precedence over --source")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "seed for the automated side's choices, 0 for random")

	rootCmd.AddCommand(playCmd, inspectCmd, sourcesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %s: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	return nil
}

// loadTree reads the configured tree file, or the bundled source when no file is set.
func loadTree(c config.Config) (*book.MoveNode, error) {
	if c.TreePath != "" {
		return book.Load(c.TreePath)
	}
	return book.LoadSource(c.Source)
}
