// patience is a collection of solitaire card games for the terminal.
//
// Usage:
//
//	patience list                 - List available games
//	patience deal <game>          - Print the layout of a deal
//	patience play [game]          - Play a game, or pick one from a menu
//	patience serve                - Start SSH server for remote play
//	patience stats [game]         - Show results and win rates
//	patience saves [game]         - List or delete games saved in the database
//	patience inspect <file>       - Describe a save file
//
// Global flags:
//
//	--config <path> - Config file (default: ~/.patience/config.yaml)
//	--db <path>     - Database path (default from config)
//	--verbose       - Log engine debug events
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-patience/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/tui-patience/internal/games/freecell"
	_ "github.com/vovakirdan/tui-patience/internal/games/klondike"
	_ "github.com/vovakirdan/tui-patience/internal/games/lucie"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagVerbose bool

	// Set up by the root command before any subcommand runs
	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "patience",
	Short: "Patience - solitaire card games in your terminal",
	Long: `Patience is a collection of solitaire card games for the terminal.
Every deal is reproducible from its seed, every move can be undone and
redone, and games can be saved and resumed.

Available commands:
  list     - Show all available games
  deal     - Print the layout of a deal
  play     - Play a game
  serve    - Start SSH server for remote play
  stats    - View results
  saves    - Manage saved games
  inspect  - Describe a save file

Examples:
  patience list
  patience deal freecell --seed ms24
  patience play klondike
  patience play --load ~/.patience/saves/freecell-ms24.sav
  patience serve --ssh :2222
  patience stats freecell`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug events")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dealCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(inspectCmd)
}

// setup loads the configuration and the logger shared by all commands.
func setup(_ *cobra.Command, _ []string) error {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: flagVerbose,
		Prefix:          "patience",
	})
	logger.SetLevel(log.WarnLevel)
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	appConfig = cfg
	return nil
}
