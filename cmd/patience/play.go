package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-patience/internal/platform/tui"
	"github.com/vovakirdan/tui-patience/internal/registry"
	"github.com/vovakirdan/tui-patience/internal/savegame"
	"github.com/vovakirdan/tui-patience/internal/storage"
)

var (
	flagPlaySeed   string
	flagPlayLoad   string
	flagPlayResume string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game. Without a game, a menu lets you
pick one or resume a game saved in the database.

Controls:
  Left/Right, h/l  - Move the cursor between piles
  Enter/Space      - Pick up cards, then drop them on another pile
  D                - Deal from the talon
  U / Ctrl+R       - Undo / redo
  T                - Hint
  A                - Demo
  B / G / Shift+G  - Set bookmark / go to bookmark / undo the jump
  S                - Save
  R / N            - Restart the deal / new deal
  ?                - Show all keys
  Q/Ctrl+C         - Quit

Examples:
  patience play freecell --seed ms11982
  patience play klondike
  patience play --load ~/.patience/saves/freecell-ms24.sav
  patience play --resume 3f1c...`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlaySeed, "seed", "", "Deal seed (random if empty)")
	playCmd.Flags().StringVar(&flagPlayLoad, "load", "", "Resume a save file")
	playCmd.Flags().StringVar(&flagPlayResume, "resume", "", "Resume a game saved in the database by id")
}

func runPlay(_ *cobra.Command, args []string) {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(appConfig.DBPath)
	if err != nil {
		logger.Warn("could not open results database", "err", err)
		// Continue without storage - the game still works
		store = nil
	}

	opts := tui.Options{
		Seed:     flagPlaySeed,
		LoadPath: flagPlayLoad,
		LoadID:   flagPlayResume,
		Config:   appConfig,
		Store:    store,
		Logger:   logger,
		Width:    width,
		Height:   height,
	}

	switch {
	case len(args) == 1:
		opts.Game = args[0]
	case flagPlayLoad == "" && flagPlayResume == "":
		runMenuLoop(store, opts)
		closeStore(store)
		return
	}

	if opts.Game != "" && !registry.Exists(opts.Game) {
		closeStore(store)
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", opts.Game)
		fmt.Fprintln(os.Stderr, "Run 'patience list' to see available games.")
		os.Exit(1)
	}

	runErr := tui.Run(opts)
	closeStore(store)
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", describe(runErr))
		os.Exit(1)
	}
}

// runMenuLoop shows the menu until the player quits, playing the picked
// games in between.
func runMenuLoop(store *storage.Store, opts tui.Options) {
	for {
		result, err := tui.RunMenu(store, opts.Width, opts.Height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		opts.Width, opts.Height = result.Width, result.Height

		switch {
		case result.Quit:
			return
		case result.WantsStats:
			if err := tui.RunStats(store, "", opts.Width, opts.Height); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			continue
		}

		game := opts
		game.Game, game.LoadID, game.Seed = result.GameID, result.SaveID, ""
		if err := tui.Run(game); err != nil {
			logger.Error("cannot play", "game", result.GameID, "err", describe(err))
		}
	}
}

// describe adds the load error class to err when there is one.
func describe(err error) string {
	if msg := savegame.Describe(err); msg != "" && msg != err.Error() {
		return fmt.Sprintf("%s (%v)", msg, err)
	}
	return err.Error()
}

func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}
