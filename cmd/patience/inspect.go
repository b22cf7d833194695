package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-patience/internal/engine"
	"github.com/vovakirdan/tui-patience/internal/registry"
	"github.com/vovakirdan/tui-patience/internal/savegame"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Check a save file and describe its contents",
	Long: `Read a save file without playing it. The header is printed first, then
the file is fully decoded and checked. A damaged, inconsistent or
incompatible file is reported with the field that failed.

Examples:
  patience inspect ~/.patience/saves/freecell-ms24.sav`,
	Args: cobra.ExactArgs(1),
	Run:  runInspect,
}

func runInspect(_ *cobra.Command, args []string) {
	if err := inspect(os.Stdout, args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", savegame.Describe(err))
		var le *savegame.LoadError
		if errors.As(err, &le) && le.Field != "" {
			fmt.Fprintf(os.Stderr, "Field: %s\n", le.Field)
		}
		os.Exit(1)
	}
}

func inspect(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	h, err := savegame.ReadHeader(savegame.NewDecoder(f))
	f.Close()
	if err != nil {
		return err
	}

	name, ok := registry.Name(h.GameID)
	if !ok {
		name = "unknown"
	}
	fmt.Fprintf(w, "File:         %s\n", path)
	fmt.Fprintf(w, "Format:       %s %s\n", h.Package, h.Version)
	fmt.Fprintf(w, "Level:        %s\n", levelName(h.Level))
	fmt.Fprintf(w, "Game:         %s (id %d, version %d)\n", name, h.GameID, h.GameVersion)

	f, err = os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	sd, err := engine.Decode(f, registry.Lookup)
	if err != nil {
		return err
	}

	cards := 0
	for _, p := range sd.Piles {
		cards += len(p)
	}
	fmt.Fprintf(w, "Seed:         %s\n", sd.SeedString())
	fmt.Fprintf(w, "Piles:        %d (%d cards)\n", len(sd.Piles), cards)
	fmt.Fprintf(w, "Talon round:  %d\n", sd.TalonRound)
	fmt.Fprintf(w, "Finished:     %t\n", sd.Finished)
	fmt.Fprintf(w, "History:      move %d of %d\n", sd.Index, len(sd.Entries))
	if kinds := moveKinds(sd.Entries); kinds != "" {
		fmt.Fprintf(w, "              %s\n", kinds)
	}
	fmt.Fprintf(w, "Snapshots:    %d\n", len(sd.Snapshots))

	if len(sd.GlobalSaveInfo.Bookmarks) > 0 {
		slots := make([]int, 0, len(sd.GlobalSaveInfo.Bookmarks))
		for n := range sd.GlobalSaveInfo.Bookmarks {
			slots = append(slots, n)
		}
		sort.Ints(slots)
		for _, n := range slots {
			fmt.Fprintf(w, "Bookmark %-4d at move %d\n", n, sd.GlobalSaveInfo.Bookmarks[n].MovesIndex)
		}
	}
	if sd.GlobalSaveInfo.Comment != "" {
		fmt.Fprintf(w, "Comment:      %s\n", sd.GlobalSaveInfo.Comment)
	}

	st := sd.Stats
	fmt.Fprintf(w, "Moves:        %d total, %d player, %d demo, %d autoplay\n",
		st.TotalMoves, st.PlayerMoves, st.DemoMoves, st.AutoplayMoves)
	fmt.Fprintf(w, "Undo/redo:    %d/%d, %d hints\n", st.UndoMoves, st.RedoMoves, st.Hints)
	gs := sd.GlobalStats
	fmt.Fprintf(w, "Sessions:     loaded %d, saved %d, restarted %d\n", gs.Loaded, gs.Saved, gs.Restarted)
	return nil
}

func levelName(level int) string {
	switch level {
	case savegame.LevelSave:
		return "save"
	case savegame.LevelBookmark:
		return "bookmark"
	case savegame.LevelUndoPoint:
		return "undo point"
	default:
		return fmt.Sprintf("level %d", level)
	}
}

// moveKinds counts the atomic moves of a history by type, most frequent first.
func moveKinds(entries [][]engine.AtomicMove) string {
	counts := make(map[string]int)
	for _, entry := range entries {
		for _, m := range entry {
			counts[strings.TrimPrefix(fmt.Sprintf("%T", m), "*engine.")]++
		}
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if counts[kinds[i]] != counts[kinds[j]] {
			return counts[kinds[i]] > counts[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = fmt.Sprintf("%s %d", k, counts[k])
	}
	return strings.Join(parts, ", ")
}
