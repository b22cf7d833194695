package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-patience/internal/engine"
	"github.com/vovakirdan/tui-patience/internal/random"
	"github.com/vovakirdan/tui-patience/internal/registry"
)

var (
	flagDealSeed string
	flagDealOut  string
)

var dealCmd = &cobra.Command{
	Use:   "deal <game>",
	Short: "Print the layout of a deal",
	Long: `Deal a game and print its layout without playing it.

Seeds:
  ms<N>      - Microsoft deal number N (0 to 8589934591)
  <N>        - numeric seed; up to 32000 selects the Microsoft generator
  (empty)    - a fresh random seed

Examples:
  patience deal freecell --seed ms24
  patience deal klondike --seed 1234567890123456
  patience deal lucie --out lucie.sav`,
	Args: cobra.ExactArgs(1),
	Run:  runDeal,
}

func init() {
	dealCmd.Flags().StringVar(&flagDealSeed, "seed", "", "Deal seed (random if empty)")
	dealCmd.Flags().StringVarP(&flagDealOut, "out", "o", "", "Also write the deal to a save file")
}

func runDeal(_ *cobra.Command, args []string) {
	v, err := registry.Create(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'patience list' to see available games.")
		os.Exit(1)
	}

	var r random.Random
	if flagDealSeed != "" {
		if r, err = random.Parse(flagDealSeed); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	g := engine.NewGame(v, engine.WithLogger(logger))
	g.Start(r)
	printLayout(os.Stdout, g)

	if flagDealOut != "" {
		if err := g.SaveFile(flagDealOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nSaved to %s\n", flagDealOut)
	}
}

// printLayout writes the non-row piles one per line, then the rows side by
// side the way deal listings show them.
func printLayout(w io.Writer, g *engine.Game) {
	fmt.Fprintf(w, "%s #%s\n\n", g.Info().Name, g.Random().SeedString())

	for _, kind := range []engine.PileKind{engine.KindTalon, engine.KindWaste, engine.KindReserve, engine.KindFoundation} {
		piles := g.PilesOf(kind)
		for i, p := range piles {
			label := kind.String()
			if len(piles) > 1 {
				label = fmt.Sprintf("%s %d", kind, i+1)
			}
			fmt.Fprintf(w, "%-13s %s\n", label, pileText(p))
		}
	}

	rows := g.PilesOf(engine.KindRow)
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(w)
	if len(rows) > 8 {
		// too many rows to show side by side
		for i, p := range rows {
			fmt.Fprintf(w, "row %-9d %s\n", i+1, pileText(p))
		}
		return
	}
	for k := 0; ; k++ {
		var line []string
		for _, p := range rows {
			switch {
			case k < p.Len():
				line = append(line, cardText(p, k))
			default:
				line = append(line, "  ")
			}
		}
		text := strings.TrimRight(strings.Join(line, " "), " ")
		if text == "" {
			break
		}
		fmt.Fprintln(w, text)
	}
}

func pileText(p *engine.Pile) string {
	if p.Empty() {
		return "-"
	}
	if p.Kind == engine.KindTalon {
		return fmt.Sprintf("%d cards", p.Len())
	}
	parts := make([]string, p.Len())
	for i := range parts {
		parts[i] = cardText(p, i)
	}
	return strings.Join(parts, " ")
}

func cardText(p *engine.Pile, i int) string {
	c := p.Cards()[i]
	if !c.FaceUp {
		return "##"
	}
	return c.String()
}
