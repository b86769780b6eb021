package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spigell/lente/internal/lexicon"

	"github.com/spf13/cobra"
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon [term]",
	Short: "Print a built-in lexicon, the expansion of a term or the area of a place",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		places, _ := cmd.Flags().GetBool("places")

		lex := lexicon.Skills
		if places {
			lex = lexicon.Places
		}

		switch {
		case len(args) == 0:
			printLexicon(os.Stdout, lex)
		case places:
			area, ok := lex.Resolve(lexicon.Normalize(args[0]))
			if !ok {
				fmt.Println("no area")
				return
			}
			fmt.Println(area.Key)
		default:
			fmt.Println(strings.Join(lex.Expand(args[0]), ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(lexiconCmd)

	lexiconCmd.Flags().BoolP("places", "p", false, "print the geographic lexicon")
}

func printLexicon(w io.Writer, lex *lexicon.Lexicon) {
	for _, e := range lex.Entries() {
		fmt.Fprintf(w, "%s: %s\n", e.Key, strings.Join(e.Synonyms, ", "))
	}
}
