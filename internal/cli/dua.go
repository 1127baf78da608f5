package cli

import (
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/smokyabdulrahman/ramazon/internal/content"
	"github.com/smokyabdulrahman/ramazon/internal/display"
	"github.com/spf13/cobra"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

func newDuaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "dua [sahar|iftor]",
		Short:     "Show the saharlik and iftorlik duas",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"sahar", "iftor"},
		RunE:      runDua,
	}
}

func runDua(cmd *cobra.Command, args []string) error {
	duas := content.Duas
	if len(args) == 1 {
		d, err := content.FindDua(args[0])
		if err != nil {
			return err
		}
		duas = []content.Dua{d}
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		return printJSON(out, duas)
	}

	width := min(display.Width(80), 100)
	for _, d := range duas {
		printDua(out, d, width)
	}
	return nil
}

func printDua(w io.Writer, d content.Dua, width int) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n\n", display.Bold(d.Title))
	fmt.Fprintln(w, display.Paragraph(d.Arabic, width, 2))
	fmt.Fprintln(w)
	fmt.Fprintln(w, display.Paragraph(display.Cyan(d.Transliteration), width, 2))
	fmt.Fprintln(w)
	fmt.Fprintln(w, display.Paragraph(display.Dim(d.Translation), width, 2))
}

func newShareCmd() *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Copy today's times to the clipboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := viewState(cmd)
			if err != nil {
				return err
			}
			text := state.ShareText(state.Now())
			out := cmd.OutOrStdout()

			if FlagJSON {
				return printJSON(out, struct {
					Text string `json:"text"`
				}{text})
			}

			fmt.Fprintln(out, text)
			if printOnly {
				return nil
			}
			if err := copyToClipboard(text); err != nil {
				warnf(cmd, "could not copy to clipboard: %v", err)
				return nil
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, display.Green("Ma'lumot nusxalandi!"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "Print only, do not copy to the clipboard")

	return cmd
}
