package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/abhisek/askframe/internal/render"
	"github.com/abhisek/askframe/internal/result"
)

func newFormatCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "format [file|-]",
		Short: "Render a tagged result envelope",
		Long: "format reads a {\"type\": ..., \"value\": ...} envelope from a file or " +
			"stdin and prints its payload. Types: plot, dataframe (pandas split " +
			"orientation), string, number.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			res, err := result.Parse(data)
			if err != nil {
				return fmt.Errorf("parse result: %w", err)
			}

			maxRows, _ := cmd.Flags().GetInt("max-rows")
			plain, _ := cmd.Flags().GetBool("plain")
			out := cmd.OutOrStdout()

			r := render.New(
				render.WithMaxRows(maxRows),
				render.WithStyle(!plain && isTerminal(out)),
			)
			fmt.Fprintln(out, r.Render(res))
			return nil
		},
	}

	c.Flags().IntP("max-rows", "n", 20, "Maximum table rows to show (0 = all)")
	c.Flags().Bool("plain", false, "Disable colors")
	return c
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read result: %w", err)
	}
	return data, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
