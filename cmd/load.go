package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"showflix/internal/media"
	"showflix/internal/ui"
)

var loadCmd = &cobra.Command{
	Use:   "load <token>",
	Short: "Show the details of a title",
	Args:  cobra.ExactArgs(1),
	RunE:  loadRun,
}

func loadRun(cmd *cobra.Command, args []string) error {
	tok, err := media.DecodeToken(args[0])
	if err != nil {
		return err
	}

	detail, err := prov.LoadDetail(cmd.Context(), tok)
	if err != nil {
		return fmt.Errorf("loading %s: %w", tok.ID, err)
	}
	if flagJSON {
		return printJSON(detail)
	}

	f := ui.NewFormatter()
	fmt.Print(f.Detail(detail))
	if len(detail.Episodes) > 0 {
		fmt.Println()
	}
	for _, ep := range detail.Episodes {
		fmt.Printf("%s\t%s\n", f.Episode(ep), ep.Token)
	}
	return nil
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <token>",
	Short: "Resolve a movie or episode token to its stream and play it",
	Args:  cobra.ExactArgs(1),
	RunE:  resolveRun,
}

func resolveRun(cmd *cobra.Command, args []string) error {
	tok, err := media.DecodeToken(args[0])
	if err != nil {
		return err
	}

	stream, err := prov.ResolveStream(cmd.Context(), tok)
	if err != nil {
		return fmt.Errorf("resolving stream: %w", err)
	}
	return outputStream(stream)
}
