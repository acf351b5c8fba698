package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"showflix/internal/ui"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the configured categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cats := prov.Categories()
		if flagJSON {
			return printJSON(cats)
		}
		for _, c := range cats {
			fmt.Println(c.Name)
		}
		return nil
	},
}

var flagPage int

var browseCmd = &cobra.Command{
	Use:   "browse <category>",
	Short: "List one page of a category",
	Long: `List one page of a category, movies and series mixed. Each line shows the
title and the token that load and resolve accept.`,
	Args: cobra.ExactArgs(1),
	RunE: browseRun,
}

func init() {
	browseCmd.Flags().IntVarP(&flagPage, "page", "p", 1, "Page number, starting at 1")
}

func browseRun(cmd *cobra.Command, args []string) error {
	page, err := prov.ListCategorySummaries(cmd.Context(), args[0], flagPage)
	if err != nil {
		return fmt.Errorf("browsing %s: %w", args[0], err)
	}
	if flagJSON {
		return printJSON(page)
	}

	f := ui.NewFormatter()
	for _, s := range page.Items {
		fmt.Printf("%s\t%s\n", f.Summary(s), s.Token)
	}
	if page.HasNext {
		debugf("more results: --page %d", page.Number+1)
	}
	return nil
}
