package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"showflix/internal/media"
	"showflix/internal/player"
	"showflix/internal/ui"
)

const nextPageItem = "Next page >"

// interactiveRun is the default command: category -> title -> episode -> play.
func interactiveRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var category string
	if len(args) == 1 {
		category = args[0]
	} else {
		cats := prov.Categories()
		names := make([]string, len(cats))
		for i, c := range cats {
			names[i] = c.Name
		}
		idx, err := ui.Select("Category", names)
		if err != nil {
			return err
		}
		category = cats[idx].Name
	}

	selected, err := pickFromCategory(ctx, category, 1)
	if err != nil {
		return err
	}
	return playTitle(ctx, selected)
}

// pickFromCategory lets the user page through a category until a title is
// picked.
func pickFromCategory(ctx context.Context, category string, page int) (media.Summary, error) {
	f := ui.Formatter{}
	for {
		result, err := prov.ListCategorySummaries(ctx, category, page)
		if err != nil {
			return media.Summary{}, fmt.Errorf("browsing %s: %w", category, err)
		}
		if len(result.Items) == 0 {
			return media.Summary{}, fmt.Errorf("no titles found in %s", result.Category)
		}

		items := make([]string, 0, len(result.Items)+1)
		for _, s := range result.Items {
			items = append(items, f.Summary(s))
		}
		if result.HasNext {
			items = append(items, nextPageItem)
		}

		idx, err := ui.Select(fmt.Sprintf("%s (page %d)", result.Category, page), items)
		if err != nil {
			return media.Summary{}, err
		}
		if idx < len(result.Items) {
			return result.Items[idx], nil
		}
		page++
		debugf("loading page %d of %s", page, category)
	}
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search titles by name",
	Args:  cobra.ArbitraryArgs,
	RunE:  searchRun,
}

func searchRun(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	if query == "" {
		var err error
		query, err = ui.Input("Search")
		if err != nil {
			return fmt.Errorf("no search query provided")
		}
	}
	debugf("searching for: %s", query)

	results, err := prov.Search(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if flagJSON {
		return printJSON(results)
	}
	if len(results) == 0 {
		return fmt.Errorf("no results found for %q", query)
	}

	f := ui.Formatter{}
	items := make([]string, len(results))
	for i, r := range results {
		items[i] = f.Summary(r)
	}
	idx, err := ui.Select("Select", items)
	if err != nil {
		return err
	}
	return playTitle(cmd.Context(), results[idx])
}

// playTitle loads a title, asks for an episode if it is a series, and
// hands the stream to the output step.
func playTitle(ctx context.Context, selected media.Summary) error {
	debugf("selected: %s (ID: %s, kind: %s)", selected.Title, selected.ID, selected.Kind)

	tok := selected.Token
	if selected.Kind == media.Series {
		detail, err := prov.LoadDetail(ctx, tok)
		if err != nil {
			return fmt.Errorf("loading %s: %w", selected.Title, err)
		}
		ep, err := pickEpisode(detail)
		if err != nil {
			return err
		}
		tok = ep.Token
	}

	stream, err := prov.ResolveStream(ctx, tok)
	if err != nil {
		return fmt.Errorf("resolving stream: %w", err)
	}
	return outputStream(stream)
}

func pickEpisode(detail *media.Detail) (media.Episode, error) {
	if len(detail.Episodes) == 0 {
		return media.Episode{}, fmt.Errorf("no episodes found for %s", detail.Title)
	}

	f := ui.Formatter{}
	items := make([]string, len(detail.Episodes))
	for i, ep := range detail.Episodes {
		items[i] = f.Episode(ep)
	}
	idx, err := ui.Select("Episode", items)
	if err != nil {
		return media.Episode{}, err
	}
	return detail.Episodes[idx], nil
}

// outputStream prints or plays a resolved stream, depending on flags.
func outputStream(stream *media.Stream) error {
	if flagJSON {
		return printJSON(stream)
	}
	if !stream.Available() {
		fmt.Fprintf(os.Stderr, "No link available for %s\n", stream.Title)
		return nil
	}
	debugf("stream URL: %s", stream.URL)

	if flagPrint {
		fmt.Println(stream.URL)
		return nil
	}

	p := player.New(cfg.Player)
	if err := p.Play(stream); err != nil {
		if errors.Is(err, player.ErrNoLink) {
			return nil
		}
		return fmt.Errorf("playback failed: %w", err)
	}
	return nil
}
