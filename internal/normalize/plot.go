package normalize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanPlot strips markup from a storyline and collapses whitespace.
// Script and style elements are dropped along with their content.
func CleanPlot(plot string) string {
	plot = strings.TrimSpace(plot)
	if plot == "" {
		return ""
	}
	if !strings.ContainsAny(plot, "<&") {
		return strings.Join(strings.Fields(plot), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(plot))
	if err != nil {
		return strings.Join(strings.Fields(plot), " ")
	}
	doc.Find("script, style").Remove()

	return strings.Join(strings.Fields(doc.Text()), " ")
}
