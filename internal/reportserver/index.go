package reportserver

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// indexPage renders the list of available reports.
func indexPage(title string, names []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		escapedTitle := templ.EscapeString(title)
		if _, err := fmt.Fprintf(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>%s</title>
  </head>
  <body>
    <h1>%s</h1>
`, escapedTitle, escapedTitle); err != nil {
			return err
		}
		if len(names) == 0 {
			if _, err := io.WriteString(w, "    <p>No reports have been generated yet.</p>\n"); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, "    <ul class=\"reports\">\n"); err != nil {
				return err
			}
			for _, name := range names {
				if _, err := fmt.Fprintf(w, "      <li><a href=\"/reports/%s\">%s</a></li>\n", url.PathEscape(name), templ.EscapeString(name)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "    </ul>\n"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "    <p><a href=\"/api/leaderboard\">Leaderboard (JSON)</a></p>\n  </body>\n</html>\n")
		return err
	})
}
