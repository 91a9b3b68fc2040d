// Package outline writes a catalog manifest as a Markdown document for
// printing, review or diffing between manifest versions.
package outline

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/lernkatalog/internal/catalog"
	"github.com/ziadkadry99/lernkatalog/internal/manifest"
)

// Write renders m as Markdown to w.
func Write(w io.Writer, m *manifest.Manifest, title string) error {
	md := markdown.NewMarkdown(w)

	md.H1(title)
	md.PlainText("")
	if !m.GeneratedAt.IsZero() {
		md.PlainTextf("Stand: %s", m.GeneratedAt.UTC().Format(time.RFC3339))
		md.PlainText("")
	}

	writeSummary(md, m)

	for _, lf := range m.Units {
		md.H2(fmt.Sprintf("%s – %s", lf.ID, lf.Title))
		md.PlainText("")
		if len(lf.Situations) == 0 {
			md.Note("Keine Lernsituationen hinterlegt.")
			md.PlainText("")
			continue
		}
		for _, ls := range lf.Situations {
			writeSituation(md, &ls)
		}
	}

	return md.Build()
}

func writeSummary(md *markdown.Markdown, m *manifest.Manifest) {
	rows := make([][]string, 0, len(m.Units)+1)
	total := 0
	for _, lf := range m.Units {
		rows = append(rows, []string{lf.ID, escapeCell(lf.Title), strconv.Itoa(len(lf.Situations))})
		total += len(lf.Situations)
	}
	rows = append(rows, []string{"**Gesamt**", "", "**" + strconv.Itoa(total) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Lernfeld", "Titel", "Lernsituationen"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeSituation(md *markdown.Markdown, ls *manifest.Situation) {
	md.H3(fmt.Sprintf("%s: %s", ls.ID, ls.Title))
	md.PlainText("")

	if items := metaItems(ls.Meta); len(items) > 0 {
		md.BulletList(items...)
		md.PlainText("")
	}
	if ls.Overview != "" {
		md.PlainText(ls.Overview)
		md.PlainText("")
	}
	for _, sec := range ls.Sections {
		md.PlainTextf("**%s**", sec.Title)
		md.PlainText("")
		if text := PlainText(sec.HTML); text != "" {
			md.PlainText(text)
		} else {
			md.PlainText("Keine Inhalte hinterlegt.")
		}
		md.PlainText("")
	}
	if ls.Source != "" {
		md.PlainTextf("Quelle: <%s>", ls.Source)
		md.PlainText("")
	}
}

func metaItems(meta *manifest.Meta) []string {
	if meta == nil {
		return nil
	}
	var items []string
	if hours, ok := catalog.HoursText(meta); ok {
		items = append(items, "Stunden: "+hours)
	}
	if meta.Year != nil && *meta.Year != "" {
		items = append(items, "Jahrgang: "+*meta.Year)
	}
	if meta.Approval != nil && *meta.Approval != "" {
		items = append(items, "Freigabe: "+*meta.Approval)
	}
	if len(meta.Tags) > 0 {
		items = append(items, "Tags: "+strings.Join(meta.Tags, ", "))
	}
	return items
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// block elements end a line of plain text.
var block = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "table": true, "pre": true, "blockquote": true,
}

// PlainText strips markup from an HTML fragment. Block elements become
// line breaks; runs of whitespace inside a line collapse to one space.
func PlainText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return tidy(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if block[string(name)] {
				b.WriteByte('\n')
			}
		}
	}
}

func tidy(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
