package catalog

import (
	"fmt"
	"html/template"

	"github.com/ziadkadry99/lernkatalog/internal/manifest"
)

// EmptySectionHTML replaces a section without content.
const EmptySectionHTML = "<p>Keine Inhalte hinterlegt.</p>"

// ChipKind classifies a meta chip.
type ChipKind string

const (
	ChipHours    ChipKind = "hours"
	ChipYear     ChipKind = "year"
	ChipApproval ChipKind = "approval"
	ChipTag      ChipKind = "tag"
)

// Chip is one small badge in the meta block.
type Chip struct {
	Kind ChipKind
	Icon string
	Text string
}

// IsTag reports whether the chip displays a tag.
func (c Chip) IsTag() bool { return c.Kind == ChipTag }

// SectionBlock is a rendered section: escaped title, trusted content.
type SectionBlock struct {
	Title   string
	Content template.HTML
}

// Card is the detail view model of one situation.
type Card struct {
	Badge    string
	Heading  string
	HasMeta  bool
	Chips    []Chip
	Overview string
	Sections []SectionBlock
	Source   string
}

// BuildCard assembles the detail view for ls inside lf. It only reads
// the manifest.
func BuildCard(ls *manifest.Situation, lf *manifest.Unit) Card {
	card := Card{
		Badge:    fmt.Sprintf("%s · %s", lf.ID, lf.Title),
		Heading:  ls.Title,
		Overview: ls.Overview,
		Source:   ls.Source,
	}

	if ls.Meta != nil {
		card.HasMeta = true
		card.Chips = metaChips(ls.Meta)
	}

	for _, sec := range ls.Sections {
		content := sec.HTML
		if content == "" {
			content = EmptySectionHTML
		}
		card.Sections = append(card.Sections, SectionBlock{
			Title:   sec.Title,
			Content: template.HTML(content),
		})
	}

	return card
}

// metaChips returns hours, year and approval chips (each only when set and
// non-empty) followed by one chip per tag.
func metaChips(meta *manifest.Meta) []Chip {
	var chips []Chip
	if text, ok := HoursText(meta); ok {
		chips = append(chips, Chip{Kind: ChipHours, Icon: "⏱", Text: text})
	}
	if meta.Year != nil && *meta.Year != "" {
		chips = append(chips, Chip{Kind: ChipYear, Icon: "🎓", Text: *meta.Year})
	}
	if meta.Approval != nil && *meta.Approval != "" {
		chips = append(chips, Chip{Kind: ChipApproval, Icon: "📋", Text: *meta.Approval})
	}
	for _, tag := range meta.Tags {
		chips = append(chips, Chip{Kind: ChipTag, Text: tag})
	}
	return chips
}

// RenderCard renders the detail card markup.
func (t *Templates) RenderCard(card Card) template.HTML {
	return execute(t.Card, card)
}

// RenderSituation replaces the detail container with the view of ls and
// records (ls, lf) as the current selection.
func RenderSituation(s *Surface, ls *manifest.Situation, lf *manifest.Unit) {
	s.Detail.Selection = &Selection{Unit: lf, Situation: ls}
	s.Detail.Replace(s.tpl.RenderCard(BuildCard(ls, lf)))
}
