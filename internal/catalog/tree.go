package catalog

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/ziadkadry99/lernkatalog/internal/manifest"
)

// NavContainer is the navigation mount point. It holds one UnitNode per
// Lernfeld in manifest order.
type NavContainer struct {
	Units []*UnitNode
	// Base prefixes page links: "/" in the viewer, "../" on exported
	// situation pages.
	Base string

	tpl *Templates
}

// UnitNode is a rendered Lernfeld row: a toggle and a nested situation list.
type UnitNode struct {
	Index      int
	Label      string
	Expanded   bool
	Situations []*SituationNode

	onClick func()
}

// SituationNode is a rendered Lernsituation row.
type SituationNode struct {
	UnitIndex int
	Index     int
	Label     string
	// Matched is the outcome of the last applied filter.
	Matched bool

	unit    *UnitNode
	onClick func()
}

// Click fires the toggle handler bound at construction.
func (u *UnitNode) Click() {
	if u.onClick != nil {
		u.onClick()
	}
}

// ListVisible reports whether the nested situation list is displayed.
func (u *UnitNode) ListVisible() bool { return u.Expanded }

// Click fires the selection handler bound at construction.
func (n *SituationNode) Click() {
	if n.onClick != nil {
		n.onClick()
	}
}

// Visible reports whether the entry is on screen: its unit is expanded and
// the last filter matched it.
func (n *SituationNode) Visible() bool {
	return n.unit != nil && n.unit.Expanded && n.Matched
}

// Unit returns the i-th unit row or nil.
func (c *NavContainer) Unit(i int) *UnitNode {
	if i < 0 || i >= len(c.Units) {
		return nil
	}
	return c.Units[i]
}

// Situation returns situation row j of unit i or nil.
func (c *NavContainer) Situation(i, j int) *SituationNode {
	u := c.Unit(i)
	if u == nil || j < 0 || j >= len(u.Situations) {
		return nil
	}
	return u.Situations[j]
}

// Entries returns every situation row in display order.
func (c *NavContainer) Entries() []*SituationNode {
	var all []*SituationNode
	for _, u := range c.Units {
		all = append(all, u.Situations...)
	}
	return all
}

// Clear removes all rows.
func (c *NavContainer) Clear() {
	c.Units = nil
}

// RenderUnits builds the navigation tree from m and binds each row to its
// handler. Every unit starts collapsed; every situation starts matched.
func RenderUnits(s *Surface, m *manifest.Manifest) {
	s.Nav.Clear()
	s.GeneratedAt = formatTimestamp(m.GeneratedAt.Time, s.Location)

	for i := range m.Units {
		lf := &m.Units[i]
		node := &UnitNode{
			Index: i,
			Label: UnitLabel(lf),
		}
		node.onClick = func() {
			node.Expanded = !node.Expanded
		}

		for j := range lf.Situations {
			ls := &lf.Situations[j]
			node.Situations = append(node.Situations, &SituationNode{
				UnitIndex: i,
				Index:     j,
				Label:     SituationLabel(ls),
				Matched:   true,
				unit:      node,
				onClick: func() {
					RenderSituation(s, ls, lf)
				},
			})
		}

		s.Nav.Units = append(s.Nav.Units, node)
	}
}

// UnitLabel is the toggle text of a unit row.
func UnitLabel(lf *manifest.Unit) string {
	return fmt.Sprintf("%s – %s", lf.ID, lf.Title)
}

// SituationLabel is the text of a situation row.
func SituationLabel(ls *manifest.Situation) string {
	return fmt.Sprintf("%s: %s", ls.ID, ls.Title)
}

type unitRowData struct {
	DOMID    string
	Index    int
	Label    string
	Expanded bool
	Base     string
	Items    template.HTML
}

type situationRowData struct {
	DOMID     string
	UnitIndex int
	Index     int
	Label     string
	Matched   bool
	Base      string
}

// Render projects the navigation tree through the row templates.
func (c *NavContainer) Render() template.HTML {
	var b strings.Builder
	for _, u := range c.Units {
		b.WriteString(string(c.renderUnit(u)))
	}
	return template.HTML(b.String())
}

func (c *NavContainer) renderUnit(u *UnitNode) template.HTML {
	var items strings.Builder
	for _, n := range u.Situations {
		items.WriteString(string(execute(c.tpl.SituationRow, situationRowData{
			DOMID:     SituationDOMID(n.UnitIndex, n.Index),
			UnitIndex: n.UnitIndex,
			Index:     n.Index,
			Label:     n.Label,
			Matched:   n.Matched,
			Base:      c.Base,
		})))
	}
	return execute(c.tpl.UnitRow, unitRowData{
		DOMID:    UnitDOMID(u.Index),
		Index:    u.Index,
		Label:    u.Label,
		Expanded: u.Expanded,
		Base:     c.Base,
		Items:    template.HTML(items.String()),
	})
}

// UnitDOMID is the element id of unit row i.
func UnitDOMID(i int) string { return fmt.Sprintf("lf-%d", i) }

// SituationDOMID is the element id of situation row j in unit i.
func SituationDOMID(i, j int) string { return fmt.Sprintf("ls-%d-%d", i, j) }
