package scraper

import (
	"io"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"wiutctl/pkg/timetable"
)

// TimetablePage is a fetched timetable document. It is the only place that
// knows how the grid is laid out in HTML: the first table on the page, a
// header row of hours, and a leading weekday-label column in every row.
type TimetablePage struct {
	table *goquery.Selection
}

// NewTimetablePage wraps an already parsed document.
func NewTimetablePage(doc *goquery.Document) *TimetablePage {
	return &TimetablePage{table: doc.Find("table").First()}
}

// ParseTimetablePage parses a saved timetable page.
func ParseTimetablePage(r io.Reader) (*TimetablePage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return NewTimetablePage(doc), nil
}

// Rows returns the weekday rows, header row excluded.
func (p *TimetablePage) Rows() []*goquery.Selection {
	// tr elements always end up inside an implied tbody/thead
	return skipFirst(p.table.Children().ChildrenFiltered("tr"))
}

// Cells returns the time-slot cells of a row, weekday label excluded.
func (p *TimetablePage) Cells(row *goquery.Selection) []*goquery.Selection {
	return skipFirst(row.ChildrenFiltered("td, th"))
}

// Grid flattens the page into the raw grid consumed by the week builder.
func (p *TimetablePage) Grid() timetable.Grid {
	var grid timetable.Grid
	for _, row := range p.Rows() {
		var cells timetable.Row
		for _, cell := range p.Cells(row) {
			cells = append(cells, fragments(cell))
		}
		grid = append(grid, cells)
	}
	return grid
}

// ExtractGrid returns the raw grid of a fetched timetable document.
func ExtractGrid(doc *goquery.Document) timetable.Grid {
	return NewTimetablePage(doc).Grid()
}

func skipFirst(sel *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	sel.Each(func(i int, s *goquery.Selection) {
		if i > 0 {
			out = append(out, s)
		}
	})
	return out
}

// fragments collects the text nodes of a cell in document order.
func fragments(cell *goquery.Selection) timetable.Cell {
	var out timetable.Cell
	for _, n := range cell.Nodes {
		collectText(n, &out)
	}
	return out
}

func collectText(n *html.Node, out *timetable.Cell) {
	if n.Type == html.TextNode {
		*out = append(*out, n.Data)
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, out)
	}
}
