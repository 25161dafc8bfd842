package scraper

import (
	"context"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FetchGroups retrieves the group code table from the timetable landing page
func (c *Client) FetchGroups(ctx context.Context) (*GroupTable, error) {
	doc, err := c.getDocument(ctx, timetablePath, nil)
	if err != nil {
		return nil, err
	}
	return groupsFromDocument(doc), nil
}

// ParseGroups reads the group code table from a saved landing page.
func ParseGroups(r io.Reader) (*GroupTable, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return groupsFromDocument(doc), nil
}

func groupsFromDocument(doc *goquery.Document) *GroupTable {
	var groups []Group

	// The groups are stored as <option> tags of the .dropdown1 select
	doc.Find(".dropdown1 option").Each(func(i int, sel *goquery.Selection) {
		val, exists := sel.Attr("value")
		val = strings.TrimSpace(val)
		if exists && val != "" {
			groups = append(groups, Group{
				Name: strings.TrimSpace(sel.Text()),
				ID:   val,
			})
		}
	})

	return NewGroupTable(groups)
}
