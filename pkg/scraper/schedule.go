package scraper

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"wiutctl/pkg/timetable"
)

// ParseTimetable parses a saved timetable page into a week.
func ParseTimetable(r io.Reader, b timetable.Builder) (*timetable.Week, error) {
	page, err := ParseTimetablePage(r)
	if err != nil {
		return nil, err
	}
	return b.Build(page.Grid())
}

// FetchTimetable downloads and reconstructs the timetable of a group id.
// Fresh results from the disk cache are returned without a request.
func (c *Client) FetchTimetable(ctx context.Context, groupID string, b timetable.Builder) (*timetable.Week, error) {
	if !c.noCache {
		if week, ok := readCache(groupID); ok {
			c.log.Debug("cache hit", zap.String("group_id", groupID))
			return week, nil
		}
	}

	doc, err := c.FetchDocument(ctx, groupID)
	if err != nil {
		return nil, err
	}

	week, err := b.Build(ExtractGrid(doc))
	if err != nil {
		return nil, fmt.Errorf("timetable of group %s: %w", groupID, err)
	}

	if !c.noCache {
		writeCache(groupID, week)
	}
	return week, nil
}
