// Package collector downloads the timetables of many groups and stores them.
//
// Requests to the intranet are made one at a time by a single producer (the
// scraper client paces them); reconstructing and saving the weeks happens on
// a small pool of workers, since every build owns its own state.
package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wiutctl/pkg/scraper"
	"wiutctl/pkg/timetable"
)

// Fetcher downloads the timetable page of a group id.
type Fetcher interface {
	FetchDocument(ctx context.Context, groupID string) (*goquery.Document, error)
}

// Saver persists a finished week.
type Saver interface {
	Save(group string, week *timetable.Week) error
}

// Result is the outcome for one group.
type Result struct {
	Group   scraper.Group
	Lessons int
	Err     error
}

// Collector runs a sync over a list of groups.
type Collector struct {
	Fetcher Fetcher
	Saver   Saver
	Builder timetable.Builder
	Workers int
	Log     *zap.Logger
}

type job struct {
	index int
	group scraper.Group
	page  *scraper.TimetablePage
}

// Run fetches, builds and saves every group. A failure for one group is
// recorded in its Result; Run itself only fails when the session is lost or
// ctx is cancelled.
func (c *Collector) Run(ctx context.Context, groups []scraper.Group) ([]Result, error) {
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}
	workers := c.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(groups))
	jobs := make(chan job)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i, group := range groups {
			start := time.Now()
			doc, err := c.Fetcher.FetchDocument(ctx, group.ID)
			if err != nil {
				if errors.Is(err, scraper.ErrNotLoggedIn) || ctx.Err() != nil {
					return fmt.Errorf("fetch %s: %w", group.Name, err)
				}
				log.Warn("fetch failed", zap.String("group", group.Name), zap.Error(err))
				results[i] = Result{Group: group, Err: err}
				continue
			}
			log.Debug("fetched", zap.String("group", group.Name), zap.Duration("took", time.Since(start)))

			select {
			case jobs <- job{index: i, group: group, page: scraper.NewTimetablePage(doc)}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for j := range jobs {
				results[j.index] = c.process(j, log)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (c *Collector) process(j job, log *zap.Logger) Result {
	res := Result{Group: j.group}

	week, err := c.Builder.Build(j.page.Grid())
	if err != nil {
		log.Error("timetable rejected", zap.String("group", j.group.Name), zap.Error(err))
		res.Err = err
		return res
	}

	if err := c.Saver.Save(j.group.Name, week); err != nil {
		res.Err = err
		return res
	}

	res.Lessons = week.Count()
	log.Info("saved", zap.String("group", j.group.Name), zap.Int("lessons", res.Lessons))
	return res
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
