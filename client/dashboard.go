package client

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/aebonlee/stepup-cloud/backend/models"
)

// Dashboard is everything the dashboard page shows, fetched in one go.
type Dashboard struct {
	Study      *models.StudyStats
	Reading    *models.ReadingStats
	Activities []models.AwardActivity

	TotalStudyMinutes int64
	TotalBooks        int64
	TotalReviews      int64
	// TotalActivities counts awards and activities together.
	TotalActivities int
	TotalAwards     int
}

// StudyHours splits TotalStudyMinutes into whole hours and remaining minutes.
func (d *Dashboard) StudyHours() (hours, minutes int64) {
	return d.TotalStudyMinutes / 60, d.TotalStudyMinutes % 60
}

// Dashboard loads study stats, reading stats and awards/activities concurrently. If any of
// the three fails the whole call fails.
func (c *Client) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.Study, err = c.StudyStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Reading, err = c.ReadingStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Activities, err = c.AwardActivities(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, s := range d.Study.Subjects {
		d.TotalStudyMinutes += s.TotalMinutes
	}
	for _, m := range d.Reading.Monthly {
		d.TotalBooks += m.BookCount
	}
	d.TotalReviews = d.Reading.TotalReviews
	d.TotalActivities = len(d.Activities)
	for _, a := range d.Activities {
		if a.Type == models.TypeAward {
			d.TotalAwards++
		}
	}
	return &d, nil
}
