package cron

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/meinhoongagan/household-services/models"
	"github.com/meinhoongagan/household-services/services"
	"github.com/meinhoongagan/household-services/utils"
	"github.com/robfig/cron/v3"
)

// PendingDigest mails the administrator a list of bookings still waiting for
// a professional. It only reads; bookings are never expired or changed.
type PendingDigest struct {
	Bookings *services.BookingService
	Mailer   utils.Mailer
	To       string
	Now      func() time.Time
}

// Start schedules the digest with a standard five-field cron spec.
func Start(spec string, d *PendingDigest) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := d.Run(context.Background()); err != nil {
			utils.Log.WithError(err).Error("pending digest failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule pending digest %q: %w", spec, err)
	}
	c.Start()
	utils.Log.WithField("spec", spec).Info("pending digest scheduled")
	return c, nil
}

// Run sends one digest. Nothing is sent when there are no open requests.
func (d *PendingDigest) Run(ctx context.Context) error {
	pending, err := d.Bookings.ListAll(ctx, string(models.StatusRequested))
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		utils.Log.Debug("no pending requests, digest skipped")
		return nil
	}

	clock := time.Now
	if d.Now != nil {
		clock = d.Now
	}
	today := now.With(clock()).BeginningOfDay()

	var newToday int
	var rows strings.Builder
	for _, b := range pending {
		if !b.DateOfRequest.Before(today) {
			newToday++
		}
		fmt.Fprintf(&rows, "<li>#%d %s for %s, requested %s</li>\n",
			b.ID, b.ServiceName, b.CustomerName, b.DateOfRequest.Format("2006-01-02 15:04"))
	}

	subject := fmt.Sprintf("%d service requests awaiting assignment", len(pending))
	body := fmt.Sprintf(`
		<p>%d requests are still waiting for a professional, %d of them raised today.</p>
		<ul>
		%s</ul>
	`, len(pending), newToday, rows.String())

	if err := d.Mailer.Send(ctx, d.To, subject, body); err != nil {
		return fmt.Errorf("send pending digest: %w", err)
	}
	utils.Log.WithField("pending", len(pending)).Info("pending digest sent")
	return nil
}
