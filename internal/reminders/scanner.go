package reminders

import (
	"context"
	"time"

	"github.com/avasiliev/personal-planner-backend/internal/config"
	"github.com/avasiliev/personal-planner-backend/internal/model"
	"github.com/robfig/cron/v3"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

// Scanner wakes every minute, expands the upcoming window of event
// instances and queues a notification for each reminder that comes due in
// that minute.
type Scanner struct {
	logger *zap.SugaredLogger
	events eventsService
	queue  notificationQueue
}

type eventsService interface {
	GetEventsBetween(ctx context.Context, from, to time.Time) ([]*model.Event, error)
}

type notificationQueue interface {
	Add(ctx context.Context, n *model.Notification) error
}

func NewScanner(logger *zap.SugaredLogger, events eventsService, queue notificationQueue) *Scanner {
	return &Scanner{
		logger: logger,
		events: events,
		queue:  queue,
	}
}

func (s *Scanner) Start(ctx context.Context) error {
	c := cron.New()

	if _, err := c.AddFunc("* * * * *", func() {
		from := time.Now().Truncate(time.Minute)
		s.scan(ctx, from, from.Add(time.Minute))
	}); err != nil {
		return err
	}

	c.Start()
	closer.Bind(func() {
		<-c.Stop().Done()
	})

	return nil
}

func (s *Scanner) scan(ctx context.Context, from, to time.Time) {
	s.logger.Debugw("scanning reminders", "from", from, "to", to)

	events, err := s.events.GetEventsBetween(ctx, from, from.Add(config.ReminderHorizon()))
	if err != nil {
		s.logger.Errorw("failed to get events", "err", err)
		return
	}

	for _, n := range Due(events, from, to) {
		if err := s.queue.Add(ctx, n); err != nil {
			s.logger.Errorw("failed to queue notification", "event_id", n.EventID, "err", err)
			continue
		}
		s.logger.Infow("queued notification", "event_id", n.EventID, "title", n.EventTitle, "lead", n.Lead)
	}
}

// Due returns one notification per reminder offset whose fire time falls
// within [from, to).
func Due(events []*model.Event, from, to time.Time) []*model.Notification {
	var res []*model.Notification

	for _, e := range events {
		for _, lead := range e.Reminders {
			at := e.StartInstant().Add(-lead)
			if !at.Before(from) && at.Before(to) {
				res = append(res, &model.Notification{
					EventID:    e.ID,
					EventTitle: e.Title,
					StartsAt:   e.StartInstant(),
					Lead:       lead,
				})
			}
		}
	}

	return res
}
