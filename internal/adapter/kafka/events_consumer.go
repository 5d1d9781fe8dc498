package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sanjibtex/storefront/internal/core/domain"
	"github.com/sanjibtex/storefront/internal/core/port"
	"github.com/sanjibtex/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

// An EventsConsumerConfig used for setup [EventsConsumer].
//
// All fields are required.
type EventsConsumerConfig struct {
	Client      ConsumerClient
	Saver       port.EventsSaver
	ViewsTopic  string
	ViewsDec    Decoder
	VisitsTopic string
	VisitsDec   Decoder
}

// EventsConsumer drains the usage topics into persistent storage.
type EventsConsumer struct {
	cl          ConsumerClient
	saver       port.EventsSaver
	viewsTopic  string
	viewsDec    Decoder
	visitsTopic string
	visitsDec   Decoder
	errTimer    *time.Timer
}

func NewEventsConsumer(config EventsConsumerConfig) EventsConsumer {
	const op = "NewEventsConsumer"

	if config.Client == nil || config.Saver == nil ||
		config.ViewsDec == nil || config.VisitsDec == nil ||
		config.ViewsTopic == "" || config.VisitsTopic == "" {
		panic(fmt.Errorf("%s: config is not complete", op)) // develop mistake
	}

	return EventsConsumer{
		cl:          config.Client,
		saver:       config.Saver,
		viewsTopic:  config.ViewsTopic,
		viewsDec:    config.ViewsDec,
		visitsTopic: config.VisitsTopic,
		visitsDec:   config.VisitsDec,
		errTimer:    time.NewTimer(0),
	}
}

func (c EventsConsumer) Close() {
	const op = "EventsConsumer.Close"
	log := slog.With("op", op)

	log.Info("closing consumer...")
	c.errTimer.Stop()
	c.cl.Close()
	log.Info("consumer is closed")
}

func (c EventsConsumer) Run(ctx context.Context) {
	const op = "EventsConsumer.Run"
	log := slog.With("op", op)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			err := c.consume(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					log.Info("context canceled")
					continue
				}
				err = fmt.Errorf("%s: %w", op, err)
				log.Error("failed to consume messages", "err", err)
				c.slowDown()
				continue
			}
			err = c.commit(ctx)
			if err != nil {
				log.Error("failed to commit offset", "err", err)
			}
		}
	}
}

func (c EventsConsumer) commit(ctx context.Context) error {
	const op = "EventsConsumer.commit"
	err := ctx.Err()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = c.cl.CommitUncommittedOffsets(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c EventsConsumer) consume(ctx context.Context) error {
	const op = "EventsConsumer.consume"

	fetches, err := c.pollFetches(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if fetches.Empty() {
		return nil
	}

	views, visits := c.toEvents(fetches)

	if len(views) != 0 {
		if err := c.saver.SaveProductViews(ctx, views); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if len(visits) != 0 {
		if err := c.saver.SaveSiteVisits(ctx, visits); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

func (c EventsConsumer) pollFetches(ctx context.Context) (kgo.Fetches, error) {
	const op = "EventsConsumer.pollFetches"

	fetches := c.cl.PollFetches(ctx)
	if err := fetches.Err0(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err := c.handleErrs(fetches)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return fetches, nil
}

func (c EventsConsumer) handleErrs(fetches kgo.Fetches) error {
	var errsData []string
	fetches.EachError(func(t string, p int32, err error) {
		if err != nil {
			errData := fmt.Sprintf(
				"topic %q partition %d: %q", t, p, err,
			)
			errsData = append(errsData, errData)
		}
	})

	if len(errsData) != 0 {
		return errors.New(strings.Join(errsData, "; "))
	}
	return nil
}

func (c EventsConsumer) toEvents(
	fetches kgo.Fetches,
) (views []domain.ProductViewEvent, visits []domain.SiteVisitEvent) {
	const op = "EventsConsumer.toEvents"
	log := slog.With("op", op)

	fetches.EachRecord(func(r *kgo.Record) {
		switch r.Topic {
		case c.viewsTopic:
			var s schema.ProductViewV1
			if err := c.viewsDec.Decode(r.Value, &s); err != nil {
				log.Error("failed to decode view event", "err", err)
				return
			}
			views = append(views, c.viewToDomain(s))
		case c.visitsTopic:
			var s schema.SiteVisitV1
			if err := c.visitsDec.Decode(r.Value, &s); err != nil {
				log.Error("failed to decode visit event", "err", err)
				return
			}
			visits = append(visits, c.visitToDomain(s))
		default:
			log.Warn("record from unexpected topic", "topic", r.Topic)
		}
	})
	return views, visits
}

func (c EventsConsumer) viewToDomain(
	s schema.ProductViewV1,
) (evt domain.ProductViewEvent) {
	evt.ProductID = s.ProductID
	evt.UserID = s.UserID
	evt.ViewedAt = time.UnixMilli(s.ViewedAt)
	return evt
}

func (c EventsConsumer) visitToDomain(
	s schema.SiteVisitV1,
) (evt domain.SiteVisitEvent) {
	evt.PageURL = s.PageURL
	evt.UserID = s.UserID
	evt.VisitedAt = time.UnixMilli(s.VisitedAt)
	return evt
}

func (c EventsConsumer) slowDown() {
	const timeout = 1 * time.Second
	c.errTimer.Reset(timeout)
	<-c.errTimer.C
}
