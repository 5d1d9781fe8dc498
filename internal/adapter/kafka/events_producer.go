package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/sanjibtex/storefront/internal/core/domain"
	"github.com/sanjibtex/storefront/internal/core/port"
	"github.com/sanjibtex/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.EventsTracker = (*EventsProducer)(nil)

type TrackerOpt func(*trackerOpts) error

type trackerOpts struct {
	cl          ProducerClient
	viewsTopic  string
	viewsEnc    Encoder
	visitsTopic string
	visitsEnc   Encoder
}

func TrackerClientOpt(cl ProducerClient) TrackerOpt {
	return func(opts *trackerOpts) error {
		if cl == nil {
			return errors.New("producer client is nil")
		}
		opts.cl = cl
		return nil
	}
}

func TrackerViewsOpt(topic string, enc Encoder) TrackerOpt {
	return func(opts *trackerOpts) error {
		if topic == "" {
			return errors.New("views topic is empty string")
		}
		if enc == nil {
			return errors.New("views encoder is nil")
		}
		opts.viewsTopic = topic
		opts.viewsEnc = enc
		return nil
	}
}

func TrackerVisitsOpt(topic string, enc Encoder) TrackerOpt {
	return func(opts *trackerOpts) error {
		if topic == "" {
			return errors.New("visits topic is empty string")
		}
		if enc == nil {
			return errors.New("visits encoder is nil")
		}
		opts.visitsTopic = topic
		opts.visitsEnc = enc
		return nil
	}
}

// EventsProducer publishes usage events to the views and visits topics.
type EventsProducer struct {
	cl          ProducerClient
	viewsTopic  string
	viewsEnc    Encoder
	visitsTopic string
	visitsEnc   Encoder
}

func NewEventsProducer(opts ...TrackerOpt) (EventsProducer, error) {
	const op = "NewEventsProducer"

	if len(opts) != 3 {
		panic(fmt.Errorf("%s: %w", op, ErrTooFewOpts)) // develop mistake
	}

	var options trackerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return EventsProducer{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	return EventsProducer{
		cl:          options.cl,
		viewsTopic:  options.viewsTopic,
		viewsEnc:    options.viewsEnc,
		visitsTopic: options.visitsTopic,
		visitsEnc:   options.visitsEnc,
	}, nil
}

func (p EventsProducer) Close() {
	const op = "EventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p EventsProducer) TrackProductView(
	ctx context.Context, evt domain.ProductViewEvent,
) error {
	const op = "EventsProducer.TrackProductView"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	v, err := p.viewsEnc.Encode(p.viewToSchema(evt))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r := &kgo.Record{
		Topic: p.viewsTopic,
		Key:   []byte(strconv.FormatInt(evt.ProductID, 10)),
		Value: v,
	}
	if err := p.produce(ctx, r); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p EventsProducer) TrackSiteVisit(
	ctx context.Context, evt domain.SiteVisitEvent,
) error {
	const op = "EventsProducer.TrackSiteVisit"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	v, err := p.visitsEnc.Encode(p.visitToSchema(evt))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r := &kgo.Record{
		Topic: p.visitsTopic,
		Key:   []byte(evt.PageURL),
		Value: v,
	}
	if err := p.produce(ctx, r); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p EventsProducer) produce(ctx context.Context, rs ...*kgo.Record) error {
	const op = "EventsProducer.produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p EventsProducer) viewToSchema(
	evt domain.ProductViewEvent,
) (s schema.ProductViewV1) {
	s.ProductID = evt.ProductID
	s.UserID = evt.UserID
	s.ViewedAt = evt.ViewedAt.UnixMilli()
	return s
}

func (p EventsProducer) visitToSchema(
	evt domain.SiteVisitEvent,
) (s schema.SiteVisitV1) {
	s.PageURL = evt.PageURL
	s.UserID = evt.UserID
	s.VisitedAt = evt.VisitedAt.UnixMilli()
	return s
}
