// Package publisher emits collection change events to NATS JetStream.
// Publishing is strictly fire-and-forget: a publish failure is logged and
// counted but never fails the CRUD operation that triggered it.
package publisher

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/Jhonaiker2309/supermarket-administration/internal/metrics"
	"github.com/Jhonaiker2309/supermarket-administration/pkg/model"
)

// Publisher wraps a NATS connection and publishes change-event envelopes.
type Publisher struct {
	nc      *nats.Conn
	js      nats.JetStreamContext
	subject string
	service string
	logger  *zap.Logger
}

// New creates a new Publisher with JetStream enabled.
func New(nc *nats.Conn, subject, service string, logger *zap.Logger) (*Publisher, error) {
	js, err := nc.JetStream()
	if err != nil {
		return nil, err
	}
	return &Publisher{
		nc:      nc,
		js:      js,
		subject: subject,
		service: service,
		logger:  logger,
	}, nil
}

// Publish serializes and publishes a change event. A nil Publisher is a
// no-op, so event emission can be disabled by configuration.
func (p *Publisher) Publish(ctx context.Context, env *model.ChangeEvent) {
	if p == nil {
		return
	}

	data, err := json.Marshal(env)
	if err != nil {
		p.logger.Error("publisher.marshal_failed",
			zap.String("event_type", env.EventType),
			zap.Error(err))
		metrics.NATSPublishErrors.WithLabelValues(p.subject).Inc()
		return
	}

	msg := &nats.Msg{
		Subject: p.subject,
		Data:    data,
		Header: nats.Header{
			"event_type":     []string{env.EventType},
			"entity":         []string{env.Entity},
			"correlation_id": []string{env.CorrelationID.String()},
			"service":        []string{p.service},
			"content_type":   []string{"application/json"},
		},
	}

	if _, err := p.js.PublishMsg(msg, nats.Context(ctx)); err != nil {
		p.logger.Error("publisher.publish_failed",
			zap.String("subject", p.subject),
			zap.String("event_type", env.EventType),
			zap.Error(err))
		metrics.NATSPublishErrors.WithLabelValues(p.subject).Inc()
		return
	}

	p.logger.Debug("publisher.published",
		zap.String("subject", p.subject),
		zap.String("event_type", env.EventType))
}
