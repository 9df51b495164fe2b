package queue

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/rs/zerolog"
)

const dialTimeout = 2 * time.Second

// Publisher sends activity events to RabbitMQ.  It dials per publish, so
// a broker outage never wedges the request path; callers log and ignore
// the returned error.
type Publisher struct {
    url string
    log zerolog.Logger
}

// NewPublisher returns a Publisher for the broker at url.
func NewPublisher(url string, log zerolog.Logger) *Publisher {
    return &Publisher{url: url, log: log}
}

// Publish delivers ev to the activity queue as a persistent JSON message.
func (p *Publisher) Publish(ctx context.Context, ev ActivityEvent) error {
    msg, err := encodeEvent(ev)
    if err != nil {
        p.log.Error().Err(err).Msg("rabbitmq: marshal event failed")
        return err
    }

    conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(dialTimeout)})
    if err != nil {
        p.log.Warn().Err(err).Msg("rabbitmq: dial failed")
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        p.log.Warn().Err(err).Msg("rabbitmq: channel open failed")
        return err
    }
    defer func() { _ = ch.Close() }()

    // Idempotent; durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(ActivityQueue, true, false, false, false, nil); err != nil {
        p.log.Warn().Err(err).Msg("rabbitmq: queue declare failed")
        return err
    }

    if err := ch.PublishWithContext(ctx,
        "",            // default exchange
        ActivityQueue, // routing key = queue name
        false,         // mandatory
        false,         // immediate
        msg,
    ); err != nil {
        p.log.Warn().Err(err).Str("type", ev.Type).Msg("rabbitmq: publish failed")
        return err
    }
    return nil
}

func encodeEvent(ev ActivityEvent) (amqp.Publishing, error) {
    body, err := json.Marshal(ev)
    if err != nil {
        return amqp.Publishing{}, err
    }
    return amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Type:         ev.Type,
        Body:         body,
    }, nil
}

// NopPublisher drops every event.  Used when RABBITMQ_URL is unset.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ActivityEvent) error { return nil }
