package confirmer

import (
	"context"

	"riverside/infras/kafka"
	"riverside/infras/otel"
	"riverside/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Audit reads back published confirmations and records them in the log, so
// every booking the broker accepted leaves a trail on this side too.
type Audit struct {
	client kafka.Client
	otel   otel.Otel
	group  string
	topic  string
}

func NewAudit(client kafka.Client, ot otel.Otel, group, topic string) *Audit {
	return &Audit{client: client, otel: ot, group: group, topic: topic}
}

// Run blocks until ctx is done.
func (a *Audit) Run(ctx context.Context) {
	log.Info().Str("topic", a.topic).Str("group", a.group).Msg("Booking audit consumer started")

	a.client.Consume(ctx, a.group, a.topic, a.Handle)
}

func (a *Audit) Handle(ctx context.Context, msg kafkaGo.Message) {
	_, scope := a.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".BookingConfirmed")
	defer scope.End()

	event, err := kafka.DecodeKafkaMessage[ConfirmedEvent](msg)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", string(msg.Key)).Msg("failed to decode booking confirmed event")

		return
	}

	scope.SetAttributes(map[string]any{
		"booking.id":     event.DraftID,
		"booking.number": event.Number,
		"booking.total":  event.Pricing.Total,
	})

	log.Info().
		Str("draft_id", event.DraftID).
		Str("number", event.Number).
		Str("room_id", event.RoomID).
		Str("check_in", event.CheckIn).
		Str("check_out", event.CheckOut).
		Int64("total", event.Pricing.Total).
		Msg("booking confirmed")
}
