package confirmer

import (
	"context"
	"fmt"
	"time"

	"riverside/infras/kafka"
	"riverside/internal/domains/booking/model"
	"riverside/shared/constant"
	"riverside/shared/timezone"

	"github.com/rs/zerolog/log"
)

// ConfirmedEvent is published for every confirmed booking.
type ConfirmedEvent struct {
	DraftID     string             `json:"draft_id"`
	Number      string             `json:"number"`
	ConfirmedAt time.Time          `json:"confirmed_at"`
	RoomID      string             `json:"room_id"`
	RoomName    string             `json:"room_name"`
	CheckIn     string             `json:"check_in"`
	CheckOut    string             `json:"check_out"`
	Guests      model.Guests       `json:"guests"`
	Extras      []string           `json:"extras"`
	Pricing     model.Pricing      `json:"pricing"`
	Contact     model.GuestDetails `json:"contact"`
}

// Kafka confirms a booking by publishing it. The broker ack is the success
// signal, a failed publish fails the confirmation. Messages are keyed by the
// confirmation number, so a retry after a publish that timed out but still
// landed repeats the key and consumers can drop it.
type Kafka struct {
	client kafka.Client
	topic  string
}

func NewKafka(client kafka.Client, topic string) *Kafka {
	return &Kafka{client: client, topic: topic}
}

func (k *Kafka) Confirm(ctx context.Context, draft model.Draft) (model.Confirmation, error) {
	now := timezone.Now()
	confirmation := model.Confirmation{
		Number:      numberFor(draft, now),
		ConfirmedAt: now,
	}

	event := NewConfirmedEvent(draft, confirmation)

	err := k.client.SendMessages(ctx, k.topic, kafka.Message{Key: confirmation.Number, Value: event})
	if err != nil {
		log.Error().Err(err).Str("draft_id", draft.ID).Str("topic", k.topic).Msg("failed to publish booking")

		return model.Confirmation{}, fmt.Errorf("failed to publish booking: %w", err)
	}

	return confirmation, nil
}

func NewConfirmedEvent(draft model.Draft, confirmation model.Confirmation) ConfirmedEvent {
	event := ConfirmedEvent{
		DraftID:     draft.ID,
		Number:      confirmation.Number,
		ConfirmedAt: confirmation.ConfirmedAt,
		Guests:      draft.Guests,
		Extras:      make([]string, len(draft.Extras)),
		Pricing:     draft.Pricing,
		Contact:     draft.Details,
	}

	if draft.Room != nil {
		event.RoomID = draft.Room.ID
		event.RoomName = draft.Room.Name
	}

	if draft.CheckIn != nil {
		event.CheckIn = draft.CheckIn.Format(constant.DayFormat)
	}

	if draft.CheckOut != nil {
		event.CheckOut = draft.CheckOut.Format(constant.DayFormat)
	}

	for i, extra := range draft.Extras {
		event.Extras[i] = extra.ID
	}

	return event
}
