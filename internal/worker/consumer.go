// Package worker consumes booking lifecycle events from RabbitMQ and turns
// them into ops notifications. Separate from the WhatsApp dispatcher: that
// one talks to guests and managers synchronously after commit, this one
// feeds the internal channel.
package worker

import (
	"context"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Mouzitoto/restohub-2-sub000/internal/events"
	"github.com/Mouzitoto/restohub-2-sub000/internal/notifier"
	"github.com/Mouzitoto/restohub-2-sub000/pkg/mq"
)

type Consumer struct {
	cons *mq.Consumer
	n    notifier.Notifier
}

func NewConsumer(cons *mq.Consumer, n notifier.Notifier) *Consumer {
	return &Consumer{cons: cons, n: n}
}

func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.cons.Deliveries(ctx)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := c.handle(d); err != nil {
				log.Printf("[ops-notify] handle key=%s err=%v -> Nack&requeue", d.RoutingKey, err)
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handle(d amqp.Delivery) error {
	switch d.RoutingKey {
	case events.RKBookingCreated:
		ev, err := events.Unmarshal[events.BookingCreated](d.Body)
		if err != nil {
			return err
		}
		return c.n.Notify("Booking created",
			fmt.Sprintf("booking #%d restaurant=%s table=%s %s %s guests=%d",
				ev.BookingID, ev.RestaurantID, ev.TableID, ev.Date, ev.Time, ev.PersonCount))

	case events.RKBookingPending, events.RKBookingApproved, events.RKBookingRejected, events.RKBookingCancelled:
		ev, err := events.Unmarshal[events.BookingTransition](d.Body)
		if err != nil {
			return err
		}
		msg := fmt.Sprintf("booking #%d restaurant=%s -> %s", ev.BookingID, ev.RestaurantID, ev.Status)
		if ev.ChangedBy != nil {
			msg += " by " + *ev.ChangedBy
		}
		return c.n.Notify("Booking "+ev.Status, msg)

	default:
		log.Printf("[ops-notify] skip unknown key=%s", d.RoutingKey)
	}
	return nil
}
