package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ybfstudio/booking-api/internal/domain"
	"github.com/ybfstudio/booking-api/internal/metrics"
)

// Dispatcher fans a booking event out into its notification messages and
// sends them concurrently. Callers invoke it from a detached goroutine after
// the booking has been persisted and the response written; the dispatcher
// joins both sends internally so each outcome can be logged, but exposes no
// result to the caller.
type Dispatcher struct {
	notifier   Notifier
	staffEmail string
	log        *slog.Logger

	// sendTimeout bounds each individual send.
	sendTimeout time.Duration
}

// NewDispatcher constructs a Dispatcher sending through the given Notifier.
// Staff notifications are addressed to staffEmail.
func NewDispatcher(notifier Notifier, staffEmail string, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		notifier:    notifier,
		staffEmail:  staffEmail,
		log:         log,
		sendTimeout: 15 * time.Second,
	}
}

// BookingCreated sends the customer confirmation and the staff notification
// for a persisted booking. The two sends run concurrently; a failure or
// panic in one never affects the other, and neither is retried. Every
// outcome is logged with which message it belongs to.
func (d *Dispatcher) BookingCreated(record domain.BookingRequest, serviceName string) {
	confirmation := Message{
		Kind:          KindConfirmation,
		To:            record.CustomerEmail,
		Subject:       fmt.Sprintf("Booking received: %s", serviceName),
		CustomerName:  record.CustomerName,
		CustomerEmail: record.CustomerEmail,
		ServiceName:   serviceName,
		PricePaid:     record.PricePaid,
	}
	internal := Message{
		Kind:          KindInternal,
		To:            d.staffEmail,
		Subject:       fmt.Sprintf("New booking: %s", serviceName),
		CustomerName:  record.CustomerName,
		CustomerEmail: record.CustomerEmail,
		ServiceName:   serviceName,
		PricePaid:     record.PricePaid,
		ProjectName:   record.ProjectName,
		Note:          record.SpecialInstructions,
	}

	var wg sync.WaitGroup
	for _, msg := range []Message{confirmation, internal} {
		wg.Add(1)
		go func(msg Message) {
			defer wg.Done()
			d.send(record, msg)
		}(msg)
	}
	wg.Wait()
}

// send delivers one message and records its outcome. A panic inside the
// notifier is contained here so the sibling send still settles.
func (d *Dispatcher) send(record domain.BookingRequest, msg Message) {
	defer func() {
		if r := recover(); r != nil {
			metrics.Notifications.WithLabelValues(msg.Kind, "error").Inc()
			d.log.Error("notification send panicked",
				"kind", msg.Kind,
				"booking_id", record.ID,
				"panic", r,
			)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	if err := d.notifier.Send(ctx, msg); err != nil {
		metrics.Notifications.WithLabelValues(msg.Kind, "error").Inc()
		d.log.Error("notification send failed",
			"kind", msg.Kind,
			"booking_id", record.ID,
			"error", err,
		)
		return
	}

	metrics.Notifications.WithLabelValues(msg.Kind, "ok").Inc()
	d.log.Info("notification sent",
		"kind", msg.Kind,
		"booking_id", record.ID,
	)
}
