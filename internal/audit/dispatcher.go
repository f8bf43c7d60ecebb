package audit

import (
	"context"

	"github.com/rs/zerolog"
)

const (
	ActionCreate       = "CREATE"
	ActionUpdate       = "UPDATE"
	ActionDelete       = "DELETE"
	ActionLogin        = "LOGIN"
	ActionLogout       = "LOGOUT"
	ActionPayment      = "PAYMENT"
	ActionBooking      = "BOOKING"
	ActionCancellation = "CANCELLATION"
)

// Actor identifies who performed a write and from where.
type Actor struct {
	UserID    *uint
	IP        string
	UserAgent string
	SessionID string
}

type Event struct {
	Actor          Actor
	BusinessUserID *uint
	Action         string
	Table          string
	RecordID       *uint
	Values         any
}

type Dispatcher struct {
	queue *Queue[Event]
}

func NewDispatcher(logger *Logger, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		queue: NewQueue("audit", 100, logger.Log, log),
	}
}

// Dispatch is a no-op on a nil Dispatcher.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	d.queue.Push(ev)
}

// Record is shorthand for the catalogue writes, which all share one shape.
func (d *Dispatcher) Record(actor Actor, action, table string, id uint, values any) {
	d.Dispatch(Event{
		Actor:    actor,
		Action:   action,
		Table:    table,
		RecordID: &id,
		Values:   values,
	})
}

func (d *Dispatcher) Close(ctx context.Context) error {
	if d == nil {
		return nil
	}
	return d.queue.Close(ctx)
}
