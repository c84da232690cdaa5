// Package events publishes committed request lifecycle transitions to kafka
// for the payment and rating subsystems.
package events

import (
	"time"

	"github.com/bitmark-inc/roadside-api/schema"
)

type Type string

const (
	RequestCreated         Type = "request.created"
	RequestHelpProposed    Type = "request.help_proposed"
	RequestHelperConfirmed Type = "request.helper_confirmed"
	RequestHelperRejected  Type = "request.helper_rejected"
	RequestStatusChanged   Type = "request.status_changed"
	RequestHelperCompleted Type = "request.helper_completed"
	RequestCompleted       Type = "request.completed"
	RequestCancelled       Type = "request.cancelled"
	RequestDeleted         Type = "request.deleted"
	RequestPaid            Type = "request.paid"
	RequestsExpired        Type = "requests.expired"
)

type LifecycleEvent struct {
	Type       Type                 `json:"type"`
	RequestID  string               `json:"requestId,omitempty"`
	Requester  string               `json:"requester,omitempty"`
	Helper     string               `json:"helper,omitempty"`
	Status     schema.RequestStatus `json:"status,omitempty"`
	ActorID    string               `json:"actorId,omitempty"`
	Count      int64                `json:"count,omitempty"`
	Payment    *schema.Payment      `json:"payment,omitempty"`
	OccurredAt time.Time            `json:"occurredAt"`
}

// NewLifecycleEvent describes a transition of r performed by actor
func NewLifecycleEvent(t Type, r *schema.Request, actor string, now time.Time) LifecycleEvent {
	e := LifecycleEvent{
		Type:       t,
		ActorID:    actor,
		OccurredAt: now,
	}

	if r != nil {
		e.RequestID = r.ID.Hex()
		e.Requester = r.Requester
		e.Helper = r.Helper
		e.Status = r.Status
		if t == RequestCompleted || t == RequestPaid {
			p := r.Payment
			e.Payment = &p
		}
	}

	return e
}

// Publisher never fails the caller. Delivery problems are logged.
type Publisher interface {
	Publish(LifecycleEvent)
	Close() error
}

type noop struct{}

func (noop) Publish(LifecycleEvent) {}
func (noop) Close() error          { return nil }

// Noop is used when no kafka brokers are configured
var Noop Publisher = noop{}
