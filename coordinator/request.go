package coordinator

import (
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bitmark-inc/roadside-api/events"
	"github.com/bitmark-inc/roadside-api/external/geoinfo"
	"github.com/bitmark-inc/roadside-api/lifecycle"
	"github.com/bitmark-inc/roadside-api/realtime"
	"github.com/bitmark-inc/roadside-api/schema"
)

// StatusUpdate is the body of a status change. Every field present is applied
// in a single write: arrival estimate, helper completion, requester
// confirmation, then the plain status.
type StatusUpdate struct {
	Status             *schema.RequestStatus
	HelperCompleted    bool
	RequesterConfirmed bool
	EstimatedArrival   *time.Time
}

func (u StatusUpdate) empty() bool {
	return u.Status == nil && !u.HelperCompleted && !u.RequesterConfirmed && u.EstimatedArrival == nil
}

// CreateRequest opens a new pending request for the caller
func (c *Coordinator) CreateRequest(callerID string, in lifecycle.NewRequest) (*schema.Request, error) {
	if err := c.checkRole(callerID, (*schema.Account).CanRequest, lifecycle.ErrHelperOnly); err != nil {
		return nil, err
	}

	if in.Currency == "" {
		in.Currency = c.config.DefaultCurrency
	}

	r, err := lifecycle.Create(callerID, in, c.now())
	if err != nil {
		return nil, err
	}

	if r.Location.Address == "" && c.geo != nil {
		address, err := geoinfo.Address(c.geo, r.Location)
		if err != nil {
			log.WithError(err).WithField("requester", callerID).Warn("resolve request address")
		} else {
			r.Location.Address = address
		}
	}

	if err := c.store.CreateRequest(r); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"request":      r.ID.Hex(),
		"requester":    callerID,
		"problem_type": r.ProblemType,
	}).Info("request created")

	c.notifier.Publish(realtime.Event{
		Name: realtime.EventRequestAdded,
		Data: realtime.NewRequestSummary(r),
	})
	c.publishEvent(events.RequestCreated, r, callerID)

	return ViewFor(r, callerID), nil
}

func (c *Coordinator) GetRequest(callerID string, id primitive.ObjectID) (*schema.Request, error) {
	r, err := c.store.GetRequest(id)
	if err != nil {
		return nil, err
	}
	return ViewFor(r, callerID), nil
}

// NearbyRequests lists pending requests around loc. A non-positive distance
// falls back to the configured radius.
func (c *Coordinator) NearbyRequests(loc schema.Location, distance int) ([]realtime.RequestSummary, error) {
	if !loc.Valid() {
		return nil, lifecycle.ErrInvalidLocation
	}
	if distance <= 0 || distance > c.config.NearbyDistance {
		distance = c.config.NearbyDistance
	}

	requests, err := c.store.NearbyRequests(loc, distance, c.config.NearbyLimit)
	if err != nil {
		return nil, err
	}

	summaries := make([]realtime.RequestSummary, 0, len(requests))
	for i := range requests {
		summaries = append(summaries, realtime.NewRequestSummary(&requests[i]))
	}
	return summaries, nil
}

// ListMine returns the requests the caller asked for or helps with
func (c *Coordinator) ListMine(callerID string) ([]*schema.Request, error) {
	requests, err := c.store.ListAccountRequests(callerID)
	if err != nil {
		return nil, err
	}
	return viewsFor(requests, callerID), nil
}

func (c *Coordinator) ProposeHelp(callerID string, id primitive.ObjectID, message string, loc *schema.Location) (*schema.Request, error) {
	if err := c.checkRole(callerID, (*schema.Account).CanHelp, lifecycle.ErrRequesterOnly); err != nil {
		return nil, err
	}

	r, err := c.store.MutateRequest(id, func(r *schema.Request) error {
		return lifecycle.ProposeHelp(r, callerID, message, loc, c.now())
	})
	if err != nil {
		return nil, err
	}

	if p := r.PendingHelper(callerID); p != nil {
		c.notifier.ToUser(r.Requester, realtime.Event{
			Name: realtime.EventHelperRequestReceived,
			Data: realtime.HelperRequestPayload{
				RequestID:     r.ID.Hex(),
				PendingHelper: *p,
				Request:       realtime.NewRequestSummary(r),
			},
			Notice: &realtime.Notice{
				MessageID: "helper_request_received",
				Data: map[string]interface{}{
					"Name":        c.displayName(callerID),
					"ProblemType": r.ProblemType,
				},
			},
		})
	}
	c.requestUpdated(r)
	c.publishEvent(events.RequestHelpProposed, r, callerID)

	return ViewFor(r, callerID), nil
}

// ConfirmHelper assigns helperID and opens the conversation of the request.
// A failure to open the conversation is logged; it is created on first access.
func (c *Coordinator) ConfirmHelper(callerID string, id primitive.ObjectID, helperID string) (*schema.Request, error) {
	if helperID == "" {
		return nil, lifecycle.ErrMissingHelper
	}

	r, err := c.store.MutateRequest(id, func(r *schema.Request) error {
		return lifecycle.ConfirmHelper(r, callerID, helperID, c.now())
	})
	if err != nil {
		return nil, err
	}

	conversationID := ""
	if conversation, err := c.openConversation(r, callerID); err != nil {
		log.WithError(err).WithField("request", r.ID.Hex()).Warn("open conversation on confirmation")
	} else {
		conversationID = conversation.ID.Hex()
	}

	c.notifier.ToUser(r.Helper, realtime.Event{
		Name: realtime.EventHelperConfirmed,
		Data: realtime.HelperConfirmedPayload{
			RequestID:      r.ID.Hex(),
			ConversationID: conversationID,
			Request:        realtime.NewRequestSummary(r),
		},
		Notice: &realtime.Notice{
			MessageID: "helper_confirmed",
			Data: map[string]interface{}{
				"Name": c.displayName(r.Requester),
			},
		},
	})
	c.requestUpdated(r)
	c.publishEvent(events.RequestHelperConfirmed, r, callerID)

	return ViewFor(r, callerID), nil
}

func (c *Coordinator) RejectHelper(callerID string, id primitive.ObjectID, helperID string) (*schema.Request, error) {
	if helperID == "" {
		return nil, lifecycle.ErrMissingHelper
	}

	r, err := c.store.MutateRequest(id, func(r *schema.Request) error {
		return lifecycle.RejectHelper(r, callerID, helperID)
	})
	if err != nil {
		return nil, err
	}

	c.requestUpdated(r)
	c.publishEvent(events.RequestHelperRejected, r, callerID)

	return ViewFor(r, callerID), nil
}

// UpdateStatus applies a status change, the completion handshake steps or a
// new arrival estimate
func (c *Coordinator) UpdateStatus(callerID string, id primitive.ObjectID, u StatusUpdate) (*schema.Request, error) {
	if u.empty() {
		return nil, lifecycle.ErrNothingToUpdate
	}

	var before schema.Request
	r, err := c.store.MutateRequest(id, func(r *schema.Request) error {
		before = *r
		now := c.now()

		changed := false
		apply := func(err error) error {
			switch err {
			case nil:
				changed = true
				return nil
			case lifecycle.ErrUnchanged:
				return nil
			default:
				return err
			}
		}

		if u.EstimatedArrival != nil {
			if err := apply(lifecycle.SetEstimatedArrival(r, callerID, *u.EstimatedArrival)); err != nil {
				return err
			}
		}
		if u.HelperCompleted {
			if err := apply(lifecycle.MarkHelperCompleted(r, callerID, now)); err != nil {
				return err
			}
		}
		if u.RequesterConfirmed {
			if err := apply(lifecycle.ConfirmCompletion(r, callerID, now)); err != nil {
				return err
			}
		}
		if u.Status != nil {
			if err := apply(lifecycle.UpdateStatus(r, callerID, *u.Status, now)); err != nil {
				return err
			}
		}

		if !changed {
			return lifecycle.ErrUnchanged
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// nothing was written
	if r.Version == before.Version {
		return ViewFor(r, callerID), nil
	}

	c.requestUpdated(r)

	switch {
	case r.Status != before.Status && r.Status == schema.RequestCompleted:
		c.publishEvent(events.RequestCompleted, r, callerID)
	case r.Status != before.Status && r.Status == schema.RequestCancelled:
		c.publishEvent(events.RequestCancelled, r, callerID)
	case before.HelperCompletedAt == nil && r.HelperCompletedAt != nil:
		c.publishEvent(events.RequestHelperCompleted, r, callerID)
	case r.Status != before.Status:
		c.publishEvent(events.RequestStatusChanged, r, callerID)
	}

	return ViewFor(r, callerID), nil
}

// DeleteRequest removes a request nobody works on. The conversation of a
// finished request is archived, never deleted.
func (c *Coordinator) DeleteRequest(callerID string, id primitive.ObjectID) error {
	var r *schema.Request
	for attempt := 1; ; attempt++ {
		var err error
		r, err = c.store.GetRequest(id)
		if err != nil {
			return err
		}
		if err := lifecycle.CheckDelete(r, callerID); err != nil {
			return err
		}

		err = c.store.DeleteRequest(id, r.Version)
		if err == nil {
			break
		}
		if err != lifecycle.ErrConcurrentUpdate || attempt >= maxDeleteAttempts {
			return err
		}
	}

	if conversation, err := c.store.GetConversationByRequest(id); err == nil {
		if err := c.store.ArchiveConversation(conversation.ID); err != nil {
			log.WithError(err).WithField("conversation", conversation.ID.Hex()).Warn("archive conversation of deleted request")
		}
	} else if err != lifecycle.ErrConversationNotFound {
		log.WithError(err).WithField("request", id.Hex()).Warn("find conversation of deleted request")
	}

	c.notifier.Publish(realtime.Event{
		Name: realtime.EventRequestDeleted,
		Data: realtime.RequestDeletedPayload{RequestID: id.Hex()},
	})
	c.publishEvent(events.RequestDeleted, r, callerID)

	return nil
}

// RecordPayment marks a completed request as paid
func (c *Coordinator) RecordPayment(callerID string, id primitive.ObjectID, method string) (*schema.Request, error) {
	r, err := c.store.MutateRequest(id, func(r *schema.Request) error {
		return lifecycle.RecordPayment(r, callerID, method, c.now())
	})
	if err != nil {
		return nil, err
	}

	c.requestUpdated(r)
	c.publishEvent(events.RequestPaid, r, callerID)

	return ViewFor(r, callerID), nil
}
