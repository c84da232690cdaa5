package coordinator

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bitmark-inc/roadside-api/events"
	"github.com/bitmark-inc/roadside-api/lifecycle"
	"github.com/bitmark-inc/roadside-api/mocks"
	"github.com/bitmark-inc/roadside-api/realtime"
	"github.com/bitmark-inc/roadside-api/schema"
)

var fixedNow = time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC)

type delivery struct {
	room  string
	event realtime.Event
}

type recordingNotifier struct {
	users         []delivery
	conversations []delivery
	public        []realtime.Event
}

func (n *recordingNotifier) ToUser(userID string, e realtime.Event) {
	n.users = append(n.users, delivery{room: userID, event: e})
}

func (n *recordingNotifier) ToConversation(conversationID string, e realtime.Event) {
	n.conversations = append(n.conversations, delivery{room: conversationID, event: e})
}

func (n *recordingNotifier) ToConversationAndUser(conversationID, userID string, e realtime.Event) {
	n.ToConversation(conversationID, e)
	n.ToUser(userID, e)
}

func (n *recordingNotifier) Publish(e realtime.Event) {
	n.public = append(n.public, e)
}

type recordingPublisher struct {
	published []events.LifecycleEvent
}

func (p *recordingPublisher) Publish(e events.LifecycleEvent) {
	p.published = append(p.published, e)
}

func (p *recordingPublisher) Close() error {
	return nil
}

func (p *recordingPublisher) last() events.Type {
	if len(p.published) == 0 {
		return ""
	}
	return p.published[len(p.published)-1].Type
}

type fixture struct {
	ctl       *gomock.Controller
	store     *mocks.MockMongoStore
	notifier  *recordingNotifier
	publisher *recordingPublisher
	c         *Coordinator
}

func newFixture(t *testing.T) *fixture {
	ctl := gomock.NewController(t)
	f := &fixture{
		ctl:       ctl,
		store:     mocks.NewMockMongoStore(ctl),
		notifier:  &recordingNotifier{},
		publisher: &recordingPublisher{},
	}
	f.c = New(f.store, nil, f.notifier, f.publisher, nil, Config{
		DefaultCurrency:  "ILS",
		MaxMessageLength: 1000,
	})
	f.c.now = func() time.Time {
		return fixedNow
	}
	return f
}

func cloneRequest(r *schema.Request) *schema.Request {
	c := *r
	c.PendingHelpers = append([]schema.PendingHelper{}, r.PendingHelpers...)
	return &c
}

// backRequest serves MutateRequest from an in-memory document with the store's
// validate-then-commit behavior
func (f *fixture) backRequest(stored *schema.Request) {
	f.store.EXPECT().MutateRequest(stored.ID, gomock.Any()).DoAndReturn(
		func(id primitive.ObjectID, mutate func(*schema.Request) error) (*schema.Request, error) {
			next := cloneRequest(stored)
			if err := mutate(next); err != nil {
				if err == lifecycle.ErrUnchanged {
					return cloneRequest(stored), nil
				}
				return nil, err
			}
			next.Version++
			*stored = *next
			return cloneRequest(stored), nil
		}).AnyTimes()
}

func pendingRequest(helpers ...string) *schema.Request {
	r := &schema.Request{
		ID:             primitive.NewObjectID(),
		Requester:      "requester",
		Status:         schema.RequestPending,
		Location:       schema.Location{Latitude: 32.08, Longitude: 34.78},
		ProblemType:    schema.ProblemFlatTire,
		Description:    "x",
		Photos:         []schema.Photo{},
		PendingHelpers: []schema.PendingHelper{},
		Payment:        schema.Payment{OfferedAmount: 50, Currency: "ILS"},
		CreatedAt:      fixedNow.Add(-time.Hour),
		Version:        1,
	}
	for _, h := range helpers {
		r.PendingHelpers = append(r.PendingHelpers, schema.PendingHelper{Helper: h, RequestedAt: fixedNow.Add(-time.Minute)})
	}
	return r
}

func assignedRequest(helper string) *schema.Request {
	r := pendingRequest(helper)
	assignedAt := fixedNow.Add(-30 * time.Minute)
	r.Status = schema.RequestAssigned
	r.Helper = helper
	r.AssignedAt = &assignedAt
	return r
}
