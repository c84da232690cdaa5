// Package coordinator runs request and chat commands: it validates them
// against the lifecycle rules, commits them to the store, then tells the
// notification bus and the lifecycle event stream what happened.
package coordinator

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bitmark-inc/roadside-api/events"
	"github.com/bitmark-inc/roadside-api/external/geoinfo"
	"github.com/bitmark-inc/roadside-api/realtime"
	"github.com/bitmark-inc/roadside-api/schema"
	"github.com/bitmark-inc/roadside-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "coordinator")
}

const (
	defaultNearbyDistance = 10000
	defaultNearbyLimit    = 50
	maxDeleteAttempts     = 3
)

// Notifier is the notification bus as seen by commands. Emits never block.
type Notifier interface {
	ToUser(userID string, e realtime.Event)
	ToConversation(conversationID string, e realtime.Event)
	ToConversationAndUser(conversationID, userID string, e realtime.Event)
	Publish(e realtime.Event)
}

type Config struct {
	DefaultCurrency  string
	MaxMessageLength int
	NearbyDistance   int
	NearbyLimit      int64
}

type Coordinator struct {
	store     store.MongoStore
	accounts  store.RoadsideCore
	notifier  Notifier
	publisher events.Publisher
	geo       geoinfo.GeoInfo

	config Config
	now    func() time.Time
}

// New creates a coordinator. accounts and geo are optional.
func New(
	mongoStore store.MongoStore,
	accounts store.RoadsideCore,
	notifier Notifier,
	publisher events.Publisher,
	geo geoinfo.GeoInfo,
	config Config) *Coordinator {
	if config.NearbyDistance <= 0 {
		config.NearbyDistance = defaultNearbyDistance
	}
	if config.NearbyLimit <= 0 {
		config.NearbyLimit = defaultNearbyLimit
	}
	if publisher == nil {
		publisher = events.Noop
	}

	return &Coordinator{
		store:     mongoStore,
		accounts:  accounts,
		notifier:  notifier,
		publisher: publisher,
		geo:       geo,
		config:    config,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (c *Coordinator) publishEvent(t events.Type, r *schema.Request, actor string) {
	c.publisher.Publish(events.NewLifecycleEvent(t, r, actor, c.now()))
}

func (c *Coordinator) requestUpdated(r *schema.Request) {
	c.notifier.Publish(realtime.Event{
		Name: realtime.EventRequestUpdated,
		Data: realtime.NewRequestSummary(r),
	})
}

// checkRole looks up the role of accountID and returns denied when allowed
// rejects it. Without an account store every caller is allowed.
func (c *Coordinator) checkRole(accountID string, allowed func(*schema.Account) bool, denied error) error {
	if c.accounts == nil {
		return nil
	}

	a, err := c.accounts.GetAccount(accountID)
	if err != nil {
		return err
	}
	if !allowed(a) {
		return denied
	}
	return nil
}

// displayName resolves an account id for notices, falling back to the id
func (c *Coordinator) displayName(accountID string) string {
	if c.accounts == nil {
		return accountID
	}

	a, err := c.accounts.GetAccount(accountID)
	if err != nil || a == nil || a.DisplayName == "" {
		return accountID
	}
	return a.DisplayName
}
