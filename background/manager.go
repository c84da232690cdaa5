// Package background runs the periodic maintenance of roadside requests on
// a machinery task queue.
package background

import (
	"errors"
	"time"

	"github.com/RichardKnop/machinery/v1"
	"github.com/sirupsen/logrus"

	"github.com/bitmark-inc/roadside-api/events"
	"github.com/bitmark-inc/roadside-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "background")
}

// BackgroundManager is a struct for roadside background manager
type BackgroundManager struct {
	store     store.MongoStore
	publisher events.Publisher

	taskServer *machinery.Server

	worker *machinery.Worker

	// pending requests older than this are cancelled
	expireAfter time.Duration
	now         func() time.Time
}

func New(mongoStore store.MongoStore, publisher events.Publisher, taskServer *machinery.Server, expireAfter time.Duration) *BackgroundManager {
	if publisher == nil {
		publisher = events.Noop
	}

	return &BackgroundManager{
		store:       mongoStore,
		publisher:   publisher,
		taskServer:  taskServer,
		expireAfter: expireAfter,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (m *BackgroundManager) RegisterTask(name string, taskFunc interface{}) error {
	return m.taskServer.RegisterTask(name, taskFunc)
}

// RegisterTasks registers every task the manager serves
func (m *BackgroundManager) RegisterTasks() error {
	return m.RegisterTask(TaskExpirePendingRequests, m.ExpirePendingRequests)
}

// Run spawn workers to execute background jobs
func (m *BackgroundManager) Run() error {
	if m.worker != nil {
		return errors.New("background worker has started")
	}
	m.worker = m.taskServer.NewWorker("roadside-worker", 5)
	return m.worker.Launch()
}

// Stop asks a running worker to finish its tasks and quit
func (m *BackgroundManager) Stop() {
	if m.worker != nil {
		m.worker.Quit()
	}
}
