package realtime

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	log "github.com/sirupsen/logrus"
)

const (
	logPrefix         = "realtime"
	defaultBufferSize = 64
)

// LocalizerFunc returns a localizer for a session language
type LocalizerFunc func(lang string) *i18n.Localizer

type Session struct {
	ID     string
	UserID string

	localizer *i18n.Localizer
	send      chan Frame
	done      chan struct{}
	rooms     map[string]struct{}
}

// Send is the outbound frame queue of the session
func (s *Session) Send() <-chan Frame {
	return s.send
}

// Done is closed when the session is disconnected
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) frame(e Event) Frame {
	f := Frame{
		Event: e.Name,
		Data:  e.Data,
	}

	if e.Notice == nil || s.localizer == nil {
		return f
	}

	title, err := s.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    fmt.Sprintf("notice.%s.title", e.Notice.MessageID),
		TemplateData: e.Notice.Data,
	})
	if err != nil {
		log.WithField("prefix", logPrefix).WithError(err).Warn("localize notice title")
		return f
	}

	body, err := s.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    fmt.Sprintf("notice.%s.body", e.Notice.MessageID),
		TemplateData: e.Notice.Data,
	})
	if err != nil {
		log.WithField("prefix", logPrefix).WithError(err).Warn("localize notice body")
		return f
	}

	f.Notice = &LocalizedNotice{Title: title, Body: body}
	return f
}

// deliver never blocks. A session that does not keep up loses the event.
func (s *Session) deliver(e Event) bool {
	select {
	case s.send <- s.frame(e):
		return true
	default:
		log.WithFields(log.Fields{
			"prefix":  logPrefix,
			"session": s.ID,
			"user":    s.UserID,
			"event":   e.Name,
		}).Warn("session buffer full, drop event")
		return false
	}
}

// Hub keeps the room memberships of all connected sessions
type Hub struct {
	sync.RWMutex
	sessions   map[string]*Session
	rooms      map[string]map[string]*Session
	bufferSize int
	localizer  LocalizerFunc
}

func NewHub(bufferSize int, localizer LocalizerFunc) *Hub {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &Hub{
		sessions:   make(map[string]*Session),
		rooms:      make(map[string]map[string]*Session),
		bufferSize: bufferSize,
		localizer:  localizer,
	}
}

// Connect registers an authenticated user and subscribes it to its own user room
func (h *Hub) Connect(userID, lang string) *Session {
	s := &Session{
		ID:     uuid.New().String(),
		UserID: userID,
		send:   make(chan Frame, h.bufferSize),
		done:   make(chan struct{}),
		rooms:  make(map[string]struct{}),
	}
	if h.localizer != nil {
		s.localizer = h.localizer(lang)
	}

	h.Lock()
	h.sessions[s.ID] = s
	h.join(s, UserRoom(userID))
	h.Unlock()

	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"session": s.ID,
		"user":    userID,
	}).Debug("session connected")

	return s
}

// Disconnect drops every membership of the session
func (h *Hub) Disconnect(s *Session) {
	h.Lock()
	defer h.Unlock()

	if _, ok := h.sessions[s.ID]; !ok {
		return
	}

	for room := range s.rooms {
		h.leave(s, room)
	}
	delete(h.sessions, s.ID)
	close(s.done)

	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"session": s.ID,
		"user":    s.UserID,
	}).Debug("session disconnected")
}

func (h *Hub) Join(s *Session, room string) {
	h.Lock()
	defer h.Unlock()

	if _, ok := h.sessions[s.ID]; !ok {
		return
	}
	h.join(s, room)
}

func (h *Hub) Leave(s *Session, room string) {
	h.Lock()
	defer h.Unlock()
	h.leave(s, room)
}

func (h *Hub) join(s *Session, room string) {
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[string]*Session)
		h.rooms[room] = members
	}
	members[s.ID] = s
	s.rooms[room] = struct{}{}
}

func (h *Hub) leave(s *Session, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, s.ID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(s.rooms, room)
}

// Rooms lists the rooms a session belongs to
func (h *Hub) Rooms(s *Session) []string {
	h.RLock()
	defer h.RUnlock()

	rooms := make([]string, 0, len(s.rooms))
	for room := range s.rooms {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)
	return rooms
}

// InRoom reports whether the session is subscribed to room
func (h *Hub) InRoom(s *Session, room string) bool {
	h.RLock()
	defer h.RUnlock()
	_, ok := s.rooms[room]
	return ok
}

// Emit sends e to every session in room and returns the number of sessions reached
func (h *Hub) Emit(room string, e Event) int {
	return h.EmitExcept(room, nil, e)
}

func (h *Hub) EmitExcept(room string, except *Session, e Event) int {
	h.RLock()
	defer h.RUnlock()

	delivered := 0
	for id, s := range h.rooms[room] {
		if except != nil && id == except.ID {
			continue
		}
		if s.deliver(e) {
			delivered++
		}
	}
	return delivered
}

// EmitRooms sends e once to every session in any of rooms
func (h *Hub) EmitRooms(e Event, rooms ...string) int {
	h.RLock()
	defer h.RUnlock()

	seen := make(map[string]struct{})
	delivered := 0
	for _, room := range rooms {
		for id, s := range h.rooms[room] {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			if s.deliver(e) {
				delivered++
			}
		}
	}
	return delivered
}

// Publish sends e to the sessions following the public request feed
func (h *Hub) Publish(e Event) {
	h.Emit(PublicRequestsTopic, e)
}

func (h *Hub) ToUser(userID string, e Event) {
	h.Emit(UserRoom(userID), e)
}

func (h *Hub) ToConversation(conversationID string, e Event) {
	h.Emit(ConversationRoom(conversationID), e)
}

// ToConversationAndUser reaches the conversation room and the user room. A
// session in both gets e once.
func (h *Hub) ToConversationAndUser(conversationID, userID string, e Event) {
	h.EmitRooms(e, ConversationRoom(conversationID), UserRoom(userID))
}

// Reply sends e to a single session
func (h *Hub) Reply(s *Session, e Event) {
	h.RLock()
	defer h.RUnlock()

	if _, ok := h.sessions[s.ID]; ok {
		s.deliver(e)
	}
}
