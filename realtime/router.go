package realtime

import (
	"encoding/json"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bitmark-inc/roadside-api/lifecycle"
	"github.com/bitmark-inc/roadside-api/schema"
)

// Chat is the conversation side the router delegates to. Every method checks
// that the caller participates in the conversation.
type Chat interface {
	GetConversation(callerID string, conversationID primitive.ObjectID) (*schema.Conversation, error)
	SendMessage(callerID string, conversationID primitive.ObjectID, content string) (*schema.Message, error)
	MarkRead(callerID string, conversationID primitive.ObjectID) (int64, error)
}

type Command struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type conversationCommand struct {
	ConversationID string `json:"conversationId"`
	Content        string `json:"content"`
	IsTyping       *bool  `json:"isTyping"`
}

var (
	errMalformedCommand = &lifecycle.Error{Kind: lifecycle.KindValidation, Message: "malformed command"}
	errUnknownCommand   = &lifecycle.Error{Kind: lifecycle.KindValidation, Message: "unknown event"}
	errConversationID   = &lifecycle.Error{Kind: lifecycle.KindValidation, Message: "invalid conversation id"}
)

// Router executes the commands a session sends over its channel
type Router struct {
	hub  *Hub
	chat Chat
}

func NewRouter(hub *Hub, chat Chat) *Router {
	return &Router{hub: hub, chat: chat}
}

// Handle runs one raw client frame. Failures are reported to the session as
// error events and never end the session.
func (r *Router) Handle(s *Session, raw []byte) {
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil || cmd.Event == "" {
		r.fail(s, "", errMalformedCommand)
		return
	}

	if err := r.dispatch(s, cmd); err != nil {
		r.fail(s, cmd.Event, err)
	}
}

func (r *Router) dispatch(s *Session, cmd Command) error {
	var payload conversationCommand
	if len(cmd.Data) > 0 {
		if err := json.Unmarshal(cmd.Data, &payload); err != nil {
			return errMalformedCommand
		}
	}

	switch cmd.Event {
	case CommandJoinConversation, CommandLeaveConversation, CommandSendMessage,
		CommandMarkAsRead, CommandTyping:
	default:
		return errUnknownCommand
	}

	conversationID, err := primitive.ObjectIDFromHex(strings.TrimSpace(payload.ConversationID))
	if err != nil {
		return errConversationID
	}

	switch cmd.Event {
	case CommandJoinConversation:
		if _, err := r.chat.GetConversation(s.UserID, conversationID); err != nil {
			return err
		}
		r.hub.Join(s, ConversationRoom(conversationID.Hex()))

	case CommandLeaveConversation:
		r.hub.Leave(s, ConversationRoom(conversationID.Hex()))

	case CommandSendMessage:
		if _, err := r.chat.SendMessage(s.UserID, conversationID, payload.Content); err != nil {
			return err
		}

	case CommandMarkAsRead:
		if _, err := r.chat.MarkRead(s.UserID, conversationID); err != nil {
			return err
		}

	case CommandTyping:
		if _, err := r.chat.GetConversation(s.UserID, conversationID); err != nil {
			return err
		}
		isTyping := true
		if payload.IsTyping != nil {
			isTyping = *payload.IsTyping
		}
		r.hub.EmitExcept(ConversationRoom(conversationID.Hex()), s, Event{
			Name: EventUserTyping,
			Data: TypingPayload{
				ConversationID: conversationID.Hex(),
				UserID:         s.UserID,
				IsTyping:       isTyping,
			},
		})
	}

	return nil
}

func (r *Router) fail(s *Session, event string, err error) {
	kind := lifecycle.KindOf(err)
	message := err.Error()
	if kind == lifecycle.KindInfrastructure {
		log.WithFields(log.Fields{
			"prefix":  logPrefix,
			"session": s.ID,
			"user":    s.UserID,
			"event":   event,
			"error":   err,
		}).Error("socket command")
		message = "internal server error"
	}

	r.hub.Reply(s, Event{
		Name: EventError,
		Data: ErrorPayload{
			Kind:    string(kind),
			Message: message,
			Event:   event,
		},
	})
}
