package coordinator

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bitmark-inc/roadside-api/lifecycle"
	"github.com/bitmark-inc/roadside-api/realtime"
	"github.com/bitmark-inc/roadside-api/schema"
)

func (c *Coordinator) openConversation(r *schema.Request, callerID string) (*schema.Conversation, error) {
	conversation, err := lifecycle.NewConversation(r, callerID, c.now())
	if err != nil {
		return nil, err
	}
	return c.store.CreateConversation(conversation)
}

// GetOrCreateConversation returns the conversation of a request, opening it
// when the request has a helper and no conversation exists yet
func (c *Coordinator) GetOrCreateConversation(callerID string, requestID primitive.ObjectID) (*schema.Conversation, error) {
	r, err := c.store.GetRequest(requestID)
	if err != nil {
		return nil, err
	}

	conversation, err := c.store.GetConversationByRequest(requestID)
	switch err {
	case nil:
		if err := lifecycle.CheckParticipant(conversation, callerID); err != nil {
			return nil, err
		}
		return conversation, nil
	case lifecycle.ErrConversationNotFound:
		return c.openConversation(r, callerID)
	default:
		return nil, err
	}
}

func (c *Coordinator) GetConversation(callerID string, id primitive.ObjectID) (*schema.Conversation, error) {
	conversation, err := c.store.GetConversation(id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CheckParticipant(conversation, callerID); err != nil {
		return nil, err
	}
	return conversation, nil
}

// ListConversations returns the caller's active conversations with their last message
func (c *Coordinator) ListConversations(callerID string) ([]schema.Conversation, error) {
	return c.store.ListConversations(callerID)
}

// SendMessage appends a message and pushes it to the conversation room. The
// other participant also gets a notification in its own room.
func (c *Coordinator) SendMessage(callerID string, id primitive.ObjectID, content string) (*schema.Message, error) {
	conversation, err := c.GetConversation(callerID, id)
	if err != nil {
		return nil, err
	}
	if !conversation.IsActive {
		return nil, lifecycle.ErrConversationArchived
	}

	message, err := lifecycle.NewMessage(callerID, content, c.config.MaxMessageLength, c.now())
	if err != nil {
		return nil, err
	}

	if err := c.store.AppendMessage(id, *message); err != nil {
		return nil, err
	}

	c.notifier.ToConversation(id.Hex(), realtime.Event{
		Name: realtime.EventNewMessage,
		Data: realtime.MessagePayload{
			ConversationID: id.Hex(),
			RequestID:      conversation.RequestID.Hex(),
			Message:        *message,
		},
	})

	preview := realtime.Preview(message.Content)
	c.notifier.ToUser(conversation.Counterpart(callerID), realtime.Event{
		Name: realtime.EventMessageNotification,
		Data: realtime.MessageNotificationPayload{
			ConversationID: id.Hex(),
			RequestID:      conversation.RequestID.Hex(),
			Sender:         callerID,
			Preview:        preview,
			Timestamp:      message.Timestamp,
		},
		Notice: &realtime.Notice{
			MessageID: "message_notification",
			Data: map[string]interface{}{
				"Name":    c.displayName(callerID),
				"Preview": preview,
			},
		},
	})

	return message, nil
}

// MarkRead marks the messages the caller received as read. Nothing is
// emitted when there was nothing to mark.
func (c *Coordinator) MarkRead(callerID string, id primitive.ObjectID) (int64, error) {
	conversation, err := c.GetConversation(callerID, id)
	if err != nil {
		return 0, err
	}

	count, err := c.store.MarkConversationRead(id, callerID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}

	e := realtime.Event{
		Name: realtime.EventMessagesRead,
		Data: realtime.MessagesReadPayload{
			ConversationID: id.Hex(),
			ReaderID:       callerID,
			Count:          count,
		},
	}
	c.notifier.ToConversationAndUser(id.Hex(), conversation.Counterpart(callerID), e)

	return count, nil
}

func (c *Coordinator) UnreadCount(callerID string) (int64, error) {
	return c.store.UnreadCount(callerID)
}

func (c *Coordinator) ArchiveConversation(callerID string, id primitive.ObjectID) error {
	if _, err := c.GetConversation(callerID, id); err != nil {
		return err
	}
	return c.store.ArchiveConversation(id)
}
