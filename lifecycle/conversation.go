package lifecycle

import (
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bitmark-inc/roadside-api/schema"
)

// NewConversation opens the chat thread of an assigned request. Participants
// are copied from the request and never change afterwards.
func NewConversation(r *schema.Request, callerID string, now time.Time) (*schema.Conversation, error) {
	if callerID == "" || (callerID != r.Requester && callerID != r.Helper) {
		return nil, ErrNotParticipant
	}
	if r.Helper == "" {
		return nil, ErrNoHelperAssigned
	}

	return &schema.Conversation{
		RequestID: r.ID,
		Requester: r.Requester,
		Helper:    r.Helper,
		Messages:  []schema.Message{},
		IsActive:  true,
		CreatedAt: now,
	}, nil
}

// CheckParticipant allows only the two participants through
func CheckParticipant(c *schema.Conversation, accountID string) error {
	if !c.HasParticipant(accountID) {
		return ErrNotParticipant
	}
	return nil
}

// NewMessage validates the content and builds an unread message
func NewMessage(sender, content string, maxLength int, now time.Time) (*schema.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if maxLength > 0 && utf8.RuneCountInString(content) > maxLength {
		return nil, ErrMessageTooLong
	}

	return &schema.Message{
		ID:        primitive.NewObjectID(),
		Sender:    sender,
		Content:   content,
		Timestamp: now,
	}, nil
}

// UnreadFor counts the messages a participant has not read yet
func UnreadFor(c *schema.Conversation, accountID string) int {
	count := 0
	for _, m := range c.Messages {
		if m.Sender != accountID && !m.Read {
			count++
		}
	}
	return count
}
