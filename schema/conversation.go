package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ConversationCollection = "conversations"
)

type Message struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Sender    string             `json:"sender" bson:"sender"`
	Content   string             `json:"content" bson:"content"`
	Timestamp time.Time          `json:"timestamp" bson:"timestamp"`
	Read      bool               `json:"read" bson:"read"`
}

// Conversation - the chat thread between the requester and the helper of a request
type Conversation struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RequestID     primitive.ObjectID `json:"requestId" bson:"request_id"`
	Requester     string             `json:"requester" bson:"requester"`
	Helper        string             `json:"helper" bson:"helper"`
	Messages      []Message          `json:"messages" bson:"messages"`
	LastMessageAt *time.Time         `json:"lastMessageAt,omitempty" bson:"last_message_at,omitempty"`
	IsActive      bool               `json:"isActive" bson:"is_active"`
	CreatedAt     time.Time          `json:"createdAt" bson:"created_at"`
}

func (c *Conversation) HasParticipant(accountID string) bool {
	if accountID == "" {
		return false
	}
	return c.Requester == accountID || c.Helper == accountID
}

// Counterpart returns the other participant
func (c *Conversation) Counterpart(accountID string) string {
	if accountID == c.Requester {
		return c.Helper
	}
	return c.Requester
}
