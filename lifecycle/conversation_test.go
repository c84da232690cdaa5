package lifecycle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/roadside-api/schema"
)

func TestNewConversation(t *testing.T) {
	pending := newPendingRequest(t)
	_, err := NewConversation(pending, "requester", testNow)
	assert.Equal(t, ErrNoHelperAssigned, err)

	r := assignedRequest(t)
	_, err = NewConversation(r, "stranger", testNow)
	assert.Equal(t, ErrNotParticipant, err)

	c, err := NewConversation(r, "helper-h", testNow)
	assert.NoError(t, err)
	assert.Equal(t, r.ID, c.RequestID)
	assert.Equal(t, "requester", c.Requester)
	assert.Equal(t, "helper-h", c.Helper)
	assert.True(t, c.IsActive)
	assert.NotNil(t, c.Messages)
}

func TestNewMessage(t *testing.T) {
	_, err := NewMessage("a", "  \n ", 10, testNow)
	assert.Equal(t, ErrEmptyMessage, err)

	_, err = NewMessage("a", strings.Repeat("x", 11), 10, testNow)
	assert.Equal(t, ErrMessageTooLong, err)

	m, err := NewMessage("a", "  hello  ", 10, testNow)
	assert.NoError(t, err)
	assert.Equal(t, "hello", m.Content)
	assert.Equal(t, "a", m.Sender)
	assert.False(t, m.Read)
	assert.False(t, m.ID.IsZero())
}

func TestUnreadFor(t *testing.T) {
	c := &schema.Conversation{
		Requester: "r",
		Helper:    "h",
		Messages: []schema.Message{
			{Sender: "r", Content: "1"},
			{Sender: "h", Content: "2"},
			{Sender: "h", Content: "3", Read: true},
		},
	}

	assert.Equal(t, 1, UnreadFor(c, "r"))
	assert.Equal(t, 1, UnreadFor(c, "h"))
	assert.Equal(t, ErrNotParticipant, CheckParticipant(c, "x"))
	assert.NoError(t, CheckParticipant(c, "h"))
	assert.Equal(t, "h", c.Counterpart("r"))
}
